//go:build !windows

package elevation

import "golang.org/x/sys/unix"

// alreadyElevated reports whether the process already runs with an
// effective UID of root, in which case the elevation tools will not
// prompt at all.
func alreadyElevated() bool {
	return unix.Geteuid() == 0
}
