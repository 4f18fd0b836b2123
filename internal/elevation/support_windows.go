//go:build windows

package elevation

// The elevation tools targeted here (pkexec, sudo) do not exist on
// Windows; the executor still compiles so the library links everywhere,
// and every attempt fails with ErrToolUnavailable at runtime.
func alreadyElevated() bool {
	return false
}
