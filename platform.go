package rootlens

import "runtime"

// Platform identifies the build target the library was compiled for. The
// host application uses it to pick platform-specific behavior, so the set
// of values is fixed and shared with the other side of the FFI boundary.
type Platform int

// Supported build targets
const (
	PlatformUnknown Platform = iota
	PlatformAndroid
	PlatformIos
	PlatformWindows
	PlatformUnix
	PlatformMacIntel
	PlatformMacApple
	PlatformWasm
)

var platformNames = map[Platform]string{
	PlatformUnknown:  "unknown",
	PlatformAndroid:  "android",
	PlatformIos:      "ios",
	PlatformWindows:  "windows",
	PlatformUnix:     "unix",
	PlatformMacIntel: "mac-intel",
	PlatformMacApple: "mac-apple",
	PlatformWasm:     "wasm",
}

func (p Platform) String() string {
	if name, ok := platformNames[p]; ok {
		return name
	}
	return platformNames[PlatformUnknown]
}

// CurrentPlatform returns the Platform for the current build target.
// The result depends only on compile-time constants, so it is pure and
// never changes within a process.
//
// Android and iOS must be checked before the generic Unix case: GOOS
// "android" is a Unix family target but the host application treats it
// as a distinct platform.
func CurrentPlatform() Platform {
	switch runtime.GOOS {
	case "android":
		return PlatformAndroid
	case "ios":
		return PlatformIos
	case "windows":
		return PlatformWindows
	case "darwin":
		if runtime.GOARCH == "arm64" {
			return PlatformMacApple
		}
		return PlatformMacIntel
	case "js", "wasip1":
		return PlatformWasm
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly", "solaris", "illumos", "aix":
		return PlatformUnix
	default:
		return PlatformUnknown
	}
}
