package rootlens

// IsReleaseBuild reports whether the library was compiled with the
// "release" build tag. Development builds (the default) return false.
// The value is fixed at compile time, so repeated calls always return
// the same result.
func IsReleaseBuild() bool {
	return releaseBuild
}
