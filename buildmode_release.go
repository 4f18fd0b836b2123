//go:build release

package rootlens

const releaseBuild = true
