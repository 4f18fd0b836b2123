// Package rootlens is the native core of the host application: it detects
// the build target and lists the contents of the root-only /root directory
// by driving external privilege-elevation tools. The Dart/FFI layer above
// it is a thin marshalling shim; everything with behavior lives here.
//
// All operations are total: they return a value or a classified error and
// never panic or abort across the boundary.
package rootlens

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/rootlens/rootlens/internal/config"
	"github.com/rootlens/rootlens/internal/elevation"
	"github.com/rootlens/rootlens/internal/logging"
)

// Classified errors returned by the listing operations. Callers match
// with errors.Is.
var (
	// ErrToolUnavailable means the elevation helper binary is missing.
	ErrToolUnavailable = elevation.ErrToolUnavailable
	// ErrPermissionDenied means the prompt was declined or the password
	// was wrong or missing.
	ErrPermissionDenied = elevation.ErrPermissionDenied
	// ErrElevationFailed means every passwordless strategy failed.
	ErrElevationFailed = elevation.ErrElevationFailed
	// ErrSpawnFailed means the process machinery itself failed.
	ErrSpawnFailed = elevation.ErrSpawnFailed
	// ErrTimedOut means the attempt exceeded the configured bound.
	ErrTimedOut = elevation.ErrTimedOut
)

var defaultExecutor = sync.OnceValue(func() *elevation.Executor {
	logger := logging.NewLogger(os.Stderr, slog.LevelWarn)
	return elevation.NewExecutor(config.Default(), logger)
})

// ListRootPasswordless lists /root through the ordered passwordless
// elevation strategies (currently the polkit prompt tool). It blocks
// until the prompt is answered, the configured timeout expires, or the
// context is done. Returned lines preserve the listing's order.
func ListRootPasswordless(ctx context.Context) ([]string, error) {
	return defaultExecutor().ListRoot(ctx)
}

// ListRootWithPassword lists /root through sudo, feeding password to the
// tool's standard input. The password is used verbatim for a single
// attempt: no validation, no trimming, and the empty string simply fails
// the prompt with ErrPermissionDenied.
func ListRootWithPassword(ctx context.Context, password string) ([]string, error) {
	return defaultExecutor().ListRootWithPassword(ctx, password)
}
