// Package elevation runs the protected directory listing through external
// privilege-elevation tools. It tries elevation strategies in order, maps
// external-process outcomes into a classified error taxonomy, and never
// lets a spawn failure escape as a panic or abort.
package elevation

import (
	"fmt"
	"time"
)

// Standard errors
var (
	// ErrToolUnavailable means the elevation helper binary is not
	// installed or not invocable.
	ErrToolUnavailable = fmt.Errorf("elevation tool is not available")

	// ErrPermissionDenied means elevation was attempted but refused:
	// the prompt was declined or the password was wrong or missing.
	ErrPermissionDenied = fmt.Errorf("permission denied")

	// ErrElevationFailed means every configured passwordless strategy
	// failed.
	ErrElevationFailed = fmt.Errorf("failed to elevate privileges")

	// ErrSpawnFailed means the process machinery itself failed before the
	// tool could run (pipe setup, fork/exec, output file creation).
	ErrSpawnFailed = fmt.Errorf("failed to spawn elevation process")

	// ErrTimedOut means the elevation attempt exceeded the configured
	// bound, typically an unanswered prompt.
	ErrTimedOut = fmt.Errorf("elevation attempt timed out")

	// ErrUnknownStrategy is returned for a Strategy value the executor
	// does not recognize.
	ErrUnknownStrategy = fmt.Errorf("unknown elevation strategy")
)

// Error contains detailed information about a failed elevation attempt.
type Error struct {
	Strategy  Kind
	Tool      string
	ExitCode  int
	Err       error
	Timestamp time.Time
}

func (e *Error) Error() string {
	return fmt.Sprintf("elevation via %s failed (tool %q, exit code %d): %v",
		e.Strategy, e.Tool, e.ExitCode, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// newError builds an *Error stamped with the current time.
func newError(strategy Kind, tool string, exitCode int, err error) *Error {
	return &Error{
		Strategy:  strategy,
		Tool:      tool,
		ExitCode:  exitCode,
		Err:       err,
		Timestamp: time.Now(),
	}
}
