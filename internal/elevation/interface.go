package elevation

import (
	"context"
	"io"
)

// Command describes one invocation of an external elevation tool.
type Command struct {
	// Name is the tool path, resolved via PATH when relative.
	Name string
	// Args are passed to the tool verbatim.
	Args []string
	// Stdin, when non-nil, is streamed to the child's standard input.
	// The password path uses it to hand the secret to sudo without the
	// secret ever appearing on a command line.
	Stdin io.Reader
	// Stdout, when non-nil, receives the child's standard output instead
	// of the in-memory capture in Result.
	Stdout io.Writer
}

// Result contains the outcome of a completed tool invocation. A Result is
// only produced when the child actually ran; spawn failures surface as
// errors from CommandRunner.Run instead.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// CommandRunner abstracts process spawning so the executor can be tested
// without real elevation tools installed.
type CommandRunner interface {
	// Run executes cmd and waits for it to finish. A non-zero exit status
	// is not an error: it is reported through Result.ExitCode. Run returns
	// an error only when the child could not be spawned or was cut short
	// by the context.
	Run(ctx context.Context, cmd Command) (*Result, error)
}
