package elevation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// osCommandRunner is the CommandRunner used in production. It spawns the
// tool through os/exec and captures output in memory unless the command
// supplies its own stdout writer.
type osCommandRunner struct{}

// NewCommandRunner returns the default CommandRunner backed by os/exec.
func NewCommandRunner() CommandRunner {
	return &osCommandRunner{}
}

func (r *osCommandRunner) Run(ctx context.Context, cmd Command) (*Result, error) {
	path, lookErr := exec.LookPath(cmd.Name)
	if lookErr != nil {
		return nil, fmt.Errorf("failed to find elevation tool %q: %w", cmd.Name, lookErr)
	}

	// #nosec G204 - the tool path and arguments come from validated
	// configuration, never from the password or any other caller input
	execCmd := exec.CommandContext(ctx, path, cmd.Args...)
	execCmd.Stdin = cmd.Stdin

	var stdout, stderr bytes.Buffer
	if cmd.Stdout != nil {
		execCmd.Stdout = cmd.Stdout
	} else {
		execCmd.Stdout = &stdout
	}
	execCmd.Stderr = &stderr

	runErr := execCmd.Run()
	if runErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("elevation tool %q interrupted: %w", cmd.Name, ctxErr)
		}
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return nil, fmt.Errorf("failed to run elevation tool %q: %w", cmd.Name, runErr)
		}
	}

	result := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if execCmd.ProcessState != nil {
		result.ExitCode = execCmd.ProcessState.ExitCode()
	}
	return result, nil
}

// isToolMissing reports whether a runner error means the tool binary could
// not be found or executed at all, as opposed to failing mid-run.
func isToolMissing(err error) bool {
	return errors.Is(err, exec.ErrNotFound)
}
