package elevation_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rootlens/rootlens/internal/config"
	"github.com/rootlens/rootlens/internal/elevation"
)

// mockRunner scripts the behavior of the external elevation tools so the
// executor can be tested without pkexec or sudo installed.
type mockRunner struct {
	mu    sync.Mutex
	calls []elevation.Command
	run   func(ctx context.Context, cmd elevation.Command) (*elevation.Result, error)
}

func (m *mockRunner) Run(ctx context.Context, cmd elevation.Command) (*elevation.Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, cmd)
	m.mu.Unlock()
	return m.run(ctx, cmd)
}

func (m *mockRunner) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// readPassword drains the command's stdin the way sudo -S would.
func readPassword(t *testing.T, cmd elevation.Command) string {
	t.Helper()
	if cmd.Stdin == nil {
		return ""
	}
	data, err := io.ReadAll(cmd.Stdin)
	require.NoError(t, err)
	return strings.TrimSuffix(string(data), "\n")
}

func newTestExecutor(t *testing.T, runner elevation.CommandRunner) *elevation.Executor {
	t.Helper()
	cfg := config.Default()
	cfg.TempDir = t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return elevation.NewExecutorWithRunner(cfg, logger, runner)
}

func TestListRoot_Success(t *testing.T) {
	runner := &mockRunner{
		run: func(_ context.Context, _ elevation.Command) (*elevation.Result, error) {
			return &elevation.Result{
				ExitCode: 0,
				Stdout:   "total 12\ndrwx------ 2 root root .\n-rw------- 1 root root .bashrc\n",
			}, nil
		},
	}
	executor := newTestExecutor(t, runner)

	lines, err := executor.ListRoot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"total 12",
		"drwx------ 2 root root .",
		"-rw------- 1 root root .bashrc",
	}, lines)

	require.Equal(t, 1, runner.callCount())
	assert.Equal(t, "pkexec", runner.calls[0].Name)
	assert.Equal(t, []string{"ls", "-la", "/root"}, runner.calls[0].Args)
	assert.Nil(t, runner.calls[0].Stdin, "passwordless strategy must not feed stdin")
}

func TestListRoot_PromptDeclined(t *testing.T) {
	runner := &mockRunner{
		run: func(_ context.Context, _ elevation.Command) (*elevation.Result, error) {
			// pkexec exits 126 when the user dismisses the dialog
			return &elevation.Result{ExitCode: 126}, nil
		},
	}
	executor := newTestExecutor(t, runner)

	lines, err := executor.ListRoot(context.Background())
	assert.Nil(t, lines)
	assert.ErrorIs(t, err, elevation.ErrElevationFailed)

	var elevErr *elevation.Error
	require.ErrorAs(t, err, &elevErr)
	assert.Equal(t, elevation.KindPolkit, elevErr.Strategy)
}

func TestListRoot_ToolMissing(t *testing.T) {
	runner := &mockRunner{
		run: func(_ context.Context, cmd elevation.Command) (*elevation.Result, error) {
			return nil, fmt.Errorf("failed to find elevation tool %q: %w", cmd.Name, exec.ErrNotFound)
		},
	}
	executor := newTestExecutor(t, runner)

	done := make(chan struct{})
	var err error
	go func() {
		defer close(done)
		_, err = executor.ListRoot(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("ListRoot blocked with an absent elevation tool")
	}
	assert.ErrorIs(t, err, elevation.ErrElevationFailed)
}

func TestListRootWithPassword_Success(t *testing.T) {
	const canned = "total 4\n-rw------- 1 root root secrets.txt\n"
	runner := &mockRunner{}
	runner.run = func(_ context.Context, cmd elevation.Command) (*elevation.Result, error) {
		if readPassword(t, cmd) != "correct" {
			return &elevation.Result{ExitCode: 1}, nil
		}
		_, err := io.WriteString(cmd.Stdout, canned)
		require.NoError(t, err)
		return &elevation.Result{ExitCode: 0}, nil
	}
	executor := newTestExecutor(t, runner)

	lines, err := executor.ListRootWithPassword(context.Background(), "correct")
	require.NoError(t, err)
	assert.Equal(t, []string{"total 4", "-rw------- 1 root root secrets.txt"}, lines)

	require.Equal(t, 1, runner.callCount())
	call := runner.calls[0]
	assert.Equal(t, "sudo", call.Name)
	assert.Equal(t, []string{"-S", "-p", "", "--", "ls", "-la", "/root"}, call.Args)
	for _, arg := range call.Args {
		assert.NotContains(t, arg, "correct", "password must never appear in the argument vector")
	}
}

func TestListRootWithPassword_WrongPassword(t *testing.T) {
	runner := &mockRunner{}
	runner.run = func(_ context.Context, cmd elevation.Command) (*elevation.Result, error) {
		if readPassword(t, cmd) == "correct" {
			return &elevation.Result{ExitCode: 0}, nil
		}
		return &elevation.Result{ExitCode: 1}, nil
	}
	executor := newTestExecutor(t, runner)

	lines, err := executor.ListRootWithPassword(context.Background(), "wrong")
	assert.Nil(t, lines)
	assert.ErrorIs(t, err, elevation.ErrPermissionDenied)

	var elevErr *elevation.Error
	require.ErrorAs(t, err, &elevErr)
	assert.Equal(t, elevation.KindSudo, elevErr.Strategy)
	assert.Equal(t, 1, elevErr.ExitCode)
}

func TestListRootWithPassword_EmptyPasswordIsLegal(t *testing.T) {
	runner := &mockRunner{}
	runner.run = func(_ context.Context, cmd elevation.Command) (*elevation.Result, error) {
		assert.Equal(t, "", readPassword(t, cmd))
		return &elevation.Result{ExitCode: 1}, nil
	}
	executor := newTestExecutor(t, runner)

	_, err := executor.ListRootWithPassword(context.Background(), "")
	assert.ErrorIs(t, err, elevation.ErrPermissionDenied)
}

func TestListRootWithPassword_ToolMissing(t *testing.T) {
	runner := &mockRunner{
		run: func(_ context.Context, cmd elevation.Command) (*elevation.Result, error) {
			return nil, fmt.Errorf("failed to find elevation tool %q: %w", cmd.Name, exec.ErrNotFound)
		},
	}
	executor := newTestExecutor(t, runner)

	_, err := executor.ListRootWithPassword(context.Background(), "correct")
	assert.ErrorIs(t, err, elevation.ErrToolUnavailable)
}

func TestListRootWithPassword_SpawnFailure(t *testing.T) {
	runner := &mockRunner{
		run: func(_ context.Context, _ elevation.Command) (*elevation.Result, error) {
			return nil, errors.New("fork/exec: resource temporarily unavailable")
		},
	}
	executor := newTestExecutor(t, runner)

	_, err := executor.ListRootWithPassword(context.Background(), "correct")
	assert.ErrorIs(t, err, elevation.ErrSpawnFailed)
}

func TestListRootWithPassword_Timeout(t *testing.T) {
	runner := &mockRunner{
		run: func(ctx context.Context, _ elevation.Command) (*elevation.Result, error) {
			// simulate a prompt nobody answers
			<-ctx.Done()
			return nil, fmt.Errorf("elevation tool interrupted: %w", ctx.Err())
		},
	}
	cfg := config.Default()
	cfg.TempDir = t.TempDir()
	cfg.TimeoutSeconds = 1
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	executor := elevation.NewExecutorWithRunner(cfg, logger, runner)

	start := time.Now()
	_, err := executor.ListRootWithPassword(context.Background(), "correct")
	assert.ErrorIs(t, err, elevation.ErrTimedOut)
	assert.Less(t, time.Since(start), 5*time.Second, "bounded wait must not hang")
}

// Two concurrent calls with different passwords must each receive their
// own output: the output file is call-scoped, never a shared path.
func TestListRootWithPassword_ConcurrentCallsAreIsolated(t *testing.T) {
	runner := &mockRunner{}
	runner.run = func(_ context.Context, cmd elevation.Command) (*elevation.Result, error) {
		password := readPassword(t, cmd)
		// widen the race window
		time.Sleep(10 * time.Millisecond)
		_, err := fmt.Fprintf(cmd.Stdout, "listing-for-%s\nsecond-line-%s\n", password, password)
		require.NoError(t, err)
		return &elevation.Result{ExitCode: 0}, nil
	}
	executor := newTestExecutor(t, runner)

	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			password := fmt.Sprintf("pw-%d", i)
			lines, err := executor.ListRootWithPassword(context.Background(), password)
			assert.NoError(t, err)
			assert.Equal(t, []string{
				"listing-for-" + password,
				"second-line-" + password,
			}, lines)
		}(i)
	}
	wg.Wait()
}

func TestListRootWithPassword_OutputFileRemoved(t *testing.T) {
	tests := []struct {
		name     string
		exitCode int
	}{
		{name: "after success", exitCode: 0},
		{name: "after denial", exitCode: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &mockRunner{}
			runner.run = func(_ context.Context, cmd elevation.Command) (*elevation.Result, error) {
				readPassword(t, cmd)
				if tt.exitCode == 0 {
					_, err := io.WriteString(cmd.Stdout, "a\n")
					require.NoError(t, err)
				}
				return &elevation.Result{ExitCode: tt.exitCode}, nil
			}

			tempDir := t.TempDir()
			cfg := config.Default()
			cfg.TempDir = tempDir
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			executor := elevation.NewExecutorWithRunner(cfg, logger, runner)

			_, _ = executor.ListRootWithPassword(context.Background(), "correct")

			entries, err := os.ReadDir(tempDir)
			require.NoError(t, err)
			assert.Empty(t, entries, "call-scoped output file must be removed")
		})
	}
}

func TestStrategyKindString(t *testing.T) {
	assert.Equal(t, "polkit", elevation.KindPolkit.String())
	assert.Equal(t, "sudo", elevation.KindSudo.String())
	assert.Equal(t, "unknown", elevation.Kind(99).String())
}

func TestErrorFormatting(t *testing.T) {
	elevErr := &elevation.Error{
		Strategy: elevation.KindSudo,
		Tool:     "sudo",
		ExitCode: 1,
		Err:      elevation.ErrPermissionDenied,
	}
	assert.Contains(t, elevErr.Error(), "sudo")
	assert.Contains(t, elevErr.Error(), "exit code 1")
	assert.ErrorIs(t, elevErr, elevation.ErrPermissionDenied)
}
