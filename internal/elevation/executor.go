package elevation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rootlens/rootlens/internal/config"
	"github.com/rootlens/rootlens/internal/terminal"
)

// Executor runs the protected directory listing through elevation
// strategies. It is safe for concurrent use: every call works on
// call-scoped state only.
type Executor struct {
	runner   CommandRunner
	cfg      *config.Config
	logger   *slog.Logger
	detector terminal.Detector
}

// NewExecutor creates an Executor spawning real processes.
func NewExecutor(cfg *config.Config, logger *slog.Logger) *Executor {
	return NewExecutorWithRunner(cfg, logger, NewCommandRunner())
}

// NewExecutorWithRunner creates an Executor with a custom CommandRunner,
// used by tests to stub process spawning.
func NewExecutorWithRunner(cfg *config.Config, logger *slog.Logger, runner CommandRunner) *Executor {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		runner:   runner,
		cfg:      cfg,
		logger:   logger,
		detector: terminal.NewDetector(),
	}
}

// passwordlessStrategies returns the ordered list of strategies that need
// no caller-supplied secret. Only polkit is registered: probing several
// graphical elevation agents would fire multiple prompts at the user, and
// polkit is the one agent the host application targets. The loop in
// ListRoot stays general so another backend can be appended here.
func passwordlessStrategies() []Strategy {
	return []Strategy{Polkit()}
}

// ListRoot lists the target directory via the ordered passwordless
// strategies. Strategies run strictly one at a time, in declared order,
// and the first success wins. When every strategy fails, the aggregate
// ErrElevationFailed is returned.
func (e *Executor) ListRoot(ctx context.Context) ([]string, error) {
	strategies := passwordlessStrategies()
	names := make([]string, len(strategies))
	for i, s := range strategies {
		names[i] = s.Kind().String()
	}

	for _, strategy := range strategies {
		lines, err := e.execute(ctx, strategy)
		if err != nil {
			e.logger.Warn("Elevation strategy failed",
				"strategy", strategy.Kind().String(),
				"error", err)
			continue
		}
		return lines, nil
	}

	return nil, newError(KindPolkit, e.cfg.PkexecPath, -1,
		fmt.Errorf("%w: %s", ErrElevationFailed, strings.Join(names, ",")))
}

// ListRootWithPassword lists the target directory via sudo, handing the
// caller-supplied password to the tool's standard input. The password is
// used verbatim for exactly one attempt and never logged.
func (e *Executor) ListRootWithPassword(ctx context.Context, password string) ([]string, error) {
	return e.execute(ctx, Sudo(password))
}

// execute dispatches one strategy. The configured timeout bounds the
// whole attempt, including the time the user spends at the prompt.
func (e *Executor) execute(ctx context.Context, strategy Strategy) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout())
	defer cancel()

	callID := newCallID()
	e.logger.Info("Attempting privilege elevation",
		"call_id", callID,
		"strategy", strategy.Kind().String(),
		"target_dir", e.cfg.TargetDir,
		"already_root", alreadyElevated(),
		"prompt_reachable", e.detector.PromptLikelyReachable())

	switch strategy.Kind() {
	case KindPolkit:
		return e.runPolkit(ctx, callID)
	case KindSudo:
		return e.runSudo(ctx, callID, strategy.password)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, strategy.Kind())
	}
}

// listingArgs builds the argument vector for the listing command itself,
// e.g. ["ls", "-la", "/root"].
func (e *Executor) listingArgs() []string {
	args := make([]string, 0, len(e.cfg.ListFlags)+2)
	args = append(args, e.cfg.ListCommand)
	args = append(args, e.cfg.ListFlags...)
	args = append(args, e.cfg.TargetDir)
	return args
}

// runPolkit spawns the polkit prompt tool around the listing command and
// captures its stdout in memory.
func (e *Executor) runPolkit(ctx context.Context, callID string) ([]string, error) {
	result, err := e.runner.Run(ctx, Command{
		Name: e.cfg.PkexecPath,
		Args: e.listingArgs(),
	})
	if err != nil {
		return nil, newError(KindPolkit, e.cfg.PkexecPath, -1, e.classifySpawnError(ctx, err))
	}
	if result.ExitCode != 0 {
		return nil, newError(KindPolkit, e.cfg.PkexecPath, result.ExitCode,
			fmt.Errorf("%w: authorization prompt declined or not permitted", ErrPermissionDenied))
	}

	lines := splitLines(result.Stdout)
	e.logger.Info("Privileged listing succeeded",
		"call_id", callID,
		"strategy", KindPolkit.String(),
		"lines", len(lines))
	return lines, nil
}

// runSudo spawns sudo in read-password-from-stdin mode. The secret goes
// over the child's stdin pipe only; it never appears on a command line or
// in a shell string. Stdout goes to a call-scoped file that is removed on
// every return path.
func (e *Executor) runSudo(ctx context.Context, callID, password string) ([]string, error) {
	out, err := newOutputFile(e.cfg.TempDir, callID)
	if err != nil {
		return nil, newError(KindSudo, e.cfg.SudoPath, -1,
			fmt.Errorf("%w: %w", ErrSpawnFailed, err))
	}
	defer out.Cleanup()

	args := append([]string{"-S", "-p", "", "--"}, e.listingArgs()...)
	result, err := e.runner.Run(ctx, Command{
		Name:   e.cfg.SudoPath,
		Args:   args,
		Stdin:  strings.NewReader(password + "\n"),
		Stdout: out.Writer(),
	})
	if err != nil {
		return nil, newError(KindSudo, e.cfg.SudoPath, -1, e.classifySpawnError(ctx, err))
	}
	if result.ExitCode != 0 {
		return nil, newError(KindSudo, e.cfg.SudoPath, result.ExitCode,
			fmt.Errorf("%w: password required or incorrect", ErrPermissionDenied))
	}

	contents, err := out.Contents()
	if err != nil {
		return nil, newError(KindSudo, e.cfg.SudoPath, result.ExitCode,
			fmt.Errorf("%w: %w", ErrSpawnFailed, err))
	}

	lines := splitLines(contents)
	e.logger.Info("Privileged listing succeeded",
		"call_id", callID,
		"strategy", KindSudo.String(),
		"lines", len(lines))
	return lines, nil
}

// classifySpawnError maps a CommandRunner error into the taxonomy:
// a missing binary is ErrToolUnavailable, an expired context is
// ErrTimedOut, anything else is ErrSpawnFailed.
func (e *Executor) classifySpawnError(ctx context.Context, err error) error {
	switch {
	case isToolMissing(err):
		return fmt.Errorf("%w: %w", ErrToolUnavailable, err)
	case ctx.Err() != nil:
		return fmt.Errorf("%w: %w", ErrTimedOut, err)
	default:
		return fmt.Errorf("%w: %w", ErrSpawnFailed, err)
	}
}
