// Package terminal reports whether an elevation prompt can plausibly
// reach the user: whether the process has a terminal, whether a graphical
// session (and therefore a polkit authentication agent) is likely present,
// and whether the process runs in a CI environment where no prompt will
// ever be answered.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// ciEnvVars contains common CI environment variables
var ciEnvVars = []string{
	"CI",
	"CONTINUOUS_INTEGRATION",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"JENKINS_URL",
	"BUILDKITE",
	"CIRCLECI",
	"TRAVIS",
}

// displayEnvVars indicate a graphical session where a polkit agent can
// show its dialog.
var displayEnvVars = []string{
	"DISPLAY",
	"WAYLAND_DISPLAY",
}

// Detector reports prompt-reachability properties of the current process
// environment.
type Detector interface {
	// IsTerminal reports whether stdin is attached to a terminal.
	IsTerminal() bool
	// HasDisplay reports whether a graphical session appears present.
	HasDisplay() bool
	// IsCIEnvironment reports whether a CI environment variable is set.
	IsCIEnvironment() bool
	// PromptLikelyReachable reports whether any elevation prompt has a
	// realistic chance of being seen and answered by a user.
	PromptLikelyReachable() bool
}

// DefaultDetector implements Detector against the real process
// environment.
type DefaultDetector struct{}

// NewDetector creates a Detector backed by the process environment.
func NewDetector() Detector {
	return &DefaultDetector{}
}

// IsTerminal reports whether stdin is attached to a terminal.
func (d *DefaultDetector) IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// HasDisplay reports whether a graphical session appears present.
func (d *DefaultDetector) HasDisplay() bool {
	for _, envVar := range displayEnvVars {
		if os.Getenv(envVar) != "" {
			return true
		}
	}
	return false
}

// IsCIEnvironment reports whether a CI environment variable is set.
func (d *DefaultDetector) IsCIEnvironment() bool {
	for _, envVar := range ciEnvVars {
		if os.Getenv(envVar) != "" {
			return true
		}
	}
	return false
}

// PromptLikelyReachable reports whether an elevation prompt has a
// realistic chance of being answered. CI wins over everything else:
// even with a pseudo-terminal attached, nobody is there to answer.
func (d *DefaultDetector) PromptLikelyReachable() bool {
	if d.IsCIEnvironment() {
		return false
	}
	return d.IsTerminal() || d.HasDisplay()
}
