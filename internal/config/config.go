// Package config provides loading and validation of the library
// configuration: paths to the elevation tools, the protected directory to
// list, and the spawn timeout applied to every elevation attempt.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"
)

// Default values applied when a field is absent from the configuration file
// or no configuration file is used at all.
const (
	DefaultPkexecPath     = "pkexec"
	DefaultSudoPath       = "sudo"
	DefaultTargetDir      = "/root"
	DefaultListCommand    = "ls"
	DefaultTimeoutSeconds = 120
)

// Error definitions for the config package
var (
	ErrTargetDirNotAbsolute = errors.New("target directory must be an absolute path")
	ErrEmptyToolPath        = errors.New("elevation tool path cannot be empty")
	ErrEmptyListCommand     = errors.New("list command cannot be empty")
	ErrInvalidTimeout       = errors.New("timeout must be positive")
)

// Config holds the runtime configuration for the privileged listing core.
type Config struct {
	// PkexecPath is the polkit prompt tool, resolved via PATH when relative.
	PkexecPath string `toml:"pkexec_path"`

	// SudoPath is the password-reading elevation tool, resolved via PATH
	// when relative.
	SudoPath string `toml:"sudo_path"`

	// TargetDir is the protected directory whose contents are listed.
	TargetDir string `toml:"target_dir"`

	// ListCommand is the directory-listing command run under elevation.
	ListCommand string `toml:"list_command"`

	// ListFlags are passed to ListCommand before the target directory.
	ListFlags []string `toml:"list_flags"`

	// TimeoutSeconds bounds a single elevation attempt, including the time
	// the user spends at the prompt.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// TempDir receives per-call output files for the password path.
	// Empty means the system default temporary directory.
	TempDir string `toml:"temp_dir"`
}

// Default returns a Config populated with the default values.
func Default() *Config {
	return &Config{
		PkexecPath:     DefaultPkexecPath,
		SudoPath:       DefaultSudoPath,
		TargetDir:      DefaultTargetDir,
		ListCommand:    DefaultListCommand,
		ListFlags:      []string{"-la"},
		TimeoutSeconds: DefaultTimeoutSeconds,
	}
}

// Timeout returns the spawn timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate checks the configuration for values that would make every
// elevation attempt fail in a confusing way.
func (c *Config) Validate() error {
	if c.PkexecPath == "" || c.SudoPath == "" {
		return ErrEmptyToolPath
	}
	if c.ListCommand == "" {
		return ErrEmptyListCommand
	}
	if !filepath.IsAbs(c.TargetDir) {
		return fmt.Errorf("%w: %q", ErrTargetDirNotAbsolute, c.TargetDir)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTimeout, c.TimeoutSeconds)
	}
	return nil
}
