package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Loader handles loading and validating configuration files.
type Loader struct {
	readFile func(string) ([]byte, error)
}

// NewLoader creates a config loader reading from the local filesystem.
func NewLoader() *Loader {
	return &Loader{readFile: os.ReadFile}
}

// NewLoaderWithReader creates a config loader with a custom file reader.
func NewLoaderWithReader(readFile func(string) ([]byte, error)) *Loader {
	return &Loader{readFile: readFile}
}

// Load reads the TOML configuration at path, fills unset fields with
// defaults, and validates the result. A missing file is not an error:
// the defaults are returned so the library works without any
// configuration present.
func (l *Loader) Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	content, err := l.readFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	if err := toml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %q: %w", path, err)
	}
	return cfg, nil
}
