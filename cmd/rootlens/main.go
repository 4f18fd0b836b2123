// Package main provides a command-line harness for the rootlens core. It
// is a development aid for exercising the elevation paths outside the
// host application: it runs the passwordless listing by default and the
// sudo path when asked to read a password.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/rootlens/rootlens/internal/config"
	"github.com/rootlens/rootlens/internal/elevation"
	"github.com/rootlens/rootlens/internal/logging"
)

// Error definitions
var (
	ErrPasswordRead = errors.New("failed to read password")
)

var (
	configPath   = flag.String("config", "", "path to TOML config file")
	logLevel     = flag.String("log-level", "info", "log level (debug, info, warn, error)")
	withPassword = flag.Bool("with-password", false, "use the sudo path, reading the password from stdin")
)

// readPassword reads the password without echo when stdin is a terminal,
// and as a single line otherwise (so the harness can be scripted).
func readPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, "Password: ")
		secret, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrPasswordRead, err)
		}
		return string(secret), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("%w: %w", ErrPasswordRead, err)
	}
	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"), nil
}

func run() error {
	flag.Parse()

	logger := logging.NewLogger(os.Stderr, logging.ParseLevel(*logLevel))

	cfg, err := config.NewLoader().Load(*configPath)
	if err != nil {
		return err
	}

	executor := elevation.NewExecutor(cfg, logger)
	ctx := context.Background()

	var lines []string
	if *withPassword {
		password, readErr := readPassword()
		if readErr != nil {
			return readErr
		}
		lines, err = executor.ListRootWithPassword(ctx, password)
	} else {
		lines, err = executor.ListRoot(ctx)
	}
	if err != nil {
		return err
	}

	for _, line := range lines {
		fmt.Println(line)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
