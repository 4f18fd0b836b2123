package elevation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/oklog/ulid/v2"
)

const (
	// outputFilePerm restricts the captured listing to the owner: the
	// file briefly holds the contents of a root-only directory.
	outputFilePerm = 0o600
)

// outputFile is a call-scoped file capturing the privileged command's
// standard output. Every call creates its own uniquely named file, so
// concurrent invocations never observe each other's output, and the file
// is removed on every return path.
type outputFile struct {
	path string
	file *os.File
}

// newOutputFile creates the capture file under dir (the system temporary
// directory when dir is empty), named after the call identifier.
func newOutputFile(dir, callID string) (*outputFile, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, fmt.Sprintf("rootlens-%s.out", callID))

	// O_EXCL: the ULID makes collisions practically impossible, but a
	// pre-existing file here would mean another process planted it.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, outputFilePerm)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	return &outputFile{path: path, file: f}, nil
}

// Writer returns the file as the destination for the child's stdout.
func (o *outputFile) Writer() *os.File {
	return o.file
}

// Contents closes the write side and returns everything the child wrote.
func (o *outputFile) Contents() (string, error) {
	if err := o.file.Close(); err != nil {
		return "", fmt.Errorf("failed to close output file %q: %w", o.path, err)
	}
	data, err := os.ReadFile(o.path)
	if err != nil {
		return "", fmt.Errorf("failed to read output file %q: %w", o.path, err)
	}
	return string(data), nil
}

// Cleanup removes the file. It is safe to call after Contents and on
// error paths where the file was never read.
func (o *outputFile) Cleanup() {
	_ = o.file.Close()
	if err := os.Remove(o.path); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to remove elevation output file",
			"path", o.path,
			"error", err)
	}
}

// newCallID returns a fresh call-scoped identifier used for output file
// naming and log correlation.
func newCallID() string {
	return ulid.Make().String()
}
