package elevation

import "strings"

// splitLines splits captured output into one element per line, preserving
// count and order. A trailing newline does not produce a final empty
// element; empty output yields no lines. Carriage returns preceding a
// newline are stripped.
func splitLines(output string) []string {
	if output == "" {
		return nil
	}
	output = strings.TrimSuffix(output, "\n")
	lines := strings.Split(output, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
