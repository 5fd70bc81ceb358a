package locator

import (
	"fmt"
	"os"
	"strings"
)

// Span returns the literal source text of the target, from its first line
// through its last line inclusive, trailing newline stripped. When the end
// line is unknown only the first line is returned.
func Span(filePath string, t *Target) (string, error) {
	if t == nil || t.StartLine < 1 {
		return "", nil
	}
	src, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	lines := strings.Split(string(src), "\n")
	if t.StartLine > len(lines) {
		return "", nil
	}

	end := t.EndLine
	if end < t.StartLine {
		end = t.StartLine
	}
	if end > len(lines) {
		end = len(lines)
	}
	return strings.TrimRight(strings.Join(lines[t.StartLine-1:end], "\n"), "\n"), nil
}
