package rewriter

import (
	"fmt"
	"os"
	"strings"

	"docgen/internal/locator"
)

const indentUnit = "    "

// InsertDocstring splices a documentation block as the first statement of
// the target's body, rewriting the file in full. Every line above the
// insertion point stays byte-identical; lines at or below it shift down by
// the block's height, so callers must re-locate later entities against the
// file's new contents.
func InsertDocstring(filePath string, t *locator.Target, text string) error {
	if t == nil {
		return fmt.Errorf("no target to rewrite")
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	lines := strings.Split(string(data), "\n")

	insertAt := t.BodyStart
	indent := t.BodyIndent
	if insertAt < 1 {
		// Single-line suites (def f(): pass) leave nowhere to splice a
		// block without rewriting the statement itself.
		return fmt.Errorf("entity %s at line %d has no body line to document", t.Name, t.StartLine)
	}
	if insertAt > len(lines) {
		return fmt.Errorf("insertion line %d is beyond end of %s", insertAt, filePath)
	}
	if indent == "" && t.DeclIndent != "" {
		indent = t.DeclIndent + indentUnit
	}

	block := buildBlock(text, indent)

	out := make([]string, 0, len(lines)+len(block))
	out = append(out, lines[:insertAt-1]...)
	out = append(out, block...)
	out = append(out, lines[insertAt-1:]...)

	if err := os.WriteFile(filePath, []byte(strings.Join(out, "\n")), 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filePath, err)
	}
	return nil
}

// buildBlock renders the delimited docstring: opening quotes, the content
// re-indented line by line, closing quotes, and one blank separator line.
func buildBlock(text, indent string) []string {
	sanitized := Sanitize(text)

	block := []string{indent + `"""`}
	for _, line := range strings.Split(sanitized, "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			block = append(block, "")
			continue
		}
		block = append(block, indent+line)
	}
	block = append(block, indent+`"""`, "")
	return block
}

// Sanitize escapes any triple-quote delimiter inside the generated text so
// the inserted block cannot terminate early, and trims trailing whitespace.
func Sanitize(text string) string {
	text = strings.ReplaceAll(text, `"""`, `\"\"\"`)
	return strings.TrimSpace(text)
}
