package ai

import "strings"

// cleanOutput strips code fences and echoed quote delimiters that models
// tend to wrap around the docstring body.
func cleanOutput(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```python")
		text = strings.TrimPrefix(text, "```text")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}
	for _, quote := range []string{`"""`, "'''"} {
		if strings.HasPrefix(text, quote) && strings.HasSuffix(text, quote) && len(text) >= 2*len(quote) {
			text = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(text, quote), quote))
		}
	}
	return text
}
