package ai

import (
	"fmt"
	"strings"
)

// PromptBuilder constructs the docstring generation prompt.
type PromptBuilder struct{}

func (pb *PromptBuilder) BuildDocstringPrompt(code, signature string, style Style, language Language) string {
	var sb strings.Builder
	sb.WriteString("Role: Expert Python documentation writer.\n")
	fmt.Fprintf(&sb, "Task: Given a function signature and its implementation, write a complete %s docstring.\n", styleHint(style))
	sb.WriteString("Include a concise summary, parameter descriptions, return value, and raises when applicable.\n")
	sb.WriteString("Output only the docstring content. Do not include the function definition, quotes, or code fences.\n")
	if language == LangZH {
		sb.WriteString("请使用专业、清晰的中文撰写文档字符串。\n")
	} else {
		sb.WriteString("Write in clear and professional English.\n")
	}

	sb.WriteString("\nFunction Signature:\n```\n")
	sb.WriteString(signature)
	sb.WriteString("\n```\n\nImplementation Code:\n```python\n")
	sb.WriteString(code)
	sb.WriteString("\n```\n")
	return sb.String()
}
