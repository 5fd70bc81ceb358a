package ai

import (
	"context"
	"strings"
)

// LocalGenerator is the offline fallback: it synthesizes a skeleton
// docstring from the signature alone, so a run can complete without any
// remote provider configured.
type LocalGenerator struct{}

func NewLocalGenerator() *LocalGenerator { return &LocalGenerator{} }

func (g *LocalGenerator) Generate(_ context.Context, _ string, signature string, _ Style, language Language) (string, error) {
	params := paramNames(signature)
	zh := language == LangZH

	var lines []string
	if zh {
		lines = append(lines, "自动生成的函数说明。")
	} else {
		lines = append(lines, "Auto-generated function description.")
	}
	lines = append(lines, "")

	if len(params) > 0 {
		lines = append(lines, "Args:")
		for _, name := range params {
			if zh {
				lines = append(lines, "    "+name+": 参数说明。")
			} else {
				lines = append(lines, "    "+name+": Description.")
			}
		}
		lines = append(lines, "")
	}

	lines = append(lines, "Returns:")
	if zh {
		lines = append(lines, "    返回值说明。")
	} else {
		lines = append(lines, "    Return value description.")
	}

	return strings.Join(lines, "\n"), nil
}

// paramNames does a rough split of the parameter list inside a rendered
// signature, dropping star markers and annotations.
func paramNames(signature string) []string {
	open := strings.Index(signature, "(")
	close := strings.LastIndex(signature, ")")
	if open < 0 || close < 0 || close <= open {
		return nil
	}

	var names []string
	for _, part := range strings.Split(signature[open+1:close], ",") {
		name := strings.TrimSpace(part)
		name = strings.TrimPrefix(name, "**")
		name = strings.TrimPrefix(name, "*")
		if idx := strings.Index(name, ":"); idx >= 0 {
			name = strings.TrimSpace(name[:idx])
		}
		if name != "" && name != "self" {
			names = append(names, name)
		}
	}
	return names
}
