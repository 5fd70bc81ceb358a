package ai

import (
	"context"
	"errors"
	"strings"
)

// Style selects the docstring convention the generator should follow.
type Style string

const (
	StyleGoogle Style = "google"
	StyleNumpy  Style = "numpy"
	StyleRst    Style = "rst"
	StylePep257 Style = "pep257"
)

// Language selects the output language of the generated docstring.
type Language string

const (
	LangEN Language = "en"
	LangZH Language = "zh"
)

// ErrNotConfigured is returned by the factory when the remote provider is
// selected but unusable and the offline fallback is disabled.
var ErrNotConfigured = errors.New("ai generator not configured: missing api key")

// ErrEmptyResponse marks an upstream call that succeeded on the wire but
// produced no usable text. It must surface as a failure, never as "".
var ErrEmptyResponse = errors.New("ai generator returned an empty response")

// Generator turns (code, signature, style, language) into docstring prose.
type Generator interface {
	Generate(ctx context.Context, code, signature string, style Style, language Language) (string, error)
}

// NormalizeStyle maps loose user input onto a known style keyword,
// defaulting to Google style.
func NormalizeStyle(s string) Style {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "numpy", "numpydoc", "numpy-style":
		return StyleNumpy
	case "rst", "restructuredtext", "sphinx":
		return StyleRst
	case "pep257", "pep-257":
		return StylePep257
	default:
		return StyleGoogle
	}
}

// NormalizeLanguage maps loose user input onto a known output language,
// defaulting to English.
func NormalizeLanguage(s string) Language {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "zh", "zh-cn", "chinese":
		return LangZH
	default:
		return LangEN
	}
}

func styleHint(style Style) string {
	switch style {
	case StyleNumpy:
		return "NumPy style"
	case StyleRst:
		return "reStructuredText (Sphinx) style"
	case StylePep257:
		return "PEP 257 compliant style"
	default:
		return "Google style"
	}
}
