package ai

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Options configures generator construction.
type Options struct {
	Provider        string
	APIKey          string
	Model           string
	BaseURL         string
	Timeout         time.Duration
	DisableFallback bool
}

// New builds the configured Generator. A remote provider without an API key
// degrades to the offline LocalGenerator unless the fallback is disabled,
// in which case the misconfiguration is fatal for the run.
func New(ctx context.Context, opts Options) (Generator, error) {
	provider := strings.ToLower(strings.TrimSpace(opts.Provider))
	if provider == "" {
		provider = "gemini"
	}

	if provider != "local" && strings.TrimSpace(opts.APIKey) == "" {
		if opts.DisableFallback {
			return nil, ErrNotConfigured
		}
		return NewLocalGenerator(), nil
	}

	switch provider {
	case "gemini":
		return NewGeminiGenerator(ctx, opts.APIKey, opts.Model)
	case "openai":
		return NewOpenAIGenerator(opts.APIKey, opts.Model, opts.BaseURL, opts.Timeout), nil
	case "local":
		return NewLocalGenerator(), nil
	default:
		return nil, fmt.Errorf("unsupported generator provider: %s", opts.Provider)
	}
}
