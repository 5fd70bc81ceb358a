package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Project struct {
		Root string `yaml:"root"`
	} `yaml:"project"`
	AI struct {
		Provider        string `yaml:"provider"`
		Model           string `yaml:"model"`
		APIKey          string `yaml:"api_key"`
		BaseURL         string `yaml:"base_url"`
		TimeoutSeconds  int    `yaml:"timeout_seconds"`
		DisableFallback bool   `yaml:"disable_fallback"`
	} `yaml:"ai"`
	Generation struct {
		Style       string   `yaml:"style"`
		Language    string   `yaml:"language"`
		MaxEntities int      `yaml:"max_entities"`
		Exclude     []string `yaml:"exclude"`
		SkipImports []string `yaml:"skip_imports"`
		DryRun      bool     `yaml:"dry_run"`
	} `yaml:"generation"`
}

func defaults() *Config {
	cfg := &Config{}
	cfg.AI.Provider = "gemini"
	cfg.AI.Model = "gemini-2.0-flash"
	cfg.AI.TimeoutSeconds = 60
	cfg.Generation.Style = "google"
	cfg.Generation.Language = "en"
	return cfg
}

// LoadConfig reads the YAML config at path, layering .env and environment
// variables on top. A missing config file is not an error; defaults apply.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := defaults()

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// 3. Override with Environment Variables if present
	if apiKey := os.Getenv("DOCGEN_API_KEY"); apiKey != "" {
		cfg.AI.APIKey = apiKey
	}
	if provider := os.Getenv("DOCGEN_AI_PROVIDER"); provider != "" {
		cfg.AI.Provider = provider
	}
	if model := os.Getenv("DOCGEN_AI_MODEL"); model != "" {
		cfg.AI.Model = model
	}
	if baseURL := os.Getenv("DOCGEN_AI_BASE_URL"); baseURL != "" {
		cfg.AI.BaseURL = baseURL
	}
	if timeout := os.Getenv("DOCGEN_AI_TIMEOUT"); timeout != "" {
		if n, err := strconv.Atoi(timeout); err == nil && n > 0 {
			cfg.AI.TimeoutSeconds = n
		}
	}

	return cfg, nil
}
