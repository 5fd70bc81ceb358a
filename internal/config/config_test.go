package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, 60, cfg.AI.TimeoutSeconds)
	assert.Equal(t, "google", cfg.Generation.Style)
	assert.Equal(t, "en", cfg.Generation.Language)
}

func TestLoadConfig_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
project:
  root: /srv/code
ai:
  provider: openai
  model: gpt-4o-mini
  api_key: from-file
generation:
  style: numpy
  max_entities: 5
  exclude:
    - "tests/*"
  skip_imports:
    - torch
    - tensorflow
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/code", cfg.Project.Root)
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, "from-file", cfg.AI.APIKey)
	assert.Equal(t, "numpy", cfg.Generation.Style)
	assert.Equal(t, 5, cfg.Generation.MaxEntities)
	assert.Equal(t, []string{"tests/*"}, cfg.Generation.Exclude)
	assert.Equal(t, []string{"torch", "tensorflow"}, cfg.Generation.SkipImports)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ai:\n  provider: gemini\n  api_key: from-file\n"), 0644))

	t.Setenv("DOCGEN_API_KEY", "from-env")
	t.Setenv("DOCGEN_AI_PROVIDER", "openai")
	t.Setenv("DOCGEN_AI_TIMEOUT", "120")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.AI.APIKey)
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, 120, cfg.AI.TimeoutSeconds)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ai: [unclosed"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}
