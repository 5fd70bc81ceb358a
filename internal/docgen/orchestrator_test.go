package docgen

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docgen/internal/ai"
)

type stubGenerator struct {
	calls int
	doc   string
	err   error
}

func (s *stubGenerator) Generate(ctx context.Context, code, signature string, style ai.Style, language ai.Language) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.doc, nil
}

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func TestOrchestrator_Run(t *testing.T) {
	root := writeProject(t, map[string]string{
		"app.py": `def documented():
    """Already has one."""
    return 1


def plain(x):
    return x * 2


class Service:
    def handle(self, req):
        return req
`,
	})

	gen := &stubGenerator{doc: "Generated summary."}
	report, err := New(gen, nil).Run(context.Background(), root, Options{})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Summary.Scanned)
	assert.Equal(t, 2, report.Summary.Generated)
	assert.Equal(t, 1, report.Summary.Skipped)
	assert.Equal(t, 0, report.Summary.Errors)
	assert.Equal(t, report.Summary.Scanned,
		report.Summary.Generated+report.Summary.Skipped+report.Summary.Errors)
	assert.Equal(t, 2, gen.calls)

	require.Len(t, report.Results, 2)
	assert.Equal(t, "plain", report.Results[0].Function)
	assert.Equal(t, "Generated summary.", report.Results[0].Docstring)
	assert.Equal(t, "handle", report.Results[1].Function)
	assert.Equal(t, "Service", report.Results[1].Class)

	src, err := os.ReadFile(filepath.Join(root, "app.py"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "def plain(x):\n    \"\"\"\n    Generated summary.\n    \"\"\"")
	assert.Contains(t, string(src), "def handle(self, req):\n        \"\"\"\n        Generated summary.\n        \"\"\"")
}

func TestOrchestrator_EntityCap(t *testing.T) {
	root := writeProject(t, map[string]string{
		"many.py": `def a():
    return 1


def b():
    return 2


def c():
    return 3


def d():
    return 4


def e():
    return 5
`,
	})

	gen := &stubGenerator{doc: "Capped."}
	report, err := New(gen, nil).Run(context.Background(), root, Options{MaxEntities: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Summary.Generated)
	assert.Equal(t, 2, gen.calls)
	assert.Equal(t, 2, report.Summary.Scanned)
	assert.Equal(t, report.Summary.Scanned,
		report.Summary.Generated+report.Summary.Skipped+report.Summary.Errors)

	src, err := os.ReadFile(filepath.Join(root, "many.py"))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(src), "Capped."))
}

func TestOrchestrator_DenyListedImport(t *testing.T) {
	root := writeProject(t, map[string]string{
		"heavy.py": `import torch


def train(model):
    return model
`,
		"light.py": `def fast():
    return True
`,
	})

	gen := &stubGenerator{doc: "Doc."}
	report, err := New(gen, nil).Run(context.Background(), root, Options{SkipImports: []string{"torch"}})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Summary.Scanned)
	assert.Equal(t, 1, report.Summary.Generated)
	assert.Equal(t, 1, report.Summary.Skipped)
	assert.Equal(t, 1, gen.calls)

	src, err := os.ReadFile(filepath.Join(root, "heavy.py"))
	require.NoError(t, err)
	assert.NotContains(t, string(src), "Doc.")
}

func TestOrchestrator_DryRun(t *testing.T) {
	const original = `def plain(x):
    return x
`
	root := writeProject(t, map[string]string{"mod.py": original})

	gen := &stubGenerator{doc: "Should never appear."}
	report, err := New(gen, nil).Run(context.Background(), root, Options{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, 0, gen.calls)
	assert.Equal(t, 1, report.Summary.Scanned)
	assert.Equal(t, 1, report.Summary.Skipped)
	assert.Equal(t, 0, report.Summary.Generated)
	assert.True(t, report.DryRun)

	require.Len(t, report.Results, 1)
	assert.Equal(t, "plain", report.Results[0].Function)
	assert.Empty(t, report.Results[0].Docstring)

	src, err := os.ReadFile(filepath.Join(root, "mod.py"))
	require.NoError(t, err)
	assert.Equal(t, original, string(src))
}

func TestOrchestrator_GeneratorFailureIsCounted(t *testing.T) {
	const original = `def plain(x):
    return x
`
	root := writeProject(t, map[string]string{"mod.py": original})

	gen := &stubGenerator{err: ai.ErrEmptyResponse}
	report, err := New(gen, nil).Run(context.Background(), root, Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Summary.Scanned)
	assert.Equal(t, 1, report.Summary.Errors)
	assert.Equal(t, 0, report.Summary.Generated)
	assert.Empty(t, report.Results)

	src, err := os.ReadFile(filepath.Join(root, "mod.py"))
	require.NoError(t, err)
	assert.Equal(t, original, string(src))
}

func TestMatchDeniedImport(t *testing.T) {
	src := "import os\nfrom torch import nn\nimport numpy as np\n"

	assert.Equal(t, "torch", MatchDeniedImport(src, []string{"torch"}))
	assert.Equal(t, "numpy", MatchDeniedImport(src, []string{"numpy"}))
	assert.Equal(t, "", MatchDeniedImport(src, []string{"pandas"}))
	assert.Equal(t, "", MatchDeniedImport(src, []string{"", "  "}))

	// Matches inside comments too, which is the accepted trade-off.
	assert.Equal(t, "torch", MatchDeniedImport("# import torch one day\n", []string{"torch"}))
}
