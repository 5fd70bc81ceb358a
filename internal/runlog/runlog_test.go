package runlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CreatesTimestampedLogFile(t *testing.T) {
	workRoot := t.TempDir()

	l, err := New(workRoot)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(workRoot, "runtime", "logs"), filepath.Dir(l.Path()))
	assert.True(t, strings.HasPrefix(filepath.Base(l.Path()), "docgen-"))
	assert.True(t, strings.HasSuffix(l.Path(), ".log"))

	l.Infow("run started", "target", "/srv/code")
	require.NoError(t, l.Close())

	raw, err := os.ReadFile(l.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "run started")
	assert.Contains(t, string(raw), "/srv/code")
}

func TestNew_DistinctFilesPerRun(t *testing.T) {
	workRoot := t.TempDir()

	first, err := New(workRoot)
	require.NoError(t, err)
	defer first.Close()

	entries, err := os.ReadDir(filepath.Join(workRoot, "runtime", "logs"))
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}
