package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalGenerator_Generate(t *testing.T) {
	gen := NewLocalGenerator()

	t.Run("english skeleton from signature", func(t *testing.T) {
		doc, err := gen.Generate(context.Background(), "", "f(a, b: int, *args, **kw)", StyleGoogle, LangEN)
		require.NoError(t, err)
		assert.Contains(t, doc, "Args:")
		assert.Contains(t, doc, "    a: Description.")
		assert.Contains(t, doc, "    b: Description.")
		assert.Contains(t, doc, "    args: Description.")
		assert.Contains(t, doc, "    kw: Description.")
		assert.Contains(t, doc, "Returns:")
	})

	t.Run("self excluded", func(t *testing.T) {
		doc, err := gen.Generate(context.Background(), "", "m(self, x)", StyleGoogle, LangEN)
		require.NoError(t, err)
		assert.NotContains(t, doc, "self:")
		assert.Contains(t, doc, "    x: Description.")
	})

	t.Run("chinese output", func(t *testing.T) {
		doc, err := gen.Generate(context.Background(), "", "f(a)", StyleGoogle, LangZH)
		require.NoError(t, err)
		assert.Contains(t, doc, "自动生成的函数说明。")
	})

	t.Run("no parameters", func(t *testing.T) {
		doc, err := gen.Generate(context.Background(), "", "ping()", StyleGoogle, LangEN)
		require.NoError(t, err)
		assert.NotContains(t, doc, "Args:")
		assert.Contains(t, doc, "Returns:")
	})
}

func TestNormalizeStyle(t *testing.T) {
	assert.Equal(t, StyleGoogle, NormalizeStyle(""))
	assert.Equal(t, StyleGoogle, NormalizeStyle("google"))
	assert.Equal(t, StyleNumpy, NormalizeStyle("NumPy"))
	assert.Equal(t, StyleRst, NormalizeStyle("sphinx"))
	assert.Equal(t, StylePep257, NormalizeStyle("pep-257"))
	assert.Equal(t, StyleGoogle, NormalizeStyle("whatever"))
}

func TestNormalizeLanguage(t *testing.T) {
	assert.Equal(t, LangEN, NormalizeLanguage(""))
	assert.Equal(t, LangZH, NormalizeLanguage("zh"))
	assert.Equal(t, LangZH, NormalizeLanguage("Chinese"))
	assert.Equal(t, LangEN, NormalizeLanguage("en"))
}

func TestCleanOutput(t *testing.T) {
	assert.Equal(t, "hello", cleanOutput("```python\nhello\n```"))
	assert.Equal(t, "hello", cleanOutput(`"""hello"""`))
	assert.Equal(t, "hello", cleanOutput("  hello  "))
}
