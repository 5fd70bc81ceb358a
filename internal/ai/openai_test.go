package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIGenerator_Generate(t *testing.T) {
	t.Run("successful round trip", func(t *testing.T) {
		var gotReq openAIChatRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{
					{"message": map[string]any{"role": "assistant", "content": "A fine docstring."}},
				},
			})
		}))
		defer srv.Close()

		g := NewOpenAIGenerator("test-key", "test-model", srv.URL, 0)
		doc, err := g.Generate(context.Background(), "def f(): ...", "f()", StyleGoogle, LangEN)
		require.NoError(t, err)
		assert.Equal(t, "A fine docstring.", doc)

		assert.Equal(t, "test-model", gotReq.Model)
		require.Len(t, gotReq.Messages, 1)
		assert.Contains(t, gotReq.Messages[0].Content, "f()")
		assert.Contains(t, gotReq.Messages[0].Content, "Google style")
	})

	t.Run("http error surfaces", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream exploded", http.StatusBadGateway)
		}))
		defer srv.Close()

		g := NewOpenAIGenerator("test-key", "test-model", srv.URL, 0)
		_, err := g.Generate(context.Background(), "", "f()", StyleGoogle, LangEN)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("empty choices is a distinguishable error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
		}))
		defer srv.Close()

		g := NewOpenAIGenerator("test-key", "test-model", srv.URL, 0)
		_, err := g.Generate(context.Background(), "", "f()", StyleGoogle, LangEN)
		require.ErrorIs(t, err, ErrEmptyResponse)
	})
}
