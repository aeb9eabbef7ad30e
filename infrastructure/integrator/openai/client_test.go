package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/affiliate-campaign-api/internal/config"
)

func TestClient_Complete(t *testing.T) {
	t.Run("deve enviar prompts e retornar o conteúdo", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer sk-teste", r.Header.Get("Authorization"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "gpt-4", body["model"])
			messages := body["messages"].([]any)
			require.Len(t, messages, 2)
			assert.Equal(t, "system", messages[0].(map[string]any)["role"])
			assert.Equal(t, "Analise", messages[1].(map[string]any)["content"])
			assert.Equal(t, "json_object", body["response_format"].(map[string]any)["type"])

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-4",
				"choices":[{"index":0,"message":{"role":"assistant","content":"{\"version\":\"v1\"}"},"finish_reason":"stop"}],
				"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}`))
		}))
		defer server.Close()

		client := NewClient(&config.OpenAI{
			APIKey:      "sk-teste",
			BaseURL:     server.URL + "/v1",
			Model:       "gpt-4",
			Temperature: 0.7,
			MaxTokens:   2000,
			JSONMode:    true,
			Timeout:     5 * time.Second,
		})

		text, err := client.Complete(context.Background(), "You are a marketing analytics expert.", "Analise")

		require.NoError(t, err)
		assert.Equal(t, `{"version":"v1"}`, text)
	})

	t.Run("deve retornar erro quando a api falha", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"message":"Rate limit reached","type":"requests","code":"rate_limit_exceeded"}}`))
		}))
		defer server.Close()

		client := NewClient(&config.OpenAI{APIKey: "sk-teste", BaseURL: server.URL + "/v1", Model: "gpt-4"})

		text, err := client.Complete(context.Background(), "", "Analise")

		assert.Empty(t, text)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Rate limit reached")
	})

	t.Run("deve falhar sem api key", func(t *testing.T) {
		client := NewClient(&config.OpenAI{Model: "gpt-4"})

		_, err := client.Complete(context.Background(), "", "Analise")

		assert.ErrorIs(t, err, ErrMissingAPIKey)
	})
}
