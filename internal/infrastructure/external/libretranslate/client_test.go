package libretranslate_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lingopass/backend/internal/infrastructure/external/libretranslate"
)

func TestClient_Translate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/translate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Hello", payload["q"])
		assert.Equal(t, "en", payload["source"])
		assert.Equal(t, "sv", payload["target"])
		assert.Equal(t, "text", payload["format"])
		_, hasKey := payload["api_key"]
		assert.False(t, hasKey)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"translatedText":"Hej"}`))
	}))
	defer server.Close()

	client := libretranslate.NewClient(server.URL, "", 0, zap.NewNop())

	out, err := client.Translate(context.Background(), "Hello", "en", "sv")
	require.NoError(t, err)
	assert.Equal(t, "Hej", out)
	assert.Equal(t, "libretranslate", client.Name())
}

func TestClient_Translate_APIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "lt-key", payload["api_key"])

		_, _ = w.Write([]byte(`{"translatedText":"Hej"}`))
	}))
	defer server.Close()

	client := libretranslate.NewClient(server.URL, "lt-key", 0, zap.NewNop())

	_, err := client.Translate(context.Background(), "Hello", "en", "sv")
	require.NoError(t, err)
}

func TestClient_Translate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			body:   `{"error":"Slowdown: too many requests"}`,
		},
		{
			name:   "empty translation",
			status: http.StatusOK,
			body:   `{"translatedText":""}`,
		},
		{
			name:   "malformed body",
			status: http.StatusOK,
			body:   `<html>bad gateway</html>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := libretranslate.NewClient(server.URL, "", 0, zap.NewNop())

			_, err := client.Translate(context.Background(), "Hello", "en", "sv")
			assert.Error(t, err)
		})
	}
}
