package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/mealai/internal/domain"
)

func TestSendPromptTextOnly(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"mealName\":\"Apple\"}"}}]}`))
	}))
	defer server.Close()

	client := NewClient("sk-test", "", server.URL)
	text, err := client.SendPrompt(context.Background(), "be terse", "an apple", nil)
	require.NoError(t, err)
	assert.Equal(t, `{"mealName":"Apple"}`, text)

	assert.Equal(t, DefaultModel, captured["model"])
	assert.Equal(t, float64(0), captured["temperature"])
	assert.Equal(t, float64(600), captured["max_completion_tokens"])
	assert.Equal(t, map[string]any{"type": "json_object"}, captured["response_format"])

	msgs := captured["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, map[string]any{"role": "system", "content": "be terse"}, msgs[0])
	assert.Equal(t, map[string]any{"role": "user", "content": "an apple"}, msgs[1])
}

func TestSendPromptWithImages(t *testing.T) {
	var captured struct {
		Messages []struct {
			Role    string          `json:"role"`
			Content json.RawMessage `json:"content"`
		} `json:"messages"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{}"}}]}`))
	}))
	defer server.Close()

	client := NewClient("sk-test", "gpt-4o", server.URL)
	images := []domain.Image{
		{Data: []byte{0xFF, 0xD8}, MimeType: "image/jpeg"},
		{Data: []byte("png"), MimeType: "image/png"},
	}
	_, err := client.SendPrompt(context.Background(), "sys", "what is this", images)
	require.NoError(t, err)

	require.Len(t, captured.Messages, 2)
	var parts []part
	require.NoError(t, json.Unmarshal(captured.Messages[1].Content, &parts))
	require.Len(t, parts, 3)
	assert.Equal(t, "text", parts[0].Type)
	assert.Equal(t, "what is this", parts[0].Text)
	assert.Equal(t, "image_url", parts[1].Type)
	assert.Equal(t, "data:image/jpeg;base64,/9g=", parts[1].ImageURL.URL)
	assert.Equal(t, "data:image/png;base64,cG5n", parts[2].ImageURL.URL)
}

func TestSendPromptMissingKey(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	for _, key := range []string{"", "   "} {
		client := NewClient(key, "", server.URL)
		_, err := client.SendPrompt(context.Background(), "sys", "user", nil)
		assert.ErrorIs(t, err, domain.ErrAuth)
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestSendPromptAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided"}}`))
	}))
	defer server.Close()

	client := NewClient("sk-bad", "", server.URL)
	_, err := client.SendPrompt(context.Background(), "sys", "user", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRequestFailed)

	var reqErr *domain.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusUnauthorized, reqErr.StatusCode)
	assert.Contains(t, reqErr.Body, "Incorrect API key provided")
}

func TestSendPromptFallsBackToRawBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no choices", body: `{"choices":[]}`},
		{name: "null content", body: `{"choices":[{"message":{"content":null}}]}`},
		{name: "not json", body: `plain text answer`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient("sk-test", "", server.URL)
			text, err := client.SendPrompt(context.Background(), "sys", "user", nil)
			require.NoError(t, err)
			assert.Equal(t, tt.body, text)
		})
	}
}

func TestSendPromptNetworkError(t *testing.T) {
	client := NewClient("sk-test", "", "http://localhost:99999")
	_, err := client.SendPrompt(context.Background(), "sys", "user", nil)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrRequestFailed)
}
