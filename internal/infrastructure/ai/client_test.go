package ai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"swasthya-portal/config"
	"swasthya-portal/internal/infrastructure/ai"

	"github.com/stretchr/testify/require"
)

func TestOpenAIClient_NotConfigured(t *testing.T) {
	client := ai.NewOpenAIClient(config.AIConfig{})

	_, err := client.Complete(context.Background(), ai.Request{Prompt: "hi"})
	require.ErrorIs(t, err, ai.ErrNotConfigured)
}

func TestOpenAIClient_Complete(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Stay hydrated."},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	client := ai.NewOpenAIClient(config.AIConfig{
		APIKey:    "test-key",
		BaseURL:   server.URL + "/",
		Model:     "llama-3.3-70b-versatile",
		MaxTokens: 1024,
	})

	text, err := client.Complete(context.Background(), ai.Request{System: "You are a doctor.", Prompt: "headache"})
	require.NoError(t, err)
	require.Equal(t, "Stay hydrated.", text)

	require.Equal(t, "llama-3.3-70b-versatile", received["model"])
	require.EqualValues(t, 1024, received["max_tokens"])
	messages := received["messages"].([]any)
	require.Len(t, messages, 2)
}

func TestOpenAIClient_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[]}`))
	}))
	defer server.Close()

	client := ai.NewOpenAIClient(config.AIConfig{APIKey: "k", BaseURL: server.URL, Model: "m"})

	_, err := client.Complete(context.Background(), ai.Request{Prompt: "hi"})
	require.ErrorIs(t, err, ai.ErrEmptyResponse)
}
