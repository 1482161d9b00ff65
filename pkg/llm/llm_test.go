package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmcode/codeclarity/pkg/config"
)

func TestOpenAIComplete(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"explanation\":\"x\"}"}}]}`))
	}))
	defer srv.Close()

	client := NewOpenAI("sk-test").WithEndpoint(srv.URL)
	out, err := client.Complete(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, `{"explanation":"x"}`, out)

	assert.Equal(t, DefaultOpenAIModel, got["model"])
	assert.InDelta(t, 0.5, got["temperature"], 1e-6)
	msgs := got["messages"].([]interface{})
	require.Len(t, msgs, 1)
	assert.Equal(t, map[string]interface{}{"role": "user", "content": "hello"}, msgs[0])
}

func TestOpenAIFailuresAreCompletionErrors(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"unauthorized": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"bad key"}}`))
		},
		"api error": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error":{"message":"overloaded"}}`))
		},
		"garbage": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()

			_, err := NewOpenAI("k").WithEndpoint(srv.URL).Complete(context.Background(), "p")
			assert.ErrorIs(t, err, ErrCompletion)
			assert.NotErrorIs(t, err, ErrEmptyCompletion)
		})
	}
}

func TestOpenAIEmptyCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := NewOpenAI("k").WithEndpoint(srv.URL).Complete(context.Background(), "p")
	assert.ErrorIs(t, err, ErrEmptyCompletion)
	assert.ErrorIs(t, err, ErrCompletion)
}

func TestOpenAIUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewOpenAI("k").WithEndpoint(url).Complete(context.Background(), "p")
	assert.ErrorIs(t, err, ErrCompletion)
}

func TestClaudeComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ak-test", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "claude-test", body["model"])
		assert.InDelta(t, 0.2, body["temperature"], 1e-6)
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"suggestions"}]}`))
	}))
	defer srv.Close()

	client := NewClaudeWithModel("ak-test", "claude-test").WithEndpoint(srv.URL).WithTemperature(0.2)
	out, err := client.Complete(context.Background(), "lint this")
	require.NoError(t, err)
	assert.Equal(t, "suggestions", out)
	assert.Equal(t, "claude-test", client.GetModel())
}

func TestClaudeEmptyCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"  "}]}`))
	}))
	defer srv.Close()

	_, err := NewClaude("k").WithEndpoint(srv.URL).Complete(context.Background(), "p")
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestFactoryCreateLLM(t *testing.T) {
	f := NewFactory()
	ctx := context.Background()

	l, err := f.CreateLLM(ctx, config.LLMConfig{Provider: "openai", APIKey: "k", Temperature: 0.5})
	require.NoError(t, err)
	assert.Equal(t, DefaultOpenAIModel, l.GetModel())

	l, err = f.CreateLLM(ctx, config.LLMConfig{Provider: "openai", APIKey: "k", Model: "gpt-4o", BaseURL: "http://proxy/v1/"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", l.GetModel())
	assert.Equal(t, "http://proxy/v1/chat/completions", l.(*OpenAI).endpoint)

	l, err = f.CreateLLM(ctx, config.LLMConfig{Provider: "claude", APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, DefaultClaudeModel, l.GetModel())

	l, err = f.CreateLLM(ctx, config.LLMConfig{Provider: "ollama", Model: "llama3"})
	require.NoError(t, err)
	assert.Equal(t, "llama3", l.GetModel())

	_, err = f.CreateLLM(ctx, config.LLMConfig{Provider: "claude"})
	assert.ErrorContains(t, err, "API key is required")

	_, err = f.CreateLLM(ctx, config.LLMConfig{Provider: "compatible", Model: "m"})
	assert.ErrorContains(t, err, "base URL")

	_, err = f.CreateLLM(ctx, config.LLMConfig{Provider: "bard"})
	assert.ErrorContains(t, err, "unsupported LLM provider")

	assert.Len(t, f.GetAvailableProviders(), 5)
}

func TestOllamaCompleteSendsTemperature(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte(`{"model":"llama3","response":"{\"explanation\":\"x\"}","done":true}`))
	}))
	defer srv.Close()

	o, err := NewOllama(srv.URL, "llama3")
	require.NoError(t, err)
	out, err := o.WithTemperature(0.25).Complete(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, `{"explanation":"x"}`, out)

	assert.Equal(t, "llama3", got["model"])
	assert.Equal(t, "hello", got["prompt"])
	assert.Equal(t, false, got["stream"])
	options := got["options"].(map[string]interface{})
	assert.InDelta(t, 0.25, options["temperature"], 1e-6)
}

func TestOllamaDefaultTemperature(t *testing.T) {
	o, err := NewOllama("http://localhost:11434", "llama3")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, o.temperature, 1e-6)
}

func TestOllamaHonoursCancelledContext(t *testing.T) {
	o, err := NewOllama("http://127.0.0.1:1", "llama3")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = o.Complete(ctx, "p")
	assert.ErrorIs(t, err, ErrCompletion)
	assert.ErrorIs(t, err, context.Canceled)
}
