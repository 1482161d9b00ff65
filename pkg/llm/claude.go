package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	DefaultClaudeModel    = "claude-sonnet-4-20250514"
	defaultClaudeEndpoint = "https://api.anthropic.com/v1/messages"
)

type Claude struct {
	apiKey      string
	client      *http.Client
	model       string
	endpoint    string
	temperature float32
}

func NewClaude(apiKey string) *Claude {
	return NewClaudeWithModel(apiKey, DefaultClaudeModel)
}

func NewClaudeWithModel(apiKey, model string) *Claude {
	return &Claude{
		apiKey:      apiKey,
		client:      &http.Client{Timeout: requestTimeout},
		model:       model,
		endpoint:    defaultClaudeEndpoint,
		temperature: 0.5,
	}
}

func (c *Claude) WithEndpoint(endpoint string) *Claude {
	c.endpoint = endpoint
	return c
}

func (c *Claude) WithTemperature(t float32) *Claude {
	c.temperature = t
	return c
}

func (c *Claude) Complete(ctx context.Context, prompt string) (string, error) {
	body := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]string{{
			"role":    "user",
			"content": prompt,
		}},
		"max_tokens":  4000,
		"temperature": c.temperature,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", completionError("claude", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", completionError("claude", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", completionError("claude", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", completionError("claude", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", completionError("claude", fmt.Errorf("status %d: %s", resp.StatusCode, string(respBytes)))
	}

	// Minimal struct to pull out the content text.
	var claudeResp struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBytes, &claudeResp); err != nil {
		return "", completionError("claude", err)
	}
	if claudeResp.Error.Message != "" {
		return "", completionError("claude", fmt.Errorf("%s", claudeResp.Error.Message))
	}
	if len(claudeResp.Content) == 0 || strings.TrimSpace(claudeResp.Content[0].Text) == "" {
		return "", emptyCompletion("claude")
	}
	return claudeResp.Content[0].Text, nil
}

func (c *Claude) GetModel() string {
	return c.model
}
