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
	DefaultOpenAIModel    = "gpt-4"
	defaultOpenAIEndpoint = "https://api.openai.com/v1/chat/completions"
)

type OpenAI struct {
	apiKey      string
	client      *http.Client
	model       string
	endpoint    string
	temperature float32
}

func NewOpenAI(apiKey string) *OpenAI {
	return NewOpenAIWithModel(apiKey, DefaultOpenAIModel)
}

func NewOpenAIWithModel(apiKey, model string) *OpenAI {
	return &OpenAI{
		apiKey:      apiKey,
		client:      &http.Client{Timeout: requestTimeout},
		model:       model,
		endpoint:    defaultOpenAIEndpoint,
		temperature: 0.5,
	}
}

// WithEndpoint points the client at another chat-completions URL.
func (o *OpenAI) WithEndpoint(endpoint string) *OpenAI {
	o.endpoint = endpoint
	return o
}

func (o *OpenAI) WithTemperature(t float32) *OpenAI {
	o.temperature = t
	return o
}

func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	body := map[string]interface{}{
		"model": o.model,
		"messages": []map[string]string{{
			"role":    "user",
			"content": prompt,
		}},
		"temperature": o.temperature,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", completionError("openai", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", completionError("openai", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", o.apiKey))

	resp, err := o.client.Do(req)
	if err != nil {
		return "", completionError("openai", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", completionError("openai", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", completionError("openai", fmt.Errorf("status %d: %s", resp.StatusCode, string(respBytes)))
	}

	var openaiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBytes, &openaiResp); err != nil {
		return "", completionError("openai", err)
	}
	if openaiResp.Error.Message != "" {
		return "", completionError("openai", fmt.Errorf("%s", openaiResp.Error.Message))
	}
	if len(openaiResp.Choices) == 0 || strings.TrimSpace(openaiResp.Choices[0].Message.Content) == "" {
		return "", emptyCompletion("openai")
	}
	return openaiResp.Choices[0].Message.Content, nil
}

// GetModel returns the model being used by this OpenAI client
func (o *OpenAI) GetModel() string {
	return o.model
}
