package llm

import (
	"context"
	"strings"

	einoopenai "github.com/cloudwego/eino-ext/components/model/openai"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// Compatible serves any endpoint that speaks the OpenAI chat-completions
// protocol at a custom base URL.
type Compatible struct {
	chat  einomodel.ChatModel
	model string
}

func NewCompatible(ctx context.Context, baseURL, apiKey, model string, temperature float32) (*Compatible, error) {
	chat, err := einoopenai.NewChatModel(ctx, &einoopenai.ChatModelConfig{
		BaseURL:     baseURL,
		APIKey:      apiKey,
		Model:       model,
		Temperature: &temperature,
	})
	if err != nil {
		return nil, err
	}
	return &Compatible{chat: chat, model: model}, nil
}

func (c *Compatible) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.chat.Generate(ctx, []*schema.Message{
		{Role: schema.User, Content: prompt},
	})
	if err != nil {
		return "", completionError("compatible", err)
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return "", emptyCompletion("compatible")
	}
	return resp.Content, nil
}

func (c *Compatible) GetModel() string { return c.model }
