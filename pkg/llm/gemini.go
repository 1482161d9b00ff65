package llm

import (
	"context"
	"strings"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.0-flash"

// Gemini is a thin wrapper around the official genai client.
type Gemini struct {
	cli         *genai.Client
	model       string
	temperature float32
}

func NewGemini(ctx context.Context, apiKey, model string, temperature float32) (*Gemini, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	return &Gemini{cli: cli, model: model, temperature: temperature}, nil
}

func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	temperature := g.temperature
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{Temperature: &temperature},
	)
	if err != nil {
		return "", completionError("gemini", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", emptyCompletion("gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", emptyCompletion("gemini")
	}
	return sb.String(), nil
}

func (g *Gemini) GetModel() string { return g.model }
