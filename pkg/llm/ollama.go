package llm

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/JexSrs/go-ollama"
)

// Ollama talks to a local Ollama server through its Generate API.
type Ollama struct {
	client      *ollama.Ollama
	model       string
	temperature float32
}

func NewOllama(host, model string) (*Ollama, error) {
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama host %q: %w", host, err)
	}
	return &Ollama{client: ollama.New(*u), model: model, temperature: 0.5}, nil
}

func (o *Ollama) WithTemperature(t float32) *Ollama {
	o.temperature = t
	return o
}

// Complete ignores ctx deadlines once the request is sent; the Ollama client
// has no context support.
func (o *Ollama) Complete(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", completionError("ollama", err)
	}

	res, err := o.client.Generate(
		o.client.Generate.WithModel(o.model),
		o.client.Generate.WithPrompt(prompt),
		o.client.Generate.WithTemperature(float64(o.temperature)),
	)
	if err != nil {
		return "", completionError("ollama", err)
	}
	if !res.Done {
		return "", completionError("ollama", fmt.Errorf("generation did not finish"))
	}
	if strings.TrimSpace(res.Response) == "" {
		return "", emptyCompletion("ollama")
	}
	return res.Response, nil
}

func (o *Ollama) GetModel() string { return o.model }
