package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/helmcode/codeclarity/pkg/config"
)

// Provider represents the LLM provider type
type Provider string

const (
	ProviderOpenAI     Provider = config.ProviderOpenAI
	ProviderClaude     Provider = config.ProviderClaude
	ProviderGemini     Provider = config.ProviderGemini
	ProviderOllama     Provider = config.ProviderOllama
	ProviderCompatible Provider = config.ProviderCompatible
)

// Factory creates LLM instances based on provider
type Factory struct{}

// NewFactory creates a new LLM factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateLLM creates an LLM instance from the llm section of the configuration.
func (f *Factory) CreateLLM(ctx context.Context, cfg config.LLMConfig) (LLM, error) {
	switch Provider(cfg.Provider) {
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		client := NewOpenAI(cfg.APIKey).WithTemperature(cfg.Temperature)
		if cfg.Model != "" {
			client.model = cfg.Model
		}
		if cfg.BaseURL != "" {
			client.WithEndpoint(strings.TrimRight(cfg.BaseURL, "/") + "/chat/completions")
		}
		return client, nil

	case ProviderClaude:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("Claude API key is required")
		}
		client := NewClaude(cfg.APIKey).WithTemperature(cfg.Temperature)
		if cfg.Model != "" {
			client.model = cfg.Model
		}
		if cfg.BaseURL != "" {
			client.WithEndpoint(strings.TrimRight(cfg.BaseURL, "/") + "/messages")
		}
		return client, nil

	case ProviderGemini:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		return NewGemini(ctx, cfg.APIKey, cfg.Model, cfg.Temperature)

	case ProviderOllama:
		host := cfg.Host
		if host == "" {
			host = config.DefaultOllamaHost
		}
		client, err := NewOllama(host, cfg.Model)
		if err != nil {
			return nil, err
		}
		return client.WithTemperature(cfg.Temperature), nil

	case ProviderCompatible:
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("base URL is required for the compatible provider")
		}
		return NewCompatible(ctx, cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Temperature)

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

// GetAvailableProviders returns a list of available LLM providers
func (f *Factory) GetAvailableProviders() []Provider {
	return []Provider{ProviderOpenAI, ProviderClaude, ProviderGemini, ProviderOllama, ProviderCompatible}
}

// CreateFromConfig is a convenience wrapper around Factory.CreateLLM.
func CreateFromConfig(ctx context.Context, cfg config.LLMConfig) (LLM, error) {
	return NewFactory().CreateLLM(ctx, cfg)
}
