package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported LLM providers.
const (
	ProviderOpenAI     = "openai"
	ProviderClaude     = "claude"
	ProviderGemini     = "gemini"
	ProviderOllama     = "ollama"
	ProviderCompatible = "compatible"
)

const (
	DefaultTemperature = 0.5
	DefaultCacheSize   = 128
	DefaultOllamaHost  = "http://localhost:11434"
)

// Config is the application configuration.
type Config struct {
	LLM    LLMConfig    `yaml:"llm"`
	Log    LogConfig    `yaml:"log"`
	Cache  CacheConfig  `yaml:"cache"`
	Limits LimitsConfig `yaml:"limits"`
	Export ExportConfig `yaml:"export"`
}

// LLMConfig selects and configures the completion endpoint.
type LLMConfig struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	Host        string  `yaml:"ollama_host"`
	Temperature float32 `yaml:"temperature"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// CacheConfig bounds the per-session result cache.
type CacheConfig struct {
	Size int `yaml:"size"`
}

// LimitsConfig bounds inputs. Zero means unbounded.
type LimitsConfig struct {
	MaxSourceBytes int64 `yaml:"max_source_bytes"`
}

type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// Overrides carries command-line values that win over file and environment.
type Overrides struct {
	Provider string
	Model    string
	Verbose  bool
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    ProviderOpenAI,
			Temperature: DefaultTemperature,
		},
		Log:    LogConfig{Level: "info"},
		Cache:  CacheConfig{Size: DefaultCacheSize},
		Export: ExportConfig{Dir: "."},
	}
}

// Load builds the configuration from defaults, an optional YAML file at path,
// a .env file in the working directory, the process environment and finally
// the command-line overrides.
func Load(path string, o Overrides) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	fileProvider := normalizeProvider(cfg.LLM.Provider)
	if p := os.Getenv("LLM_PROVIDER"); p != "" {
		cfg.LLM.Provider = p
	}
	if o.Provider != "" {
		cfg.LLM.Provider = o.Provider
	}
	cfg.LLM.Provider = normalizeProvider(cfg.LLM.Provider)

	// Model, key and endpoint in the file belong to the file's provider.
	if cfg.LLM.Provider != fileProvider {
		cfg.LLM.Model = ""
		cfg.LLM.APIKey = ""
		cfg.LLM.BaseURL = ""
	}

	cfg.applyEnv()

	if o.Model != "" {
		cfg.LLM.Model = o.Model
	}
	if o.Verbose {
		cfg.Log.Level = "debug"
	}
	if cfg.Cache.Size <= 0 {
		cfg.Cache.Size = DefaultCacheSize
	}
	if cfg.Export.Dir == "" {
		cfg.Export.Dir = "."
	}
	return cfg, nil
}

// applyEnv reads the credential and model variables of the selected provider.
func (c *Config) applyEnv() {
	var keyVars, modelVars []string
	switch c.LLM.Provider {
	case ProviderOpenAI:
		keyVars, modelVars = []string{"OPENAI_API_KEY"}, []string{"OPENAI_MODEL"}
	case ProviderClaude:
		keyVars, modelVars = []string{"ANTHROPIC_API_KEY"}, []string{"CLAUDE_MODEL"}
	case ProviderGemini:
		keyVars, modelVars = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}, []string{"GEMINI_MODEL"}
	case ProviderOllama:
		modelVars = []string{"OLLAMA_MODEL"}
		if h := os.Getenv("OLLAMA_HOST"); h != "" {
			c.LLM.Host = h
		}
	case ProviderCompatible:
		keyVars, modelVars = []string{"LLM_API_KEY"}, []string{"LLM_MODEL"}
	}
	if v := firstEnv(keyVars...); v != "" {
		c.LLM.APIKey = v
	}
	if v := firstEnv(modelVars...); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if c.LLM.Provider == ProviderOllama && c.LLM.Host == "" {
		c.LLM.Host = DefaultOllamaHost
	}
}

// Validate reports configuration that makes the selected provider unusable.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOpenAI:
		if c.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case ProviderClaude:
		if c.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case ProviderGemini:
		if c.LLM.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
	case ProviderOllama:
		if c.LLM.Model == "" {
			return fmt.Errorf("OLLAMA_MODEL environment variable not set")
		}
	case ProviderCompatible:
		if c.LLM.BaseURL == "" || c.LLM.Model == "" {
			return fmt.Errorf("LLM_BASE_URL and LLM_MODEL must be set for the compatible provider")
		}
	default:
		return fmt.Errorf("unsupported LLM provider: %s (supported: %s)", c.LLM.Provider, strings.Join(Providers(), ", "))
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("temperature %.2f out of range [0, 2]", c.LLM.Temperature)
	}
	if c.Limits.MaxSourceBytes < 0 {
		return fmt.Errorf("limits.max_source_bytes must not be negative")
	}
	return nil
}

// Providers lists the provider names Validate accepts.
func Providers() []string {
	return []string{ProviderOpenAI, ProviderClaude, ProviderGemini, ProviderOllama, ProviderCompatible}
}

func normalizeProvider(p string) string {
	return strings.ToLower(strings.TrimSpace(p))
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}
