package llm

import (
	"context"
	"time"

	"github.com/accordhq/accord/internal/model"
)

// Provider is a generative-text backend. The credibility and authority layers
// only ever treat completions as advisory: a failed call degrades to a tier
// miss or a neutral default, never to a job failure.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete runs a single-turn completion
	Complete(ctx context.Context, req Request) (*Response, error)

	// IsAvailable checks if the provider is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// Request is a single-turn completion request
type Request struct {
	// System is the system prompt (role/rubric)
	System string

	// Prompt is the user message
	Prompt string

	// Model overrides the configured model (provider-specific name)
	Model string

	// MaxTokens limits the response length
	MaxTokens int

	// JSONMode asks the provider for a structured JSON object response
	JSONMode bool

	// Temperature defaults to 0 for deterministic, factual output
	Temperature float32
}

// Response is the completion output
type Response struct {
	Text       string
	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", "" (disabled)
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g. Ollama)
	BaseURL string

	// Timeout per API request
	Timeout time.Duration

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults (provider disabled)
func DefaultConfig() Config {
	return Config{
		Timeout:   30 * time.Second,
		MaxTokens: 1000,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	cfg := Config{
		Provider:  mc.Provider,
		Model:     mc.Model,
		APIKey:    mc.APIKey,
		BaseURL:   mc.BaseURL,
		Timeout:   mc.Timeout,
		MaxTokens: mc.MaxTokens,
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1000
	}
	return cfg
}
