package embed

import (
	"context"
	"fmt"
	"strings"

	"github.com/accordhq/accord/internal/model"
)

// Provider computes fixed-length embedding vectors for claim texts.
// Vectors are unit-normalizable; callers normalize before cosine comparison.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Embed returns one vector per input text, in input order
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// NewProvider creates an embedding provider from configuration
func NewProvider(cfg model.EmbeddingConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required for the openai embedding provider")
		}
		return NewOpenAIEmbedder(cfg), nil

	case "mock":
		return NewMockEmbedder(nil), nil

	default:
		return nil, fmt.Errorf("unknown embedding provider: %s (supported: openai, mock)", cfg.Provider)
	}
}
