package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/accordhq/accord/internal/model"
)

const summarizerSystem = "You are a careful analyst. You synthesize reconciled claims from multiple documents " +
	"into a short narrative. Never assert anything beyond the claims given, and always state " +
	"explicitly when sources disagreed and the disagreement stayed unresolved."

// Summarizer produces an optional narrative over the reconciled output.
// It runs after resolution and never influences scores or conflict status.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer for the configured provider.
// Returns an error if the provider cannot be initialized.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}
	if provider == nil {
		return nil, fmt.Errorf("no LLM provider configured")
	}

	return &Summarizer{provider: provider, config: config}, nil
}

// IsEnabled reports whether a provider is wired up
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// Summarize generates a narrative from resolved claims and conflicts
func (s *Summarizer) Summarize(ctx context.Context, claims []model.Claim, conflicts []model.Conflict) (*model.Summary, error) {
	resp, err := s.provider.Complete(ctx, Request{
		System:    summarizerSystem,
		Prompt:    buildSummaryPrompt(claims, conflicts),
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate summary: %w", err)
	}

	return &model.Summary{
		Provider: s.provider.Name(),
		Model:    resp.Model,
		Text:     resp.Text,
	}, nil
}

// buildSummaryPrompt renders the reconciled output into the summary prompt
func buildSummaryPrompt(claims []model.Claim, conflicts []model.Conflict) string {
	var b strings.Builder

	b.WriteString("Reconciled claims (confidence in brackets):\n")
	for _, c := range claims {
		fmt.Fprintf(&b, "- [%.2f] %s\n", c.Confidence, c.Text)
	}

	unresolved := 0
	for _, c := range conflicts {
		if c.Status == model.StatusUnresolved {
			unresolved++
		}
	}

	fmt.Fprintf(&b, "\nCross-source conflicts encountered: %d (%d unresolved)\n", len(conflicts), unresolved)
	for _, c := range conflicts {
		fmt.Fprintf(&b, "- [%s] %s\n", c.Status, c.Topic)
	}

	b.WriteString("\nWrite a 4-6 sentence narrative of what the documents collectively establish. ")
	b.WriteString("Give unresolved conflicts one explicit sentence each.")

	return b.String()
}
