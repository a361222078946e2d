// Package credibility scores documents per type: each document type owns a
// weight table over signal sub-scores in [0,1], and the overall score is the
// weighted sum. Sub-scores degrade to documented defaults when a signal is
// unavailable; scoring never fails a job.
package credibility

import (
	"context"
	"math"
	"time"

	"github.com/accordhq/accord/internal/authority"
	"github.com/accordhq/accord/internal/llm"
	"github.com/accordhq/accord/internal/model"
	"github.com/accordhq/accord/internal/scholar"
)

// Scorer produces a credibility score for one document type
type Scorer interface {
	DocType() model.DocType
	Score(ctx context.Context, doc *model.Document) *model.CredibilityScore
}

// Registry holds one scorer per document type. Unknown types score with the
// news scorer, whose signals (source trust, recency, citations) are the most
// type-agnostic of the set.
type Registry struct {
	scorers  map[model.DocType]Scorer
	fallback Scorer
}

// NewRegistry wires the per-type scorers. The bibliometric client and LLM
// provider may be nil; the affected sub-scores fall back to their defaults.
func NewRegistry(resolver *authority.Resolver, papers *scholar.Client, provider llm.Provider) *Registry {
	news := NewNewsScorer(resolver)
	return &Registry{
		scorers: map[model.DocType]Scorer{
			model.DocTypeResearchPaper: NewResearchScorer(resolver, papers),
			model.DocTypeNewsArticle:   news,
			model.DocTypeBlogPost:      NewBlogScorer(provider),
			model.DocTypeLegalDocument: NewLegalScorer(),
		},
		fallback: news,
	}
}

// ForType returns the scorer for a document type, falling back to news
func (r *Registry) ForType(dt model.DocType) Scorer {
	if s, ok := r.scorers[dt]; ok {
		return s
	}
	return r.fallback
}

// round4 rounds to 4 decimal places; every stored sub-score and overall
// passes through this
func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}

// pct renders a score as a whole percentage for explanations
func pct(x float64) int {
	return int(math.Round(x * 100))
}

// clamp01 bounds caller-supplied values so breakdown entries stay in [0,1]
func clamp01(x float64) float64 {
	return math.Min(math.Max(x, 0), 1)
}

// parseDate accepts RFC 3339 timestamps and bare dates, the two formats
// document metadata carries in practice
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// truncate cuts text to at most n runes
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// metaString reads a string metadata value, empty when absent
func metaString(doc *model.Document, key string) string {
	if doc.Metadata == nil {
		return ""
	}
	if s, ok := doc.Metadata[key].(string); ok {
		return s
	}
	return ""
}

// metaFloat reads a numeric metadata value with a default
func metaFloat(doc *model.Document, key string, fallback float64) float64 {
	if doc.Metadata == nil {
		return fallback
	}
	switch v := doc.Metadata[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return fallback
}

// setMeta writes a metadata value, initializing the map when needed
func setMeta(doc *model.Document, key string, value any) {
	if doc.Metadata == nil {
		doc.Metadata = make(map[string]any)
	}
	doc.Metadata[key] = value
}
