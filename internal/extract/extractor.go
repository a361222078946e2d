// Package extract pulls atomic factual claims out of document text. Each
// document type gets its own prompt and claim budget; without an LLM the
// extractor degrades to sentence splitting.
package extract

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/accordhq/accord/internal/llm"
	"github.com/accordhq/accord/internal/model"
)

// typeProfile controls extraction for one document type
type typeProfile struct {
	system      string // LLM instruction
	promptChars int    // how much raw text the LLM sees
	fallbackCap int    // max sentence-split claims
	terminators string // sentence terminators for the fallback path
	// strictParse drops claims on an unparseable LLM answer instead of
	// falling back to sentences; used where sentence fragments make poor
	// claims (opinionated blog prose, dense legal text)
	strictParse bool
}

var profiles = map[model.DocType]typeProfile{
	model.DocTypeResearchPaper: {
		system: "You are a scientific research assistant. " +
			"Given the text of a research paper, extract 8-12 key factual claims covering " +
			"the problem, methodology, results, and conclusions. " +
			"Each claim must be a single precise sentence. " +
			`Return JSON: {"claims": ["claim 1", "claim 2", ...]}`,
		promptChars: 6000,
		fallbackCap: 10,
		terminators: ".!?",
	},
	model.DocTypeNewsArticle: {
		system: "Extract 5-8 key factual claims from this news article. " +
			"Each claim must be a single assertive sentence. " +
			`Return a JSON object with key "claims" containing an array of strings.`,
		promptChars: 4000,
		fallbackCap: 8,
		terminators: ".!?",
	},
	model.DocTypeBlogPost: {
		system:      `Extract 4-6 key factual claims. Return JSON: {"claims": [...]}`,
		promptChars: 3000,
		fallbackCap: 6,
		terminators: ".!?",
		strictParse: true,
	},
	model.DocTypeLegalDocument: {
		system:      `Extract 5-8 key legal provisions or findings. Return JSON: {"claims": [...]}`,
		promptChars: 4000,
		fallbackCap: 8,
		terminators: ".;",
		strictParse: true,
	},
}

// Extractor produces claims from documents. provider may be nil, forcing the
// sentence-split path for every type.
type Extractor struct {
	provider llm.Provider
}

func NewExtractor(provider llm.Provider) *Extractor {
	return &Extractor{provider: provider}
}

// Extract returns the claims for a document, attributed to its ID. Unknown
// document types use the news profile.
func (e *Extractor) Extract(ctx context.Context, doc *model.Document) []model.Claim {
	profile, ok := profiles[doc.DocType]
	if !ok {
		profile = profiles[model.DocTypeNewsArticle]
	}

	if e.provider == nil || !e.provider.IsAvailable(ctx) {
		return sentenceClaims(doc, profile)
	}

	resp, err := e.provider.Complete(ctx, llm.Request{
		System:    profile.system,
		Prompt:    truncate(doc.RawText, profile.promptChars),
		JSONMode:  true,
		MaxTokens: 800,
	})
	if err != nil {
		if profile.strictParse {
			return nil
		}
		return sentenceClaims(doc, profile)
	}

	claims, ok := parseClaims(resp.Text, doc.ID)
	if !ok {
		if profile.strictParse {
			return nil
		}
		return sentenceClaims(doc, profile)
	}
	return claims
}

// parseClaims decodes the {"claims": [...]} answer, dropping non-string
// entries
func parseClaims(raw, docID string) ([]model.Claim, bool) {
	var parsed struct {
		Claims []any `json:"claims"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil || parsed.Claims == nil {
		return nil, false
	}

	var claims []model.Claim
	for _, entry := range parsed.Claims {
		if text, ok := entry.(string); ok && strings.TrimSpace(text) != "" {
			claims = append(claims, model.NewClaim(text, docID))
		}
	}
	return claims, true
}

func sentenceClaims(doc *model.Document, profile typeProfile) []model.Claim {
	var claims []model.Claim
	for _, sentence := range firstSentences(doc.RawText, profile.terminators, profile.fallbackCap) {
		claims = append(claims, model.NewClaim(sentence, doc.ID))
	}
	return claims
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
