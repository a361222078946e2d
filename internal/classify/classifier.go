// Package classify assigns a document type from text content. The primary
// path is keyword and pattern scoring, which needs no network; only
// low-confidence documents fall through to an LLM.
package classify

import (
	"context"
	"regexp"
	"strings"

	"github.com/accordhq/accord/internal/llm"
	"github.com/accordhq/accord/internal/model"
)

const (
	// confidenceThreshold is the keyword score above which the local
	// result is trusted without consulting the LLM
	confidenceThreshold = 0.15

	// sampleChars bounds how much text feeds the keyword scorer
	sampleChars = 3000

	// llmSampleChars bounds how much text the LLM fallback sees
	llmSampleChars = 2000
)

const classifierSystem = "You are a document classifier. Classify the document into exactly ONE of: " +
	"research_paper, news_article, blog_post, legal_document, unknown. " +
	"Respond with ONLY the label, nothing else."

// typeSignal holds the keyword and pattern tables for one document type.
// Keywords are matched case-insensitively by substring; patterns carry more
// weight because they encode structure, not just vocabulary.
type typeSignal struct {
	docType  model.DocType
	keywords []string
	patterns []*regexp.Regexp
}

// typeSignals is ordered: score ties resolve to the earlier entry
var typeSignals = []typeSignal{
	{
		docType: model.DocTypeResearchPaper,
		keywords: []string{
			"abstract", "introduction", "methodology", "conclusion", "references",
			"doi", "arxiv", "peer-reviewed", "hypothesis", "experiment", "dataset",
			"literature review", "findings", "results", "figure", "table", "appendix",
			"journal", "proceedings", "citation", "et al", "preprint",
		},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)\babstract\b.{0,600}\bintroduction\b`),
			regexp.MustCompile(`(?is)\breferences\b[\s\S]{0,300}\[\d+\]`),
			regexp.MustCompile(`(?is)\b\d+\.\s+introduction\b`),
			regexp.MustCompile(`(?is)doi\.org`),
			regexp.MustCompile(`(?is)arxiv\.org`),
		},
	},
	{
		docType: model.DocTypeNewsArticle,
		keywords: []string{
			"reported", "according to", "said", "spokesperson", "breaking",
			"exclusive", "journalist", "byline", "wire", "ap", "reuters", "afp",
			"correspondent", "editor", "bureau", "published", "updated",
			"news", "article", "press", "media",
		},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)\bby [A-Z][a-z]+ [A-Z][a-z]+\b`),
			regexp.MustCompile(`(?is)\b(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)\b`),
			regexp.MustCompile(`(?is)\breuters\b|\bap news\b|\bbbc\b|\bcnn\b|\bnpr\b`),
			regexp.MustCompile(`(?is)\b(hours?|days?|weeks?) ago\b`),
		},
	},
	{
		docType: model.DocTypeBlogPost,
		keywords: []string{
			"i think", "i believe", "in my opinion", "my experience",
			"subscribe", "newsletter", "follow me", "share this", "comment below",
			"read more", "click here", "posted", "author bio", "about me",
			"substack", "medium", "wordpress", "blogger",
		},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)\bsubstack\.com\b`),
			regexp.MustCompile(`(?is)\bmedium\.com\b`),
			regexp.MustCompile(`(?is)\bwordpress\b`),
			regexp.MustCompile(`(?is)subscribe\s+to\s+(my|our|the)`),
		},
	},
	{
		docType: model.DocTypeLegalDocument,
		keywords: []string{
			"whereas", "hereinafter", "pursuant to", "plaintiff", "defendant",
			"jurisdiction", "hereby", "notwithstanding", "shall", "contract",
			"agreement", "liability", "party", "clause", "indemnify",
			"statute", "regulation", "ordinance", "section", "subsection",
		},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)\bwhereas\b`),
			regexp.MustCompile(`(?is)\bhereinafter\b`),
			regexp.MustCompile(`(?is)\bparty of the first part\b`),
			regexp.MustCompile(`(?is)\bpursuant to\b`),
			regexp.MustCompile(`(?is)§\s*\d+`),
		},
	},
}

var (
	legalHint = regexp.MustCompile(`\bwhereas\b|\bhereinafter\b|\bpursuant to\b`)
	newsHint  = regexp.MustCompile(`\bby [A-Z][a-z]+ [A-Z][a-z]+\b`)
)

// Classifier determines document types. The LLM provider is optional; with
// none, ambiguous documents fall back to a last-resort heuristic.
type Classifier struct {
	provider llm.Provider
}

func NewClassifier(provider llm.Provider) *Classifier {
	return &Classifier{provider: provider}
}

// Classify returns the document type for the given text and optional title
func (c *Classifier) Classify(ctx context.Context, text, title string) model.DocType {
	best, score := keywordClassify(text, title)
	if score >= confidenceThreshold {
		return best
	}
	return c.classifyWithLLM(ctx, text, title)
}

// keywordClassify scores every type table against the text sample and
// returns the winner; ties resolve to the earlier table
func keywordClassify(text, title string) (model.DocType, float64) {
	raw := truncate(title+"\n\n"+text, sampleChars)
	lower := strings.ToLower(raw)

	best := model.DocTypeUnknown
	bestScore := -1.0

	for _, sig := range typeSignals {
		kwHits := 0
		for _, kw := range sig.keywords {
			if strings.Contains(lower, kw) {
				kwHits++
			}
		}
		patHits := 0
		for _, p := range sig.patterns {
			if p.MatchString(raw) {
				patHits++
			}
		}

		kwScore := float64(kwHits) / float64(len(sig.keywords))
		patScore := float64(patHits) / float64(len(sig.patterns))
		score := 0.4*kwScore + 0.6*patScore

		if score > bestScore {
			best = sig.docType
			bestScore = score
		}
	}

	return best, bestScore
}

// classifyWithLLM asks the provider for a label; without a provider it uses
// last-resort structural hints
func (c *Classifier) classifyWithLLM(ctx context.Context, text, title string) model.DocType {
	if c.provider == nil || !c.provider.IsAvailable(ctx) {
		return simpleHint(text)
	}

	resp, err := c.provider.Complete(ctx, llm.Request{
		System:    classifierSystem,
		Prompt:    truncate(title+"\n\n"+text, llmSampleChars),
		MaxTokens: 10,
	})
	if err != nil {
		return simpleHint(text)
	}

	label := strings.ToLower(strings.TrimSpace(resp.Text))
	return model.ParseDocType(label)
}

// simpleHint applies the cheapest structural signals when nothing else is
// available
func simpleHint(text string) model.DocType {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "abstract") && strings.Contains(lower, "introduction") {
		return model.DocTypeResearchPaper
	}
	if legalHint.MatchString(lower) {
		return model.DocTypeLegalDocument
	}
	if newsHint.MatchString(text) {
		return model.DocTypeNewsArticle
	}
	return model.DocTypeUnknown
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
