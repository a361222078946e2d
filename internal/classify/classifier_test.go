package classify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/accordhq/accord/internal/llm"
	"github.com/accordhq/accord/internal/model"
)

const researchText = `Abstract
We study the effect of warming on coral reefs. Introduction: prior work has shown...
Methodology: we collected a dataset of 500 reef surveys. Results indicate decline.
Conclusion and references follow. See doi.org/10.1000/x for the preprint.`

const newsText = `By Jane Smith
Reuters reported on Tuesday that the central bank raised rates. A spokesperson said
the decision was unanimous, according to officials. Updated 3 hours ago.`

const legalText = `WHEREAS the party of the first part, hereinafter the Licensor, pursuant to § 12
of the agreement, shall indemnify the defendant against all liability.`

const blogText = `I think the new framework is overrated. In my opinion the old one was fine.
Subscribe to my newsletter on substack.com and comment below. Follow me for more.`

func TestKeywordClassify(t *testing.T) {
	cases := []struct {
		name string
		text string
		want model.DocType
	}{
		{"research paper", researchText, model.DocTypeResearchPaper},
		{"news article", newsText, model.DocTypeNewsArticle},
		{"legal document", legalText, model.DocTypeLegalDocument},
		{"blog post", blogText, model.DocTypeBlogPost},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, score := keywordClassify(tc.text, "")
			if got != tc.want {
				t.Errorf("keywordClassify = %s (score %v), want %s", got, score, tc.want)
			}
			if score < confidenceThreshold {
				t.Errorf("score = %v, want above threshold for clear-cut text", score)
			}
		})
	}
}

func TestClassify_HighConfidenceSkipsLLM(t *testing.T) {
	provider := &llm.MockProvider{Responses: []string{"blog_post"}}
	c := NewClassifier(provider)

	got := c.Classify(context.Background(), legalText, "")
	if got != model.DocTypeLegalDocument {
		t.Errorf("Classify = %s, want legal_document", got)
	}
	if provider.Calls != 0 {
		t.Errorf("provider calls = %d, want 0 for confident local result", provider.Calls)
	}
}

func TestClassify_LowConfidenceUsesLLM(t *testing.T) {
	provider := &llm.MockProvider{Responses: []string{"news_article"}}
	c := NewClassifier(provider)

	got := c.Classify(context.Background(), "short ambiguous text", "")
	if got != model.DocTypeNewsArticle {
		t.Errorf("Classify = %s, want LLM label news_article", got)
	}
	if provider.Calls != 1 {
		t.Errorf("provider calls = %d, want 1", provider.Calls)
	}
}

func TestClassify_LLMGarbageLabelIsUnknown(t *testing.T) {
	provider := &llm.MockProvider{Responses: []string{"parchment scroll"}}
	c := NewClassifier(provider)

	if got := c.Classify(context.Background(), "short ambiguous text", ""); got != model.DocTypeUnknown {
		t.Errorf("Classify = %s, want unknown for unrecognized label", got)
	}
}

func TestClassify_NoProviderFallsBackToHints(t *testing.T) {
	c := NewClassifier(nil)

	// hint: abstract + introduction
	got := c.Classify(context.Background(), "abstract ... introduction ...", "")
	if got != model.DocTypeResearchPaper {
		t.Errorf("Classify = %s, want research_paper from hint", got)
	}

	if got := c.Classify(context.Background(), "nothing recognizable", ""); got != model.DocTypeUnknown {
		t.Errorf("Classify = %s, want unknown", got)
	}
}

func TestClassify_ProviderErrorFallsBackToHints(t *testing.T) {
	c := NewClassifier(&llm.MockProvider{Err: errors.New("boom")})

	// "whereas" alone scores below the keyword threshold but trips the
	// legal hint
	got := c.Classify(context.Background(), "whereas nothing else is said here", "")
	if got != model.DocTypeLegalDocument {
		t.Errorf("Classify = %s, want legal_document from hint", got)
	}
}

func TestKeywordClassify_TitleContributes(t *testing.T) {
	_, without := keywordClassify("plain body", "")
	_, with := keywordClassify("plain body", "WHEREAS: agreement pursuant to statute")
	if with <= without {
		t.Errorf("title keywords should raise the score: %v <= %v", with, without)
	}
}

func TestKeywordClassify_SampleBounded(t *testing.T) {
	// legal markers placed beyond the sample window must not count
	padding := strings.Repeat("x ", sampleChars)
	got, _ := keywordClassify(padding+legalText, "")
	if got == model.DocTypeLegalDocument {
		t.Error("text beyond the sample window influenced classification")
	}
}
