package credibility

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/accordhq/accord/internal/llm"
	"github.com/accordhq/accord/internal/model"
)

func blogDoc(url, text string) *model.Document {
	doc := model.NewDocument(text)
	doc.DocType = model.DocTypeBlogPost
	doc.SourceURL = url
	return doc
}

func TestBlogScorer_FullBreakdown(t *testing.T) {
	provider := &llm.MockProvider{Responses: []string{`{"score": 0.8}`}}
	scorer := NewBlogScorer(provider)

	text := `I spent five years building ML pipelines at scale.
See https://example.com/paper and https://example.com/dataset plus https://example.com/code for details.`
	doc := blogDoc("https://medium.com/@author/post", text)
	doc.Metadata["published_date"] = time.Now().UTC().Add(-24 * time.Hour).Format(time.RFC3339)

	score := scorer.Score(context.Background(), doc)
	assertScoreWellFormed(t, score)

	if got := score.Breakdown["domain_authority"]; got != 0.72 {
		t.Errorf("domain_authority = %v, want medium.com 0.72", got)
	}
	if got := score.Breakdown["author_credentials"]; got != 0.8 {
		t.Errorf("author_credentials = %v, want LLM-assessed 0.8", got)
	}
	// 3 links * 0.08
	if got := score.Breakdown["external_references"]; math.Abs(got-0.24) > 1e-9 {
		t.Errorf("external_references = %v, want 0.24", got)
	}
	if got := score.Breakdown["recency"]; got < 0.99 {
		t.Errorf("recency = %v, want near 1 for yesterday", got)
	}

	want := 0.30*score.Breakdown["domain_authority"] +
		0.25*score.Breakdown["author_credentials"] +
		0.25*score.Breakdown["external_references"] +
		0.20*score.Breakdown["recency"]
	if math.Abs(score.Overall-want) > 0.001 {
		t.Errorf("overall = %v, want weighted sum %v", score.Overall, want)
	}
	if provider.Calls != 1 {
		t.Errorf("provider calls = %d, want 1", provider.Calls)
	}
}

func TestBlogScorer_AuthorCredentialFallbacks(t *testing.T) {
	cases := []struct {
		name     string
		provider llm.Provider
	}{
		{"nil provider", nil},
		{"provider error", &llm.MockProvider{Err: errors.New("boom")}},
		{"malformed response", &llm.MockProvider{Responses: []string{"not json"}}},
		{"missing score field", &llm.MockProvider{Responses: []string{`{"rating": 0.9}`}}},
		{"score above range", &llm.MockProvider{Responses: []string{`{"score": 1.5}`}}},
		{"score below range", &llm.MockProvider{Responses: []string{`{"score": -0.2}`}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scorer := NewBlogScorer(tc.provider)
			doc := blogDoc("https://medium.com/post", "some body text")

			score := scorer.Score(context.Background(), doc)
			if got := score.Breakdown["author_credentials"]; got != 0.5 {
				t.Errorf("author_credentials = %v, want neutral 0.5", got)
			}
		})
	}
}

func TestBlogDomainScore(t *testing.T) {
	cases := []struct {
		url  string
		want float64
	}{
		{"", 0.4},
		{"https://medium.com/@x/y", 0.72},
		{"https://towardsdatascience.com/post", 0.82},
		{"https://random-personal-site.net/post", 0.45},
	}
	for _, tc := range cases {
		if got := blogDomainScore(tc.url); got != tc.want {
			t.Errorf("blogDomainScore(%q) = %v, want %v", tc.url, got, tc.want)
		}
	}
}

func TestReferencesScore(t *testing.T) {
	if got := referencesScore("no links at all"); got != 0.2 {
		t.Errorf("no links = %v, want floor 0.2", got)
	}
	many := ""
	for i := 0; i < 20; i++ {
		many += "see https://example.com/r " // 20 links saturate
	}
	if got := referencesScore(many); got != 1.0 {
		t.Errorf("many links = %v, want saturated 1.0", got)
	}
}

func TestBlogRecency(t *testing.T) {
	if got := blogRecency(""); got != 0.4 {
		t.Errorf("missing date = %v, want 0.4", got)
	}
	old := time.Now().UTC().AddDate(-20, 0, 0).Format(time.RFC3339)
	if got := blogRecency(old); got != 0.1 {
		t.Errorf("ancient post = %v, want floor 0.1", got)
	}
}
