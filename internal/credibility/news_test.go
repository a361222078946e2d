package credibility

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/accordhq/accord/internal/model"
)

func newsDoc(url, text string) *model.Document {
	doc := model.NewDocument(text)
	doc.DocType = model.DocTypeNewsArticle
	doc.SourceURL = url
	return doc
}

func TestNewsScorer_FullBreakdown(t *testing.T) {
	scorer := NewNewsScorer(offlineResolver())

	text := `By Jane Smith
The central bank raised rates on Tuesday. "This was a necessary step to contain inflation pressures," said Governor Lee.
According to Treasury officials, further increases remain on the table.`

	doc := newsDoc("https://www.reuters.com/markets/rates", text)
	doc.Metadata["published_date"] = time.Now().UTC().Add(-24 * time.Hour).Format(time.RFC3339)
	doc.Metadata["publisher"] = "Reuters"
	doc.Metadata["corroboration_score"] = 0.8

	score := scorer.Score(context.Background(), doc)
	assertScoreWellFormed(t, score)

	if len(score.Breakdown) != 5 {
		t.Fatalf("breakdown keys = %d, want 5", len(score.Breakdown))
	}
	if got := score.Breakdown["source_trust"]; got != 0.94 {
		t.Errorf("source_trust = %v, want reuters.com 0.94", got)
	}
	if got := score.Breakdown["byline"]; got != 0.9 {
		t.Errorf("byline = %v, want 0.9 for named byline", got)
	}
	if got := score.Breakdown["corroboration"]; got != 0.8 {
		t.Errorf("corroboration = %v, want metadata value 0.8", got)
	}
	if got := score.Breakdown["recency"]; got < 0.99 {
		t.Errorf("recency = %v, want near 1 for yesterday", got)
	}

	want := 0.40*score.Breakdown["source_trust"] +
		0.20*score.Breakdown["recency"] +
		0.15*score.Breakdown["primary_citations"] +
		0.15*score.Breakdown["corroboration"] +
		0.10*score.Breakdown["byline"]
	if math.Abs(score.Overall-want) > 0.001 {
		t.Errorf("overall = %v, want weighted sum %v", score.Overall, want)
	}

	if doc.Metadata["source_trust_score"] != 0.94 {
		t.Errorf("metadata source_trust_score = %v", doc.Metadata["source_trust_score"])
	}
}

func TestNewsScorer_DefaultsWithoutMetadata(t *testing.T) {
	scorer := NewNewsScorer(offlineResolver())
	doc := newsDoc("", "short text with no attribution markers at all here")

	score := scorer.Score(context.Background(), doc)
	assertScoreWellFormed(t, score)

	if got := score.Breakdown["source_trust"]; got != 0.5 {
		t.Errorf("source_trust = %v, want neutral 0.5 for missing URL", got)
	}
	if got := score.Breakdown["recency"]; got != 0.5 {
		t.Errorf("recency = %v, want neutral 0.5 for missing date", got)
	}
	if got := score.Breakdown["corroboration"]; got != 0.5 {
		t.Errorf("corroboration = %v, want default 0.5", got)
	}
	if got := score.Breakdown["byline"]; got != 0.3 {
		t.Errorf("byline = %v, want 0.3 for anonymous text", got)
	}
	if got := score.Breakdown["primary_citations"]; got != 0.2 {
		t.Errorf("primary_citations = %v, want floor 0.2", got)
	}
}

func TestNewsScorer_CorroborationClamped(t *testing.T) {
	scorer := NewNewsScorer(offlineResolver())

	cases := []struct {
		name string
		meta float64
		want float64
	}{
		{"above range", 1.7, 1.0},
		{"below range", -0.3, 0.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := newsDoc("", "some article body")
			doc.Metadata["corroboration_score"] = tc.meta

			score := scorer.Score(context.Background(), doc)
			assertScoreWellFormed(t, score)

			if got := score.Breakdown["corroboration"]; got != tc.want {
				t.Errorf("corroboration = %v, want clamped %v", got, tc.want)
			}
		})
	}
}

func TestBylineScore(t *testing.T) {
	if got := bylineScore("By Jane Smith\nSome article body."); got != 0.9 {
		t.Errorf("named byline = %v, want 0.9", got)
	}
	if got := bylineScore("Staff Writer\nSome article body."); got != 0.9 {
		t.Errorf("staff writer = %v, want 0.9", got)
	}
	if got := bylineScore("An article without attribution."); got != 0.3 {
		t.Errorf("no byline = %v, want 0.3", got)
	}
}

func TestNewsCitationScore(t *testing.T) {
	if got := newsCitationScore("nothing quotable here"); got != 0.2 {
		t.Errorf("no citations = %v, want floor 0.2", got)
	}

	// 1 quote (0.1) + 2 attributions (0.16)
	text := `"A substantive quotation longer than twenty chars," said Minister Jones, according to Officials.`
	got := newsCitationScore(text)
	if math.Abs(got-0.26) > 1e-9 {
		t.Errorf("citation score = %v, want 0.26", got)
	}

	// saturation
	dense := ""
	for i := 0; i < 30; i++ {
		dense += `"Another quotation that is comfortably long enough," said Someone. `
	}
	if got := newsCitationScore(dense); got != 1.0 {
		t.Errorf("dense citations = %v, want saturated 1.0", got)
	}
}

func TestNewsRecency(t *testing.T) {
	if got := newsRecency(""); got != 0.5 {
		t.Errorf("missing date = %v, want 0.5", got)
	}
	if got := newsRecency("garbage"); got != 0.5 {
		t.Errorf("unparseable date = %v, want 0.5", got)
	}
	old := time.Now().UTC().AddDate(-10, 0, 0).Format(time.RFC3339)
	if got := newsRecency(old); got != 0.1 {
		t.Errorf("decade-old article = %v, want floor 0.1", got)
	}
}
