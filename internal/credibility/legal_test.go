package credibility

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/accordhq/accord/internal/model"
)

func legalDoc(url, text string) *model.Document {
	doc := model.NewDocument(text)
	doc.DocType = model.DocTypeLegalDocument
	doc.SourceURL = url
	return doc
}

func TestLegalScorer_OfficialOpinion(t *testing.T) {
	scorer := NewLegalScorer()

	text := `The Supreme Court held that the statute, 42 U.S.C. § 1983, provides a remedy.
See also Section 5 of the Voting Rights Act.`
	doc := legalDoc("https://www.supremecourt.gov/opinions/23pdf/op.pdf", text)
	doc.Metadata["published_date"] = time.Now().UTC().Add(-24 * time.Hour).Format(time.RFC3339)

	score := scorer.Score(context.Background(), doc)
	assertScoreWellFormed(t, score)

	if got := score.Breakdown["official_source"]; got != 1.0 {
		t.Errorf("official_source = %v, want 1.0 for .gov", got)
	}
	if got := score.Breakdown["jurisdiction_authority"]; got != 1.0 {
		t.Errorf("jurisdiction_authority = %v, want 1.0 for Supreme Court", got)
	}
	// U.S.C. citation and Section reference: two patterns
	if got := score.Breakdown["statute_citations"]; math.Abs(got-0.4) > 1e-9 {
		t.Errorf("statute_citations = %v, want 0.4", got)
	}
	if got := score.Breakdown["recency"]; got < 0.99 {
		t.Errorf("recency = %v, want near 1 for yesterday", got)
	}

	want := 0.35*score.Breakdown["official_source"] +
		0.30*score.Breakdown["jurisdiction_authority"] +
		0.20*score.Breakdown["statute_citations"] +
		0.15*score.Breakdown["recency"]
	if math.Abs(score.Overall-want) > 0.001 {
		t.Errorf("overall = %v, want weighted sum %v", score.Overall, want)
	}
}

func TestLegalScorer_UnofficialSecondarySource(t *testing.T) {
	scorer := NewLegalScorer()
	doc := legalDoc("https://law-blog.example.net/analysis", "a short analysis of the ruling, with no formal citations")

	score := scorer.Score(context.Background(), doc)
	assertScoreWellFormed(t, score)

	if got := score.Breakdown["official_source"]; got != 0.45 {
		t.Errorf("official_source = %v, want 0.45 for non-government URL", got)
	}
	if got := score.Breakdown["statute_citations"]; got != 0.25 {
		t.Errorf("statute_citations = %v, want floor 0.25", got)
	}
}

func TestOfficialSourceScore(t *testing.T) {
	cases := []struct {
		url  string
		want float64
	}{
		{"", 0.4},
		{"https://www.justice.gov/opinion", 1.0},
		{"https://curia.europa.eu/judgment", 1.0},
		{"https://commentary.example.com/x", 0.45},
	}
	for _, tc := range cases {
		if got := officialSourceScore(tc.url); got != tc.want {
			t.Errorf("officialSourceScore(%q) = %v, want %v", tc.url, got, tc.want)
		}
	}
}

func TestJurisdictionScore(t *testing.T) {
	if got := jurisdictionScore("The Federal Circuit reviewed the appeal."); got != 0.85 {
		t.Errorf("federal = %v, want 0.85", got)
	}
	if got := jurisdictionScore("a memo on gardening with no legal terms"); got != 0.5 {
		t.Errorf("no keywords = %v, want baseline 0.5", got)
	}
	// highest matching keyword wins
	if got := jurisdictionScore("appealed from the district court to the supreme court"); got != 1.0 {
		t.Errorf("multiple keywords = %v, want 1.0", got)
	}
}

func TestStatuteScore(t *testing.T) {
	all := `42 U.S.C. § 1983, Pub. L. 117-2, 29 C.F.R. § 1910, Article 5, Section 230`
	if got := statuteScore(all); got != 1.0 {
		t.Errorf("all patterns = %v, want 1.0", got)
	}
	if got := statuteScore("Article 12 of the convention"); math.Abs(got-0.2) > 1e-9 {
		t.Errorf("single pattern = %v, want 0.2", got)
	}
}

func TestLegalRecency(t *testing.T) {
	if got := legalRecency("no year anywhere in this text", ""); got != 0.5 {
		t.Errorf("no date or year = %v, want 0.5", got)
	}

	// year inferred from text
	got := legalRecency("enacted in 2015 by congress", "")
	if got <= 0.2 || got >= 1.0 {
		t.Errorf("year from text = %v, want decayed below 1", got)
	}

	century := time.Now().UTC().AddDate(-100, 0, 0).Format(time.RFC3339)
	if got := legalRecency("", century); got != 0.2 {
		t.Errorf("century-old document = %v, want floor 0.2", got)
	}
}
