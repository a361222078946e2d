package credibility

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/accordhq/accord/internal/model"
	"github.com/accordhq/accord/internal/scholar"
)

func researchDoc(title, url string) *model.Document {
	doc := model.NewDocument("body text")
	doc.DocType = model.DocTypeResearchPaper
	doc.Title = title
	doc.SourceURL = url
	return doc
}

func scholarClientFor(handler http.HandlerFunc) (*scholar.Client, func()) {
	server := httptest.NewServer(handler)
	client := scholar.NewClient(model.ScholarConfig{BaseURL: server.URL, Timeout: 2 * time.Second})
	return client, server.Close
}

func TestResearchScorer_AcademicBlend(t *testing.T) {
	papers, closeFn := scholarClientFor(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"data": [{
			"citationCount": 412,
			"year": %d,
			"venue": "Nature Climate Change",
			"authors": [{"hIndex": 48}],
			"publicationTypes": ["JournalArticle"]
		}]}`, time.Now().UTC().Year())
	})
	defer closeFn()

	scorer := NewResearchScorer(offlineResolver(), papers)
	doc := researchDoc("Warming trends", "https://www.nature.com/articles/x")

	score := scorer.Score(context.Background(), doc)
	assertScoreWellFormed(t, score)

	if got := score.Signals["scoring_method"]; got != "academic_blend" {
		t.Fatalf("scoring_method = %v, want academic_blend", got)
	}
	if len(score.Breakdown) != 5 {
		t.Errorf("breakdown keys = %d, want 5", len(score.Breakdown))
	}
	if got := score.Breakdown["source_authority"]; got != 0.97 {
		t.Errorf("source_authority = %v, want nature.com override 0.97", got)
	}
	if got := score.Breakdown["venue_tier"]; got != 1.0 {
		t.Errorf("venue_tier = %v, want 1.0 for Nature", got)
	}
	if got := score.Breakdown["recency"]; got != 1.0 {
		t.Errorf("recency = %v, want 1.0 for current year", got)
	}
	if got := score.Breakdown["author_hindex"]; got != 0.8 {
		t.Errorf("author_hindex = %v, want 48/60", got)
	}
	if got := score.Signals["peer_reviewed"]; got != true {
		t.Errorf("peer_reviewed = %v, want true", got)
	}

	// overall matches the documented weights
	want := 0.30*score.Breakdown["source_authority"] +
		0.25*score.Breakdown["venue_tier"] +
		0.20*score.Breakdown["citation_count"] +
		0.15*score.Breakdown["recency"] +
		0.10*score.Breakdown["author_hindex"]
	if math.Abs(score.Overall-want) > 0.001 {
		t.Errorf("overall = %v, want weighted sum %v", score.Overall, want)
	}

	// metadata write-back for downstream stages
	if doc.Metadata["venue"] != "Nature Climate Change" {
		t.Errorf("metadata venue = %v", doc.Metadata["venue"])
	}
	if doc.Metadata["peer_reviewed"] != true {
		t.Errorf("metadata peer_reviewed = %v", doc.Metadata["peer_reviewed"])
	}
}

func TestResearchScorer_AuthorityOnly(t *testing.T) {
	papers, closeFn := scholarClientFor(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": []}`)
	})
	defer closeFn()

	scorer := NewResearchScorer(offlineResolver(), papers)
	doc := researchDoc("Policy report", "https://www.bbc.com/report")

	score := scorer.Score(context.Background(), doc)
	assertScoreWellFormed(t, score)

	if got := score.Signals["scoring_method"]; got != "authority_only" {
		t.Fatalf("scoring_method = %v, want authority_only", got)
	}
	if len(score.Breakdown) != 2 {
		t.Errorf("breakdown keys = %d, want 2 (authority, recency)", len(score.Breakdown))
	}
	// 0.65 * 0.91 (bbc.com) + 0.35 * 0.5 (unknown year)
	if score.Overall != 0.7665 {
		t.Errorf("overall = %v, want 0.7665", score.Overall)
	}
}

func TestResearchScorer_UnknownSource(t *testing.T) {
	scorer := NewResearchScorer(offlineResolver(), nil)
	doc := researchDoc("Untitled notes", "")

	score := scorer.Score(context.Background(), doc)
	assertScoreWellFormed(t, score)

	if got := score.Signals["scoring_method"]; got != "unknown_source" {
		t.Fatalf("scoring_method = %v, want unknown_source", got)
	}
	if got := score.Breakdown["source_authority"]; got != 0.4 {
		t.Errorf("source_authority = %v, want fixed neutral-low 0.4", got)
	}
	// 0.65 * 0.4 + 0.35 * 0.5
	if score.Overall != 0.435 {
		t.Errorf("overall = %v, want 0.435", score.Overall)
	}
}

func TestCitationScore(t *testing.T) {
	if got := citationScore(nil); got != 0 {
		t.Errorf("unknown count = %v, want 0", got)
	}
	zero := 0
	if got := citationScore(&zero); got != 0 {
		t.Errorf("zero citations = %v, want 0", got)
	}
	atCap := 5000
	if got := citationScore(&atCap); got != 1 {
		t.Errorf("cap = %v, want 1", got)
	}
	huge := 1_000_000
	if got := citationScore(&huge); got != 1 {
		t.Errorf("above cap = %v, want saturated 1", got)
	}
	mid := 100
	if got := citationScore(&mid); got <= 0 || got >= 1 {
		t.Errorf("mid count = %v, want strictly between 0 and 1", got)
	}
}

func TestVenueScore(t *testing.T) {
	cases := []struct {
		venue string
		want  float64
	}{
		{"", 0},
		{"Nature Climate Change", 1.0},
		{"arXiv", 0.5},
		{"IEEE Transactions", 0.85},
		{"Workshop on Obscure Topics", 0.55},
	}
	for _, tc := range cases {
		if got := venueScore(tc.venue); got != tc.want {
			t.Errorf("venueScore(%q) = %v, want %v", tc.venue, got, tc.want)
		}
	}
}

func TestYearRecency(t *testing.T) {
	if got := yearRecency(nil); got != 0.5 {
		t.Errorf("unknown year = %v, want 0.5", got)
	}
	now := time.Now().UTC().Year()
	if got := yearRecency(&now); got != 1.0 {
		t.Errorf("current year = %v, want 1.0", got)
	}
	fiveAgo := now - 5
	if got := yearRecency(&fiveAgo); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("one half-life = %v, want 0.5", got)
	}
	future := now + 3
	if got := yearRecency(&future); got != 1.0 {
		t.Errorf("future year = %v, want clamped to 1.0", got)
	}
}

func TestHIndexScore(t *testing.T) {
	if got := hIndexScore(&scholar.PaperMeta{}); got != 0 {
		t.Errorf("no authors = %v, want 0", got)
	}
	h := 120
	meta := &scholar.PaperMeta{Authors: []scholar.Author{{HIndex: &h}}}
	if got := hIndexScore(meta); got != 1 {
		t.Errorf("h=120 = %v, want saturated 1", got)
	}
}
