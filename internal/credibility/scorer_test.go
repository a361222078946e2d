package credibility

import (
	"testing"
	"time"

	"github.com/accordhq/accord/internal/authority"
	"github.com/accordhq/accord/internal/cache"
	"github.com/accordhq/accord/internal/model"
)

// offlineResolver builds a resolver with no network tiers: static overrides,
// TLD patterns, and the terminal default only
func offlineResolver() *authority.Resolver {
	store := authority.NewTrustStore(cache.NewMemoryCache(time.Hour, time.Hour), time.Hour)
	return authority.NewResolver(store, nil, nil, nil)
}

func TestRegistry_ForType(t *testing.T) {
	reg := NewRegistry(offlineResolver(), nil, nil)

	cases := []struct {
		dt   model.DocType
		want model.DocType
	}{
		{model.DocTypeResearchPaper, model.DocTypeResearchPaper},
		{model.DocTypeNewsArticle, model.DocTypeNewsArticle},
		{model.DocTypeBlogPost, model.DocTypeBlogPost},
		{model.DocTypeLegalDocument, model.DocTypeLegalDocument},
		// unknown types score with the news scorer
		{model.DocTypeUnknown, model.DocTypeNewsArticle},
	}
	for _, tc := range cases {
		if got := reg.ForType(tc.dt).DocType(); got != tc.want {
			t.Errorf("ForType(%s).DocType() = %s, want %s", tc.dt, got, tc.want)
		}
	}
}

func TestRound4(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0.123456, 0.1235},
		{0.99999, 1.0},
		{0.5, 0.5},
		{0, 0},
	}
	for _, tc := range cases {
		if got := round4(tc.in); got != tc.want {
			t.Errorf("round4(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	if _, ok := parseDate(""); ok {
		t.Error("empty string should not parse")
	}
	if _, ok := parseDate("not a date"); ok {
		t.Error("garbage should not parse")
	}
	if d, ok := parseDate("2024-03-01T10:00:00Z"); !ok || d.Year() != 2024 {
		t.Errorf("RFC 3339 parse = (%v, %v)", d, ok)
	}
	if d, ok := parseDate("2024-03-01"); !ok || d.Month() != time.March {
		t.Errorf("bare date parse = (%v, %v)", d, ok)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello", 10); got != "hello" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("hello world", 5); got != "hello" {
		t.Errorf("truncate long = %q", got)
	}
}

// assertScoreWellFormed checks the invariants every scorer must hold: all
// values in [0,1], overall consistent with the weighted breakdown, and an
// explanation per breakdown key.
func assertScoreWellFormed(t *testing.T, score *model.CredibilityScore) {
	t.Helper()
	if score.Overall < 0 || score.Overall > 1 {
		t.Errorf("overall = %v, out of [0,1]", score.Overall)
	}
	for key, v := range score.Breakdown {
		if v < 0 || v > 1 {
			t.Errorf("breakdown[%s] = %v, out of [0,1]", key, v)
		}
		if _, ok := score.Explanations[key]; !ok {
			t.Errorf("no explanation for breakdown key %s", key)
		}
	}
}
