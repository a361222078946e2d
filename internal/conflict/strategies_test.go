package conflict

import (
	"testing"

	"github.com/accordhq/accord/internal/model"
)

func claim(text, docID string) model.Claim {
	return model.Claim{ID: text + "/" + docID, Text: text, SourceDocID: docID, Confidence: 1.0}
}

func TestWeightedVote_ClearWinner(t *testing.T) {
	claims := []model.Claim{
		claim("the drug is effective", "doc-a"),
		claim("the drug is ineffective", "doc-b"),
		claim("results are mixed", "doc-c"),
	}
	cred := map[string]float64{"doc-a": 0.90, "doc-b": 0.40, "doc-c": 0.55}

	got := WeightedVote(claims, cred)

	if got.Status != model.StatusResolved {
		t.Fatalf("status = %q, want resolved", got.Status)
	}
	if got.Resolution != "the drug is effective" {
		t.Errorf("resolution = %q, want highest-credibility claim", got.Resolution)
	}
	if got.Confidence != 0.90 {
		t.Errorf("confidence = %v, want 0.90", got.Confidence)
	}
}

func TestWeightedVote_NarrowSpreadUnresolved(t *testing.T) {
	claims := []model.Claim{
		claim("rates will rise", "doc-a"),
		claim("rates will hold", "doc-b"),
		claim("rates will fall", "doc-c"),
	}
	cred := map[string]float64{"doc-a": 0.75, "doc-b": 0.72, "doc-c": 0.70}

	got := WeightedVote(claims, cred)

	if got.Status != model.StatusUnresolved {
		t.Fatalf("status = %q, want unresolved for spread below threshold", got.Status)
	}
	if got.Resolution != "" {
		t.Errorf("resolution = %q, want empty on unresolved", got.Resolution)
	}
	if got.Confidence != 0.75 {
		t.Errorf("confidence = %v, want best-source credibility", got.Confidence)
	}
}

func TestWeightedVote_MissingCredibilityDefaultsNeutral(t *testing.T) {
	claims := []model.Claim{
		claim("alpha", "doc-known"),
		claim("beta", "doc-missing"),
	}
	cred := map[string]float64{"doc-known": 0.9}

	got := WeightedVote(claims, cred)

	// spread is 0.9 - 0.5 = 0.4, clears the threshold
	if got.Status != model.StatusResolved || got.Resolution != "alpha" {
		t.Errorf("got status=%q resolution=%q, want resolved alpha", got.Status, got.Resolution)
	}
}

func TestWeightedVote_Empty(t *testing.T) {
	got := WeightedVote(nil, nil)
	if got.Status != model.StatusUnresolved || len(got.Claims) != 0 {
		t.Errorf("empty input: got status=%q claims=%d", got.Status, len(got.Claims))
	}
}

func TestMajorityVote_TwoHighTrustAgree(t *testing.T) {
	claims := []model.Claim{
		claim("vaccine reduces transmission", "doc-a"),
		claim("vaccine has no effect", "doc-b"),
		claim("vaccine reduces transmission significantly", "doc-c"),
	}
	cred := map[string]float64{"doc-a": 0.80, "doc-b": 0.60, "doc-c": 0.76}

	got := MajorityVote(claims, cred)

	if got.Status != model.StatusResolved {
		t.Fatalf("status = %q, want resolved", got.Status)
	}
	if got.Resolution != "vaccine reduces transmission" {
		t.Errorf("resolution = %q, want first high-trust claim", got.Resolution)
	}
	if got.Confidence != 0.85 {
		t.Errorf("confidence = %v, want fixed 0.85", got.Confidence)
	}
}

func TestMajorityVote_FallsBackToWeightedVote(t *testing.T) {
	claims := []model.Claim{
		claim("x is true", "doc-a"),
		claim("x is false", "doc-b"),
	}
	cred := map[string]float64{"doc-a": 0.80, "doc-b": 0.40}

	got := MajorityVote(claims, cred)

	// only one high-trust source: resolved via weighted vote semantics
	if got.Status != model.StatusResolved || got.Resolution != "x is true" {
		t.Errorf("got status=%q resolution=%q, want weighted-vote winner", got.Status, got.Resolution)
	}
	if got.Confidence != 0.80 {
		t.Errorf("confidence = %v, want source credibility not 0.85", got.Confidence)
	}
}

func TestHighestCredibilityWins_NoThreshold(t *testing.T) {
	claims := []model.Claim{
		claim("clause applies", "doc-a"),
		claim("clause does not apply", "doc-b"),
	}
	cred := map[string]float64{"doc-a": 0.52, "doc-b": 0.51}

	got := HighestCredibilityWins(claims, cred)

	if got.Status != model.StatusResolved {
		t.Fatalf("status = %q, want resolved regardless of spread", got.Status)
	}
	if got.Resolution != "clause applies" {
		t.Errorf("resolution = %q", got.Resolution)
	}
	if got.Confidence != 0.52 {
		t.Errorf("confidence = %v, want winner credibility", got.Confidence)
	}
}

func TestHighestCredibilityWins_FirstWinsTies(t *testing.T) {
	claims := []model.Claim{
		claim("first", "doc-a"),
		claim("second", "doc-b"),
	}
	cred := map[string]float64{"doc-a": 0.7, "doc-b": 0.7}

	got := HighestCredibilityWins(claims, cred)
	if got.Resolution != "first" {
		t.Errorf("resolution = %q, want first claim on tie", got.Resolution)
	}
}

func TestConservative_AlwaysUnresolved(t *testing.T) {
	claims := []model.Claim{
		claim("a", "doc-a"),
		claim("b", "doc-b"),
	}
	cred := map[string]float64{"doc-a": 0.99, "doc-b": 0.10}

	got := Conservative(claims, cred)

	if got.Status != model.StatusUnresolved {
		t.Errorf("status = %q, want unresolved", got.Status)
	}
	if got.Resolution != "" || got.Confidence != 0 {
		t.Errorf("got resolution=%q confidence=%v, want empty and zero", got.Resolution, got.Confidence)
	}
}

func TestForName_UnknownDefaultsToWeightedVote(t *testing.T) {
	claims := []model.Claim{
		claim("a", "doc-a"),
		claim("b", "doc-b"),
	}
	cred := map[string]float64{"doc-a": 0.9, "doc-b": 0.4}

	got := ForName("no_such_strategy")(claims, cred)
	want := WeightedVote(claims, cred)

	if got.Resolution != want.Resolution || got.Status != want.Status {
		t.Errorf("unknown name: got %+v, want weighted vote behavior %+v", got, want)
	}
}

func TestDefaultForType(t *testing.T) {
	cases := []struct {
		dt   model.DocType
		want StrategyName
	}{
		{model.DocTypeResearchPaper, StrategyWeightedVote},
		{model.DocTypeNewsArticle, StrategyMajorityVote},
		{model.DocTypeBlogPost, StrategyWeightedVote},
		{model.DocTypeLegalDocument, StrategyHighestCredibility},
		{model.DocTypeUnknown, StrategyConservative},
	}
	for _, tc := range cases {
		if got := DefaultForType(tc.dt); got != tc.want {
			t.Errorf("DefaultForType(%s) = %s, want %s", tc.dt, got, tc.want)
		}
	}
}
