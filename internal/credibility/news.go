package credibility

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"time"

	"github.com/accordhq/accord/internal/authority"
	"github.com/accordhq/accord/internal/model"
)

var (
	bylinePattern      = regexp.MustCompile(`\bBy\s+[A-Z][a-z]+\s+[A-Z][a-z]+|\bReported\s+by\b|\bStaff\s+Writer\b`)
	quotePattern       = regexp.MustCompile(`"[^"]{20,}"`)
	namedSourcePattern = regexp.MustCompile(`(?:said|told|according\s+to|stated|confirmed)\s+[A-Z]`)
)

// newsRecencyDecayDays is the e-folding period for article age
const newsRecencyDecayDays = 365

// NewsScorer scores news articles on source trust, recency, primary-source
// citation density, corroboration, and byline presence
type NewsScorer struct {
	authority *authority.Resolver
}

func NewNewsScorer(resolver *authority.Resolver) *NewsScorer {
	return &NewsScorer{authority: resolver}
}

func (s *NewsScorer) DocType() model.DocType { return model.DocTypeNewsArticle }

func (s *NewsScorer) Score(ctx context.Context, doc *model.Document) *model.CredibilityScore {
	publisher := metaString(doc, "publisher")
	publishedDate := metaString(doc, "published_date")

	sourceTrust := s.authority.Resolve(ctx, doc.SourceURL)
	recency := newsRecency(publishedDate)
	byline := bylineScore(doc.RawText)
	citation := newsCitationScore(doc.RawText)
	corroboration := clamp01(metaFloat(doc, "corroboration_score", 0.5))

	overall := 0.40*sourceTrust + 0.20*recency + 0.15*citation + 0.15*corroboration + 0.10*byline

	setMeta(doc, "source_trust_score", sourceTrust)
	setMeta(doc, "publisher", publisher)
	setMeta(doc, "published_date", publishedDate)

	return &model.CredibilityScore{
		Overall: round4(overall),
		Breakdown: map[string]float64{
			"source_trust":      round4(sourceTrust),
			"recency":           round4(recency),
			"primary_citations": round4(citation),
			"corroboration":     round4(corroboration),
			"byline":            round4(byline),
		},
		Explanations: map[string]string{
			"source_trust":      fmt.Sprintf("%s — domain trust score: %d%%", trustBand(sourceTrust), pct(sourceTrust)),
			"recency":           fmt.Sprintf("%s — score: %d%% (1-year decay applied)", newsRecencyBand(recency), pct(recency)),
			"primary_citations": fmt.Sprintf("%s named sources and direct quotes detected — score: %d%%", citationBand(citation), pct(citation)),
			"corroboration":     fmt.Sprintf("Cross-source corroboration score: %d%%", pct(corroboration)),
			"byline":            bylineExplanation(byline),
		},
		Signals: map[string]any{
			"source_url":     doc.SourceURL,
			"publisher":      publisher,
			"published_date": publishedDate,
		},
	}
}

// newsRecency decays article age over a 1-year period with a 0.1 floor;
// missing or unparseable dates score neutral
func newsRecency(publishedDate string) float64 {
	date, ok := parseDate(publishedDate)
	if !ok {
		return 0.5
	}
	ageDays := time.Since(date).Hours() / 24
	return math.Max(0.1, math.Exp(-ageDays/newsRecencyDecayDays))
}

// bylineScore rewards a named author byline; anonymity reduces
// accountability
func bylineScore(text string) float64 {
	if bylinePattern.MatchString(text) {
		return 0.9
	}
	return 0.3
}

// newsCitationScore counts substantive quotes and attributed statements,
// saturating at 1 with a 0.2 floor
func newsCitationScore(text string) float64 {
	quoted := len(quotePattern.FindAllString(text, -1))
	named := len(namedSourcePattern.FindAllString(text, -1))
	score := math.Min(float64(quoted)*0.1+float64(named)*0.08, 1.0)
	return math.Max(score, 0.2)
}

func trustBand(trust float64) string {
	switch {
	case trust >= 0.85:
		return "High-trust outlet"
	case trust >= 0.6:
		return "Moderate-trust outlet"
	default:
		return "Low-trust or unverified outlet"
	}
}

func newsRecencyBand(recency float64) string {
	switch {
	case recency >= 0.8:
		return "Very recent"
	case recency >= 0.5:
		return "Fairly recent"
	default:
		return "Older article"
	}
}

func citationBand(citation float64) string {
	switch {
	case citation >= 0.5:
		return "Good number of"
	case citation >= 0.3:
		return "Some"
	default:
		return "Few"
	}
}

func bylineExplanation(byline float64) string {
	if byline >= 0.8 {
		return "Named author byline detected — increases accountability"
	}
	return "No clear author byline found — reduces accountability signal"
}
