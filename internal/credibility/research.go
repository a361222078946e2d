package credibility

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/accordhq/accord/internal/authority"
	"github.com/accordhq/accord/internal/model"
	"github.com/accordhq/accord/internal/scholar"
)

// venueTier maps venue-name fragments to a normalized 0-1 tier score,
// checked by substring in declared order
var venueTier = []struct {
	fragment string
	score    float64
}{
	{"nature", 1.0}, {"science", 1.0}, {"cell", 0.98},
	{"lancet", 0.97}, {"nejm", 0.97}, {"jama", 0.96},
	{"ieee", 0.85}, {"acm", 0.82}, {"plos", 0.75},
	{"arxiv", 0.5}, {"biorxiv", 0.45}, {"preprint", 0.35},
}

const (
	// citationCap is where log-scaled citation counts saturate
	citationCap = 5000
	// hIndexCap is where the lead author h-index saturates
	hIndexCap = 60
	// researchHalfLifeYears applies to citation-relevant recency
	researchHalfLifeYears = 5
	// titleProbeChars is how much raw text substitutes for a missing title
	// in the bibliometric lookup
	titleProbeChars = 200
)

// Scoring method signal values
const (
	methodAcademicBlend = "academic_blend"
	methodAuthorityOnly = "authority_only"
	methodUnknownSource = "unknown_source"
)

// ResearchScorer scores research papers. It switches between three modes
// depending on what the bibliometric lookup and source URL provide:
// a full academic blend, an authority/recency blend when no academic
// metadata exists, and a neutral-low constant when even the source is
// unresolvable.
type ResearchScorer struct {
	authority *authority.Resolver
	papers    *scholar.Client
}

// NewResearchScorer creates a research-paper scorer. papers may be nil,
// which forces the non-academic modes.
func NewResearchScorer(resolver *authority.Resolver, papers *scholar.Client) *ResearchScorer {
	return &ResearchScorer{authority: resolver, papers: papers}
}

func (s *ResearchScorer) DocType() model.DocType { return model.DocTypeResearchPaper }

func (s *ResearchScorer) Score(ctx context.Context, doc *model.Document) *model.CredibilityScore {
	title := doc.Title
	if title == "" {
		title = truncate(doc.RawText, titleProbeChars)
	}

	var meta *scholar.PaperMeta
	hasAcademicData := false
	if s.papers != nil {
		meta, hasAcademicData = s.papers.Lookup(ctx, title)
	}
	if meta == nil {
		meta = &scholar.PaperMeta{}
	}

	recency := yearRecency(meta.Year)
	citation := citationScore(meta.CitationCount)
	venue := venueScore(meta.Venue)
	hindex := hIndexScore(meta)
	peerReviewed := meta.PeerReviewed()

	var (
		overall      float64
		method       string
		breakdown    map[string]float64
		explanations map[string]string
	)

	switch {
	case hasAcademicData:
		auth := s.authority.Resolve(ctx, doc.SourceURL)
		overall = 0.30*auth + 0.25*venue + 0.20*citation + 0.15*recency + 0.10*hindex
		method = methodAcademicBlend
		breakdown = map[string]float64{
			"source_authority": round4(auth),
			"venue_tier":       round4(venue),
			"citation_count":   round4(citation),
			"recency":          round4(recency),
			"author_hindex":    round4(hindex),
		}
		explanations = map[string]string{
			"source_authority": fmt.Sprintf("Domain authority score: %d%% — %s", pct(auth), authorityBand(auth)),
			"venue_tier":       venueExplanation(meta.Venue, venue),
			"citation_count":   citationExplanation(meta.CitationCount, citation),
			"recency":          recencyExplanation(meta.Year, recency),
			"author_hindex":    hIndexExplanation(meta, hindex),
		}
		setMeta(doc, "source_authority", auth)

	case doc.SourceURL != "":
		auth := s.authority.Resolve(ctx, doc.SourceURL)
		overall = 0.65*auth + 0.35*recency
		method = methodAuthorityOnly
		breakdown = map[string]float64{
			"source_authority": round4(auth),
			"recency":          round4(recency),
		}
		explanations = map[string]string{
			"source_authority": fmt.Sprintf("Domain authority score: %d%% — no academic metadata found; relying on source domain trust", pct(auth)),
			"recency":          fmt.Sprintf("Estimated publication year: %s — %s", yearLabel(meta.Year), recencyBand(recency)),
		}
		setMeta(doc, "source_authority", auth)

	default:
		// No source, no academic metadata: a measured authority signal
		// does not exist, so a neutral-low constant takes its weight
		overall = 0.65*0.4 + 0.35*recency
		method = methodUnknownSource
		breakdown = map[string]float64{
			"source_authority": 0.4,
			"recency":          round4(recency),
		}
		explanations = map[string]string{
			"source_authority": "Unknown domain and no academic metadata — defaulting to neutral-low authority (0.4)",
			"recency":          fmt.Sprintf("Estimated publication year: %s — %s", yearLabel(meta.Year), recencyBand(recency)),
		}
	}

	setMeta(doc, "citations", intOrNil(meta.CitationCount))
	setMeta(doc, "year", intOrNil(meta.Year))
	setMeta(doc, "venue", meta.Venue)
	setMeta(doc, "peer_reviewed", peerReviewed)

	return &model.CredibilityScore{
		Overall:      round4(overall),
		Breakdown:    breakdown,
		Explanations: explanations,
		Signals: map[string]any{
			"citation_count_raw": intOrNil(meta.CitationCount),
			"publication_year":   intOrNil(meta.Year),
			"venue":              meta.Venue,
			"peer_reviewed":      peerReviewed,
			"source_url":         doc.SourceURL,
			"scoring_method":     method,
		},
	}
}

// yearRecency decays publication age with a 5-year half-life; unknown year
// scores neutral
func yearRecency(year *int) float64 {
	if year == nil || *year == 0 {
		return 0.5
	}
	age := time.Now().UTC().Year() - *year
	if age < 0 {
		age = 0
	}
	return math.Exp(-math.Ln2 * float64(age) / researchHalfLifeYears)
}

// citationScore log-scales the count against the saturation cap. Unknown
// counts score zero: missing data must not be rewarded.
func citationScore(count *int) float64 {
	if count == nil {
		return 0
	}
	score := math.Log1p(float64(*count)) / math.Log1p(citationCap)
	return math.Min(score, 1)
}

// venueScore looks the venue up in the tier table by substring; an unknown
// venue scores zero, an unlisted one mid-tier
func venueScore(venue string) float64 {
	if venue == "" {
		return 0
	}
	v := strings.ToLower(venue)
	for _, tier := range venueTier {
		if strings.Contains(v, tier.fragment) {
			return tier.score
		}
	}
	return 0.55
}

// hIndexScore scales the best author h-index against the cap; no reported
// metrics score zero
func hIndexScore(meta *scholar.PaperMeta) float64 {
	best, found := meta.MaxHIndex()
	if !found {
		return 0
	}
	return math.Min(float64(best)/hIndexCap, 1)
}

func authorityBand(auth float64) string {
	if auth >= 0.7 {
		return "known trustworthy source"
	}
	return "unverified or lower-trust domain"
}

func venueExplanation(venue string, score float64) string {
	label := venue
	if label == "" {
		label = "unknown venue"
	}
	var band string
	switch {
	case score >= 0.85:
		band = "top-tier peer-reviewed venue"
	case score >= 0.5:
		band = "mid-tier or preprint venue"
	default:
		band = "unknown or low-tier venue"
	}
	return fmt.Sprintf("Published in '%s' — %s", label, band)
}

func citationExplanation(count *int, score float64) string {
	label := "unknown"
	plural := "s"
	if count != nil {
		label = fmt.Sprintf("%d", *count)
		if *count == 1 {
			plural = ""
		}
	}
	var band string
	switch {
	case score >= 0.7:
		band = "highly cited"
	case score >= 0.3:
		band = "moderately cited"
	default:
		band = "few or no citations found"
	}
	return fmt.Sprintf("%s citation%s — %s", label, plural, band)
}

func recencyExplanation(year *int, recency float64) string {
	var band string
	switch {
	case recency >= 0.85:
		band = "very recent"
	case recency >= 0.6:
		band = "fairly recent"
	default:
		band = "older work"
	}
	return fmt.Sprintf("Published in %s — %s (5-year half-life decay applied)", yearLabel(year), band)
}

func hIndexExplanation(meta *scholar.PaperMeta, score float64) string {
	best, _ := meta.MaxHIndex()
	var band string
	switch {
	case score >= 0.6:
		band = "highly prolific researcher"
	case score >= 0.3:
		band = "established researcher"
	default:
		band = "limited publication history found"
	}
	return fmt.Sprintf("Lead author h-index: %d — %s", best, band)
}

func recencyBand(recency float64) string {
	if recency >= 0.7 {
		return "recent"
	}
	return "older content"
}

func yearLabel(year *int) string {
	if year == nil || *year == 0 {
		return "unknown"
	}
	return fmt.Sprintf("%d", *year)
}

func intOrNil(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
