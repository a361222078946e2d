package credibility

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/accordhq/accord/internal/model"
)

// jurisdictionScores weights jurisdiction keywords found in document text;
// the best match wins
var jurisdictionScores = []struct {
	keyword string
	score   float64
}{
	{"supreme court", 1.0},
	{"court of appeals", 0.88},
	{"district court", 0.80},
	{"federal", 0.85},
	{"state", 0.70},
	{"municipal", 0.55},
	{"us", 0.85},
	{"eu", 0.82},
	{"uk", 0.80},
}

// governmentDomains mark official primary sources
var governmentDomains = []string{".gov", ".gov.uk", ".europa.eu", ".un.org", ".court"}

// statutePatterns match formal legal citations: US Code, Public Law, CFR,
// and generic article/section references
var statutePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d+\s+U\.?S\.?C\.?\s+§\s*\d+`),
	regexp.MustCompile(`\bPub\.?\s*L\.?\s+\d+-\d+`),
	regexp.MustCompile(`\b\d+\s+C\.?F\.?R\.?\s+§\s*\d+`),
	regexp.MustCompile(`\bArticle\s+\d+\b`),
	regexp.MustCompile(`\b(?:Section|§)\s+\d+`),
}

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// legalDecayYears reflects how slowly statute text goes stale
const legalDecayYears = 15

// LegalScorer scores legal documents on official-source provenance,
// jurisdiction authority, statute citation density, and recency. All signals
// are computed locally; no external services.
type LegalScorer struct{}

func NewLegalScorer() *LegalScorer {
	return &LegalScorer{}
}

func (s *LegalScorer) DocType() model.DocType { return model.DocTypeLegalDocument }

func (s *LegalScorer) Score(ctx context.Context, doc *model.Document) *model.CredibilityScore {
	publishedDate := metaString(doc, "published_date")

	official := officialSourceScore(doc.SourceURL)
	jurisdiction := jurisdictionScore(doc.RawText)
	statute := statuteScore(doc.RawText)
	recency := legalRecency(doc.RawText, publishedDate)

	overall := 0.35*official + 0.30*jurisdiction + 0.20*statute + 0.15*recency

	return &model.CredibilityScore{
		Overall: round4(overall),
		Breakdown: map[string]float64{
			"official_source":        round4(official),
			"jurisdiction_authority": round4(jurisdiction),
			"statute_citations":      round4(statute),
			"recency":                round4(recency),
		},
		Explanations: map[string]string{
			"official_source":        officialExplanation(doc.SourceURL, official),
			"jurisdiction_authority": jurisdictionExplanation(jurisdiction),
			"statute_citations":      statuteExplanation(statute),
			"recency":                legalRecencyExplanation(recency),
		},
		Signals: map[string]any{
			"source_url": doc.SourceURL,
		},
	}
}

// officialSourceScore marks government and court domains as maximally
// authoritative primary sources
func officialSourceScore(url string) float64 {
	if url == "" {
		return 0.4
	}
	lower := strings.ToLower(url)
	for _, domain := range governmentDomains {
		if strings.Contains(lower, domain) {
			return 1.0
		}
	}
	return 0.45
}

// jurisdictionScore takes the highest-weighted jurisdiction keyword present
// in the text, never below 0.5
func jurisdictionScore(text string) float64 {
	lower := strings.ToLower(text)
	best := 0.5
	for _, entry := range jurisdictionScores {
		if strings.Contains(lower, entry.keyword) && entry.score > best {
			best = entry.score
		}
	}
	return best
}

// statuteScore counts how many distinct citation patterns appear, saturating
// at 1 with a 0.25 floor for citation-free text
func statuteScore(text string) float64 {
	found := 0
	for _, p := range statutePatterns {
		if p.MatchString(text) {
			found++
		}
	}
	if found == 0 {
		return 0.25
	}
	return math.Min(float64(found)*0.2, 1.0)
}

// legalRecency decays document age over 15 years with a 0.2 floor. Without
// a publication date it estimates the year from the text; without either it
// scores neutral.
func legalRecency(text, publishedDate string) float64 {
	if publishedDate == "" {
		match := yearPattern.FindString(text)
		if match == "" {
			return 0.5
		}
		year, _ := strconv.Atoi(match)
		age := time.Now().UTC().Year() - year
		if age < 0 {
			age = 0
		}
		return math.Max(0.2, math.Exp(-float64(age)/legalDecayYears))
	}

	date, ok := parseDate(publishedDate)
	if !ok {
		return 0.5
	}
	ageYears := time.Since(date).Hours() / 24 / 365
	return math.Max(0.2, math.Exp(-ageYears/legalDecayYears))
}

func officialExplanation(url string, official float64) string {
	if official >= 0.9 {
		return "Official government or court domain detected (.gov, .gov.uk, etc.) — high authority"
	}
	label := url
	if label == "" {
		label = "none"
	}
	return fmt.Sprintf("No official government domain found (URL: %s) — may be a secondary or unofficial source", label)
}

func jurisdictionExplanation(jurisdiction float64) string {
	if jurisdiction >= 0.75 {
		return fmt.Sprintf("High-authority jurisdiction language detected in document (e.g. Supreme Court, Federal) — score: %d%%", pct(jurisdiction))
	}
	return fmt.Sprintf("Standard or unspecified jurisdiction — score: %d%%", pct(jurisdiction))
}

func statuteExplanation(statute float64) string {
	if statute >= 0.4 {
		return fmt.Sprintf("Statute/code references found (U.S.C., C.F.R., Article, Section §) — score: %d%%", pct(statute))
	}
	return "Few or no formal statute citations detected — may reduce legal authority"
}

func legalRecencyExplanation(recency float64) string {
	if recency >= 0.7 {
		return fmt.Sprintf("Document appears recent — score: %d%% (15-year half-life for legal documents)", pct(recency))
	}
	return fmt.Sprintf("Document may be older — score: %d%% (laws may have been amended since publication)", pct(recency))
}
