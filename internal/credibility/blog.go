package credibility

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/accordhq/accord/internal/llm"
	"github.com/accordhq/accord/internal/model"
)

// blogDomainAuthority maps known blog platforms and tech publications to an
// authority score, checked by substring in declared order
var blogDomainAuthority = []struct {
	domain string
	score  float64
}{
	{"towardsdatascience.com", 0.82},
	{"ycombinator.com", 0.90},
	{"techcrunch.com", 0.88},
	{"hackernoon.com", 0.75},
	{"wired.com", 0.87},
	{"medium.com", 0.72},
	{"substack.com", 0.65},
	{"wordpress.com", 0.55},
}

var linkPattern = regexp.MustCompile(`https?://[^\s)>"]+`)

const (
	// blogRecencyDecayDays gives blog content a 2-year relevance window
	blogRecencyDecayDays = 730
	// credentialProbeChars is how much leading text the LLM sees when
	// assessing the author
	credentialProbeChars = 2000
)

const authorCredentialSystem = "Based on any author bio, introduction, or writing style in the text, " +
	"rate the author's apparent expertise and credentials on a scale of 0.0 to 1.0. " +
	`Return ONLY a JSON object: {"score": <float>}`

// BlogScorer scores blog posts on platform authority, LLM-assessed author
// credentials, external reference density, and recency
type BlogScorer struct {
	provider llm.Provider
}

// NewBlogScorer creates a blog scorer. provider may be nil; author
// credentials then score neutral.
func NewBlogScorer(provider llm.Provider) *BlogScorer {
	return &BlogScorer{provider: provider}
}

func (s *BlogScorer) DocType() model.DocType { return model.DocTypeBlogPost }

func (s *BlogScorer) Score(ctx context.Context, doc *model.Document) *model.CredibilityScore {
	publishedDate := metaString(doc, "published_date")

	domain := blogDomainScore(doc.SourceURL)
	references := referencesScore(doc.RawText)
	recency := blogRecency(publishedDate)
	author := s.authorCredentials(ctx, doc.RawText)

	overall := 0.30*domain + 0.25*author + 0.25*references + 0.20*recency

	links := len(linkPattern.FindAllString(doc.RawText, -1))

	return &model.CredibilityScore{
		Overall: round4(overall),
		Breakdown: map[string]float64{
			"domain_authority":    round4(domain),
			"author_credentials":  round4(author),
			"external_references": round4(references),
			"recency":             round4(recency),
		},
		Explanations: map[string]string{
			"domain_authority":    domainExplanation(doc.SourceURL, domain),
			"author_credentials":  fmt.Sprintf("%s via LLM assessment — score: %d%%", credentialBand(author), pct(author)),
			"external_references": referencesExplanation(links, references),
			"recency":             fmt.Sprintf("%s post — score: %d%% (2-year half-life for blog content)", blogRecencyBand(recency), pct(recency)),
		},
		Signals: map[string]any{
			"source_url":     doc.SourceURL,
			"published_date": publishedDate,
		},
	}
}

// authorCredentials asks the LLM to judge author expertise from the leading
// text; any failure scores neutral
func (s *BlogScorer) authorCredentials(ctx context.Context, text string) float64 {
	if s.provider == nil || !s.provider.IsAvailable(ctx) {
		return 0.5
	}

	resp, err := s.provider.Complete(ctx, llm.Request{
		System:    authorCredentialSystem,
		Prompt:    truncate(text, credentialProbeChars),
		JSONMode:  true,
		MaxTokens: 60,
	})
	if err != nil {
		return 0.5
	}

	var parsed struct {
		Score *float64 `json:"score"`
	}
	if err := json.Unmarshal([]byte(resp.Text), &parsed); err != nil || parsed.Score == nil {
		return 0.5
	}
	if *parsed.Score < 0 || *parsed.Score > 1 {
		return 0.5
	}
	return *parsed.Score
}

// blogDomainScore looks the URL up in the platform table; no URL at all is
// penalized below an unknown platform
func blogDomainScore(url string) float64 {
	if url == "" {
		return 0.4
	}
	for _, entry := range blogDomainAuthority {
		if strings.Contains(url, entry.domain) {
			return entry.score
		}
	}
	return 0.45
}

// referencesScore saturates at 1, with a floor of 0.2 when no links exist
func referencesScore(text string) float64 {
	links := len(linkPattern.FindAllString(text, -1))
	if links == 0 {
		return 0.2
	}
	return math.Min(float64(links)*0.08, 1.0)
}

// blogRecency decays post age over 2 years with a 0.1 floor; unknown dates
// score slightly below neutral
func blogRecency(publishedDate string) float64 {
	date, ok := parseDate(publishedDate)
	if !ok {
		return 0.4
	}
	ageDays := time.Since(date).Hours() / 24
	return math.Max(0.1, math.Exp(-ageDays/blogRecencyDecayDays))
}

func domainExplanation(url string, domain float64) string {
	var band string
	switch {
	case domain >= 0.8:
		band = "High-authority domain"
	case domain >= 0.55:
		band = "Moderate-authority domain"
	default:
		band = "Low or unknown domain authority"
	}
	source := " (no URL provided)"
	if url != "" {
		source = fmt.Sprintf(" (source: %s)", url)
	}
	return fmt.Sprintf("%s — score: %d%%%s", band, pct(domain), source)
}

func credentialBand(author float64) string {
	switch {
	case author >= 0.75:
		return "Strong author credentials detected"
	case author >= 0.45:
		return "Some author credentials detected"
	default:
		return "Limited or no author credentials found"
	}
}

func referencesExplanation(links int, references float64) string {
	plural := "s"
	if links == 1 {
		plural = ""
	}
	var band string
	switch {
	case references >= 0.5:
		band = "well-referenced"
	case references >= 0.25:
		band = "moderately referenced"
	default:
		band = "few or no external sources cited"
	}
	return fmt.Sprintf("%d external link%s found in document — %s", links, plural, band)
}

func blogRecencyBand(recency float64) string {
	switch {
	case recency >= 0.7:
		return "Recent"
	case recency >= 0.4:
		return "Somewhat dated"
	default:
		return "Older"
	}
}
