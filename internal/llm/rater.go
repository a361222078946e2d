package llm

import (
	"context"
	"encoding/json"
	"math"
)

// domainRubric is the scoring rubric handed to the model for tier-3 domain
// authority inference. The bands mirror the static tables used upstream so
// LLM answers stay on the same scale.
const domainRubric = `You are a source credibility assessor. Given a domain name, output a JSON object with:
- "score": float 0.0-1.0 (credibility/authority)
- "type": one of "news", "academic", "government", "international_org", "advocacy", "blog", "unknown"
- "reasoning": one short sentence

Scoring guide:
- International orgs (UN, WHO, IEA): 0.90-0.97
- Government agencies: 0.88-0.96
- Top academic journals/universities: 0.85-0.97
- Major wire services / public broadcasters: 0.88-0.94
- Quality news outlets: 0.75-0.88
- Smaller news / magazines: 0.60-0.75
- Advocacy / think tanks with known bias: 0.40-0.65
- Blogs / personal sites: 0.30-0.55
- Conspiracy / state propaganda: 0.05-0.30

Respond ONLY with the JSON object.`

// DomainRater asks an LLM to judge a bare domain name's authority. It
// implements the authority resolver's tier-3 contract: any provider error,
// parse failure, or out-of-range score is a miss, never an error.
type DomainRater struct {
	provider Provider
}

// NewDomainRater wraps a provider as a domain rater. A nil provider is
// allowed and always misses.
func NewDomainRater(provider Provider) *DomainRater {
	return &DomainRater{provider: provider}
}

type domainJudgment struct {
	Score     *float64 `json:"score"`
	Type      string   `json:"type"`
	Reasoning string   `json:"reasoning"`
}

// RateDomain returns the model's 0-1 judgment for the domain, or a miss
func (r *DomainRater) RateDomain(ctx context.Context, domain string) (float64, bool) {
	if r.provider == nil {
		return 0, false
	}

	resp, err := r.provider.Complete(ctx, Request{
		System:    domainRubric,
		Prompt:    "Domain: " + domain,
		MaxTokens: 120,
		JSONMode:  true,
	})
	if err != nil {
		return 0, false
	}

	var judgment domainJudgment
	if err := json.Unmarshal([]byte(resp.Text), &judgment); err != nil {
		return 0, false
	}
	if judgment.Score == nil {
		return 0, false
	}

	score := *judgment.Score
	if score < 0 || score > 1 || math.IsNaN(score) {
		return 0, false
	}

	return math.Round(score*10000) / 10000, true
}
