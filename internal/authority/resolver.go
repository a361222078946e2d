package authority

import (
	"context"
	"strings"

	"github.com/accordhq/accord/internal/model"
)

const (
	// neutralScore is returned for documents with no source URL at all
	neutralScore = 0.5
	// defaultScore is the terminal fallback once every tier has missed
	defaultScore = 0.45
)

// DomainRater asks a generative-text service to judge a bare domain name.
// A false return is a miss (unavailable provider, malformed or out-of-range
// answer) and the resolver falls through.
type DomainRater interface {
	RateDomain(ctx context.Context, domain string) (float64, bool)
}

// Resolver maps a source URL to a 0-1 trust score through a tiered cascade:
// curated overrides, TLD patterns, cached prior resolutions, a popularity
// index, LLM inference, and finally a hardcoded default. Resolve never fails;
// every tier degrades to the next.
type Resolver struct {
	overrides  []DomainScore
	patterns   []tldPattern
	store      *TrustStore
	popularity PopularityIndex // optional
	rater      DomainRater     // optional
}

// NewResolver builds a resolver over the built-in tables. extraOverrides are
// appended after the curated table so they cannot shadow bias corrections.
// popularity and rater may be nil; the cascade skips missing tiers.
func NewResolver(store *TrustStore, popularity PopularityIndex, rater DomainRater, extraOverrides map[string]float64) *Resolver {
	overrides := make([]DomainScore, len(staticOverrides), len(staticOverrides)+len(extraOverrides))
	copy(overrides, staticOverrides)
	for domain, score := range extraOverrides {
		overrides = append(overrides, DomainScore{Domain: domain, Score: score})
	}

	return &Resolver{
		overrides:  overrides,
		patterns:   tldPatterns,
		store:      store,
		popularity: popularity,
		rater:      rater,
	}
}

// Resolve returns a 0-1 trust score for the URL. An empty URL yields the
// neutral score without touching the cache. Tier 2, tier 3 and default
// results are written through to the trust store with method provenance.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) float64 {
	if rawURL == "" {
		return neutralScore
	}

	// Tier 0: curated overrides, substring containment in declared order
	for _, entry := range r.overrides {
		if containsDomain(rawURL, entry.Domain) {
			return entry.Score
		}
	}

	// Tier 1: TLD/domain patterns
	for _, tp := range r.patterns {
		if tp.pattern.MatchString(rawURL) {
			return tp.score
		}
	}

	domain := RegistrableDomain(rawURL)

	if entry, found := r.store.Get(domain); found {
		return entry.Score
	}

	// Tier 2: popularity index
	if r.popularity != nil {
		if score, ok := r.popularity.DomainRank(ctx, domain); ok {
			r.store.Put(domain, score, model.MethodOpenPageRank)
			return score
		}
	}

	// Tier 3: LLM inference
	if r.rater != nil {
		if score, ok := r.rater.RateDomain(ctx, domain); ok {
			r.store.Put(domain, score, model.MethodLLM)
			return score
		}
	}

	r.store.Put(domain, defaultScore, model.MethodDefault)
	return defaultScore
}

func containsDomain(rawURL, domain string) bool {
	// Substring containment against the raw URL, matching the override
	// table's contract (entries are registrable domains, not hosts)
	return domain != "" && strings.Contains(rawURL, domain)
}
