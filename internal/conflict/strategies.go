package conflict

import (
	"sort"

	"github.com/accordhq/accord/internal/model"
)

// StrategyName identifies a resolution strategy. The set is closed: unknown
// names fall back to weighted vote rather than failing the job.
type StrategyName string

const (
	StrategyWeightedVote       StrategyName = "weighted_vote"
	StrategyMajorityVote       StrategyName = "majority_vote"
	StrategyHighestCredibility StrategyName = "highest_credibility_wins"
	StrategyConservative       StrategyName = "conservative"
)

const (
	// weightedVoteThreshold is the minimum credibility spread needed to
	// declare a winner; anything closer is too ambiguous to resolve
	weightedVoteThreshold = 0.15

	// highTrustThreshold marks a source as independently trusted for
	// majority voting
	highTrustThreshold = 0.75

	// majorityConfidence is the fixed confidence when two or more
	// high-trust sources agree: agreement outweighs raw score ranking
	majorityConfidence = 0.85
)

// Strategy maps a disputed claim cluster plus per-document credibility to a
// resolution decision. Empty input yields an unresolved empty conflict.
type Strategy func(claims []model.Claim, credibility map[string]float64) model.Conflict

// strategyTable is the static registry over the closed strategy set
var strategyTable = map[StrategyName]Strategy{
	StrategyWeightedVote:       WeightedVote,
	StrategyMajorityVote:       MajorityVote,
	StrategyHighestCredibility: HighestCredibilityWins,
	StrategyConservative:       Conservative,
}

// ForName resolves a strategy name, defaulting unknown names to weighted vote
func ForName(name StrategyName) Strategy {
	if s, ok := strategyTable[name]; ok {
		return s
	}
	return WeightedVote
}

// defaultStrategyByType selects the default strategy for the dominant
// document type of a job
var defaultStrategyByType = map[model.DocType]StrategyName{
	model.DocTypeResearchPaper: StrategyWeightedVote,
	model.DocTypeNewsArticle:   StrategyMajorityVote,
	model.DocTypeBlogPost:      StrategyWeightedVote,
	model.DocTypeLegalDocument: StrategyHighestCredibility,
	model.DocTypeUnknown:       StrategyConservative,
}

// DefaultForType returns the default strategy name for a document type
func DefaultForType(dt model.DocType) StrategyName {
	if name, ok := defaultStrategyByType[dt]; ok {
		return name
	}
	return StrategyWeightedVote
}

// WeightedVote picks the claim whose source document has the highest
// credibility. When the credibility spread across the cluster is below the
// ambiguity threshold there is no defensible winner and the conflict stays
// unresolved.
func WeightedVote(claims []model.Claim, credibility map[string]float64) model.Conflict {
	if len(claims) == 0 {
		return model.Conflict{Claims: []model.Claim{}, Status: model.StatusUnresolved}
	}

	ranked := make([]model.Claim, len(claims))
	copy(ranked, claims)
	sort.SliceStable(ranked, func(i, j int) bool {
		return credOr(credibility, ranked[i].SourceDocID, 0.5) > credOr(credibility, ranked[j].SourceDocID, 0.5)
	})

	best := ranked[0]
	bestCred := credOr(credibility, best.SourceDocID, 0.5)

	lo, hi := bestCred, bestCred
	for _, c := range claims {
		score := credOr(credibility, c.SourceDocID, 0.5)
		if score < lo {
			lo = score
		}
		if score > hi {
			hi = score
		}
	}

	conflict := model.Conflict{
		Claims:     claims,
		Resolution: best.Text,
		Confidence: bestCred,
	}

	if hi-lo < weightedVoteThreshold {
		conflict.Status = model.StatusUnresolved
		conflict.Resolution = ""
	} else {
		conflict.Status = model.StatusResolved
	}

	return conflict
}

// MajorityVote resolves with the first claim backed by two or more
// independently trusted sources; without such agreement it falls back to
// weighted vote.
func MajorityVote(claims []model.Claim, credibility map[string]float64) model.Conflict {
	var highTrust []model.Claim
	for _, c := range claims {
		if credOr(credibility, c.SourceDocID, 0) >= highTrustThreshold {
			highTrust = append(highTrust, c)
		}
	}

	if len(highTrust) >= 2 {
		return model.Conflict{
			Claims:     claims,
			Resolution: highTrust[0].Text,
			Status:     model.StatusResolved,
			Confidence: majorityConfidence,
		}
	}

	return WeightedVote(claims, credibility)
}

// HighestCredibilityWins always resolves with the single highest-credibility
// claim, no ambiguity threshold
func HighestCredibilityWins(claims []model.Claim, credibility map[string]float64) model.Conflict {
	if len(claims) == 0 {
		return model.Conflict{Claims: []model.Claim{}, Status: model.StatusUnresolved}
	}

	best := claims[0]
	bestScore := credOr(credibility, best.SourceDocID, 0)
	for _, c := range claims[1:] {
		if score := credOr(credibility, c.SourceDocID, 0); score > bestScore {
			best = c
			bestScore = score
		}
	}

	return model.Conflict{
		Claims:     claims,
		Resolution: best.Text,
		Status:     model.StatusResolved,
		Confidence: credOr(credibility, best.SourceDocID, 0.5),
	}
}

// Conservative flags every disagreement as unresolved, for jobs where a
// silently wrong resolution is worse than no resolution
func Conservative(claims []model.Claim, credibility map[string]float64) model.Conflict {
	return model.Conflict{
		Claims:     claims,
		Status:     model.StatusUnresolved,
		Confidence: 0,
	}
}

func credOr(credibility map[string]float64, docID string, fallback float64) float64 {
	if score, ok := credibility[docID]; ok {
		return score
	}
	return fallback
}
