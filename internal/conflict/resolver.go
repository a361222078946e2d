package conflict

import (
	"context"

	"github.com/accordhq/accord/internal/cluster"
	"github.com/accordhq/accord/internal/model"
)

// unresolvedClaimConfidence is assigned to the best-effort claim forwarded
// from a conflict no strategy could resolve
const unresolvedClaimConfidence = 0.4

// topicRunes bounds the topic label derived from a cluster's first claim
const topicRunes = 80

// Engine clusters claims across documents and resolves each disputed cluster
// with a strategy chosen by the job's dominant document type (or an explicit
// override).
type Engine struct {
	clusterer *cluster.Clusterer
}

func NewEngine(c *cluster.Clusterer) *Engine {
	return &Engine{clusterer: c}
}

// Resolve cross-checks the claims of all documents and returns the surviving
// claim set plus a record of every multi-source cluster. With fewer than two
// documents there is nothing to cross-check and the claims pass through
// untouched.
func (e *Engine) Resolve(ctx context.Context, docs []*model.Document, override StrategyName) ([]model.Claim, []model.Conflict, error) {
	if len(docs) < 2 {
		if len(docs) == 1 {
			return docs[0].Claims, nil, nil
		}
		return nil, nil, nil
	}

	credibility := make(map[string]float64, len(docs))
	for _, d := range docs {
		if d.Credibility != nil {
			credibility[d.ID] = d.Credibility.Overall
		} else {
			credibility[d.ID] = 0.5
		}
	}

	strategy := ForName(e.SelectStrategy(docs, override))

	var claims []model.Claim
	for _, d := range docs {
		claims = append(claims, d.Claims...)
	}
	if len(claims) == 0 {
		return nil, nil, nil
	}

	clusters, err := e.clusterer.Cluster(ctx, claims)
	if err != nil {
		return nil, nil, err
	}

	var resolved []model.Claim
	var conflicts []model.Conflict

	for _, group := range clusters {
		// singleton: nothing to dispute; same-source restatements
		// collapse to the first occurrence
		if len(group) < 2 || !multiSource(group) {
			resolved = append(resolved, group[0])
			continue
		}

		conflict := strategy(group, credibility)
		conflict.Topic = topicOf(group[0].Text)
		conflicts = append(conflicts, conflict)

		if conflict.Status == model.StatusResolved && conflict.Resolution != "" {
			winner := model.NewClaim(conflict.Resolution, group[0].SourceDocID)
			winner.Confidence = conflict.Confidence
			resolved = append(resolved, winner)
			continue
		}

		// No defensible winner: forward the best-sourced claim at
		// reduced confidence so downstream consumers still see the
		// topic covered.
		best := group[0]
		bestScore := credOr(credibility, best.SourceDocID, 0)
		for _, c := range group[1:] {
			if score := credOr(credibility, c.SourceDocID, 0); score > bestScore {
				best = c
				bestScore = score
			}
		}
		fallback := model.NewClaim(best.Text, best.SourceDocID)
		fallback.Confidence = unresolvedClaimConfidence
		resolved = append(resolved, fallback)
	}

	return resolved, conflicts, nil
}

// SelectStrategy honors an explicit override, otherwise selects by the
// dominant document type (first-seen wins ties)
func (e *Engine) SelectStrategy(docs []*model.Document, override StrategyName) StrategyName {
	if override != "" {
		return override
	}
	if len(docs) == 0 {
		return StrategyConservative
	}

	counts := make(map[model.DocType]int, len(docs))
	var order []model.DocType
	for _, d := range docs {
		if counts[d.DocType] == 0 {
			order = append(order, d.DocType)
		}
		counts[d.DocType]++
	}

	dominant := order[0]
	for _, dt := range order[1:] {
		if counts[dt] > counts[dominant] {
			dominant = dt
		}
	}
	return DefaultForType(dominant)
}

// multiSource reports whether a cluster spans more than one source document.
// Restatements within a single document are not a conflict.
func multiSource(group []model.Claim) bool {
	first := group[0].SourceDocID
	for _, c := range group[1:] {
		if c.SourceDocID != first {
			return true
		}
	}
	return false
}

func topicOf(text string) string {
	runes := []rune(text)
	if len(runes) > topicRunes {
		runes = runes[:topicRunes]
	}
	return string(runes) + "…"
}
