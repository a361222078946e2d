package cluster

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/accordhq/accord/internal/embed"
	"github.com/accordhq/accord/internal/model"
)

// DefaultThreshold is the cosine similarity above which two claims are
// considered the same assertion
const DefaultThreshold = 0.82

// embedBatchSize caps how many texts go into one provider call
const embedBatchSize = 64

// Clusterer groups semantically equivalent claims across documents.
//
// The algorithm is greedy single-linkage against the cluster seed only: each
// unassigned claim opens a cluster, and every later unassigned claim joins it
// when its similarity to the seed (not to all members) clears the threshold.
// Membership is therefore order-dependent and non-transitive; downstream
// conflict topology relies on this exact behavior, so it must not be
// "upgraded" to full transitive closure.
type Clusterer struct {
	provider  embed.Provider
	threshold float64
	workers   int
}

// NewClusterer creates a clusterer over the given embedding provider
func NewClusterer(provider embed.Provider, cfg model.ClusterConfig) *Clusterer {
	threshold := cfg.SimilarityThreshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}

	workers := cfg.EmbedWorkers
	if workers <= 0 {
		workers = 4
	}

	return &Clusterer{
		provider:  provider,
		threshold: threshold,
		workers:   workers,
	}
}

// Cluster partitions the claims: every claim lands in exactly one cluster,
// clusters preserve input order. Empty input yields an empty partition.
func (c *Clusterer) Cluster(ctx context.Context, claims []model.Claim) ([][]model.Claim, error) {
	if len(claims) == 0 {
		return nil, nil
	}

	texts := make([]string, len(claims))
	for i, claim := range claims {
		texts[i] = claim.Text
	}

	vectors, err := c.embedAll(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed claims: %w", err)
	}
	for i := range vectors {
		normalize(vectors[i])
	}

	assigned := make([]bool, len(claims))
	var clusters [][]model.Claim

	for i := range claims {
		if assigned[i] {
			continue
		}

		group := []model.Claim{claims[i]}
		assigned[i] = true

		for j := i + 1; j < len(claims); j++ {
			if assigned[j] {
				continue
			}
			if Cosine(vectors[i], vectors[j]) >= c.threshold {
				group = append(group, claims[j])
				assigned[j] = true
			}
		}

		clusters = append(clusters, group)
	}

	return clusters, nil
}

// embedAll embeds texts in batches, fanning batches out across a bounded
// number of concurrent provider calls
func (c *Clusterer) embedAll(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))

	type batch struct {
		start int
		texts []string
	}
	var batches []batch
	for start := 0; start < len(texts); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batches = append(batches, batch{start: start, texts: texts[start:end]})
	}

	semaphore := make(chan struct{}, c.workers)
	errs := make([]error, len(batches))
	var wg sync.WaitGroup

	for bi, b := range batches {
		wg.Add(1)
		go func(bi int, b batch) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				errs[bi] = ctx.Err()
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			out, err := c.provider.Embed(ctx, b.texts)
			if err != nil {
				errs[bi] = err
				return
			}
			for i, v := range out {
				vectors[b.start+i] = v
			}
		}(bi, b)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return vectors, nil
}

// Cosine computes cosine similarity with a small norm guard
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	return dot / (math.Sqrt(normA)*math.Sqrt(normB) + 1e-9)
}

// normalize scales a vector to unit length in place
func normalize(v []float32) {
	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return
	}
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
}
