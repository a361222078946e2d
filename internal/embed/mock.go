package embed

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
)

// MockEmbedder is a deterministic provider for tests. Texts present in
// Vectors get those exact vectors; anything else gets a stable pseudo-random
// vector derived from the text hash, so unrelated texts land far apart.
type MockEmbedder struct {
	Vectors map[string][]float32
	Calls   int
}

// NewMockEmbedder creates a mock with optional fixed vectors
func NewMockEmbedder(vectors map[string][]float32) *MockEmbedder {
	return &MockEmbedder{Vectors: vectors}
}

// Name returns the provider name
func (e *MockEmbedder) Name() string { return "mock" }

// Embed returns deterministic vectors, one per text
func (e *MockEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	e.Calls++

	out := make([][]float32, len(texts))
	for i, text := range texts {
		if v, ok := e.Vectors[text]; ok {
			out[i] = v
			continue
		}
		out[i] = hashVector(text)
	}
	return out, nil
}

// hashVector expands a text hash into an 8-dim vector in [-1, 1]
func hashVector(text string) []float32 {
	sum := sha256.Sum256([]byte(text))

	v := make([]float32, 8)
	for i := range v {
		bits := binary.BigEndian.Uint32(sum[i*4 : i*4+4])
		v[i] = float32(bits%2000)/1000 - 1
	}
	return v
}
