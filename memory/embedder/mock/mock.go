// Package mock provides a deterministic embedder for tests and for running
// the semantic index without a local model. It gives no real semantic
// similarity, only stable vectors per input.
package mock

import (
	"context"
	"hash/fnv"
	"math"
)

const dimensions = 384 // matches all-MiniLM-L6-v2

// Embedder generates deterministic embeddings from a text hash.
type Embedder struct{}

// New creates a mock embedder.
func New() *Embedder {
	return &Embedder{}
}

// Embed creates a deterministic unit vector from the text.
func (m *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	seed := h.Sum64()

	embedding := make([]float32, dimensions)
	for i := range embedding {
		// LCG keyed on the text hash
		seed = seed*6364136223846793005 + 1442695040888963407
		embedding[i] = float32(int64(seed)) / float32(math.MaxInt64)
	}
	return normalize(embedding), nil
}

// Dimensions returns the embedding size.
func (m *Embedder) Dimensions() int {
	return dimensions
}

func normalize(vec []float32) []float32 {
	var norm float32
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec
	}
	norm = float32(math.Sqrt(float64(norm)))
	for i, v := range vec {
		vec[i] = v / norm
	}
	return vec
}
