// Package mock provides a deterministic embedder for tests and offline use.
package mock

import (
	"context"
	"hash/fnv"
	"math"
)

// Embedder generates stable pseudo-embeddings from a text hash. Identical
// inputs always produce identical vectors, which is what retrieval tests
// need; there is no real semantic similarity.
type Embedder struct {
	dimensions int
}

// New creates a mock embedder with the given dimensionality; dims of zero
// or less defaults to 384.
func New(dims int) *Embedder {
	if dims <= 0 {
		dims = 384
	}
	return &Embedder{dimensions: dims}
}

// Embed derives a unit vector from the FNV hash of the text.
func (e *Embedder) Embed(_ context.Context, text string) ([]float32, error) {
	h := fnv.New64a()
	h.Write([]byte(text))
	seed := h.Sum64()

	vec := make([]float32, e.dimensions)
	for i := range vec {
		// LCG advance per component for a spread of values.
		seed = seed*6364136223846793005 + 1442695040888963407
		vec[i] = float32(int64(seed)) / float32(math.MaxInt64)
	}
	return unit(vec), nil
}

// Dimensions returns the embedding size.
func (e *Embedder) Dimensions() int {
	return e.dimensions
}

func unit(vec []float32) []float32 {
	var sum float32
	for _, v := range vec {
		sum += v * v
	}
	if sum == 0 {
		return vec
	}
	norm := float32(math.Sqrt(float64(sum)))
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}
