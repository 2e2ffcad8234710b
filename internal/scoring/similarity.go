// Package scoring computes the per-component scores of a candidate.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/spigell/resume-ranker/internal/embedding"
)

// ErrDimensionMismatch is returned when two vectors have different lengths.
var ErrDimensionMismatch = errors.New("vector dimensions differ")

// Clamp bounds x to [0, 1]. NaN becomes 0.
func Clamp(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return math.Max(0, math.Min(1, x))
}

// Cosine returns the cosine similarity of a and b in [-1, 1]. A zero vector
// yields 0.
func Cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d and %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// Similarity encodes both texts with a single request and returns their
// cosine similarity clamped to [0, 1]. Encoder errors are returned as is.
func Similarity(ctx context.Context, a, b string, enc embedding.Encoder) (float64, error) {
	vectors, err := enc.Encode(ctx, []string{a, b})
	if err != nil {
		return 0, err
	}
	if err := embedding.CheckCount(2, vectors); err != nil {
		return 0, err
	}

	sim, err := Cosine(vectors[0], vectors[1])
	if err != nil {
		return 0, err
	}

	return Clamp(sim), nil
}
