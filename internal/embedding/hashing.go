package embedding

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

const defaultHashingDimensions = 256

// Hashing is an offline encoder projecting lowercase word tokens into a fixed
// number of buckets. Texts sharing words get a high cosine similarity. It needs
// no network access and is deterministic.
type Hashing struct {
	dimensions int
}

// NewHashing creates a hashing encoder. Non-positive dimensions select the default.
func NewHashing(dimensions int) *Hashing {
	if dimensions <= 0 {
		dimensions = defaultHashingDimensions
	}
	return &Hashing{dimensions: dimensions}
}

// Model describes the encoder configuration for logs.
func (h *Hashing) Model() string {
	return fmt.Sprintf("hashing-%d", h.dimensions)
}

func (h *Hashing) Encode(ctx context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, 0, len(texts))
	for _, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vectors = append(vectors, h.vector(text))
	}
	return vectors, nil
}

func (h *Hashing) vector(text string) []float64 {
	vec := make([]float64, h.dimensions)

	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})

	for _, token := range tokens {
		hasher := fnv.New64a()
		_, _ = hasher.Write([]byte(token))
		sum := hasher.Sum64()

		idx := int(sum % uint64(h.dimensions))
		// the top bit picks the sign so that collisions tend to cancel out
		if sum>>63 == 1 {
			vec[idx]--
		} else {
			vec[idx]++
		}
	}

	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	if norm == 0 {
		return vec
	}

	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}
