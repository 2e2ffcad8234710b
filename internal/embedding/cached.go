package embedding

import (
	"context"
	"crypto/sha256"
	"sync"
)

// Cached memoizes vectors per text for the lifetime of the process. Job
// descriptions are encoded once per candidate field, so most lookups hit.
type Cached struct {
	next Encoder

	mu      sync.RWMutex
	vectors map[[sha256.Size]byte][]float64
}

// NewCached wraps next with an in-memory cache.
func NewCached(next Encoder) *Cached {
	return &Cached{
		next:    next,
		vectors: make(map[[sha256.Size]byte][]float64),
	}
}

// Encode returns cached vectors and asks the wrapped encoder only for the texts
// it has not seen yet, each at most once per call.
func (c *Cached) Encode(ctx context.Context, texts []string) ([][]float64, error) {
	keys := make([][sha256.Size]byte, len(texts))
	result := make([][]float64, len(texts))

	var missing []string
	pending := make(map[[sha256.Size]byte]struct{})

	c.mu.RLock()
	for i, text := range texts {
		keys[i] = sha256.Sum256([]byte(text))
		if vec, ok := c.vectors[keys[i]]; ok {
			result[i] = vec
			continue
		}
		if _, ok := pending[keys[i]]; !ok {
			pending[keys[i]] = struct{}{}
			missing = append(missing, text)
		}
	}
	c.mu.RUnlock()

	if len(missing) == 0 {
		return result, nil
	}

	vectors, err := c.next.Encode(ctx, missing)
	if err != nil {
		return nil, err
	}
	if err := CheckCount(len(missing), vectors); err != nil {
		return nil, err
	}

	c.mu.Lock()
	for i, text := range missing {
		c.vectors[sha256.Sum256([]byte(text))] = vectors[i]
	}
	for i := range texts {
		if result[i] == nil {
			result[i] = c.vectors[keys[i]]
		}
	}
	c.mu.Unlock()

	return result, nil
}

// Len returns the number of cached vectors.
func (c *Cached) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.vectors)
}
