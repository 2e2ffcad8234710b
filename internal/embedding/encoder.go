// Package embedding defines the text embedding capability used for semantic
// similarity and the decorators shared by every provider.
package embedding

import (
	"context"
	"errors"
	"fmt"
)

// Supported providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderLocal  = "local"
)

// ErrVectorCount is returned when a provider answers with a different number
// of vectors than texts it was given.
var ErrVectorCount = errors.New("embedding count mismatch")

// Encoder turns texts into fixed-size vectors, one per text in input order.
// Implementations must be safe for concurrent use.
type Encoder interface {
	Encode(ctx context.Context, texts []string) ([][]float64, error)
}

// EncoderFunc adapts a function to the Encoder interface.
type EncoderFunc func(ctx context.Context, texts []string) ([][]float64, error)

func (f EncoderFunc) Encode(ctx context.Context, texts []string) ([][]float64, error) {
	return f(ctx, texts)
}

// CheckCount verifies that a provider returned one vector per text.
func CheckCount(texts int, vectors [][]float64) error {
	if len(vectors) != texts {
		return fmt.Errorf("%w: expected %d, got %d", ErrVectorCount, texts, len(vectors))
	}
	return nil
}
