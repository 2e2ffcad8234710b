package embedding

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type countingEncoder struct {
	mu    sync.Mutex
	calls [][]string
	err   error
}

func (c *countingEncoder) Encode(ctx context.Context, texts []string) ([][]float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls = append(c.calls, append([]string{}, texts...))
	if c.err != nil {
		return nil, c.err
	}

	vectors := make([][]float64, 0, len(texts))
	for _, text := range texts {
		vectors = append(vectors, []float64{float64(len(text))})
	}
	return vectors, nil
}

func TestCachedEncodesEachTextOnce(t *testing.T) {
	next := &countingEncoder{}
	cached := NewCached(next)

	first, err := cached.Encode(context.Background(), []string{"job", "skills", "job"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 3 || first[0][0] != 3 || first[1][0] != 6 || first[2][0] != 3 {
		t.Fatalf("unexpected vectors %v", first)
	}
	if len(next.calls) != 1 || len(next.calls[0]) != 2 {
		t.Fatalf("expected duplicates to be sent once, got %v", next.calls)
	}

	second, err := cached.Encode(context.Background(), []string{"education", "job"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second[1][0] != 3 {
		t.Fatalf("unexpected cached vector %v", second[1])
	}
	if len(next.calls) != 2 || len(next.calls[1]) != 1 || next.calls[1][0] != "education" {
		t.Fatalf("expected only the new text to be encoded, got %v", next.calls)
	}

	if _, err := cached.Encode(context.Background(), []string{"job", "education"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(next.calls) != 2 {
		t.Fatalf("expected a full cache hit, got %d calls", len(next.calls))
	}
	if cached.Len() != 3 {
		t.Fatalf("expected 3 cached vectors, got %d", cached.Len())
	}
}

func TestCachedDoesNotStoreFailures(t *testing.T) {
	boom := errors.New("boom")
	next := &countingEncoder{err: boom}
	cached := NewCached(next)

	if _, err := cached.Encode(context.Background(), []string{"a"}); !errors.Is(err, boom) {
		t.Fatalf("expected encoder error, got %v", err)
	}
	if cached.Len() != 0 {
		t.Fatalf("expected empty cache after failure")
	}
}

func TestCachedRejectsShortResponses(t *testing.T) {
	short := EncoderFunc(func(ctx context.Context, texts []string) ([][]float64, error) {
		return [][]float64{{1}}, nil
	})

	_, err := NewCached(short).Encode(context.Background(), []string{"a", "b"})
	if !errors.Is(err, ErrVectorCount) {
		t.Fatalf("expected ErrVectorCount, got %v", err)
	}
}
