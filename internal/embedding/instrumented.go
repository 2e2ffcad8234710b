package embedding

import (
	"context"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/metrics"
	"github.com/spigell/resume-ranker/internal/util"
)

const defaultMaxLogLength = 200

// Instrumented logs and counts every request sent to the wrapped encoder.
type Instrumented struct {
	next      Encoder
	provider  string
	metrics   *metrics.Metrics
	logger    *zap.Logger
	maxLogLen int
}

// NewInstrumented wraps next. A nil metrics or logger disables that part.
func NewInstrumented(next Encoder, provider, model string, m *metrics.Metrics, log *zap.Logger, maxLogLength int) *Instrumented {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Instrumented{
		next:      next,
		provider:  provider,
		metrics:   m,
		logger:    logger.WithEmbedding(log, provider, model),
		maxLogLen: maxLogLength,
	}
}

func (i *Instrumented) Encode(ctx context.Context, texts []string) ([][]float64, error) {
	fields := []zap.Field{zap.Int("texts", len(texts))}
	if len(texts) > 0 {
		fields = append(fields,
			zap.Int("first_text_length", utf8.RuneCountInString(texts[0])),
			zap.String("first_text_preview", util.TruncateForLog(texts[0], i.maxLogLen)),
		)
	}
	i.logger.Debug("embedding request", fields...)

	started := time.Now()
	vectors, err := i.next.Encode(ctx, texts)
	i.metrics.ObserveEncode(i.provider, len(texts), err)

	if err != nil {
		i.logger.Warn("embedding request failed", zap.Int("texts", len(texts)), zap.Error(err))
		return nil, err
	}

	dimensions := 0
	if len(vectors) > 0 {
		dimensions = len(vectors[0])
	}
	i.logger.Debug("embedding response",
		zap.Int("vectors", len(vectors)),
		zap.Int("dimensions", dimensions),
		zap.Duration("took", time.Since(started)),
	)

	return vectors, nil
}
