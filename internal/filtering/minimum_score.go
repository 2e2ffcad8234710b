package filtering

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/report"
)

type minimumScoreFilter struct {
	minimum float64
	reason  string
	logger  *zap.Logger
}

// NewMinimumScore creates a filter dropping candidates whose total score is
// below minimum. A zero minimum disables it.
func NewMinimumScore(minimum float64, logger *zap.Logger) Filter {
	f := &minimumScoreFilter{minimum: minimum, logger: logger}
	if minimum == 0 {
		f.reason = "minimum score is not set"
	}
	return f
}

func (f *minimumScoreFilter) Name() string { return "minimum_score" }

func (f *minimumScoreFilter) Disable(reason string) {
	f.minimum = 0
	f.reason = reason
}

func (f *minimumScoreFilter) IsEnabled() bool { return f.minimum != 0 }

func (f *minimumScoreFilter) Validate() error {
	if f.minimum < 0 || f.minimum > 1 {
		return fmt.Errorf("minimum total score must be within [0, 1], got %v", f.minimum)
	}
	return nil
}

func (f *minimumScoreFilter) Apply(_ context.Context, c *report.Candidates) (*report.Candidates, Step, error) {
	initial := c.Len()
	excluded := c.ExcludeBelow(f.minimum)
	if f.logger != nil && len(excluded) > 0 {
		f.logger.Info("excluding candidates below minimum score",
			zap.Float64("minimum", f.minimum),
			zap.Strings("excluded_candidates", excluded),
			zap.Int("candidates_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *minimumScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"minimum": strconv.FormatFloat(f.minimum, 'f', -1, 64)},
	}
}
