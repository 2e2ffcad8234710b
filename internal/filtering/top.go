package filtering

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/report"
)

// DefaultTop is the number of candidates shortlisted when not configured.
const DefaultTop = 5

type topFilter struct {
	n        int
	disabled bool
	reason   string
	logger   *zap.Logger
}

// NewTop creates a filter keeping the n best ranked candidates.
func NewTop(n int, logger *zap.Logger) Filter {
	return &topFilter{n: n, logger: logger}
}

func (f *topFilter) Name() string { return "top" }

func (f *topFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *topFilter) IsEnabled() bool { return !f.disabled }

func (f *topFilter) Validate() error {
	if f.n < 1 {
		return fmt.Errorf("top must be at least 1, got %d", f.n)
	}
	return nil
}

func (f *topFilter) Apply(_ context.Context, c *report.Candidates) (*report.Candidates, Step, error) {
	initial := c.Len()
	dropped := c.Truncate(f.n)
	if f.logger != nil && len(dropped) > 0 {
		f.logger.Debug("keeping best ranked candidates",
			zap.Int("top", f.n),
			zap.Strings("dropped_candidates", dropped),
		)
	}

	return c, Step{Initial: initial, Dropped: len(dropped), Left: c.Len()}, nil
}

func (f *topFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"top": strconv.Itoa(f.n)},
	}
}
