package filtering

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/report"
)

type excludeFileFilter struct {
	path   string
	reason string
	logger *zap.Logger
}

// NewExcludeFile creates a filter that removes candidates listed in the exclude file.
func NewExcludeFile(path string, logger *zap.Logger) Filter {
	f := &excludeFileFilter{path: strings.TrimSpace(path), logger: logger}
	if f.path == "" {
		f.reason = "exclude file is not set"
	}
	return f
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Disable(reason string) {
	f.path = ""
	f.reason = reason
}

func (f *excludeFileFilter) IsEnabled() bool { return f.path != "" }

func (f *excludeFileFilter) Validate() error { return nil }

func (f *excludeFileFilter) Apply(_ context.Context, c *report.Candidates) (*report.Candidates, Step, error) {
	initial := c.Len()

	excluded, err := report.GetExcludedFromFile(f.path)
	if err != nil {
		return c, Step{}, fmt.Errorf("getting excluded candidates from file: %w", err)
	}

	removed := c.Exclude(excluded.IDs())
	if f.logger != nil && len(removed) > 0 {
		f.logger.Info("excluding candidates based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_candidates", removed),
			zap.Int("candidates_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(removed), Left: c.Len()}, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
