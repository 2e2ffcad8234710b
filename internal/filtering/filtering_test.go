package filtering

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-ranker/internal/ranking"
	"github.com/spigell/resume-ranker/internal/report"
)

func candidates(scores ...float64) *report.Candidates {
	c := &report.Candidates{}
	for i, score := range scores {
		id := string(rune('a' + i))
		c.Items = append(c.Items, &report.Candidate{
			ScoreRecord: ranking.ScoreRecord{Name: strings.ToUpper(id), TotalScore: score, Index: i},
			DocumentID:  id,
		})
	}
	return c
}

func ids(c *report.Candidates) string {
	out := make([]string, 0, c.Len())
	for _, item := range c.Items {
		out = append(out, item.DocumentID)
	}
	return strings.Join(out, ",")
}

func writeExcludeFile(t *testing.T, ids ...string) string {
	t.Helper()

	excluded := &report.ExcludedCandidates{}
	for _, id := range ids {
		excluded.Items = append(excluded.Items, &report.ExcludedCandidate{ID: id})
	}

	path := filepath.Join(t.TempDir(), "excluded.json")
	if err := excluded.ToFile(path); err != nil {
		t.Fatalf("write exclude file: %v", err)
	}
	return path
}

func TestRunAppliesStepsInOrder(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	f := New([]Filter{
		NewMinimumScore(0.3, logger),
		NewExcludeFile(writeExcludeFile(t, "b"), logger),
		NewTop(2, logger),
	}, logger)

	got, err := f.Run(context.Background(), candidates(0.9, 0.8, 0.7, 0.5, 0.2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids(got) != "a,c" {
		t.Fatalf("unexpected shortlist %q", ids(got))
	}

	steps := logs.FilterMessage("filter step").All()
	if len(steps) != 3 {
		t.Fatalf("expected 3 step logs, got %d", len(steps))
	}
	want := []struct {
		name                   string
		initial, dropped, left int64
	}{
		{"minimum_score", 5, 1, 4},
		{"exclude_file", 4, 1, 3},
		{"top", 3, 1, 2},
	}
	for i, w := range want {
		fields := steps[i].ContextMap()
		if fields["name"] != w.name || fields["initial"] != w.initial || fields["dropped"] != w.dropped || fields["left"] != w.left {
			t.Fatalf("step %d: unexpected fields %v", i, fields)
		}
	}
}

func TestRunSkipsDisabledSteps(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	f := New([]Filter{
		NewMinimumScore(0, logger),
		NewExcludeFile("", logger),
		NewTop(DefaultTop, logger),
	}, logger)
	f.DisableByName("top", "all candidates requested")

	got, err := f.Run(context.Background(), candidates(0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Len() != 7 {
		t.Fatalf("expected every candidate to stay, got %d", got.Len())
	}
	if logs.FilterMessage("filter disabled").Len() != 3 {
		t.Fatalf("expected three disabled filters to be logged")
	}

	statuses := f.Describe()
	if len(statuses) != 3 || statuses[2].Enabled || statuses[2].Reason != "all candidates requested" {
		t.Fatalf("unexpected statuses %+v", statuses)
	}
}

func TestRunValidatesBeforeApplying(t *testing.T) {
	path := writeExcludeFile(t, "a")

	tests := []struct {
		name  string
		steps []Filter
		want  string
	}{
		{name: "top below one", steps: []Filter{NewExcludeFile(path, nil), NewTop(0, nil)}, want: "top: top must be at least 1"},
		{name: "minimum above one", steps: []Filter{NewMinimumScore(1.5, nil)}, want: "minimum_score: minimum total score"},
		{name: "negative minimum", steps: []Filter{NewMinimumScore(-0.1, nil)}, want: "minimum_score"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := candidates(0.9, 0.1)
			_, err := New(tt.steps, nil).Run(context.Background(), c)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q error, got %v", tt.want, err)
			}
			if c.Len() != 2 {
				t.Fatalf("no step may run when validation fails")
			}
		})
	}
}

func TestExcludeFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := New([]Filter{NewExcludeFile(path, nil)}, nil).Run(context.Background(), candidates(0.5))
	if err == nil || !strings.Contains(err.Error(), "exclude_file: getting excluded candidates") {
		t.Fatalf("expected exclude file error, got %v", err)
	}
}

func TestExcludeFileMissingIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-yet-created.json")

	got, err := New([]Filter{NewExcludeFile(path, nil)}, nil).Run(context.Background(), candidates(0.5, 0.4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("expected nothing excluded, got %d left", got.Len())
	}
}
