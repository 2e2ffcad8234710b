package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spigell/resume-ranker/internal/ranking"
)

// Summary returns one headline per candidate, limited to the first n when n
// is positive.
func (c *Candidates) Summary(n int) []string {
	items := c.Items
	if n > 0 && n < len(items) {
		items = items[:n]
	}

	lines := make([]string, 0, len(items))
	for i, candidate := range items {
		lines = append(lines, fmt.Sprintf("#%d: %s (Score: %.2f)", i+1, candidate.Name, candidate.TotalScore))
	}
	return lines
}

// Details renders the headline of a candidate followed by its component scores.
func (c *Candidate) Details(position int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d: %s (Score: %.2f)\n", position, c.Name, c.TotalScore)
	fmt.Fprintf(&b, "  Total Score: %.2f\n", c.TotalScore)
	for _, component := range c.Components() {
		fmt.Fprintf(&b, "  %s: %.2f\n", component.Name, component.Score)
	}
	if c.Source != "" {
		fmt.Fprintf(&b, "  Source: %s\n", c.Source)
	}
	return b.String()
}

// Entry is a single line of a per-component report.
type Entry struct {
	Candidate string
	Score     float64
}

// ByComponent groups scores per component, each group sorted by score with
// rank order kept on ties. The total score is reported under "Total".
func (c *Candidates) ByComponent() map[string][]Entry {
	report := make(map[string][]Entry)
	for _, candidate := range c.Items {
		for _, component := range candidate.Components() {
			report[component.Name] = append(report[component.Name], Entry{Candidate: candidate.Name, Score: component.Score})
		}
		report[ComponentTotal] = append(report[ComponentTotal], Entry{Candidate: candidate.Name, Score: candidate.TotalScore})
	}

	for _, entries := range report {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Score > entries[j].Score
		})
	}
	return report
}

const ComponentTotal = "Total"

// ComponentOrder lists the keys of ByComponent in display order.
func ComponentOrder() []string {
	return []string{
		ranking.ComponentSkill,
		ranking.ComponentExperience,
		ranking.ComponentEducation,
		ranking.ComponentKeyword,
		ComponentTotal,
	}
}

// Bar draws score as a fixed width text bar.
func Bar(score float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(score*float64(width) + 0.5)
	filled = max(0, min(width, filled))
	return strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
}
