// Package report turns ranked score records into the candidate lists shown to
// and exported for the user.
package report

import (
	"fmt"
	"strings"

	"github.com/spigell/resume-ranker/internal/ranking"
	"github.com/spigell/resume-ranker/internal/resume"
)

// Candidate is a ranked record tagged with the document it was read from.
type Candidate struct {
	ranking.ScoreRecord
	DocumentID string `json:"-"`
	Source     string `json:"-"`
}

type Candidates struct {
	Items []*Candidate
}

// Decorate attaches the document identifier to every ranked record. The
// document is found through the record's input position, so the order of
// records does not matter. Names become "{Name} ({id})", or "Candidate_{id}"
// when blank.
func Decorate(records []ranking.ScoreRecord, docs []resume.Document) (*Candidates, error) {
	candidates := &Candidates{Items: make([]*Candidate, 0, len(records))}
	for _, record := range records {
		if record.Index < 0 || record.Index >= len(docs) {
			return nil, fmt.Errorf("record %q points at document %d, only %d loaded", record.Name, record.Index, len(docs))
		}

		doc := docs[record.Index]
		if strings.TrimSpace(record.Name) == "" {
			record.Name = fmt.Sprintf("Candidate_%s", doc.ID)
		} else {
			record.Name = fmt.Sprintf("%s (%s)", record.Name, doc.ID)
		}

		candidates.Items = append(candidates.Items, &Candidate{
			ScoreRecord: record,
			DocumentID:  doc.ID,
			Source:      doc.Source,
		})
	}
	return candidates, nil
}

// Copy returns a list sharing the candidates but not the slice, so filtering
// the copy leaves c intact.
func (c *Candidates) Copy() *Candidates {
	return &Candidates{Items: append([]*Candidate(nil), c.Items...)}
}

func (c *Candidates) Len() int {
	return len(c.Items)
}

// Records returns the score records in rank order.
func (c *Candidates) Records() []ranking.ScoreRecord {
	records := make([]ranking.ScoreRecord, 0, len(c.Items))
	for _, candidate := range c.Items {
		records = append(records, candidate.ScoreRecord)
	}
	return records
}

func (c *Candidates) FindByDocumentID(id string) *Candidate {
	for _, candidate := range c.Items {
		if candidate.DocumentID == id {
			return candidate
		}
	}
	return nil
}

// Exclude removes candidates whose document ID is listed and returns the
// removed IDs. Rank order is preserved.
func (c *Candidates) Exclude(ids []string) []string {
	targets := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		targets[id] = struct{}{}
	}

	var excluded []string
	kept := c.Items[:0]
	for _, candidate := range c.Items {
		if _, ok := targets[candidate.DocumentID]; ok {
			excluded = append(excluded, candidate.DocumentID)
			continue
		}
		kept = append(kept, candidate)
	}
	c.Items = kept

	return excluded
}

// ExcludeBelow removes candidates with a total score under minimum.
// Candidates are dropped one by one, so documents sharing an ID from
// different directories are judged separately.
func (c *Candidates) ExcludeBelow(minimum float64) []string {
	var low []string
	kept := c.Items[:0]
	for _, candidate := range c.Items {
		if candidate.TotalScore < minimum {
			low = append(low, candidate.DocumentID)
			continue
		}
		kept = append(kept, candidate)
	}
	c.Items = kept

	return low
}

// Truncate keeps the first n candidates and returns the IDs of the rest.
func (c *Candidates) Truncate(n int) []string {
	if n < 0 || n >= len(c.Items) {
		return nil
	}

	dropped := make([]string, 0, len(c.Items)-n)
	for _, candidate := range c.Items[n:] {
		dropped = append(dropped, candidate.DocumentID)
	}
	c.Items = c.Items[:n]

	return dropped
}
