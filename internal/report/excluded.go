package report

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"
)

// ExcludedCandidates is the content of an exclude file.
type ExcludedCandidates struct {
	Items []*ExcludedCandidate
}

type ExcludedCandidate struct {
	ID         string
	Name       string
	ExcludedAt time.Time
	Reason     string `json:",omitempty"`
}

func (c *Candidates) ToExcluded(reason string) *ExcludedCandidates {
	excluded := &ExcludedCandidates{}
	now := time.Now().UTC()
	for _, candidate := range c.Items {
		excluded.Items = append(excluded.Items, &ExcludedCandidate{
			ID:         candidate.DocumentID,
			Name:       candidate.Name,
			ExcludedAt: now,
			Reason:     reason,
		})
	}
	return excluded
}

// GetExcludedFromFile reads an exclude file. A missing or empty file yields an
// empty list.
func GetExcludedFromFile(path string) (*ExcludedCandidates, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &ExcludedCandidates{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedCandidates{}, nil
	}

	var excluded ExcludedCandidates
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

// Append adds the entries of s that are not listed yet.
func (e *ExcludedCandidates) Append(s *ExcludedCandidates) {
	seen := make(map[string]struct{}, len(e.Items))
	for _, item := range e.Items {
		seen[item.ID] = struct{}{}
	}
	for _, item := range s.Items {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		e.Items = append(e.Items, item)
	}
}

func (e *ExcludedCandidates) IDs() []string {
	ids := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

func (e *ExcludedCandidates) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
