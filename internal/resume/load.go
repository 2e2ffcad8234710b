package resume

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const jsonExt = ".json"

// ErrNoDocuments is returned when none of the given paths yields a résumé file.
var ErrNoDocuments = errors.New("no resume files found")

// Document is a résumé file decoded into a Value.
type Document struct {
	Source string
	// ID is the file name without the .json suffix.
	ID     string
	Record Value
}

// LoadError describes a file that could not be read or decoded.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("error decoding %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// DocumentID derives the identifier used to tag candidates from a file path.
func DocumentID(path string) string {
	return strings.TrimSuffix(filepath.Base(path), jsonExt)
}

// Collect expands the given paths into a list of résumé files. Directories
// contribute their *.json entries sorted by name. Files are kept as given.
func Collect(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}

		stat, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !stat.IsDir() {
			files = append(files, path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("read directory %s: %w", path, err)
		}

		var found []string
		for _, entry := range entries {
			if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), jsonExt) {
				continue
			}
			found = append(found, filepath.Join(path, entry.Name()))
		}
		sort.Strings(found)
		files = append(files, found...)
	}

	if len(files) == 0 {
		return nil, ErrNoDocuments
	}

	return files, nil
}

// LoadFiles reads and decodes every file. Files that fail are reported and
// skipped so one broken upload does not abort the batch.
func LoadFiles(paths []string) ([]Document, []*LoadError) {
	docs := make([]Document, 0, len(paths))
	var failed []*LoadError

	for _, path := range paths {
		doc, err := LoadFile(path)
		if err != nil {
			failed = append(failed, &LoadError{Source: path, Err: err})
			continue
		}
		docs = append(docs, doc)
	}

	return docs, failed
}

// LoadFile reads and decodes a single résumé file.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}

	record, err := Parse(data)
	if err != nil {
		return Document{}, fmt.Errorf("not valid JSON: %w", err)
	}

	return Document{
		Source: path,
		ID:     DocumentID(path),
		Record: record,
	}, nil
}

// Records returns the decoded records of the documents in order.
func Records(docs []Document) []Value {
	records := make([]Value, 0, len(docs))
	for _, doc := range docs {
		records = append(records, doc.Record)
	}
	return records
}
