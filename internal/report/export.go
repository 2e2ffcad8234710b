package report

import (
	"encoding/json"
	"io"
	"os"
)

// DefaultExportFile is the file name suggested for JSON exports.
const DefaultExportFile = "resume_ranking_results.json"

// WriteJSON writes the candidates as an indented JSON array of flat score
// records.
func (c *Candidates) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c.Records())
}

// ToFile writes the JSON export to path, replacing its content.
func (c *Candidates) ToFile(path string) error {
	if path == "" {
		path = DefaultExportFile
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	return c.WriteJSON(file)
}

func (c *Candidates) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "resume_ranking_results_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := c.WriteJSON(file); err != nil {
		return "", err
	}
	return file.Name(), nil
}
