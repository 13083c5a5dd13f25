// Package corpus loads the knowledge base and derives the filtered,
// normalized view the search engine ranks against. Records are read-only
// input; the Snapshot is rebuilt from scratch whenever the exclusion list
// changes.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"
)

// Record is one immutable knowledge base fact.
type Record struct {
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Keywords   []string `json:"keywords,omitempty"`
	Category   string   `json:"category,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// Label resolves the record's category: the explicit category field wins,
// then the first entry of the categories list, then the categorizer's
// keyword heuristic.
func (r Record) Label(cat Categorizer) string {
	if r.Category != "" {
		return r.Category
	}
	if len(r.Categories) > 0 && r.Categories[0] != "" {
		return r.Categories[0]
	}
	return cat.Categorize(r.Keywords)
}

// Load reads the knowledge base from a JSON array file.
func Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse knowledge base %s: %w", path, err)
	}
	return records, nil
}
