package corpus

import (
	"github.com/greenuni-dev/campus-chatbot-go/internal/normalize"
)

// Snapshot is the filtered, normalized view of the knowledge base that
// the engine ranks against. All slices are parallel and keep the original
// record order. A Snapshot is never mutated after construction; rebuilds
// produce a fresh one.
type Snapshot struct {
	Questions  []string              // normalized questions
	Answers    []string              // raw answers (exclusion identity)
	Keywords   []map[string]struct{} // normalized keyword sets
	Categories []string              // resolved category labels
	Source     []int                 // index of each row in the full record slice
}

// BuildSnapshot filters out records whose raw answer is in excluded and
// normalizes the survivors. A nil excluded set means no filtering.
func BuildSnapshot(records []Record, n *normalize.Normalizer, cat Categorizer, excluded map[string]struct{}) *Snapshot {
	snap := &Snapshot{}

	for i, rec := range records {
		if _, blocked := excluded[rec.Answer]; blocked {
			continue
		}

		keywords := make(map[string]struct{}, len(rec.Keywords))
		for _, kw := range rec.Keywords {
			if normalized := n.Normalize(kw); normalized != "" {
				keywords[normalized] = struct{}{}
			}
		}

		snap.Questions = append(snap.Questions, n.Normalize(rec.Question))
		snap.Answers = append(snap.Answers, rec.Answer)
		snap.Keywords = append(snap.Keywords, keywords)
		snap.Categories = append(snap.Categories, rec.Label(cat))
		snap.Source = append(snap.Source, i)
	}

	return snap
}

// Len returns the number of records surviving exclusion filtering.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Questions)
}

// DistinctCategories returns the number of distinct category labels.
func (s *Snapshot) DistinctCategories() int {
	if s == nil {
		return 0
	}
	seen := make(map[string]struct{}, 4)
	for _, label := range s.Categories {
		seen[label] = struct{}{}
	}
	return len(seen)
}
