package engine

import (
	"sort"
	"strings"

	apperrors "github.com/greenuni-dev/campus-chatbot-go/internal/errors"
	"github.com/greenuni-dev/campus-chatbot-go/internal/classify"
)

// MatchDetail is one candidate's score breakdown in an analysis.
type MatchDetail struct {
	Question   string  `json:"question"`
	Category   string  `json:"category"`
	Score      float64 `json:"score"`
	Similarity float64 `json:"similarity"`
	Blocked    bool    `json:"blocked"`
}

// Analysis explains how a query would be interpreted without committing
// to an answer.
type Analysis struct {
	Query              string        `json:"query"`
	Normalized         string        `json:"normalized"`
	Tokens             []string      `json:"tokens"`
	PredictedCategory  string        `json:"predicted_category"`
	CategoryConfidence float64       `json:"category_confidence"`
	VocabularySize     int           `json:"vocabulary_size"`
	AvailableRecords   int           `json:"available_records"`
	TopMatches         []MatchDetail `json:"top_matches"`
}

// Analyze returns the normalization, category prediction, and top
// candidate scores for a query. It shares the scoring path with Search
// but never touches the feedback state.
func (e *Engine) Analyze(query string) (*Analysis, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, apperrors.NewValidationError("message", "cannot be empty")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.state
	processed := e.norm.Normalize(trimmed)

	analysis := &Analysis{
		Query:              trimmed,
		Normalized:         processed,
		Tokens:             strings.Fields(processed),
		PredictedCategory:  classify.DefaultLabel,
		CategoryConfidence: classify.DefaultConfidence,
		VocabularySize:     s.vectorizer.VocabSize(),
		AvailableRecords:   s.snapshot.Len(),
	}
	if processed == "" || s.snapshot.Len() == 0 {
		return analysis, nil
	}

	queryVec := s.vectorizer.Transform(processed)
	if s.classifier != nil {
		analysis.PredictedCategory, analysis.CategoryConfidence = s.classifier.Predict(queryVec)
	}

	inputSet := make(map[string]struct{})
	for _, tok := range analysis.Tokens {
		inputSet[tok] = struct{}{}
	}

	matches := make([]MatchDetail, s.snapshot.Len())
	for i := range matches {
		score, base := e.score(s, i, processed, queryVec, inputSet, analysis.PredictedCategory)
		_, blocked := s.excluded[s.snapshot.Answers[i]]
		matches[i] = MatchDetail{
			Question:   s.snapshot.Questions[i],
			Category:   s.snapshot.Categories[i],
			Score:      score,
			Similarity: base,
			Blocked:    blocked,
		}
	}
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score
	})

	limit := 5
	if limit > len(matches) {
		limit = len(matches)
	}
	analysis.TopMatches = matches[:limit]

	return analysis, nil
}
