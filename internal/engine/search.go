package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/greenuni-dev/campus-chatbot-go/internal/classify"
	apperrors "github.com/greenuni-dev/campus-chatbot-go/internal/errors"
	"github.com/greenuni-dev/campus-chatbot-go/internal/tfidf"
)

// Result sources.
const (
	SourceSearch   = "search"
	SourceSpecial  = "special_command"
	SourceGreeting = "greeting"
	SourceFallback = "fallback"
)

// Result is a single chat answer with its ranking diagnostics.
type Result struct {
	Answer             string  `json:"answer"`
	Confidence         float64 `json:"confidence"`
	Matched            bool    `json:"matched"`
	Source             string  `json:"source"`
	PredictedCategory  string  `json:"predicted_category,omitempty"`
	CategoryConfidence float64 `json:"category_confidence,omitempty"`
	Score              float64 `json:"score,omitempty"`
	BaseSimilarity     float64 `json:"base_similarity,omitempty"`
	CandidateRank      int     `json:"candidate_rank,omitempty"`
	AnalyzedItems      int     `json:"analyzed_items"`
	BlockedAnswers     int     `json:"blocked_answers"`

	// Fallback diagnostics.
	Reason            string  `json:"reason,omitempty"`
	BlockedCandidates int     `json:"blocked_candidates,omitempty"`
	BestScore         float64 `json:"best_score,omitempty"`
}

// Search answers a free-form query. Intercepts for time requests and
// greetings run before any corpus access; everything else goes through
// the blended ranking over the exclusion-filtered snapshot. A query
// that is empty after trimming is a validation error; a query that
// survives trimming but normalizes to nothing gets a fallback answer.
func (e *Engine) Search(query string) (*Result, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		if e.metrics != nil {
			e.metrics.RecordSearch("invalid", 0)
		}
		return nil, apperrors.NewValidationError("message", "cannot be empty")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	started := e.now()
	result := e.search(trimmed)
	if e.metrics != nil {
		e.metrics.RecordSearch(outcomeFor(result), e.now().Sub(started).Seconds())
	}

	e.log.WithFields(map[string]any{
		"source":     result.Source,
		"matched":    result.Matched,
		"confidence": result.Confidence,
	}).Debug("Search completed")

	return result, nil
}

func outcomeFor(r *Result) string {
	switch r.Source {
	case SourceSpecial, SourceGreeting:
		return "special"
	case SourceFallback:
		return "fallback"
	default:
		return "matched"
	}
}

// search runs under e.mu.
func (e *Engine) search(trimmed string) *Result {
	lower := strings.ToLower(trimmed)

	// Substring check on the raw lowered input, not the normalized form.
	if strings.Contains(lower, "time") {
		return &Result{
			Answer:     fmt.Sprintf("The current time is %s.", e.now().Format("03:04 PM")),
			Confidence: 1.0,
			Matched:    true,
			Source:     SourceSpecial,
		}
	}
	if strings.Contains(lower, "how are you") || strings.Contains(lower, "how r u") {
		return &Result{
			Answer:     e.cfg.GreetingAnswer,
			Confidence: 1.0,
			Matched:    true,
			Source:     SourceGreeting,
		}
	}

	s := e.state

	processed := e.norm.Normalize(trimmed)
	if processed == "" {
		return e.fallback(s, "query contains no searchable terms", 0, 0)
	}
	if s.snapshot.Len() == 0 {
		return e.fallback(s, "no records available", 0, 0)
	}

	queryVec := s.vectorizer.Transform(processed)

	predicted, catConf := classify.DefaultLabel, classify.DefaultConfidence
	if s.classifier != nil {
		predicted, catConf = s.classifier.Predict(queryVec)
	}

	inputSet := make(map[string]struct{})
	for _, tok := range strings.Fields(processed) {
		inputSet[tok] = struct{}{}
	}

	type candidate struct {
		idx   int
		score float64
		base  float64
	}
	candidates := make([]candidate, s.snapshot.Len())
	for i := range candidates {
		score, base := e.score(s, i, processed, queryVec, inputSet, predicted)
		candidates[i] = candidate{idx: i, score: score, base: base}
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].score > candidates[b].score
	})

	topK := e.cfg.TopK
	if topK > len(candidates) {
		topK = len(candidates)
	}

	blocked := 0
	for rank := 0; rank < topK; rank++ {
		c := candidates[rank]
		if _, isBlocked := s.excluded[s.snapshot.Answers[c.idx]]; isBlocked {
			blocked++
			continue
		}
		if c.score < e.cfg.Threshold {
			break // sorted descending, nothing further can qualify
		}
		return &Result{
			Answer:             s.snapshot.Answers[c.idx],
			Confidence:         math.Min(1.0, c.score*(0.7+0.3*catConf)),
			Matched:            true,
			Source:             SourceSearch,
			PredictedCategory:  predicted,
			CategoryConfidence: catConf,
			Score:              c.score,
			BaseSimilarity:     c.base,
			CandidateRank:      rank + 1,
			AnalyzedItems:      s.snapshot.Len(),
			BlockedAnswers:     len(s.excluded),
		}
	}

	return e.fallback(s, "no candidate scored above the acceptance threshold", blocked, candidates[0].score)
}

// score blends lexical and semantic signals for one snapshot row. The
// near-exact regime kicks in when the normalized query equals the
// question, or covers at least 80% of the query's own tokens.
func (e *Engine) score(s *state, i int, processed string, queryVec tfidf.Vector, inputSet map[string]struct{}, predicted string) (score, base float64) {
	base = tfidf.Cosine(queryVec, s.docs[i])

	questionSet := make(map[string]struct{})
	for _, tok := range strings.Fields(s.snapshot.Questions[i]) {
		questionSet[tok] = struct{}{}
	}

	overlap := 0
	for tok := range inputSet {
		if _, ok := questionSet[tok]; ok {
			overlap++
		}
	}

	exact := 0.0
	switch {
	case processed == s.snapshot.Questions[i]:
		exact = 1.0
	case float64(overlap) >= 0.8*float64(len(inputSet)):
		exact = 0.8
	}

	keyword := 0.0
	if n := len(s.snapshot.Keywords[i]); n > 0 {
		hits := 0
		for tok := range inputSet {
			if _, ok := s.snapshot.Keywords[i][tok]; ok {
				hits++
			}
		}
		keyword = float64(hits) / float64(n)
	}

	category := 0.0
	if s.snapshot.Categories[i] == predicted {
		category = 0.3
	}

	w := e.cfg.Weights
	if exact > 0.7 {
		return w.ExactMatch*exact + w.ExactSimilarity*base + w.ExactKeyword*keyword + w.ExactCategory*category, base
	}

	questionOverlap := 0.0
	if len(questionSet) > 0 {
		questionOverlap = float64(overlap) / float64(len(questionSet))
	}
	return w.Similarity*base + w.Category*category + w.Keyword*keyword + w.QuestionOverlap*questionOverlap, base
}

func (e *Engine) fallback(s *state, reason string, blocked int, best float64) *Result {
	return &Result{
		Answer:            e.cfg.FallbackAnswer,
		Confidence:        FallbackConfidence,
		Matched:           false,
		Source:            SourceFallback,
		Reason:            reason,
		BlockedCandidates: blocked,
		BestScore:         best,
		AnalyzedItems:     s.snapshot.Len(),
		BlockedAnswers:    len(s.excluded),
	}
}
