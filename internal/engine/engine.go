// Package engine is the ranking-and-feedback core: it scores every
// available knowledge record against a query with a blended
// lexical+semantic score and permanently suppresses answers the user
// dislikes, re-ranking around the exclusion list on every rebuild.
//
// All derived state (snapshot, vectorizer, document matrix, classifier)
// lives in one immutable state value that is replaced, never mutated,
// when feedback triggers a rebuild. A single mutex serializes searches
// and rebuilds; rebuild cost is small at this corpus size.
package engine

import (
	"sync"
	"time"

	"github.com/greenuni-dev/campus-chatbot-go/internal/classify"
	"github.com/greenuni-dev/campus-chatbot-go/internal/corpus"
	apperrors "github.com/greenuni-dev/campus-chatbot-go/internal/errors"
	"github.com/greenuni-dev/campus-chatbot-go/internal/logger"
	"github.com/greenuni-dev/campus-chatbot-go/internal/metrics"
	"github.com/greenuni-dev/campus-chatbot-go/internal/normalize"
	"github.com/greenuni-dev/campus-chatbot-go/internal/store"
	"github.com/greenuni-dev/campus-chatbot-go/internal/tfidf"
)

// Weights are the blend coefficients for the two scoring regimes. The
// defaults must be preserved for observable-behavior parity.
type Weights struct {
	// Near-exact regime, used when the exact-question bonus exceeds 0.7.
	ExactMatch      float64
	ExactSimilarity float64
	ExactKeyword    float64
	ExactCategory   float64

	// General regime.
	Similarity      float64
	Category        float64
	Keyword         float64
	QuestionOverlap float64
}

// Config holds the engine knobs.
type Config struct {
	Threshold      float64 // minimum blended score for a match
	TopK           int     // candidates walked per query
	Weights        Weights
	FallbackAnswer string // generic contact answer for fallback responses
	GreetingAnswer string // canned reply for greeting intercepts
}

// DefaultConfig returns the production engine settings.
func DefaultConfig() Config {
	return Config{
		Threshold: 0.25,
		TopK:      10,
		Weights: Weights{
			ExactMatch:      0.6,
			ExactSimilarity: 0.25,
			ExactKeyword:    0.1,
			ExactCategory:   0.05,
			Similarity:      0.4,
			Category:        0.2,
			Keyword:         0.25,
			QuestionOverlap: 0.15,
		},
		FallbackAnswer: "I don't have specific information about that. " +
			"You can contact Green University directly at: " +
			"Phone: +880-2-7791071-5, Admission: 01775234234, " +
			"Email: info@green.edu.bd, Website: https://www.green.edu.bd/",
		GreetingAnswer: "I'm doing well, thank you! How can I help you with information about Green University?",
	}
}

// FallbackConfidence is the fixed confidence of a fallback response.
const FallbackConfidence = 0.15

// state is the derived, atomically replaced view the engine searches
// against. It is never mutated after construction.
type state struct {
	snapshot   *corpus.Snapshot
	vectorizer *tfidf.Vectorizer
	docs       []tfidf.Vector
	classifier *classify.Model
	excluded   map[string]struct{}
}

// Options configures a new Engine.
type Options struct {
	Records     []corpus.Record
	Normalizer  *normalize.Normalizer
	Categorizer corpus.Categorizer // nil = default rule table
	Store       *store.Store       // nil = in-memory only (tests)
	Config      Config
	Logger      *logger.Logger
	Metrics     *metrics.Metrics // nil = no metrics
	Now         func() time.Time // nil = time.Now
}

// Engine owns the exclusion list, the feedback log, and the derived
// state, and serializes all operations behind one mutex.
type Engine struct {
	mu  sync.Mutex
	cfg Config

	records []corpus.Record
	norm    *normalize.Normalizer
	cat     corpus.Categorizer
	store   *store.Store
	metrics *metrics.Metrics
	log     *logger.Logger
	now     func() time.Time

	state      *state
	exclusions []store.ExclusionEntry
	feedback   []store.FeedbackEntry
}

// New builds an engine over the given records, loading any persisted
// exclusion list and feedback log, and fits the initial models.
func New(opts Options) (*Engine, error) {
	if opts.Normalizer == nil {
		return nil, apperrors.NewValidationError("normalizer", "is required")
	}
	if opts.Logger == nil {
		return nil, apperrors.NewValidationError("logger", "is required")
	}
	if opts.Categorizer == nil {
		opts.Categorizer = corpus.NewRuleCategorizer()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	e := &Engine{
		cfg:     opts.Config,
		records: opts.Records,
		norm:    opts.Normalizer,
		cat:     opts.Categorizer,
		store:   opts.Store,
		metrics: opts.Metrics,
		log:     opts.Logger.WithModule("engine"),
		now:     opts.Now,
	}

	if e.store != nil {
		exclusions, feedback, err := e.store.Load()
		if err != nil {
			return nil, err
		}
		e.exclusions = exclusions
		e.feedback = feedback
	}

	e.rebuild("startup")
	return e, nil
}

// rebuild refits all derived state from the current exclusion list and
// publishes it as a new state value. Callers must hold e.mu (or be the
// constructor, before the engine escapes).
func (e *Engine) rebuild(trigger string) {
	started := e.now()

	excluded := make(map[string]struct{}, len(e.exclusions))
	for _, entry := range e.exclusions {
		excluded[entry.Answer] = struct{}{}
	}

	snapshot := corpus.BuildSnapshot(e.records, e.norm, e.cat, excluded)
	vectorizer := tfidf.Fit(snapshot.Questions, tfidf.DefaultConfig())
	docs := vectorizer.TransformAll(snapshot.Questions)
	classifier := classify.Fit(docs, snapshot.Categories, vectorizer.VocabSize(), classify.DefaultConfig())

	e.state = &state{
		snapshot:   snapshot,
		vectorizer: vectorizer,
		docs:       docs,
		classifier: classifier,
		excluded:   excluded,
	}

	elapsed := e.now().Sub(started)
	if e.metrics != nil {
		e.metrics.RecordRebuild(trigger, elapsed.Seconds(), snapshot.Len(), len(excluded))
	}

	entry := e.log.WithFields(map[string]any{
		"trigger":     trigger,
		"available":   snapshot.Len(),
		"blocked":     len(excluded),
		"vocab":       vectorizer.VocabSize(),
		"duration_ms": elapsed.Milliseconds(),
	})
	if classifier != nil {
		entry = entry.WithField("classifier_accuracy", classifier.Accuracy())
	} else {
		entry = entry.WithField("classifier", "disabled (fewer than 2 categories)")
	}
	entry.Info("Engine state rebuilt")

	if snapshot.Len() == 0 {
		e.log.Warn("No records available after exclusion filtering; searches will return fallback responses")
	}
}

// Stats reports the engine counters.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	likes, dislikes := 0, 0
	for _, entry := range e.feedback {
		switch entry.Verdict {
		case VerdictLike:
			likes++
		case VerdictDislike:
			dislikes++
		}
	}

	return Stats{
		TotalRecords:      len(e.records),
		AvailableRecords:  e.state.snapshot.Len(),
		BlockedAnswers:    len(e.exclusions),
		TotalFeedback:     len(e.feedback),
		Likes:             likes,
		Dislikes:          dislikes,
		ClassifierTrained:  e.state.classifier != nil,
		ClassifierAccuracy: e.state.classifier.Accuracy(),
	}
}

// Stats is the engine counter snapshot exposed via the stats operation.
type Stats struct {
	TotalRecords       int     `json:"total_records"`
	AvailableRecords   int     `json:"available_records"`
	BlockedAnswers     int     `json:"blocked_answers"`
	TotalFeedback      int     `json:"total_feedback"`
	Likes              int     `json:"likes"`
	Dislikes           int     `json:"dislikes"`
	ClassifierTrained  bool    `json:"classifier_trained"`
	ClassifierAccuracy float64 `json:"classifier_accuracy"`
}
