package engine

import (
	"strings"

	apperrors "github.com/greenuni-dev/campus-chatbot-go/internal/errors"
	"github.com/greenuni-dev/campus-chatbot-go/internal/store"
)

// Verdicts accepted by Feedback.
const (
	VerdictLike    = "like"
	VerdictDislike = "dislike"
)

// Ack reports the engine state after a feedback or reset operation.
type Ack struct {
	Accepted         bool   `json:"accepted"`
	Message          string `json:"message"`
	BlockedAnswers   int    `json:"blocked_answers"`
	AvailableRecords int    `json:"available_records"`
}

// Feedback records a verdict on a question/answer pair. A like is
// logged and persisted as-is. A dislike additionally appends the answer
// to the exclusion list and rebuilds all derived state, so the blocked
// answer disappears from every future ranking immediately.
func (e *Engine) Feedback(question, answer, verdict string) (*Ack, error) {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	verdict = strings.TrimSpace(strings.ToLower(verdict))

	if question == "" {
		return nil, apperrors.NewValidationError("question", "cannot be empty")
	}
	if answer == "" {
		return nil, apperrors.NewValidationError("answer", "cannot be empty")
	}
	if verdict != VerdictLike && verdict != VerdictDislike {
		return nil, apperrors.ErrInvalidVerdict
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.feedback = append(e.feedback, store.FeedbackEntry{
		Timestamp: e.now(),
		Question:  question,
		Answer:    answer,
		Verdict:   verdict,
	})

	message := "Feedback recorded"
	if verdict == VerdictDislike {
		e.exclusions = append(e.exclusions, store.ExclusionEntry{
			Answer:             answer,
			Question:           question,
			Timestamp:          e.now(),
			BlockedPermanently: true,
		})
		e.rebuild("dislike")
		message = "Answer blocked and ranking rebuilt"
	}

	if e.metrics != nil {
		e.metrics.RecordFeedback(verdict)
	}

	if err := e.persist(); err != nil {
		return nil, err
	}

	return &Ack{
		Accepted:         true,
		Message:          message,
		BlockedAnswers:   len(e.exclusions),
		AvailableRecords: e.state.snapshot.Len(),
	}, nil
}

// Reset clears the exclusion list and the feedback log, restores every
// record to the ranking pool, and persists the emptied logs.
func (e *Engine) Reset() (*Ack, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.exclusions = nil
	e.feedback = nil
	e.rebuild("reset")

	if err := e.persist(); err != nil {
		return nil, err
	}

	return &Ack{
		Accepted:         true,
		Message:          "Feedback state cleared",
		BlockedAnswers:   0,
		AvailableRecords: e.state.snapshot.Len(),
	}, nil
}

// persist runs under e.mu. A nil store keeps everything in memory.
func (e *Engine) persist() error {
	if e.store == nil {
		return nil
	}
	return e.store.Save(e.exclusions, e.feedback)
}
