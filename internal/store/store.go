// Package store persists the exclusion list and the feedback log as flat
// JSON arrays so a restart reproduces identical filtering behavior. Files
// are replaced atomically (write to temp, rename) so a crash mid-save
// never leaves a half-written log behind.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/greenuni-dev/campus-chatbot-go/internal/logger"
)

// ExclusionEntry is one permanently blocked answer.
type ExclusionEntry struct {
	Answer             string    `json:"answer"`
	Question           string    `json:"question"`
	Timestamp          time.Time `json:"timestamp"`
	BlockedPermanently bool      `json:"blocked_permanently"`
}

// FeedbackEntry is one recorded judgment, kept for every verdict whether
// or not it changed the exclusion list.
type FeedbackEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Verdict   string    `json:"feedback"`
}

// Store reads and writes the two durable artifacts of the feedback loop.
type Store struct {
	exclusionPath string
	feedbackPath  string
	log           *logger.Logger
}

// New creates a store over the given file paths.
func New(exclusionPath, feedbackPath string, log *logger.Logger) *Store {
	return &Store{
		exclusionPath: exclusionPath,
		feedbackPath:  feedbackPath,
		log:           log.WithModule("store"),
	}
}

// Load reads both logs. Missing files are treated as empty logs, not
// errors, so first boot works on an empty state directory.
func (s *Store) Load() ([]ExclusionEntry, []FeedbackEntry, error) {
	var exclusions []ExclusionEntry
	if err := readJSON(s.exclusionPath, &exclusions); err != nil {
		return nil, nil, fmt.Errorf("load exclusion list: %w", err)
	}

	var feedback []FeedbackEntry
	if err := readJSON(s.feedbackPath, &feedback); err != nil {
		return nil, nil, fmt.Errorf("load feedback log: %w", err)
	}

	s.log.WithFields(map[string]any{
		"exclusions": len(exclusions),
		"feedback":   len(feedback),
	}).Debug("Feedback state loaded")

	return exclusions, feedback, nil
}

// Save writes both logs. Each file is replaced atomically.
func (s *Store) Save(exclusions []ExclusionEntry, feedback []FeedbackEntry) error {
	if exclusions == nil {
		exclusions = []ExclusionEntry{}
	}
	if feedback == nil {
		feedback = []FeedbackEntry{}
	}

	if err := writeJSON(s.exclusionPath, exclusions); err != nil {
		return fmt.Errorf("save exclusion list: %w", err)
	}
	if err := writeJSON(s.feedbackPath, feedback); err != nil {
		return fmt.Errorf("save feedback log: %w", err)
	}
	return nil
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

func writeJSON(path string, value any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
