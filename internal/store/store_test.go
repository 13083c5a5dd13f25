package store

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenuni-dev/campus-chatbot-go/internal/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	log := logger.NewWithWriter("error", io.Discard)
	return New(
		filepath.Join(dir, "disliked_answers.json"),
		filepath.Join(dir, "user_feedback_data.json"),
		log,
	)
}

func TestLoad_MissingFilesAreEmpty(t *testing.T) {
	s := newTestStore(t)

	exclusions, feedback, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, exclusions)
	assert.Empty(t, feedback)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC().Truncate(time.Second)

	exclusions := []ExclusionEntry{
		{Answer: "Fee is $X", Question: "fee for cse", Timestamp: now, BlockedPermanently: true},
	}
	feedback := []FeedbackEntry{
		{Timestamp: now, Question: "fee for cse", Answer: "Fee is $X", Verdict: "dislike"},
		{Timestamp: now, Question: "how to apply", Answer: "Apply online", Verdict: "like"},
	}

	require.NoError(t, s.Save(exclusions, feedback))

	gotExclusions, gotFeedback, err := s.Load()
	require.NoError(t, err)
	require.Len(t, gotExclusions, 1)
	require.Len(t, gotFeedback, 2)

	assert.Equal(t, "Fee is $X", gotExclusions[0].Answer)
	assert.True(t, gotExclusions[0].BlockedPermanently)
	assert.True(t, gotExclusions[0].Timestamp.Equal(now))
	assert.Equal(t, "dislike", gotFeedback[0].Verdict)
	assert.Equal(t, "like", gotFeedback[1].Verdict)
}

func TestSave_NilSlicesWriteEmptyArrays(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(nil, nil))

	data, err := os.ReadFile(s.exclusionPath)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))

	exclusions, feedback, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, exclusions)
	assert.Empty(t, feedback)
}

func TestSave_CreatesStateDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	log := logger.NewWithWriter("error", io.Discard)
	s := New(
		filepath.Join(dir, "disliked_answers.json"),
		filepath.Join(dir, "user_feedback_data.json"),
		log,
	)

	require.NoError(t, s.Save(nil, nil))
	_, err := os.Stat(dir)
	assert.NoError(t, err)
}

func TestSave_Overwrite(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()

	require.NoError(t, s.Save([]ExclusionEntry{{Answer: "A", Timestamp: now}}, nil))
	require.NoError(t, s.Save([]ExclusionEntry{{Answer: "A", Timestamp: now}, {Answer: "B", Timestamp: now}}, nil))

	exclusions, _, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, exclusions, 2)
}

func TestLoad_CorruptFileFails(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.exclusionPath, []byte("{nope"), 0o600))

	_, _, err := s.Load()
	assert.Error(t, err)
}
