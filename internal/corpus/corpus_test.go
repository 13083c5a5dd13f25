package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/greenuni-dev/campus-chatbot-go/internal/normalize"
)

func newTestNormalizer(t *testing.T) *normalize.Normalizer {
	t.Helper()
	n, err := normalize.New()
	if err != nil {
		t.Fatalf("normalize.New() failed: %v", err)
	}
	return n
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "knowledge.json")
	data := `[
		{"question": "What is the fee for CSE?", "answer": "Fee is $X", "keywords": ["fee", "cse"]},
		{"question": "How to apply?", "answer": "Apply online", "keywords": ["apply"], "categories": ["admission"]}
	]`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Load() returned %d records, want 2", len(records))
	}
	if records[0].Answer != "Fee is $X" {
		t.Errorf("records[0].Answer = %q", records[0].Answer)
	}
	if len(records[1].Categories) != 1 || records[1].Categories[0] != "admission" {
		t.Errorf("records[1].Categories = %v", records[1].Categories)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Load() of missing file should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`{"not": "an array"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() of non-array JSON should fail")
	}
}

func TestRuleCategorizer(t *testing.T) {
	cat := NewRuleCategorizer()

	tests := []struct {
		name     string
		keywords []string
		want     string
	}{
		{name: "fee keyword", keywords: []string{"Fee", "cse"}, want: "fees"},
		{name: "tuition keyword", keywords: []string{"tuition"}, want: "fees"},
		{name: "admission keyword", keywords: []string{"apply", "deadline"}, want: "admission"},
		{name: "program keyword", keywords: []string{"department"}, want: "programs"},
		{name: "contact keyword", keywords: []string{"phone", "office"}, want: "contact"},
		{name: "fees outranks programs", keywords: []string{"cse", "fee"}, want: "fees"},
		{name: "no match", keywords: []string{"library", "hours"}, want: "general"},
		{name: "empty keywords", keywords: nil, want: "general"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cat.Categorize(tt.keywords); got != tt.want {
				t.Errorf("Categorize(%v) = %q, want %q", tt.keywords, got, tt.want)
			}
		})
	}
}

func TestRecord_Label(t *testing.T) {
	cat := NewRuleCategorizer()

	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{
			name: "explicit category wins",
			rec:  Record{Category: "housing", Categories: []string{"fees"}, Keywords: []string{"fee"}},
			want: "housing",
		},
		{
			name: "categories list second",
			rec:  Record{Categories: []string{"fees"}, Keywords: []string{"phone"}},
			want: "fees",
		},
		{
			name: "heuristic fallback",
			rec:  Record{Keywords: []string{"phone"}},
			want: "contact",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.Label(cat); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildSnapshot(t *testing.T) {
	n := newTestNormalizer(t)
	cat := NewRuleCategorizer()
	records := []Record{
		{Question: "What is the fee for CSE?", Answer: "Fee is $X", Keywords: []string{"fee", "cse"}},
		{Question: "How to apply?", Answer: "Apply online", Keywords: []string{"apply"}},
		{Question: "Where is the office?", Answer: "Building 3", Keywords: []string{"address"}},
	}

	snap := BuildSnapshot(records, n, cat, nil)
	if snap.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", snap.Len())
	}
	if snap.Questions[0] != "fee cse" {
		t.Errorf("Questions[0] = %q, want %q", snap.Questions[0], "fee cse")
	}
	if snap.Answers[0] != "Fee is $X" {
		t.Errorf("Answers[0] = %q (raw answer must not be normalized)", snap.Answers[0])
	}
	if _, ok := snap.Keywords[0]["fee"]; !ok {
		t.Error("Keywords[0] missing normalized keyword 'fee'")
	}
	if snap.Categories[0] != "fees" {
		t.Errorf("Categories[0] = %q, want fees", snap.Categories[0])
	}
	if snap.Categories[1] != "admission" {
		t.Errorf("Categories[1] = %q, want admission", snap.Categories[1])
	}
}

func TestBuildSnapshot_Exclusion(t *testing.T) {
	n := newTestNormalizer(t)
	cat := NewRuleCategorizer()
	records := []Record{
		{Question: "What is the fee for CSE?", Answer: "Fee is $X", Keywords: []string{"fee"}},
		{Question: "How to apply?", Answer: "Apply online", Keywords: []string{"apply"}},
	}
	excluded := map[string]struct{}{"Fee is $X": {}}

	snap := BuildSnapshot(records, n, cat, excluded)
	if snap.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", snap.Len())
	}
	if snap.Answers[0] != "Apply online" {
		t.Errorf("surviving answer = %q, want %q", snap.Answers[0], "Apply online")
	}
	if snap.Source[0] != 1 {
		t.Errorf("Source[0] = %d, want 1 (original index preserved)", snap.Source[0])
	}
}

func TestBuildSnapshot_AllExcluded(t *testing.T) {
	n := newTestNormalizer(t)
	cat := NewRuleCategorizer()
	records := []Record{
		{Question: "Q", Answer: "A", Keywords: nil},
	}

	snap := BuildSnapshot(records, n, cat, map[string]struct{}{"A": {}})
	if snap.Len() != 0 {
		t.Errorf("Len() = %d, want 0", snap.Len())
	}
}

func TestSnapshot_DistinctCategories(t *testing.T) {
	snap := &Snapshot{Categories: []string{"fees", "fees", "admission"}}
	if got := snap.DistinctCategories(); got != 2 {
		t.Errorf("DistinctCategories() = %d, want 2", got)
	}

	var empty *Snapshot
	if got := empty.DistinctCategories(); got != 0 {
		t.Errorf("nil snapshot DistinctCategories() = %d, want 0", got)
	}
}
