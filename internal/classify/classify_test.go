package classify

import (
	"testing"

	"github.com/greenuni-dev/campus-chatbot-go/internal/tfidf"
)

// fitFixture builds a small two-class training set with clearly
// separated vocabularies.
func fitFixture(t *testing.T) (*tfidf.Vectorizer, []tfidf.Vector, []string) {
	t.Helper()

	docs := []string{
		"fee tuition cost",
		"tuition payment fee",
		"cost semester fee",
		"fee installment tuition",
		"apply admission deadline",
		"admission requirement apply",
		"deadline application admission",
		"apply enrollment admission",
	}
	labels := []string{
		"fees", "fees", "fees", "fees",
		"admission", "admission", "admission", "admission",
	}

	cfg := tfidf.DefaultConfig()
	cfg.MaxDocFreq = 1.0 // tiny corpus, keep shared terms
	v := tfidf.Fit(docs, cfg)
	return v, v.TransformAll(docs), labels
}

func TestFit_PredictsSeparableClasses(t *testing.T) {
	v, vectors, labels := fitFixture(t)

	m := Fit(vectors, labels, v.VocabSize(), DefaultConfig())
	if m == nil {
		t.Fatal("Fit() returned nil for a two-class corpus")
	}

	tests := []struct {
		query string
		want  string
	}{
		{query: "tuition fee", want: "fees"},
		{query: "admission deadline", want: "admission"},
	}
	for _, tt := range tests {
		label, conf := m.Predict(v.Transform(tt.query))
		if label != tt.want {
			t.Errorf("Predict(%q) label = %q, want %q", tt.query, label, tt.want)
		}
		if conf <= 0 || conf > 1 {
			t.Errorf("Predict(%q) confidence = %v, want (0,1]", tt.query, conf)
		}
	}
}

func TestFit_SingleLabelReturnsNil(t *testing.T) {
	docs := []string{"fee tuition", "cost fee"}
	cfg := tfidf.DefaultConfig()
	cfg.MaxDocFreq = 1.0
	v := tfidf.Fit(docs, cfg)

	m := Fit(v.TransformAll(docs), []string{"fees", "fees"}, v.VocabSize(), DefaultConfig())
	if m != nil {
		t.Error("Fit() with one distinct label should return nil")
	}

	// nil model helpers must be safe
	var nilModel *Model
	if nilModel.Accuracy() != 0 {
		t.Error("nil model Accuracy() should be 0")
	}
	if nilModel.Labels() != nil {
		t.Error("nil model Labels() should be nil")
	}
}

func TestFit_EmptyInput(t *testing.T) {
	if Fit(nil, nil, 10, DefaultConfig()) != nil {
		t.Error("Fit() with no vectors should return nil")
	}
}

func TestFit_Deterministic(t *testing.T) {
	v, vectors, labels := fitFixture(t)

	m1 := Fit(vectors, labels, v.VocabSize(), DefaultConfig())
	m2 := Fit(vectors, labels, v.VocabSize(), DefaultConfig())
	if m1 == nil || m2 == nil {
		t.Fatal("Fit() returned nil")
	}

	if m1.Accuracy() != m2.Accuracy() {
		t.Errorf("accuracy differs across fits: %v vs %v", m1.Accuracy(), m2.Accuracy())
	}

	query := v.Transform("fee deadline")
	l1, c1 := m1.Predict(query)
	l2, c2 := m2.Predict(query)
	if l1 != l2 || c1 != c2 {
		t.Errorf("predictions differ across fits: (%s, %v) vs (%s, %v)", l1, c1, l2, c2)
	}
}

func TestAccuracy_InRange(t *testing.T) {
	v, vectors, labels := fitFixture(t)

	m := Fit(vectors, labels, v.VocabSize(), DefaultConfig())
	if m == nil {
		t.Fatal("Fit() returned nil")
	}
	if acc := m.Accuracy(); acc < 0 || acc > 1 {
		t.Errorf("Accuracy() = %v, want [0,1]", acc)
	}
}

func TestPredict_ZeroVectorUsesPriors(t *testing.T) {
	v, vectors, labels := fitFixture(t)

	m := Fit(vectors, labels, v.VocabSize(), DefaultConfig())
	if m == nil {
		t.Fatal("Fit() returned nil")
	}

	label, conf := m.Predict(tfidf.Vector{})
	found := false
	for _, known := range m.Labels() {
		if known == label {
			found = true
		}
	}
	if !found {
		t.Errorf("Predict(zero) label = %q, not a known class", label)
	}
	if conf <= 0 || conf > 1 {
		t.Errorf("Predict(zero) confidence = %v, want (0,1]", conf)
	}
}
