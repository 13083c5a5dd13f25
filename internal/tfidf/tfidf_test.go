package tfidf

import (
	"math"
	"testing"
)

func TestFit_NGramVocabulary(t *testing.T) {
	docs := []string{"fee cse program", "apply admission"}
	v := Fit(docs, DefaultConfig())

	// Unigrams, bigrams and trigrams of the first doc should all be terms.
	for _, term := range []string{"fee", "cse", "program", "fee cse", "cse program", "fee cse program"} {
		if _, ok := v.vocab[term]; !ok {
			t.Errorf("vocabulary missing term %q", term)
		}
	}
	if _, ok := v.vocab["cse apply"]; ok {
		t.Error("vocabulary has cross-document bigram \"cse apply\"")
	}
}

func TestFit_MaxDocFreqPruning(t *testing.T) {
	// "fee" appears in all three documents: 3 > 0.95*3, so it is pruned.
	docs := []string{"fee cse", "fee admission", "fee contact"}
	v := Fit(docs, DefaultConfig())

	if _, ok := v.vocab["fee"]; ok {
		t.Error("term in >95% of documents should be pruned")
	}
	if _, ok := v.vocab["cse"]; !ok {
		t.Error("term in a single document should be kept")
	}
}

func TestFit_MaxFeaturesCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxFeatures = 2
	cfg.NGramMax = 1
	cfg.MaxDocFreq = 1.0 // keep df-pruning out of this test's way

	// "fee" occurs 3 times, "cse" twice, "apply" once.
	docs := []string{"fee fee cse", "fee cse apply"}
	v := Fit(docs, cfg)

	if v.VocabSize() != 2 {
		t.Fatalf("VocabSize() = %d, want 2", v.VocabSize())
	}
	if _, ok := v.vocab["apply"]; ok {
		t.Error("least frequent term should be dropped by the feature cap")
	}
}

func TestFit_EmptyCorpus(t *testing.T) {
	v := Fit(nil, DefaultConfig())
	if v.VocabSize() != 0 {
		t.Errorf("VocabSize() = %d, want 0", v.VocabSize())
	}
	if !v.Transform("anything").IsZero() {
		t.Error("Transform() on empty fit should return a zero vector")
	}
}

func TestTransform_SelfSimilarity(t *testing.T) {
	docs := []string{"fee cse", "apply admission"}
	v := Fit(docs, DefaultConfig())

	vec := v.Transform("fee cse")
	if vec.IsZero() {
		t.Fatal("Transform() returned zero vector for in-vocabulary doc")
	}

	sim := Cosine(vec, vec)
	if math.Abs(sim-1.0) > 1e-9 {
		t.Errorf("self-similarity = %v, want 1.0", sim)
	}
}

func TestTransform_DisjointDocsOrthogonal(t *testing.T) {
	docs := []string{"fee cse", "apply admission"}
	v := Fit(docs, DefaultConfig())

	a := v.Transform("fee cse")
	b := v.Transform("apply admission")
	if got := Cosine(a, b); got != 0 {
		t.Errorf("Cosine of disjoint docs = %v, want 0", got)
	}
}

func TestTransform_UnseenTermsIgnored(t *testing.T) {
	docs := []string{"fee cse", "apply admission"}
	v := Fit(docs, DefaultConfig())

	if !v.Transform("volleyball schedule").IsZero() {
		t.Error("Transform() of fully unseen terms should be a zero vector")
	}

	// Mixed: unseen terms contribute nothing, known term still matches.
	mixed := v.Transform("volleyball fee")
	ref := v.Transform("fee cse")
	if Cosine(mixed, ref) <= 0 {
		t.Error("known term in a mixed query should still produce similarity")
	}
}

func TestTransform_Normalized(t *testing.T) {
	docs := []string{"fee cse program", "apply admission deadline"}
	v := Fit(docs, DefaultConfig())

	vec := v.Transform("fee apply deadline")
	var norm float64
	for _, val := range vec.Values {
		norm += val * val
	}
	if math.Abs(norm-1.0) > 1e-9 {
		t.Errorf("squared norm = %v, want 1.0", norm)
	}
}

func TestTransformAll_MatchesTransform(t *testing.T) {
	docs := []string{"fee cse", "apply admission", ""}
	v := Fit(docs, DefaultConfig())

	vectors := v.TransformAll(docs)
	if len(vectors) != 3 {
		t.Fatalf("TransformAll() returned %d vectors, want 3", len(vectors))
	}
	if !vectors[2].IsZero() {
		t.Error("empty document should transform to a zero vector")
	}
	if got := Cosine(vectors[0], v.Transform(docs[0])); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("TransformAll/Transform mismatch: cosine = %v", got)
	}
}

func TestCosine_ZeroVector(t *testing.T) {
	docs := []string{"fee cse"}
	v := Fit(docs, DefaultConfig())

	if got := Cosine(Vector{}, v.Transform("fee cse")); got != 0 {
		t.Errorf("Cosine with zero vector = %v, want 0", got)
	}
}
