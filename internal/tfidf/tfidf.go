// Package tfidf implements the term-weighting feature model: word
// n-grams (unigram through trigram) weighted by smoothed inverse
// document frequency, L2-normalized into sparse vectors. A fitted
// vectorizer is immutable; corpus changes require a fresh fit, and
// vectors from different fits must never be compared.
package tfidf

import (
	"math"
	"sort"
	"strings"
)

// Config holds the vectorizer knobs.
type Config struct {
	NGramMin    int     // smallest n-gram size (default 1)
	NGramMax    int     // largest n-gram size (default 3)
	MaxFeatures int     // vocabulary cap (default 10000)
	MaxDocFreq  float64 // terms in more than this fraction of docs are dropped (default 0.95)
	MinDocCount int     // terms must appear in at least this many docs (default 1)
}

// DefaultConfig returns the production vectorizer settings.
func DefaultConfig() Config {
	return Config{
		NGramMin:    1,
		NGramMax:    3,
		MaxFeatures: 10000,
		MaxDocFreq:  0.95,
		MinDocCount: 1,
	}
}

// Vector is a sparse, L2-normalized feature vector. Indices are sorted
// ascending.
type Vector struct {
	Indices []int
	Values  []float64
}

// IsZero reports whether the vector has no non-zero components.
func (v Vector) IsZero() bool {
	return len(v.Indices) == 0
}

// Vectorizer maps token strings into the fitted TF-IDF feature space.
type Vectorizer struct {
	cfg   Config
	vocab map[string]int
	idf   []float64
	nDocs int
}

// Fit builds the vocabulary and IDF weights from the given documents
// (already-normalized token strings). An empty corpus, or one where
// pruning removes every term, yields a vectorizer whose Transform always
// returns a zero vector.
func Fit(docs []string, cfg Config) *Vectorizer {
	v := &Vectorizer{
		cfg:   cfg,
		vocab: make(map[string]int),
		nDocs: len(docs),
	}
	if len(docs) == 0 {
		return v
	}

	docFreq := make(map[string]int)
	corpusFreq := make(map[string]int)
	for _, doc := range docs {
		counts := countTerms(doc, cfg.NGramMin, cfg.NGramMax)
		for term, c := range counts {
			docFreq[term]++
			corpusFreq[term] += c
		}
	}

	// Document-frequency pruning: near-stopwords out, rare terms kept
	// down to MinDocCount.
	maxDF := cfg.MaxDocFreq * float64(len(docs))
	candidates := make([]string, 0, len(docFreq))
	for term, df := range docFreq {
		if df < cfg.MinDocCount {
			continue
		}
		if float64(df) > maxDF {
			continue
		}
		candidates = append(candidates, term)
	}

	// Vocabulary cap: keep the most frequent terms, ties broken
	// alphabetically for determinism.
	if cfg.MaxFeatures > 0 && len(candidates) > cfg.MaxFeatures {
		sort.Slice(candidates, func(i, j int) bool {
			fi, fj := corpusFreq[candidates[i]], corpusFreq[candidates[j]]
			if fi != fj {
				return fi > fj
			}
			return candidates[i] < candidates[j]
		})
		candidates = candidates[:cfg.MaxFeatures]
	}

	sort.Strings(candidates)
	v.idf = make([]float64, len(candidates))
	for i, term := range candidates {
		v.vocab[term] = i
		// Smoothed IDF: ln((1+n)/(1+df)) + 1
		v.idf[i] = math.Log(float64(1+len(docs))/float64(1+docFreq[term])) + 1
	}

	return v
}

// Transform maps a normalized token string into the fitted feature
// space. Terms outside the vocabulary are ignored; a query with no known
// terms yields a zero vector.
func (v *Vectorizer) Transform(doc string) Vector {
	if len(v.vocab) == 0 {
		return Vector{}
	}

	counts := countTerms(doc, v.cfg.NGramMin, v.cfg.NGramMax)
	if len(counts) == 0 {
		return Vector{}
	}

	weights := make(map[int]float64, len(counts))
	for term, c := range counts {
		if idx, ok := v.vocab[term]; ok {
			weights[idx] = float64(c) * v.idf[idx]
		}
	}
	if len(weights) == 0 {
		return Vector{}
	}

	vec := Vector{
		Indices: make([]int, 0, len(weights)),
		Values:  make([]float64, 0, len(weights)),
	}
	for idx := range weights {
		vec.Indices = append(vec.Indices, idx)
	}
	sort.Ints(vec.Indices)

	var norm float64
	for _, idx := range vec.Indices {
		w := weights[idx]
		vec.Values = append(vec.Values, w)
		norm += w * w
	}
	norm = math.Sqrt(norm)
	for i := range vec.Values {
		vec.Values[i] /= norm
	}
	return vec
}

// TransformAll transforms every document, preserving order.
func (v *Vectorizer) TransformAll(docs []string) []Vector {
	vectors := make([]Vector, len(docs))
	for i, doc := range docs {
		vectors[i] = v.Transform(doc)
	}
	return vectors
}

// VocabSize returns the number of terms in the fitted vocabulary.
func (v *Vectorizer) VocabSize() int {
	return len(v.vocab)
}

// Cosine returns the cosine similarity of two vectors from the same fit.
// Vectors are already L2-normalized, so this is a sparse dot product.
func Cosine(a, b Vector) float64 {
	var dot float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			dot += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return dot
}

// countTerms tokenizes a normalized document and counts its n-grams.
func countTerms(doc string, nMin, nMax int) map[string]int {
	tokens := strings.Fields(doc)
	if len(tokens) == 0 {
		return nil
	}

	counts := make(map[string]int, len(tokens)*2)
	for n := nMin; n <= nMax; n++ {
		if n <= 0 || n > len(tokens) {
			continue
		}
		for i := 0; i+n <= len(tokens); i++ {
			counts[strings.Join(tokens[i:i+n], " ")]++
		}
	}
	return counts
}
