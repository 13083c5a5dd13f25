// Package classify trains the topic classifier used to bias ranking
// toward the query's predicted category. The model is a multinomial
// naive Bayes over the TF-IDF feature space, fit with a seeded held-out
// split so accuracy is reproducible run to run. With fewer than two
// distinct labels there is nothing to learn and Fit returns nil; callers
// substitute the default label and confidence.
package classify

import (
	"math"
	"math/rand"
	"sort"

	"github.com/greenuni-dev/campus-chatbot-go/internal/tfidf"
)

// Config holds the training knobs.
type Config struct {
	TestFraction float64 // held-out fraction (default 0.2)
	Seed         int64   // shuffle seed (default 42)
	Alpha        float64 // Laplace smoothing (default 1.0)
}

// DefaultConfig returns the production training settings.
func DefaultConfig() Config {
	return Config{
		TestFraction: 0.2,
		Seed:         42,
		Alpha:        1.0,
	}
}

// DefaultLabel and DefaultConfidence are substituted when no classifier
// could be trained.
const (
	DefaultLabel      = "general"
	DefaultConfidence = 0.5
)

// Model is a fitted multinomial naive Bayes classifier.
type Model struct {
	labels   []string    // distinct labels, sorted
	logPrior []float64   // per class
	logCond  [][]float64 // per class, per feature
	accuracy float64     // held-out accuracy measured at fit time
}

// Fit trains a classifier from parallel vectors and labels. nFeatures is
// the dimensionality of the fitted feature space. Returns nil when fewer
// than two distinct labels are present; that is a degraded mode, not an
// error.
func Fit(vectors []tfidf.Vector, labels []string, nFeatures int, cfg Config) *Model {
	if len(vectors) == 0 || len(vectors) != len(labels) || nFeatures == 0 {
		return nil
	}

	distinct := make(map[string]int)
	for _, label := range labels {
		distinct[label] = 0
	}
	if len(distinct) < 2 {
		return nil
	}

	classNames := make([]string, 0, len(distinct))
	for label := range distinct {
		classNames = append(classNames, label)
	}
	sort.Strings(classNames)
	for i, label := range classNames {
		distinct[label] = i
	}

	// Seeded held-out split for reproducible accuracy reporting.
	rng := rand.New(rand.NewSource(cfg.Seed))
	indices := rng.Perm(len(vectors))
	testN := int(float64(len(vectors)) * cfg.TestFraction)
	if testN >= len(vectors) {
		testN = len(vectors) - 1
	}
	testIdx, trainIdx := indices[:testN], indices[testN:]

	m := &Model{
		labels:   classNames,
		logPrior: make([]float64, len(classNames)),
		logCond:  make([][]float64, len(classNames)),
	}

	featureSum := make([][]float64, len(classNames))
	totalSum := make([]float64, len(classNames))
	classCount := make([]float64, len(classNames))
	for c := range classNames {
		featureSum[c] = make([]float64, nFeatures)
	}

	for _, i := range trainIdx {
		c := distinct[labels[i]]
		classCount[c]++
		vec := vectors[i]
		for k, idx := range vec.Indices {
			featureSum[c][idx] += vec.Values[k]
			totalSum[c] += vec.Values[k]
		}
	}

	// Smoothed priors keep a class that fell entirely into the held-out
	// slice from collapsing to -Inf.
	trainTotal := float64(len(trainIdx)) + float64(len(classNames))
	for c := range classNames {
		m.logPrior[c] = math.Log((classCount[c] + 1) / trainTotal)
		m.logCond[c] = make([]float64, nFeatures)
		denom := totalSum[c] + cfg.Alpha*float64(nFeatures)
		for f := 0; f < nFeatures; f++ {
			m.logCond[c][f] = math.Log((featureSum[c][f] + cfg.Alpha) / denom)
		}
	}

	// Held-out accuracy, reported via stats but never used in scoring.
	if len(testIdx) > 0 {
		correct := 0
		for _, i := range testIdx {
			if label, _ := m.Predict(vectors[i]); label == labels[i] {
				correct++
			}
		}
		m.accuracy = float64(correct) / float64(len(testIdx))
	}

	return m
}

// Predict returns the most likely label and its posterior probability.
// A zero vector falls back to the class priors.
func (m *Model) Predict(vec tfidf.Vector) (string, float64) {
	scores := make([]float64, len(m.labels))
	for c := range m.labels {
		score := m.logPrior[c]
		for k, idx := range vec.Indices {
			score += vec.Values[k] * m.logCond[c][idx]
		}
		scores[c] = score
	}

	best := 0
	for c := 1; c < len(scores); c++ {
		if scores[c] > scores[best] {
			best = c
		}
	}

	// Softmax for a calibrated-looking posterior in [0,1].
	var total float64
	for c := range scores {
		total += math.Exp(scores[c] - scores[best])
	}
	return m.labels[best], 1 / total
}

// Accuracy returns the held-out accuracy measured at fit time.
func (m *Model) Accuracy() float64 {
	if m == nil {
		return 0
	}
	return m.accuracy
}

// Labels returns the class labels the model can predict.
func (m *Model) Labels() []string {
	if m == nil {
		return nil
	}
	return m.labels
}
