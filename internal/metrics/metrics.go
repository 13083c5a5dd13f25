package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Search metrics
	SearchesTotal         *prometheus.CounterVec
	SearchDurationSeconds prometheus.Histogram

	// Feedback metrics
	FeedbackTotal *prometheus.CounterVec

	// Rebuild metrics
	RebuildsTotal          *prometheus.CounterVec
	RebuildDurationSeconds prometheus.Histogram

	// Corpus state gauges
	AvailableRecords prometheus.Gauge
	BlockedAnswers   prometheus.Gauge

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		SearchesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatbot_searches_total",
				Help: "Total number of searches by outcome",
			},
			[]string{"outcome"}, // outcome: matched, fallback, special, invalid
		),

		SearchDurationSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "chatbot_search_duration_seconds",
				Help:    "Search duration in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),

		FeedbackTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatbot_feedback_total",
				Help: "Total number of feedback judgments by verdict",
			},
			[]string{"verdict"}, // verdict: like, dislike
		),

		RebuildsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatbot_rebuilds_total",
				Help: "Total number of corpus/model rebuilds by trigger",
			},
			[]string{"trigger"}, // trigger: startup, dislike, reset
		),

		RebuildDurationSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "chatbot_rebuild_duration_seconds",
				Help:    "Full rebuild (snapshot + vectorizer + classifier) duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
		),

		AvailableRecords: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "chatbot_available_records",
				Help: "Number of knowledge records surviving exclusion filtering",
			},
		),

		BlockedAnswers: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "chatbot_blocked_answers",
				Help: "Number of answers on the exclusion list",
			},
		),

		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatbot_http_errors_total",
				Help: "Total HTTP errors by type and endpoint",
			},
			[]string{"error_type", "endpoint"}, // error_type: validation, internal
		),
	}

	return m
}

// RecordSearch records a search with its outcome and duration
func (m *Metrics) RecordSearch(outcome string, duration float64) {
	m.SearchesTotal.WithLabelValues(outcome).Inc()
	m.SearchDurationSeconds.Observe(duration)
}

// RecordFeedback records a feedback judgment
func (m *Metrics) RecordFeedback(verdict string) {
	m.FeedbackTotal.WithLabelValues(verdict).Inc()
}

// RecordRebuild records a completed rebuild and refreshes the corpus gauges
func (m *Metrics) RecordRebuild(trigger string, duration float64, available, blocked int) {
	m.RebuildsTotal.WithLabelValues(trigger).Inc()
	m.RebuildDurationSeconds.Observe(duration)
	m.AvailableRecords.Set(float64(available))
	m.BlockedAnswers.Set(float64(blocked))
}

// RecordHTTPError records HTTP error metrics
func (m *Metrics) RecordHTTPError(errorType, endpoint string) {
	m.HTTPErrorsTotal.WithLabelValues(errorType, endpoint).Inc()
}
