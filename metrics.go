package sift

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Search outcomes recorded in the sift_searches_total counter.
const (
	OutcomeEmptyQuery   = "empty_query"
	OutcomeFastReject   = "fast_reject"
	OutcomeMissingTerm  = "missing_term"
	OutcomeNoCandidates = "no_candidates"
	OutcomeMatched      = "matched"
)

// Metrics holds the Prometheus collectors for an Engine.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	DocumentsIndexed    prometheus.Counter
	Searches            *prometheus.CounterVec
	CollisionRejections prometheus.Counter
	SearchResults       prometheus.Histogram
	SearchDuration      prometheus.Histogram
}

// NewMetrics creates the engine collectors and registers them with reg.
// Pass prometheus.DefaultRegisterer to expose them on the default handler.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DocumentsIndexed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sift_documents_indexed_total",
				Help: "Total documents added to the index.",
			},
		),
		Searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sift_searches_total",
				Help: "Total single-query searches by outcome (empty_query, fast_reject, missing_term, no_candidates, matched).",
			},
			[]string{"outcome"},
		),
		CollisionRejections: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sift_collision_rejections_total",
				Help: "Candidates dropped because their per-document filter rejected a query term.",
			},
		),
		SearchResults: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sift_search_results",
				Help:    "Number of results returned per search.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
			},
		),
		SearchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sift_search_duration_seconds",
				Help:    "Search latency in seconds.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
			},
		),
	}

	reg.MustRegister(
		m.DocumentsIndexed,
		m.Searches,
		m.CollisionRejections,
		m.SearchResults,
		m.SearchDuration,
	)

	return m
}

func (m *Metrics) documentIndexed() {
	if m == nil {
		return
	}
	m.DocumentsIndexed.Inc()
}

func (m *Metrics) searched(outcome string) {
	if m == nil {
		return
	}
	m.Searches.WithLabelValues(outcome).Inc()
}

func (m *Metrics) collisionRejected() {
	if m == nil {
		return
	}
	m.CollisionRejections.Inc()
}

func (m *Metrics) observeSearch(start time.Time, results int) {
	if m == nil {
		return
	}
	m.SearchDuration.Observe(time.Since(start).Seconds())
	m.SearchResults.Observe(float64(results))
}
