package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// ProcessedTotal counts processing runs by result.
	ProcessedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "case_similarity",
		Subsystem: "processor",
		Name:      "processed_total",
		Help:      "Total number of reports processed, labeled by result.",
	}, []string{"result"})

	// DecisionTotal counts merge decisions by outcome.
	DecisionTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "case_similarity",
		Subsystem: "processor",
		Name:      "decision_total",
		Help:      "Merge decisions by outcome: new_case, merged, or repair (merged into a case that was missing its title).",
	}, []string{"outcome"})

	// ProcessingDurationSeconds is end-to-end pipeline time per report.
	ProcessingDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "case_similarity",
		Subsystem: "processor",
		Name:      "processing_duration_seconds",
		Help:      "End-to-end time to process one report (normalize through store write).",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 60},
	}, []string{"result"})

	// SimilarHits observes how many qualifying neighbors the store returned.
	SimilarHits = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "case_similarity",
		Subsystem: "processor",
		Name:      "similar_hits",
		Help:      "Number of qualifying similar cases returned per search.",
		Buckets:   []float64{0, 1, 2, 3, 5, 10, 20},
	})

	// RequestDurationSeconds is HTTP request time by route and status.
	RequestDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "case_similarity",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method, route and status code.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"method", "route", "status"})

	// TitlesRepairedTotal counts titles minted by the repair sweep.
	TitlesRepairedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "case_similarity",
		Subsystem: "scheduler",
		Name:      "titles_repaired_total",
		Help:      "Total number of stored records whose missing case name was backfilled.",
	})
)

// Register registers all instruments with the default registry. Safe to
// call more than once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			ProcessedTotal,
			DecisionTotal,
			ProcessingDurationSeconds,
			SimilarHits,
			RequestDurationSeconds,
			TitlesRepairedTotal,
		)
	})
}
