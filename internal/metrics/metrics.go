package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, route, and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// ParaphraseTotal counts paraphrase calls by outcome ("success" or error kind).
	ParaphraseTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_paraphrase_total",
		Help: "Paraphrase requests by outcome.",
	}, []string{"outcome"})

	// UpstreamDuration tracks generation API latency.
	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quill_upstream_duration_seconds",
		Help:    "Time spent waiting for the generation API.",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
	}, []string{"model", "outcome"})

	// InputChars tracks the distribution of input text lengths.
	InputChars = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quill_input_chars",
		Help:    "Number of characters in paraphrase input text.",
		Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 50000},
	})
)
