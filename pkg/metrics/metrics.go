package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	PostsListed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "backup_posts_listed",
			Help: "Number of posts found on the profile page in the current run.",
		},
	)

	PostsProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backup_posts_processed_total",
			Help: "Total number of posts processed, by extraction outcome.",
		},
		[]string{"status"}, // success, not_found, timeout, failed
	)

	ExtractionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "backup_extraction_duration_seconds",
			Help:    "Duration of a single post extraction (two page navigations).",
			Buckets: []float64{1, 2, 5, 10, 15, 30, 60},
		},
	)

	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backup_runs_total",
			Help: "Total number of backup runs, by final state.",
		},
		[]string{"state"},
	)
)
