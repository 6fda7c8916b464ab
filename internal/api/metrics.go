package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hamming_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hamming_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hamming_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)

	rateLimitRejects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hamming_rate_limit_rejects_total",
			Help: "Total number of requests rejected due to rate limiting",
		},
	)

	// Counting metrics
	countsComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hamming_counts_computed_total",
			Help: "Total number of counts computed, by strategy",
		},
		[]string{"strategy"},
	)

	countDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hamming_count_duration_seconds",
			Help:    "Time spent computing a single count, by strategy",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
		[]string{"strategy"},
	)

	countCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hamming_count_cache_hits_total",
			Help: "Total number of counts served from the result store",
		},
	)

	sweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hamming_sweep_duration_seconds",
			Help:    "Time spent sampling a sweep grid",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		},
	)
)
