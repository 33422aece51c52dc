package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	EvidenceUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evidence_uploads_total",
			Help: "Evidence photo uploads by outcome",
		},
		[]string{"outcome"},
	)

	CompressionFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "compression_fallbacks_total",
			Help: "Compressions that returned the original file under the safety policy",
		},
	)

	GeocodeLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geocode_lookups_total",
			Help: "Reverse geocode lookups by result (hit, miss, fallback)",
		},
		[]string{"result"},
	)
)
