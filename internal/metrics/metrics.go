// Package metrics provides Prometheus metrics for the blog.
// Metrics are organized by domain: HTTP requests and content activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "blog"
)

// Search modes
const (
	SearchModeSimple = "simple"
	SearchModeFull   = "full"
	SearchModeTag    = "tag"
)

var (
	// HTTP metrics - track request volume and latency
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)

	// Content metrics - track writes and searches
	ArticlesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_created_total",
			Help:      "Total number of articles created",
		},
	)

	CommentsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_created_total",
			Help:      "Total number of comments created",
		},
	)

	Searches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Total number of article searches by mode",
		},
		[]string{"mode"},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Total number of rejected form submissions by form",
		},
		[]string{"form"},
	)
)

// ObserveSearch counts a search in the given mode
func ObserveSearch(mode string) {
	Searches.WithLabelValues(mode).Inc()
}

// ObserveValidationFailure counts a rejected submission of form
func ObserveValidationFailure(form string) {
	if form == "" {
		form = "unknown"
	}
	ValidationFailures.WithLabelValues(form).Inc()
}
