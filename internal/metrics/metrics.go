// Package metrics provides the Prometheus collectors shared by the client and the server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track requests served by newsdesk-server
var (
	// HTTPRequestsTotal counts total HTTP requests by method, route and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsdesk_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newsdesk_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// HTTPRateLimited counts requests rejected by the per-IP limiter
	HTTPRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "newsdesk_http_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)

// Source metrics track calls made against article sources
var (
	// SourceRequestsTotal counts source calls by source, operation and outcome
	SourceRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsdesk_source_requests_total",
			Help: "Total number of article source calls",
		},
		[]string{"source", "op", "status"},
	)

	// SourceRequestDuration measures source call latency, network sources included
	SourceRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newsdesk_source_request_duration_seconds",
			Help:    "Article source call duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"source", "op"},
	)

	// SourceArticlesDropped counts malformed records removed before display
	SourceArticlesDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsdesk_source_articles_dropped_total",
			Help: "Total number of malformed articles dropped",
		},
		[]string{"reason"},
	)

	// BreakerState exposes the circuit breaker state (0 closed, 1 half-open, 2 open)
	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "newsdesk_source_breaker_state",
			Help: "Circuit breaker state per source (0 closed, 1 half-open, 2 open)",
		},
		[]string{"source"},
	)
)

// Catalog metrics track the in-memory article index
var (
	// CatalogArticles tracks the number of articles currently indexed
	CatalogArticles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "newsdesk_catalog_articles",
			Help: "Number of articles in the catalog index",
		},
	)

	// CatalogReloadsTotal counts catalog reloads by outcome
	CatalogReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsdesk_catalog_reloads_total",
			Help: "Total number of catalog reloads",
		},
		[]string{"status"},
	)
)

// RecordHTTPRequest records metrics for one served HTTP request
func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordSourceCall records metrics for one source call
func RecordSourceCall(source, op string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	SourceRequestsTotal.WithLabelValues(source, op, status).Inc()
	SourceRequestDuration.WithLabelValues(source, op).Observe(duration.Seconds())
}

// RecordCatalogReload records the outcome of a catalog reload
func RecordCatalogReload(count int, err error) {
	if err != nil {
		CatalogReloadsTotal.WithLabelValues("error").Inc()
		return
	}
	CatalogReloadsTotal.WithLabelValues("ok").Inc()
	CatalogArticles.Set(float64(count))
}
