// Package metrics provides Prometheus metrics for the account intelligence service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns the service's Prometheus registry and instruments
type Manager struct {
	registry *prometheus.Registry

	dossiersGenerated   *prometheus.CounterVec
	generationDuration  prometheus.Histogram
	generationErrors    prometheus.Counter
	degradedFallbacks   prometheus.Counter
	sourceFetchDuration *prometheus.HistogramVec
	sourceFetchErrors   *prometheus.CounterVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewManager creates a metrics manager on its own registry so the
// default Go collector noise stays out of the scrape.
func NewManager() *Manager {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Manager{
		registry: registry,
		dossiersGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "account_intel",
			Name:      "dossiers_generated_total",
			Help:      "Dossiers generated, by mode.",
		}, []string{"mode"}),
		generationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "account_intel",
			Name:      "generation_duration_seconds",
			Help:      "End-to-end dossier pipeline duration.",
			Buckets:   prometheus.DefBuckets,
		}),
		generationErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "account_intel",
			Name:      "generation_errors_total",
			Help:      "Dossier generations that failed.",
		}),
		degradedFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "account_intel",
			Name:      "degraded_fallbacks_total",
			Help:      "Generations degraded to the quick dossier.",
		}),
		sourceFetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "account_intel",
			Name:      "source_fetch_duration_seconds",
			Help:      "Upstream source fetch duration, by source.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
		sourceFetchErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "account_intel",
			Name:      "source_fetch_errors_total",
			Help:      "Upstream source fetches that failed, by source.",
		}, []string{"source"}),
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "account_intel",
			Name:      "dossier_cache_hits_total",
			Help:      "Dossier reads served from cache.",
		}),
		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "account_intel",
			Name:      "dossier_cache_misses_total",
			Help:      "Dossier reads that missed the cache.",
		}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "account_intel",
			Name:      "http_requests_total",
			Help:      "HTTP requests, by method, path, and status.",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "account_intel",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration, by method and path.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
}

// Handler exposes the registry for scraping
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordGeneration records a completed dossier generation
func (m *Manager) RecordGeneration(mode string, duration time.Duration) {
	m.dossiersGenerated.WithLabelValues(mode).Inc()
	m.generationDuration.Observe(duration.Seconds())
}

// RecordGenerationError records a failed dossier generation
func (m *Manager) RecordGenerationError() {
	m.generationErrors.Inc()
}

// RecordDegradedFallback records a generation served by the quick dossier
func (m *Manager) RecordDegradedFallback() {
	m.degradedFallbacks.Inc()
}

// ObserveFetch implements the collector's observer contract
func (m *Manager) ObserveFetch(source string, duration time.Duration, err error) {
	m.sourceFetchDuration.WithLabelValues(source).Observe(duration.Seconds())
	if err != nil {
		m.sourceFetchErrors.WithLabelValues(source).Inc()
	}
}

// RecordCacheHit records a dossier cache hit
func (m *Manager) RecordCacheHit() {
	m.cacheHits.Inc()
}

// RecordCacheMiss records a dossier cache miss
func (m *Manager) RecordCacheMiss() {
	m.cacheMisses.Inc()
}

// RecordHTTPRequest records one served HTTP request
func (m *Manager) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
