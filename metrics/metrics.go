package metrics

import (
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "coins_proxy_"

// Service constants
const (
	ServiceCoins = "coins"
	ServiceQueue = "queue"
)

var (
	// Global upstream request counter (all services)
	// Cardinality: ~2 (success, error)
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "upstream_requests_total",
			Help: "Total number of HTTP requests to the upstream price API",
		},
		[]string{"status"},
	)

	// Service-specific upstream request counter
	// Cardinality: ~4 (2 services x 2 statuses)
	ServiceUpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "service_upstream_requests_total",
			Help: "Total number of HTTP requests to the upstream price API per service",
		},
		[]string{"service", "status"},
	)

	// Fetch duration per service
	// Cardinality: ~2 (number of services)
	FetchDurationHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "fetch_duration_seconds",
			Help: "Time taken to fetch and transform data from the upstream API",
		},
		[]string{"service"},
	)

	// Cache request counter by outcome
	// Cardinality: ~4 (2 services x hit/miss)
	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "cache_requests_total",
			Help: "Total number of cache lookups by outcome",
		},
		[]string{"service", "status"},
	)

	// Service cache size
	// Cardinality: ~2 (number of services)
	ServiceCacheSizeGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "service_cache_size",
			Help: "Number of items in service cache",
		},
		[]string{"service"},
	)

	// Request latency per API endpoint
	// Cardinality: ~4 (number of endpoints)
	RequestLatencyHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "request_latency_seconds",
			Help: "Inbound HTTP request latency by endpoint",
		},
		[]string{"endpoint"},
	)
)

// RecordRequestLatency records the latency of an inbound API request
func RecordRequestLatency(endpoint string, duration time.Duration) {
	RequestLatencyHistogram.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// MetricsWriter provides a unified interface for recording service metrics
type MetricsWriter struct {
	serviceName string
}

// NewMetricsWriter creates a new MetricsWriter for the specified service
func NewMetricsWriter(serviceName string) *MetricsWriter {
	return &MetricsWriter{
		serviceName: serviceName,
	}
}

// GetServiceName returns the service name
func (mw *MetricsWriter) GetServiceName() string {
	return mw.serviceName
}

// RecordUpstreamRequest records an upstream API request with its status
func (mw *MetricsWriter) RecordUpstreamRequest(status string) {
	UpstreamRequestsTotal.WithLabelValues(status).Inc()
	ServiceUpstreamRequestsTotal.WithLabelValues(mw.serviceName, status).Inc()
}

// RecordFetchDuration records the duration of a fetch-and-transform cycle
func (mw *MetricsWriter) RecordFetchDuration(duration time.Duration) {
	FetchDurationHistogram.WithLabelValues(mw.serviceName).Observe(duration.Seconds())
	log.Printf("Metrics: %s fetch took %.2fs", mw.serviceName, duration.Seconds())
}

// RecordCacheRequest records a cache lookup outcome (hit or miss)
func (mw *MetricsWriter) RecordCacheRequest(status string) {
	CacheRequestsTotal.WithLabelValues(mw.serviceName, status).Inc()
}

// RecordCacheSize records the number of items in service cache
func (mw *MetricsWriter) RecordCacheSize(size int) {
	ServiceCacheSizeGauge.WithLabelValues(mw.serviceName).Set(float64(size))
}

// OnRequest implements coingecko.IHttpStatusHandler by writing to metrics
func (mw *MetricsWriter) OnRequest(status string) {
	mw.RecordUpstreamRequest(status)
}
