package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ClientMetrics tracks backend traffic from the client side: request
// outcomes, health probe results and where fetched data actually came
// from (live, cache or fallback).
type ClientMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	probesTotal     *prometheus.CounterVec
	fetchSource     *prometheus.CounterVec
}

// NewClientMetrics creates and registers the client metric set. Pass a
// dedicated registry in tests to avoid duplicate registration.
func NewClientMetrics(reg prometheus.Registerer) *ClientMetrics {
	m := &ClientMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "t4g_client_requests_total",
			Help: "Backend requests by method, path and outcome status",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "t4g_client_request_duration_seconds",
			Help:    "Backend request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		probesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "t4g_client_health_probes_total",
			Help: "Health probe attempts by result",
		}, []string{"result"}),
		fetchSource: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "t4g_client_fetch_source_total",
			Help: "Resolved data source for resilient fetches",
		}, []string{"source"}),
	}
	reg.MustRegister(m.requestsTotal, m.requestDuration, m.probesTotal, m.fetchSource)
	return m
}

// ObserveRequest records a completed (or failed) backend request.
func (m *ClientMetrics) ObserveRequest(method, path, status string, elapsed time.Duration) {
	m.requestsTotal.WithLabelValues(method, path, status).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// ObserveProbe records a health probe outcome.
func (m *ClientMetrics) ObserveProbe(ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	m.probesTotal.WithLabelValues(result).Inc()
}

// ObserveFetchSource records where a resilient fetch's data came from:
// "live", "cache" or "fallback".
func (m *ClientMetrics) ObserveFetchSource(source string) {
	m.fetchSource.WithLabelValues(source).Inc()
}
