package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the API
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	samplesTotal    *prometheus.CounterVec
	graphQueries    *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors on a fresh registry
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, path and status",
		}, []string{"method", "path", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and path",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		samplesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_total",
			Help:      "Sampler invocations by outcome",
		}, []string{"outcome"}),
		graphQueries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "graph_queries_total",
			Help:      "Graph store queries by operation and result",
		}, []string{"operation", "result"}),
	}
}

// Handler exposes the registry for the /metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one completed HTTP request
func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	m.requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// ObserveSample records one sampler invocation by its outcome
func (m *Metrics) ObserveSample(outcome string) {
	m.samplesTotal.WithLabelValues(outcome).Inc()
}

// ObserveGraphQuery records one graph store round trip
func (m *Metrics) ObserveGraphQuery(operation, result string) {
	m.graphQueries.WithLabelValues(operation, result).Inc()
}
