package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the service
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Document store metrics
	StoreOperationsTotal *prometheus.CounterVec
	StoreErrorsTotal     *prometheus.CounterVec

	// Generation metrics
	GenerationRequestsTotal *prometheus.CounterVec
	GenerationDuration      prometheus.Histogram

	// Business metrics
	UsersRegisteredTotal prometheus.Counter
	ArticlesSavedTotal   prometheus.Counter

	registry *prometheus.Registry
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "artium_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "artium_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		StoreOperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "artium_store_operations_total",
				Help: "Total number of document store operations",
			},
			[]string{"collection", "operation"},
		),
		StoreErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "artium_store_errors_total",
				Help: "Total number of document store failures",
			},
			[]string{"collection", "operation"},
		),
		GenerationRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "artium_generation_requests_total",
				Help: "Total number of outbound generation calls",
			},
			[]string{"kind", "outcome"},
		),
		GenerationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "artium_generation_duration_seconds",
				Help:    "Outbound generation call latency in seconds",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
		),
		UsersRegisteredTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "artium_users_registered_total",
				Help: "Total number of registered users",
			},
		),
		ArticlesSavedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "artium_articles_saved_total",
				Help: "Total number of articles persisted",
			},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.StoreOperationsTotal,
		m.StoreErrorsTotal,
		m.GenerationRequestsTotal,
		m.GenerationDuration,
		m.UsersRegisteredTotal,
		m.ArticlesSavedTotal,
	)

	return m
}

// Handler returns an HTTP handler serving the registry in Prometheus format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveStoreOperation records a store operation and its outcome
func (m *Metrics) ObserveStoreOperation(collection, operation string, err error) {
	m.StoreOperationsTotal.WithLabelValues(collection, operation).Inc()
	if err != nil {
		m.StoreErrorsTotal.WithLabelValues(collection, operation).Inc()
	}
}

// ObserveGeneration records an outbound generation call
func (m *Metrics) ObserveGeneration(kind string, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.GenerationRequestsTotal.WithLabelValues(kind, outcome).Inc()
	m.GenerationDuration.Observe(duration.Seconds())
}

// HTTPMiddleware instruments a handler with request count and latency metrics.
// The route template (not the raw URL) should be used as the path label to
// keep cardinality bounded; mux.CurrentRoute provides it when available.
func (m *Metrics) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		path := r.URL.Path
		m.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rw.status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// statusRecorder wraps http.ResponseWriter to capture the status code
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
