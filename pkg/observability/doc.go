// Package observability provides structured logging, Prometheus metrics,
// and health checks for the Artium backend.
//
// # Logging
//
// Logger wraps stdlib slog with a JSON handler and a small fluent API:
//
//	logger := observability.NewLogger(observability.InfoLevel, os.Stdout)
//	logger.WithField("email", email).Info("user registered")
//
// FromContext builds a logger enriched with the request id and user id
// placed in the context by the HTTP middleware.
//
// # Metrics
//
// NewMetrics registers request, store, and generation counters on a
// dedicated Prometheus registry; Metrics.Handler serves them for the
// health/metrics listener.
//
// # Health
//
// HealthChecker exposes liveness (process up) and readiness (document
// store reachable) probes.
package observability
