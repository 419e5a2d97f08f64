// Package observability provides structured logging, Prometheus metrics,
// health probes and graceful-shutdown plumbing for the host panel service.
//
// # Structured Logging
//
// Create logger:
//
//	logger := observability.NewLogger(observability.InfoLevel, os.Stdout)
//	logger.WithField("plugin", name).Info("Plugin registered")
//
// # Prometheus Metrics
//
// Initialize metrics:
//
//	metrics := observability.NewMetrics(prometheus.NewRegistry())
//	handler := metrics.Middleware(apiHandler)
//
// # Health Checks
//
//	checker := observability.NewHealthChecker(registry)
//	mux.HandleFunc("/healthz", checker.Liveness)
//	mux.HandleFunc("/readyz", checker.Readiness)
package observability
