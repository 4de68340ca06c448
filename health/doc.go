// Package health exposes the state of the resilience layers as health
// checks suitable for liveness and readiness probes.
//
// Each guarded component maps its internal state to a Status: an open
// circuit breaker is unhealthy, a breaker probing recovery is degraded,
// a saturated pool is unhealthy, and a drained rate limiter is
// degraded because tokens refill on their own.
//
// # Basic Usage
//
//	registry := circuit.NewRegistry(circuit.RegistryConfig{})
//	agg := health.NewAggregator()
//	agg.Register("circuits", health.NewBreakerChecker(registry))
//	agg.Register("pool", health.NewPoolChecker(workPool))
//	agg.Register("ratelimit", health.NewLimiterChecker(limiter))
//
//	results := agg.CheckAll(ctx)
//	overall := agg.OverallStatus(results)
//
// # HTTP Endpoints
//
// The package provides handlers for common probe patterns:
//
//	// Liveness probe (for Kubernetes)
//	http.Handle("/healthz", health.LivenessHandler())
//
//	// Readiness probe with component checks
//	http.Handle("/readyz", health.ReadinessHandler(agg))
//
//	// Detailed health status with per-breaker state
//	http.Handle("/health", health.DetailedHandler(agg))
//
// Degraded components still answer probes with 200 so traffic keeps
// flowing while operators investigate; only unhealthy answers 503.
package health
