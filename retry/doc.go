// Package retry orchestrates retries with exponential backoff and jitter,
// and bounds individual attempts with timeouts.
//
// This is the only layer in the resilience core that retries anything:
// the pool, rate limiter, and circuit breaker all fail fast with typed
// errors and leave the retry decision here.
//
//	err := retry.Do(ctx, callProvider, retry.DefaultPolicy())
//
// Retryability is decided by IsRetryable in three tiers: a caller-supplied
// ShouldRetry predicate wins outright; errors already classified in the
// hydraerrors taxonomy are trusted as classified; raw errors from provider
// SDKs are triaged heuristically by errno (ECONNRESET, ECONNREFUSED, ...),
// HTTP status (429, 502, 503, ...), and transient message patterns.
// Context cancellation is never retried.
//
// RunWithTimeout deliberately does not cancel the operation it abandons;
// see its documentation for the exact semantics.
package retry
