// Package observe provides observability primitives for guarded calls.
//
// It is a pure instrumentation library: no execution, no transport, no I/O
// beyond exporter setup. It depends on the resilience packages and polls
// them; the resilience packages never depend on it. Consumers wrap their
// operations with Middleware before handing them to an executor, and
// register the Instrument* gauges over long-lived pools, limiters, and
// breaker registries.
package observe
