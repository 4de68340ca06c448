package observe

import (
	"context"
	"time"
)

// Middleware wraps guarded operations with observability (tracing,
// metrics, logging). It composes with the resilience layers: wrap the
// operation first, then hand the instrumented operation to an executor.
//
// Contract:
//   - Concurrency: Wrap() returns a thread-safe operation.
//   - Context: propagates context through tracing spans.
//   - Errors: errors from the wrapped operation are recorded and
//     propagated unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a new Middleware with the given observability components.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Wrap instruments an operation with tracing, metrics, and logging under
// the given call identity.
func (m *Middleware) Wrap(meta CallMeta, op func(context.Context) error) func(context.Context) error {
	return func(ctx context.Context) error {
		ctx, span := m.tracer.StartSpan(ctx, meta)

		start := time.Now()
		err := op(ctx)
		duration := time.Since(start)

		// End span (records error status if err != nil)
		m.tracer.EndSpan(span, err)

		m.metrics.RecordCall(ctx, meta, duration, err)

		callLogger := m.logger.WithComponent("executor")
		fields := []Field{
			{Key: "target", Value: meta.Target},
			{Key: "operation", Value: meta.Operation},
			{Key: "duration_ms", Value: float64(duration.Milliseconds())},
		}

		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			callLogger.Error(ctx, "guarded call failed", fields...)
		} else {
			callLogger.Info(ctx, "guarded call completed", fields...)
		}

		return err
	}
}

// MiddlewareFromObserver creates a Middleware from an Observer.
// This is a convenience function for common use cases.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	tracer := newTracer(obs.Tracer())

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(tracer, metrics, obs.Logger()), nil
}
