package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/circuit"
	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/pool"
	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/ratelimit"
)

// InstrumentPool registers asynchronous gauges over a pool's status and
// stats. The pool is polled on collection, never pushed to; unregister
// the returned registration to stop.
func InstrumentPool(meter metric.Meter, name string, p *pool.Pool) (metric.Registration, error) {
	active, err := meter.Int64ObservableGauge(
		"hydra.pool.active",
		metric.WithDescription("Connections currently executing"),
	)
	if err != nil {
		return nil, err
	}
	queued, err := meter.Int64ObservableGauge(
		"hydra.pool.queued",
		metric.WithDescription("Requests waiting for a slot"),
	)
	if err != nil {
		return nil, err
	}
	peak, err := meter.Int64ObservableGauge(
		"hydra.pool.peak",
		metric.WithDescription("Peak concurrent executions since last reset"),
	)
	if err != nil {
		return nil, err
	}
	executed, err := meter.Int64ObservableCounter(
		"hydra.pool.executed",
		metric.WithDescription("Successfully executed operations"),
	)
	if err != nil {
		return nil, err
	}
	failed, err := meter.Int64ObservableCounter(
		"hydra.pool.failed",
		metric.WithDescription("Failed operations"),
	)
	if err != nil {
		return nil, err
	}

	opt := metric.WithAttributes(attribute.String("pool.name", name))
	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		status := p.Status()
		stats := p.Stats()
		o.ObserveInt64(active, int64(status.Active), opt)
		o.ObserveInt64(queued, int64(status.Queued), opt)
		o.ObserveInt64(peak, int64(stats.PeakConcurrent), opt)
		o.ObserveInt64(executed, stats.TotalExecuted, opt)
		o.ObserveInt64(failed, stats.TotalFailed, opt)
		return nil
	}, active, queued, peak, executed, failed)
}

// InstrumentLimiter registers an asynchronous gauge over a limiter's
// token balance.
func InstrumentLimiter(meter metric.Meter, name string, l *ratelimit.Limiter) (metric.Registration, error) {
	tokens, err := meter.Float64ObservableGauge(
		"hydra.ratelimit.tokens",
		metric.WithDescription("Tokens currently available"),
	)
	if err != nil {
		return nil, err
	}

	opt := metric.WithAttributes(attribute.String("limiter.name", name))
	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		o.ObserveFloat64(tokens, l.Status().Tokens, opt)
		return nil
	}, tokens)
}

// InstrumentRegistry registers an asynchronous gauge reporting every
// breaker's state (0 closed, 1 open, 2 half-open), one series per key.
func InstrumentRegistry(meter metric.Meter, r *circuit.Registry) (metric.Registration, error) {
	state, err := meter.Int64ObservableGauge(
		"hydra.circuit.state",
		metric.WithDescription("Breaker state per target (0 closed, 1 open, 2 half-open)"),
	)
	if err != nil {
		return nil, err
	}
	failures, err := meter.Int64ObservableGauge(
		"hydra.circuit.failures",
		metric.WithDescription("Consecutive failures per target"),
	)
	if err != nil {
		return nil, err
	}

	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		for key, status := range r.Statuses() {
			opt := metric.WithAttributes(attribute.String("circuit.target", key))
			o.ObserveInt64(state, int64(status.State), opt)
			o.ObserveInt64(failures, int64(status.Failures), opt)
		}
		return nil
	}, state, failures)
}

// BreakerTransitionCounter builds a state-change hook that counts
// transitions. Install the returned function as the registry's
// OnStateChange to get one counter series per target and edge.
func BreakerTransitionCounter(meter metric.Meter) (func(key string, from, to circuit.State), error) {
	transitions, err := meter.Int64Counter(
		"hydra.circuit.transitions",
		metric.WithDescription("Breaker state transitions"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return nil, err
	}

	return func(key string, from, to circuit.State) {
		transitions.Add(context.Background(), 1, metric.WithAttributes(
			attribute.String("circuit.target", key),
			attribute.String("from", from.String()),
			attribute.String("to", to.String()),
		))
	}, nil
}
