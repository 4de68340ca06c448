package executor

import (
	"context"
	"time"

	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/circuit"
	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/pool"
	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/ratelimit"
	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/retry"
)

// Executor composes the resilience layers around a single operation.
type Executor struct {
	limiter        *ratelimit.Limiter
	pool           *pool.Pool
	breaker        *circuit.Breaker
	retryPolicy    *retry.Policy
	attemptTimeout time.Duration
	timeoutMessage string
}

// Option configures an Executor.
type Option func(*Executor)

// New creates an executor with the given layers. An executor with no
// options runs operations directly.
func New(opts ...Option) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithRateLimiter adds token bucket rate limiting to the executor.
func WithRateLimiter(l *ratelimit.Limiter) Option {
	return func(e *Executor) {
		e.limiter = l
	}
}

// WithPool adds bounded-concurrency admission to the executor.
func WithPool(p *pool.Pool) Option {
	return func(e *Executor) {
		e.pool = p
	}
}

// WithBreaker adds a circuit breaker to the executor.
func WithBreaker(b *circuit.Breaker) Option {
	return func(e *Executor) {
		e.breaker = b
	}
}

// WithRetry adds retry logic to the executor.
func WithRetry(p retry.Policy) Option {
	return func(e *Executor) {
		e.retryPolicy = &p
	}
}

// WithAttemptTimeout bounds each individual attempt. When combined with
// WithRetry the timeout applies per attempt, not to the whole sequence.
func WithAttemptTimeout(timeout time.Duration, message ...string) Option {
	return func(e *Executor) {
		e.attemptTimeout = timeout
		if len(message) > 0 {
			e.timeoutMessage = message[0]
		}
	}
}

// Execute runs the operation through all configured layers.
//
// The layering order is:
//  1. Rate limiter (outermost) - throttles admission rate
//  2. Pool - bounds concurrency
//  3. Circuit breaker - fails fast on unhealthy targets
//  4. Retry - retries transient failures
//  5. Attempt timeout (innermost) - bounds each attempt
//
// The breaker sits outside retry so a tripped circuit rejects the whole
// call instead of being retried from inside.
func (e *Executor) Execute(ctx context.Context, op func(context.Context) error) error {
	execute := op

	// Wrap with per-attempt timeout (innermost)
	if e.attemptTimeout > 0 {
		inner := execute
		timeout := e.attemptTimeout
		message := e.timeoutMessage
		execute = func(ctx context.Context) error {
			if message != "" {
				return retry.RunWithTimeout(ctx, inner, timeout, message)
			}
			return retry.RunWithTimeout(ctx, inner, timeout)
		}
	}

	// Wrap with retry
	if e.retryPolicy != nil {
		inner := execute
		policy := *e.retryPolicy
		execute = func(ctx context.Context) error {
			return retry.Do(ctx, inner, policy)
		}
	}

	// Wrap with circuit breaker
	if e.breaker != nil {
		inner := execute
		execute = func(ctx context.Context) error {
			return e.breaker.Execute(ctx, inner)
		}
	}

	// Wrap with pool
	if e.pool != nil {
		inner := execute
		execute = func(ctx context.Context) error {
			return e.pool.Execute(ctx, inner)
		}
	}

	// Wrap with rate limiter (outermost)
	if e.limiter != nil {
		inner := execute
		execute = func(ctx context.Context) error {
			return e.limiter.Execute(ctx, inner)
		}
	}

	return execute(ctx)
}
