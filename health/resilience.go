package health

import (
	"context"
	"fmt"
	"sort"

	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/circuit"
	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/pool"
	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/ratelimit"
)

// BreakerChecker reports the health of every circuit breaker in a
// registry. An open breaker makes the check unhealthy, a half-open
// breaker probing recovery makes it degraded, and all-closed is healthy.
type BreakerChecker struct {
	registry *circuit.Registry
}

// NewBreakerChecker creates a checker over the given breaker registry.
func NewBreakerChecker(registry *circuit.Registry) *BreakerChecker {
	return &BreakerChecker{registry: registry}
}

// Name returns the name of this checker.
func (c *BreakerChecker) Name() string {
	return "circuits"
}

// Check inspects the state of every registered breaker.
func (c *BreakerChecker) Check(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return Unhealthy("context cancelled", ctx.Err())
	default:
	}

	statuses := c.registry.Statuses()
	if len(statuses) == 0 {
		return Healthy("no targets registered")
	}

	var open, halfOpen []string
	details := make(map[string]any, len(statuses))
	for target, status := range statuses {
		entry := map[string]any{
			"state":    status.State.String(),
			"failures": status.Failures,
		}
		switch status.State {
		case circuit.StateOpen:
			open = append(open, target)
			entry["next_attempt"] = status.NextAttempt
		case circuit.StateHalfOpen:
			halfOpen = append(halfOpen, target)
		}
		details[target] = entry
	}
	sort.Strings(open)
	sort.Strings(halfOpen)

	if len(open) > 0 {
		return Unhealthy(
			fmt.Sprintf("%d of %d circuits open: %v", len(open), len(statuses), open),
			ErrCheckFailed,
		).WithDetails(details)
	}
	if len(halfOpen) > 0 {
		return Degraded(
			fmt.Sprintf("%d of %d circuits probing recovery: %v", len(halfOpen), len(statuses), halfOpen),
		).WithDetails(details)
	}
	return Healthy(
		fmt.Sprintf("all %d circuits closed", len(statuses)),
	).WithDetails(details)
}

// PoolChecker reports the saturation of a concurrency pool. A full
// queue makes the check unhealthy, a busy pool with calls waiting makes
// it degraded.
type PoolChecker struct {
	pool *pool.Pool
}

// NewPoolChecker creates a checker over the given pool.
func NewPoolChecker(p *pool.Pool) *PoolChecker {
	return &PoolChecker{pool: p}
}

// Name returns the name of this checker.
func (c *PoolChecker) Name() string {
	return "pool"
}

// Check inspects current pool occupancy and queue depth.
func (c *PoolChecker) Check(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return Unhealthy("context cancelled", ctx.Err())
	default:
	}

	status := c.pool.Status()
	stats := c.pool.Stats()

	details := map[string]any{
		"active":          status.Active,
		"idle":            status.Idle,
		"queued":          status.Queued,
		"max_concurrent":  status.MaxConcurrent,
		"max_queue_size":  status.MaxQueueSize,
		"total_executed":  stats.TotalExecuted,
		"total_failed":    stats.TotalFailed,
		"peak_concurrent": stats.PeakConcurrent,
	}

	saturated := status.Active >= status.MaxConcurrent
	if saturated && status.Queued >= status.MaxQueueSize {
		return Unhealthy(
			fmt.Sprintf("pool saturated: %d active, queue full at %d", status.Active, status.Queued),
			ErrCheckFailed,
		).WithDetails(details)
	}
	if saturated || status.Queued > 0 {
		return Degraded(
			fmt.Sprintf("pool busy: %d/%d active, %d queued", status.Active, status.MaxConcurrent, status.Queued),
		).WithDetails(details)
	}
	return Healthy(
		fmt.Sprintf("pool idle capacity %d/%d", status.Idle, status.MaxConcurrent),
	).WithDetails(details)
}

// LimiterChecker reports the token budget of a rate limiter. A drained
// bucket makes the check degraded rather than unhealthy, since tokens
// refill on their own.
type LimiterChecker struct {
	limiter *ratelimit.Limiter
}

// NewLimiterChecker creates a checker over the given limiter.
func NewLimiterChecker(l *ratelimit.Limiter) *LimiterChecker {
	return &LimiterChecker{limiter: l}
}

// Name returns the name of this checker.
func (c *LimiterChecker) Name() string {
	return "ratelimit"
}

// Check inspects the remaining token budget.
func (c *LimiterChecker) Check(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return Unhealthy("context cancelled", ctx.Err())
	default:
	}

	status := c.limiter.Status()

	details := map[string]any{
		"tokens":              status.Tokens,
		"max_burst":           status.MaxBurst,
		"tokens_per_interval": status.TokensPerInterval,
		"interval":            status.Interval.String(),
		"disabled":            status.Disabled,
	}

	if status.Disabled {
		return Healthy("rate limiting disabled").WithDetails(details)
	}
	if status.Tokens < 1 {
		return Degraded(
			fmt.Sprintf("token budget exhausted, refills %.1f per %s", status.TokensPerInterval, status.Interval),
		).WithDetails(details)
	}
	return Healthy(
		fmt.Sprintf("%.0f of %d tokens available", status.Tokens, status.MaxBurst),
	).WithDetails(details)
}
