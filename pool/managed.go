package pool

import (
	"context"

	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/ratelimit"
)

// Managed composes a rate limiter in front of a pool so one Execute call
// performs both admissions: first a token is acquired (waiting for refill
// if needed), then the request goes through pool admission.
type Managed struct {
	pool    *Pool
	limiter *ratelimit.Limiter
}

// ManagedStatus combines the snapshots of both layers.
type ManagedStatus struct {
	Pool      Status           `json:"pool"`
	RateLimit ratelimit.Status `json:"rate_limit"`
}

// NewManaged composes a pool with a rate limiter.
func NewManaged(p *Pool, l *ratelimit.Limiter) *Managed {
	return &Managed{pool: p, limiter: l}
}

// Execute acquires a token, then runs the operation through the pool.
func (m *Managed) Execute(ctx context.Context, op func(context.Context) error) error {
	if err := m.limiter.Wait(ctx); err != nil {
		return err
	}
	return m.pool.Execute(ctx, op)
}

// Status returns both layers' snapshots.
func (m *Managed) Status() ManagedStatus {
	return ManagedStatus{
		Pool:      m.pool.Status(),
		RateLimit: m.limiter.Status(),
	}
}

// HasCapacity reports whether the pool would admit a request right now.
// The rate limiter is not consulted: a missing token delays admission,
// it does not reject it.
func (m *Managed) HasCapacity() bool { return m.pool.HasCapacity() }

// Stats returns the pool's cumulative counters.
func (m *Managed) Stats() Stats { return m.pool.Stats() }

// ResetStats zeroes the pool's cumulative counters.
func (m *Managed) ResetStats() { m.pool.ResetStats() }

// Drain rejects all queued requests; see Pool.Drain.
func (m *Managed) Drain() int { return m.pool.Drain() }
