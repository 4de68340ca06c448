package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Config configures the token bucket.
type Config struct {
	// MaxBurst is the bucket capacity.
	// Default: 60
	MaxBurst int

	// TokensPerInterval is how many tokens are added per Interval.
	// Default: 60
	TokensPerInterval float64

	// Interval is the refill period.
	// Default: 1 minute
	Interval time.Duration

	// Disabled turns the limiter into a pass-through: every acquisition
	// succeeds immediately and no tokens are consumed.
	Disabled bool
}

// Limiter is a token-bucket admission gate. The bucket starts full and is
// refilled lazily from elapsed wall-clock time on each check, so an idle
// limiter costs nothing.
type Limiter struct {
	config Config

	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
}

// Status is a point-in-time snapshot of the limiter state.
type Status struct {
	Tokens            float64       `json:"tokens"`
	MaxBurst          int           `json:"max_burst"`
	TokensPerInterval float64       `json:"tokens_per_interval"`
	Interval          time.Duration `json:"interval"`
	Disabled          bool          `json:"disabled"`
	LastRefill        time.Time     `json:"last_refill"`
}

// New creates a limiter with a full bucket.
func New(config Config) *Limiter {
	if config.MaxBurst <= 0 {
		config.MaxBurst = 60
	}
	if config.TokensPerInterval <= 0 {
		config.TokensPerInterval = 60
	}
	if config.Interval <= 0 {
		config.Interval = time.Minute
	}

	return &Limiter{
		config:     config,
		tokens:     float64(config.MaxBurst),
		lastRefill: time.Now(),
	}
}

// Allow consumes one token if available and reports whether it did. A
// disabled limiter always allows and consumes nothing.
func (l *Limiter) Allow() bool {
	if l.config.Disabled {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.refillLocked()

	if l.tokens >= 1 {
		l.tokens--
		return true
	}
	return false
}

// Wait blocks until a token is available, then consumes it. It returns
// ctx.Err() unchanged if the context is cancelled first.
//
// Waiters are woken best-effort: when several goroutines wait on the same
// starved bucket, which of them wins the next refilled token is not
// defined. This is an explicit asymmetry with the pool, whose wait queue
// is strictly ordered.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.config.Disabled {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		l.mu.Lock()
		l.refillLocked()
		if l.tokens >= 1 {
			l.tokens--
			l.mu.Unlock()
			return nil
		}
		// Sleep just long enough for the deficit to refill, then race
		// the other waiters for it.
		deficit := 1 - l.tokens
		wait := time.Duration(deficit / l.config.TokensPerInterval * float64(l.config.Interval))
		l.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Execute waits for a token and then runs the operation.
func (l *Limiter) Execute(ctx context.Context, op func(context.Context) error) error {
	if err := l.Wait(ctx); err != nil {
		return err
	}
	return op(ctx)
}

// Tokens returns the current token count after refill.
func (l *Limiter) Tokens() float64 {
	if l.config.Disabled {
		return float64(l.config.MaxBurst)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.refillLocked()
	return l.tokens
}

// Reset refills the bucket to capacity.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens = float64(l.config.MaxBurst)
	l.lastRefill = time.Now()
}

// Status returns a snapshot of the limiter state.
func (l *Limiter) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.config.Disabled {
		l.refillLocked()
	}

	return Status{
		Tokens:            l.tokens,
		MaxBurst:          l.config.MaxBurst,
		TokensPerInterval: l.config.TokensPerInterval,
		Interval:          l.config.Interval,
		Disabled:          l.config.Disabled,
		LastRefill:        l.lastRefill,
	}
}

func (l *Limiter) refillLocked() {
	now := time.Now()
	elapsed := now.Sub(l.lastRefill)
	l.lastRefill = now

	l.tokens += float64(elapsed) / float64(l.config.Interval) * l.config.TokensPerInterval

	if l.tokens > float64(l.config.MaxBurst) {
		l.tokens = float64(l.config.MaxBurst)
	}
}
