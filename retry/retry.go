package retry

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"regexp"
	"syscall"
	"time"

	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/hydraerrors"
)

// Policy configures retry behavior. It is a value object; the zero value
// retries nothing, DefaultPolicy gives the production defaults.
type Policy struct {
	// MaxRetries is the number of retries after the initial attempt, so
	// MaxRetries of N means at most N+1 calls.
	// Default (DefaultPolicy): 3
	MaxRetries int

	// BaseDelay is the delay before the first retry.
	// Default: 500ms
	BaseDelay time.Duration

	// MaxDelay caps the backoff delay.
	// Default: 30 seconds
	MaxDelay time.Duration

	// BackoffMultiplier scales the delay each retry.
	// Default: 2.0
	BackoffMultiplier float64

	// Jitter randomizes each delay by up to +25% so many callers backing
	// off together do not retry in lockstep.
	// Default (DefaultPolicy): true
	Jitter bool

	// ShouldRetry, if set, is the authoritative retry decision and
	// short-circuits every built-in heuristic.
	ShouldRetry func(err error) bool

	// OnRetry is called after every failed attempt with the 1-based
	// attempt number and whether another attempt will follow.
	OnRetry func(attempt int, err error, willRetry bool)
}

// DefaultPolicy returns the production retry defaults.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:        3,
		BaseDelay:         500 * time.Millisecond,
		MaxDelay:          30 * time.Second,
		BackoffMultiplier: 2.0,
		Jitter:            true,
	}
}

func (p Policy) withDefaults() Policy {
	if p.BaseDelay <= 0 {
		p.BaseDelay = 500 * time.Millisecond
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = 30 * time.Second
	}
	if p.BackoffMultiplier <= 0 {
		p.BackoffMultiplier = 2.0
	}
	return p
}

// RetryableStatusCodes are HTTP statuses treated as transient by the
// default heuristics.
var RetryableStatusCodes = map[int]bool{
	429: true,
	500: true,
	502: true,
	503: true,
	504: true,
}

// RetryableErrorCodes are transport errnos treated as transient by the
// default heuristics, by errors.Is match or by name in the message.
var RetryableErrorCodes = map[string]syscall.Errno{
	"ECONNRESET":   syscall.ECONNRESET,
	"ECONNREFUSED": syscall.ECONNREFUSED,
	"ETIMEDOUT":    syscall.ETIMEDOUT,
	"EPIPE":        syscall.EPIPE,
}

var transientMessagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)timeout`),
	regexp.MustCompile(`(?i)rate limit`),
	regexp.MustCompile(`(?i)too many requests`),
	regexp.MustCompile(`\b429\b`),
}

// statusCoder is satisfied by provider SDK errors that expose an HTTP
// status.
type statusCoder interface {
	StatusCode() int
}

// IsRetryable is the decision-point triage for arbitrary errors.
//
// Precedence: a custom ShouldRetry predicate is authoritative; context
// cancellation is never retried; an error already classified in the
// taxonomy is trusted without re-sniffing; everything else is triaged
// heuristically by errno, HTTP status, and message patterns.
func IsRetryable(err error, p Policy) bool {
	if err == nil {
		return false
	}
	if p.ShouldRetry != nil {
		return p.ShouldRetry(err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var classified hydraerrors.Classified
	if errors.As(err, &classified) {
		return classified.IsRetryable()
	}

	msg := err.Error()
	for name, errno := range RetryableErrorCodes {
		if errors.Is(err, errno) || containsWord(msg, name) {
			return true
		}
	}

	var sc statusCoder
	if errors.As(err, &sc) {
		return RetryableStatusCodes[sc.StatusCode()]
	}

	for _, pattern := range transientMessagePatterns {
		if pattern.MatchString(msg) {
			return true
		}
	}
	return false
}

// CalculateDelay returns the backoff delay before retry number attempt
// (0-based): min(BaseDelay * BackoffMultiplier^attempt, MaxDelay), plus
// up to 25% jitter when enabled.
func CalculateDelay(attempt int, p Policy) time.Duration {
	p = p.withDefaults()

	delay := time.Duration(float64(p.BaseDelay) * math.Pow(p.BackoffMultiplier, float64(attempt)))
	if delay > p.MaxDelay || delay <= 0 {
		delay = p.MaxDelay
	}

	if p.Jitter && delay >= 4 {
		// #nosec G404 -- jitter is non-cryptographic timing variance.
		delay += time.Duration(rand.Int64N(int64(delay / 4)))
	}
	return delay
}

// Do calls op and retries retryable failures per the policy. MaxRetries
// of N means op runs at most N+1 times. The final error is returned
// unchanged; retry bookkeeping is recorded on classified errors' context.
// The backoff wait honors ctx and returns ctx.Err() when cancelled.
func Do(ctx context.Context, op func(context.Context) error, p Policy) error {
	p = p.withDefaults()

	var lastErr error
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		willRetry := attempt < p.MaxRetries && IsRetryable(err, p)
		hydraerrors.WithRetryContext(err, attempt+1, p.MaxRetries+1)
		if p.OnRetry != nil {
			p.OnRetry(attempt+1, err, willRetry)
		}
		if !willRetry {
			return lastErr
		}

		timer := time.NewTimer(CalculateDelay(attempt, p))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}

// containsWord reports whether msg contains name as a standalone token,
// so "ECONNRESET" matches but "XECONNRESETX" style noise does not.
func containsWord(msg, name string) bool {
	for i := 0; i+len(name) <= len(msg); i++ {
		if msg[i:i+len(name)] != name {
			continue
		}
		beforeOK := i == 0 || !isWordByte(msg[i-1])
		afterOK := i+len(name) == len(msg) || !isWordByte(msg[i+len(name)])
		if beforeOK && afterOK {
			return true
		}
	}
	return false
}

func isWordByte(b byte) bool {
	return b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b == '_'
}
