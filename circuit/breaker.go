package circuit

import (
	"context"
	"sync"
	"time"

	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/hydraerrors"
)

// State represents the breaker state.
type State int

const (
	// StateClosed means calls flow through normally.
	StateClosed State = iota
	// StateOpen means calls are rejected until the cool-down elapses.
	StateOpen
	// StateHalfOpen means a limited number of probe calls are testing
	// whether the dependency recovered.
	StateHalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Config configures the breaker.
type Config struct {
	// FailureThreshold is the number of consecutive failures in the
	// closed state before the circuit opens.
	// Default: 5
	FailureThreshold int

	// SuccessThreshold is the number of consecutive half-open probe
	// successes before the circuit closes again.
	// Default: 2
	SuccessThreshold int

	// Timeout is the open-state cool-down before probing starts.
	// Default: 30 seconds
	Timeout time.Duration

	// HalfOpenMaxCalls is the number of probe calls allowed in flight
	// concurrently while half-open.
	// Default: 1
	HalfOpenMaxCalls int

	// OnStateChange is called after every state transition, with the
	// breaker mutex held; keep it fast and do not call back into the
	// breaker from it.
	OnStateChange func(from, to State)

	// IsFailure decides whether an operation error counts against the
	// failure threshold.
	// Default: every non-nil error counts.
	IsFailure func(err error) bool
}

// Breaker is a three-state circuit breaker isolating one remote target.
//
// Contract:
// - Concurrency: safe for concurrent use; exactly one caller wins the
//   open to half-open probe transition.
// - Context: the context is passed through to the operation untouched.
// - Errors: rejections are *hydraerrors.CircuitOpenError carrying the
//   time of the next allowed attempt; operation errors pass through.
type Breaker struct {
	config Config

	mu               sync.Mutex
	state            State
	failures         int
	successes        int
	lastFailure      time.Time
	nextAttempt      time.Time
	halfOpenInFlight int

	// generation increments on every transition; probe results carrying
	// a stale generation are discarded.
	generation uint64
}

// BreakerStatus is a point-in-time snapshot of the breaker.
type BreakerStatus struct {
	State       State     `json:"state"`
	Failures    int       `json:"failures"`
	Successes   int       `json:"successes"`
	LastFailure time.Time `json:"last_failure"`
	NextAttempt time.Time `json:"next_attempt"`
}

// NewBreaker creates a breaker in the closed state.
func NewBreaker(config Config) *Breaker {
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = 5
	}
	if config.SuccessThreshold <= 0 {
		config.SuccessThreshold = 2
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.HalfOpenMaxCalls <= 0 {
		config.HalfOpenMaxCalls = 1
	}
	if config.IsFailure == nil {
		config.IsFailure = func(err error) bool { return err != nil }
	}

	return &Breaker{
		config: config,
		state:  StateClosed,
	}
}

// Execute runs the operation through the breaker.
func (b *Breaker) Execute(ctx context.Context, op func(context.Context) error) error {
	gen, err := b.beforeRequest()
	if err != nil {
		return err
	}

	opErr := op(ctx)
	b.afterRequest(gen, opErr)
	return opErr
}

// State returns the current state, applying the open to half-open
// transition lazily if the cool-down has elapsed.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentStateLocked()
}

// IsAvailable reports whether a call would currently be admitted.
func (b *Breaker) IsAvailable() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.currentStateLocked() {
	case StateOpen:
		return false
	case StateHalfOpen:
		return b.halfOpenInFlight < b.config.HalfOpenMaxCalls
	default:
		return true
	}
}

// ForceOpen trips the circuit manually, starting a fresh cool-down.
func (b *Breaker) ForceOpen() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != StateOpen {
		b.transitionLocked(StateOpen)
	} else {
		b.nextAttempt = time.Now().Add(b.config.Timeout)
	}
}

// ForceClose resets the circuit to closed, clearing all counters.
func (b *Breaker) ForceClose() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != StateClosed {
		b.transitionLocked(StateClosed)
	}
	b.failures = 0
	b.successes = 0
}

// Status returns a snapshot of the breaker.
func (b *Breaker) Status() BreakerStatus {
	b.mu.Lock()
	defer b.mu.Unlock()

	return BreakerStatus{
		State:       b.currentStateLocked(),
		Failures:    b.failures,
		Successes:   b.successes,
		LastFailure: b.lastFailure,
		NextAttempt: b.nextAttempt,
	}
}

// beforeRequest admits or rejects a call and returns the generation the
// call belongs to.
func (b *Breaker) beforeRequest() (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.currentStateLocked() {
	case StateOpen:
		return 0, b.openErrorLocked()
	case StateHalfOpen:
		if b.halfOpenInFlight >= b.config.HalfOpenMaxCalls {
			return 0, b.openErrorLocked()
		}
		b.halfOpenInFlight++
	}

	return b.generation, nil
}

func (b *Breaker) afterRequest(gen uint64, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.generation {
		// The circuit transitioned while this call was in flight; its
		// result belongs to a previous generation and is discarded.
		return
	}

	isFailure := b.config.IsFailure(err)

	switch b.state {
	case StateClosed:
		if isFailure {
			b.failures++
			b.lastFailure = time.Now()
			if b.failures >= b.config.FailureThreshold {
				b.transitionLocked(StateOpen)
			}
		} else {
			// A success in the closed state fully resets the failure
			// count; only consecutive failures trip the circuit.
			b.failures = 0
		}

	case StateHalfOpen:
		b.halfOpenInFlight--
		if isFailure {
			b.lastFailure = time.Now()
			b.transitionLocked(StateOpen)
		} else {
			b.successes++
			if b.successes >= b.config.SuccessThreshold {
				b.failures = 0
				b.successes = 0
				b.transitionLocked(StateClosed)
			}
		}
	}
}

// currentStateLocked applies the lazy open to half-open transition. The
// caller holds b.mu, so exactly one goroutine performs the flip.
func (b *Breaker) currentStateLocked() State {
	if b.state == StateOpen && !time.Now().Before(b.nextAttempt) {
		b.transitionLocked(StateHalfOpen)
	}
	return b.state
}

func (b *Breaker) transitionLocked(to State) {
	from := b.state
	b.state = to
	b.generation++

	switch to {
	case StateOpen:
		b.nextAttempt = time.Now().Add(b.config.Timeout)
	case StateHalfOpen:
		b.halfOpenInFlight = 0
		b.successes = 0
	}

	if b.config.OnStateChange != nil {
		b.config.OnStateChange(from, to)
	}
}

func (b *Breaker) openErrorLocked() error {
	return hydraerrors.NewCircuitOpenError("circuit breaker is open", b.nextAttempt)
}
