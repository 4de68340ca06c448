package pool

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/hydraerrors"
)

// Discipline selects which queued request runs next when a slot frees.
type Discipline int

const (
	// FIFO serves the oldest queued request first.
	FIFO Discipline = iota
	// LIFO serves the newest queued request first.
	LIFO
)

// String returns the string representation of the discipline.
func (d Discipline) String() string {
	switch d {
	case FIFO:
		return "fifo"
	case LIFO:
		return "lifo"
	default:
		return "unknown"
	}
}

// Config configures the pool.
type Config struct {
	// MaxConcurrent is the maximum number of simultaneously executing
	// operations.
	// Default: 10
	MaxConcurrent int

	// MaxQueueSize is the maximum number of requests waiting for a slot.
	// A request arriving with both slots and queue full is rejected
	// immediately.
	// Default: 100
	MaxQueueSize int

	// AcquireTimeout is the maximum time a request may wait in the queue
	// before it is rejected with a TimeoutError.
	// Default: 30 seconds
	AcquireTimeout time.Duration

	// Discipline is the queue service order.
	// Default: FIFO
	Discipline Discipline
}

// waiter is one queued request. Its channel is closed exactly once, under
// the pool mutex, with settled already true; err distinguishes a granted
// slot (nil) from a drain rejection.
type waiter struct {
	id       string
	ready    chan struct{}
	err      error
	settled  bool
	enqueued time.Time
}

// Pool is a bounded-concurrency executor with an ordered wait queue.
//
// Contract:
// - Concurrency: safe for concurrent use; all state lives behind one mutex.
// - Context: queue waits honor cancellation; a started operation is never
//   preempted, it always runs to completion.
// - Errors: the pool's own rejections are hydraerrors variants; operation
//   errors pass through unchanged.
type Pool struct {
	config Config

	mu            sync.Mutex
	active        int
	queue         []*waiter
	totalExecuted int64
	totalFailed   int64
	peak          int
	totalDuration time.Duration
}

// Status is a point-in-time snapshot of pool occupancy.
type Status struct {
	Active        int `json:"active"`
	Idle          int `json:"idle"`
	Queued        int `json:"queued"`
	MaxConcurrent int `json:"max_concurrent"`
	MaxQueueSize  int `json:"max_queue_size"`
}

// Stats are cumulative execution counters.
type Stats struct {
	TotalExecuted        int64         `json:"total_executed"`
	TotalFailed          int64         `json:"total_failed"`
	PeakConcurrent       int           `json:"peak_concurrent"`
	AverageExecutionTime time.Duration `json:"average_execution_time"`
}

// New creates a pool.
func New(config Config) *Pool {
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = 10
	}
	if config.MaxQueueSize <= 0 {
		config.MaxQueueSize = 100
	}
	if config.AcquireTimeout <= 0 {
		config.AcquireTimeout = 30 * time.Second
	}

	return &Pool{config: config}
}

// Execute runs the operation as soon as a slot is available.
//
// If a slot is free the operation starts immediately. If the pool is full
// but the queue has room, the request waits up to AcquireTimeout for a
// slot. If both are full it is rejected at once with a PoolExhaustedError.
func (p *Pool) Execute(ctx context.Context, op func(context.Context) error) error {
	if err := p.acquire(ctx); err != nil {
		return err
	}

	start := time.Now()
	err := op(ctx)
	p.release(err, time.Since(start))
	return err
}

// HasCapacity reports whether Execute would be admitted right now, either
// into a free slot or into the queue.
func (p *Pool) HasCapacity() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active < p.config.MaxConcurrent || len(p.queue) < p.config.MaxQueueSize
}

// Drain rejects every queued request with a "Pool drained" error and
// returns how many were rejected. Operations already executing are not
// affected; this is the only bulk-cancellation primitive the pool has.
func (p *Pool) Drain() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(p.queue)
	for _, w := range p.queue {
		w.err = hydraerrors.New("Pool drained", hydraerrors.CodePoolDrained).
			WithContext("request_id", w.id)
		w.settled = true
		close(w.ready)
	}
	p.queue = nil
	return n
}

// Status returns a snapshot of pool occupancy.
func (p *Pool) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()

	return Status{
		Active:        p.active,
		Idle:          p.config.MaxConcurrent - p.active,
		Queued:        len(p.queue),
		MaxConcurrent: p.config.MaxConcurrent,
		MaxQueueSize:  p.config.MaxQueueSize,
	}
}

// Stats returns cumulative execution counters.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	stats := Stats{
		TotalExecuted:  p.totalExecuted,
		TotalFailed:    p.totalFailed,
		PeakConcurrent: p.peak,
	}
	if completed := p.totalExecuted + p.totalFailed; completed > 0 {
		stats.AverageExecutionTime = p.totalDuration / time.Duration(completed)
	}
	return stats
}

// ResetStats zeroes the cumulative counters. Occupancy is unaffected.
func (p *Pool) ResetStats() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.totalExecuted = 0
	p.totalFailed = 0
	p.peak = p.active
	p.totalDuration = 0
}

func (p *Pool) acquire(ctx context.Context) error {
	p.mu.Lock()

	if p.active < p.config.MaxConcurrent {
		p.active++
		if p.active > p.peak {
			p.peak = p.active
		}
		p.mu.Unlock()
		return nil
	}

	if len(p.queue) >= p.config.MaxQueueSize {
		size := len(p.queue)
		p.mu.Unlock()
		return hydraerrors.NewPoolExhaustedError("connection pool exhausted", size)
	}

	w := &waiter{
		id:       uuid.NewString(),
		ready:    make(chan struct{}),
		enqueued: time.Now(),
	}
	p.queue = append(p.queue, w)
	p.mu.Unlock()

	timer := time.NewTimer(p.config.AcquireTimeout)
	defer timer.Stop()

	select {
	case <-w.ready:
		return w.err

	case <-timer.C:
		p.mu.Lock()
		if w.settled {
			// A dispatch or drain settled us concurrently; that outcome
			// wins over the timer.
			p.mu.Unlock()
			return w.err
		}
		p.removeLocked(w)
		queued := time.Since(w.enqueued)
		p.mu.Unlock()

		terr := hydraerrors.NewTimeoutError("timed out waiting for pool slot", p.config.AcquireTimeout)
		terr.WithContext("request_id", w.id)
		terr.WithContext("queued_ms", queued.Milliseconds())
		return terr

	case <-ctx.Done():
		p.mu.Lock()
		if w.settled {
			p.mu.Unlock()
			if w.err != nil {
				return w.err
			}
			// We were granted a slot in the race; hand it back so the
			// next waiter gets it, and report the cancellation.
			p.releaseSlot()
			return ctx.Err()
		}
		p.removeLocked(w)
		p.mu.Unlock()
		return ctx.Err()
	}
}

func (p *Pool) release(opErr error, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.active--
	if opErr != nil {
		p.totalFailed++
	} else {
		p.totalExecuted++
	}
	p.totalDuration += d
	p.dispatchLocked()
}

// releaseSlot returns a granted but unused slot to the pool.
func (p *Pool) releaseSlot() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.active--
	p.dispatchLocked()
}

func (p *Pool) dispatchLocked() {
	for p.active < p.config.MaxConcurrent && len(p.queue) > 0 {
		var w *waiter
		if p.config.Discipline == LIFO {
			w = p.queue[len(p.queue)-1]
			p.queue = p.queue[:len(p.queue)-1]
		} else {
			w = p.queue[0]
			p.queue = p.queue[1:]
		}

		p.active++
		if p.active > p.peak {
			p.peak = p.active
		}
		w.settled = true
		close(w.ready)
	}
}

func (p *Pool) removeLocked(target *waiter) {
	for i, w := range p.queue {
		if w == target {
			p.queue = append(p.queue[:i], p.queue[i+1:]...)
			return
		}
	}
}
