// Package pool provides bounded-concurrency admission control for remote
// calls.
//
// A Pool runs at most MaxConcurrent operations at once. Requests arriving
// beyond that wait in an ordered queue of at most MaxQueueSize entries,
// each for at most AcquireTimeout; a request that finds both the slots and
// the queue full is rejected immediately. The queue is serviced oldest
// first by default, or newest first with Discipline LIFO, and the service
// order is a hard guarantee, unlike the rate limiter's best-effort wakeups.
//
//	p := pool.New(pool.Config{
//	    MaxConcurrent:  10,
//	    MaxQueueSize:   100,
//	    AcquireTimeout: 30 * time.Second,
//	})
//
//	err := p.Execute(ctx, func(ctx context.Context) error {
//	    return client.Generate(ctx, prompt)
//	})
//
// Managed chains a ratelimit.Limiter in front of a Pool so callers get
// both admission gates behind a single Execute.
//
// Started operations are never cancelled by the pool: AcquireTimeout and
// Drain only affect requests still waiting in the queue.
package pool
