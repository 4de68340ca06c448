// Package executor composes the resilience layers into a single call path.
//
// Each layer is optional. A fully configured executor admits an operation
// through the rate limiter, reserves a pool slot, checks the circuit
// breaker, and then runs the operation under a retry loop where every
// attempt is bounded by its own timeout:
//
//	exec := executor.New(
//		executor.WithRateLimiter(limiter),
//		executor.WithPool(connPool),
//		executor.WithBreaker(breaker),
//		executor.WithRetry(retry.DefaultPolicy()),
//		executor.WithAttemptTimeout(10*time.Second),
//	)
//	err := exec.Execute(ctx, callProvider)
//
// The pool slot is held for the full duration of the retry loop, so a
// flapping target cannot multiply its concurrency footprint by retrying.
package executor
