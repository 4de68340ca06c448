package retry

import (
	"context"
	"time"

	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/hydraerrors"
)

// RunWithTimeout races op against a timer. If the timer fires first, it
// returns a *hydraerrors.TimeoutError and stops waiting.
//
// The operation is not forcibly stopped: it receives a deadline-carrying
// child context for cooperative cancellation, but if it ignores that
// context it keeps running in the background after the timeout. Callers
// who need hard cancellation must build it into the operation itself.
func RunWithTimeout(ctx context.Context, op func(context.Context) error, timeout time.Duration, message ...string) error {
	msg := "operation timed out"
	if len(message) > 0 && message[0] != "" {
		msg = message[0]
	}

	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- op(tctx)
	}()

	select {
	case err := <-done:
		return err
	case <-tctx.Done():
		if ctx.Err() != nil {
			// The parent, not our timer, ended the wait.
			return ctx.Err()
		}
		return hydraerrors.NewTimeoutError(msg, timeout)
	}
}

// DoWithTimeout bounds every attempt with the timeout and retries per the
// policy. A timed-out attempt yields a TimeoutError, which the default
// heuristics classify as retryable.
func DoWithTimeout(ctx context.Context, op func(context.Context) error, p Policy, timeout time.Duration) error {
	return Do(ctx, func(ctx context.Context) error {
		return RunWithTimeout(ctx, op, timeout)
	}, p)
}
