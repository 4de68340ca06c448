// Package ratelimit provides the token-bucket admission gate used in front
// of provider and MCP server calls.
//
// The bucket holds up to MaxBurst tokens and refills at TokensPerInterval
// per Interval, computed lazily from elapsed wall-clock time. Allow is the
// non-blocking check; Wait suspends until a token refills. A disabled
// limiter is a pass-through that never consumes.
//
//	limiter := ratelimit.New(ratelimit.Config{
//	    MaxBurst:          60,
//	    TokensPerInterval: 60,
//	    Interval:          time.Minute,
//	})
//
//	err := limiter.Execute(ctx, func(ctx context.Context) error {
//	    return callProvider(ctx)
//	})
//
// The limiter makes no fairness guarantee among concurrent waiters; if
// ordered admission matters, put a pool in front of the work instead.
package ratelimit
