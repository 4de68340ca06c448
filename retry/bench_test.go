package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

// BenchmarkDo_Success measures the no-retry happy path.
func BenchmarkDo_Success(b *testing.B) {
	p := Policy{MaxRetries: 3, BaseDelay: time.Millisecond}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Do(ctx, func(ctx context.Context) error { return nil }, p)
	}
}

// BenchmarkIsRetryable_Classified measures the classified fast path.
func BenchmarkIsRetryable_Classified(b *testing.B) {
	err := errors.New("request timeout")
	p := Policy{}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = IsRetryable(err, p)
	}
}

// BenchmarkCalculateDelay measures backoff math with jitter.
func BenchmarkCalculateDelay(b *testing.B) {
	p := Policy{BaseDelay: 100 * time.Millisecond, MaxDelay: 30 * time.Second, BackoffMultiplier: 2, Jitter: true}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = CalculateDelay(i%10, p)
	}
}
