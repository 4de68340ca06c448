package ratelimit

import (
	"testing"
	"time"
)

// BenchmarkLimiter_Allow measures the uncontended fast path.
func BenchmarkLimiter_Allow(b *testing.B) {
	l := New(Config{MaxBurst: 1 << 30, TokensPerInterval: 1 << 30, Interval: time.Second})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = l.Allow()
	}
}

// BenchmarkLimiter_Allow_Parallel measures contention on the bucket mutex.
func BenchmarkLimiter_Allow_Parallel(b *testing.B) {
	l := New(Config{MaxBurst: 1 << 30, TokensPerInterval: 1 << 30, Interval: time.Second})

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = l.Allow()
		}
	})
}

// BenchmarkLimiter_Tokens measures snapshot overhead.
func BenchmarkLimiter_Tokens(b *testing.B) {
	l := New(Config{MaxBurst: 100, TokensPerInterval: 100, Interval: time.Second})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = l.Tokens()
	}
}
