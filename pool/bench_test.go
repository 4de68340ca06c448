package pool

import (
	"context"
	"testing"
	"time"

	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/ratelimit"
)

// BenchmarkPool_Execute_Uncontended measures the free-slot fast path.
func BenchmarkPool_Execute_Uncontended(b *testing.B) {
	p := New(Config{MaxConcurrent: 1})
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.Execute(ctx, func(ctx context.Context) error {
			return nil
		})
	}
}

// BenchmarkPool_Execute_Contended measures slot handoff through the queue.
func BenchmarkPool_Execute_Contended(b *testing.B) {
	p := New(Config{MaxConcurrent: 4, MaxQueueSize: 1 << 20, AcquireTimeout: time.Minute})
	ctx := context.Background()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = p.Execute(ctx, func(ctx context.Context) error {
				return nil
			})
		}
	})
}

// BenchmarkPool_Status measures snapshot overhead.
func BenchmarkPool_Status(b *testing.B) {
	p := New(Config{MaxConcurrent: 10})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.Status()
	}
}

// BenchmarkManaged_Execute measures the composed token+slot path.
func BenchmarkManaged_Execute(b *testing.B) {
	m := NewManaged(
		New(Config{MaxConcurrent: 8}),
		ratelimit.New(ratelimit.Config{MaxBurst: 1 << 30, TokensPerInterval: 1 << 30, Interval: time.Second}),
	)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Execute(ctx, func(ctx context.Context) error {
			return nil
		})
	}
}
