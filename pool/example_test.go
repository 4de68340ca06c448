package pool_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/hydraerrors"
	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/pool"
	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/ratelimit"
)

func ExampleNew() {
	p := pool.New(pool.Config{
		MaxConcurrent:  2,
		MaxQueueSize:   10,
		AcquireTimeout: 5 * time.Second,
	})

	err := p.Execute(context.Background(), func(ctx context.Context) error {
		fmt.Println("calling provider")
		return nil
	})
	if err == nil {
		fmt.Println("done")
	}
	// Output:
	// calling provider
	// done
}

func ExamplePool_Execute_rejection() {
	// MaxQueueSize 1 with the slot and the queue both occupied rejects
	// further requests immediately.
	p := pool.New(pool.Config{MaxConcurrent: 1, MaxQueueSize: 1, AcquireTimeout: time.Second})

	block := make(chan struct{})
	running := make(chan struct{})
	go func() {
		_ = p.Execute(context.Background(), func(ctx context.Context) error {
			close(running)
			<-block
			return nil
		})
	}()
	<-running

	go func() {
		_ = p.Execute(context.Background(), func(ctx context.Context) error { return nil })
	}()
	for p.Status().Queued == 0 {
		time.Sleep(time.Millisecond)
	}

	err := p.Execute(context.Background(), func(ctx context.Context) error { return nil })

	var exhausted *hydraerrors.PoolExhaustedError
	if errors.As(err, &exhausted) {
		fmt.Println("rejected with queue size", exhausted.QueueSize)
	}
	close(block)
	// Output:
	// rejected with queue size 1
}

func ExampleNewManaged() {
	m := pool.NewManaged(
		pool.New(pool.Config{MaxConcurrent: 4}),
		ratelimit.New(ratelimit.Config{MaxBurst: 60, TokensPerInterval: 60, Interval: time.Minute}),
	)

	err := m.Execute(context.Background(), func(ctx context.Context) error {
		fmt.Println("rate-limited, pooled call")
		return nil
	})
	if err == nil {
		fmt.Println("done")
	}
	// Output:
	// rate-limited, pooled call
	// done
}
