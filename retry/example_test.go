package retry_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/retry"
)

func ExampleDo() {
	attempts := 0
	err := retry.Do(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("503 service unavailable: too many requests")
		}
		return nil
	}, retry.Policy{MaxRetries: 4, BaseDelay: time.Millisecond})

	fmt.Println("attempts:", attempts)
	fmt.Println("err:", err)
	// Output:
	// attempts: 3
	// err: <nil>
}

func ExampleRunWithTimeout() {
	err := retry.RunWithTimeout(context.Background(), func(ctx context.Context) error {
		time.Sleep(time.Second) // simulated slow provider
		return nil
	}, 10*time.Millisecond, "provider call timed out")

	fmt.Println(err)
	// Output:
	// provider call timed out
}

func ExamplePolicy_onRetry() {
	policy := retry.Policy{
		MaxRetries: 2,
		BaseDelay:  time.Millisecond,
		OnRetry: func(attempt int, err error, willRetry bool) {
			fmt.Printf("attempt %d failed, retrying=%v\n", attempt, willRetry)
		},
	}

	_ = retry.Do(context.Background(), func(ctx context.Context) error {
		return errors.New("connection reset: ECONNRESET")
	}, policy)
	// Output:
	// attempt 1 failed, retrying=true
	// attempt 2 failed, retrying=true
	// attempt 3 failed, retrying=false
}
