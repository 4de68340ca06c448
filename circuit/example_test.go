package circuit_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/circuit"
	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/hydraerrors"
)

func ExampleNewBreaker() {
	cb := circuit.NewBreaker(circuit.Config{
		FailureThreshold: 2,
		Timeout:          time.Minute,
	})

	ctx := context.Background()
	unavailable := errors.New("service unavailable")

	for i := 0; i < 2; i++ {
		_ = cb.Execute(ctx, func(ctx context.Context) error {
			return unavailable
		})
	}

	fmt.Println("state:", cb.State())

	err := cb.Execute(ctx, func(ctx context.Context) error { return nil })
	var open *hydraerrors.CircuitOpenError
	if errors.As(err, &open) {
		fmt.Println("code:", hydraerrors.CodeOf(err))
	}
	// Output:
	// state: open
	// code: CIRCUIT_OPEN
}

func ExampleRegistry() {
	reg := circuit.NewRegistry(circuit.RegistryConfig{
		Breaker: circuit.Config{FailureThreshold: 1, Timeout: time.Minute},
	})

	ctx := context.Background()
	_ = reg.Execute(ctx, "gemini", func(ctx context.Context) error { return nil })
	_ = reg.Execute(ctx, "mcp:filesystem", func(ctx context.Context) error {
		return errors.New("server crashed")
	})

	fmt.Println(reg.Available())
	// Output:
	// [gemini]
}
