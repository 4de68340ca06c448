package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/circuit"
	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/health"
	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/ratelimit"
)

func ExampleNewBreakerChecker() {
	registry := circuit.NewRegistry(circuit.RegistryConfig{})
	registry.Get("gemini")
	registry.Get("ollama").ForceOpen()

	checker := health.NewBreakerChecker(registry)
	result := checker.Check(context.Background())

	fmt.Println("Checker name:", checker.Name())
	fmt.Println("Status:", result.Status.String())
	fmt.Println("Message:", result.Message)
	// Output:
	// Checker name: circuits
	// Status: unhealthy
	// Message: 1 of 2 circuits open: [ollama]
}

func ExampleNewLimiterChecker() {
	limiter := ratelimit.New(ratelimit.Config{
		MaxBurst:          10,
		TokensPerInterval: 10,
		Interval:          time.Minute,
	})

	checker := health.NewLimiterChecker(limiter)
	result := checker.Check(context.Background())

	fmt.Println("Checker name:", checker.Name())
	fmt.Println("Status:", result.Status.String())
	// Output:
	// Checker name: ratelimit
	// Status: healthy
}

func ExampleNewCheckerFunc() {
	checker := health.NewCheckerFunc("gemini", func(ctx context.Context) health.Result {
		return health.Healthy("provider responding")
	})

	result := checker.Check(context.Background())

	fmt.Println("Checker name:", checker.Name())
	fmt.Println("Status:", result.Status.String())
	fmt.Println("Message:", result.Message)
	// Output:
	// Checker name: gemini
	// Status: healthy
	// Message: provider responding
}

func ExampleUnhealthy() {
	err := errors.New("connection refused")
	result := health.Unhealthy("provider unreachable", err)

	fmt.Println("Status:", result.Status.String())
	fmt.Println("Message:", result.Message)
	fmt.Println("Has error:", result.Error != nil)
	// Output:
	// Status: unhealthy
	// Message: provider unreachable
	// Has error: true
}

func ExampleResult_WithDetails() {
	result := health.Healthy("pool idle").WithDetails(map[string]any{
		"active": 0,
		"idle":   8,
	})

	fmt.Println("Status:", result.Status.String())
	fmt.Println("Idle slots:", result.Details["idle"])
	// Output:
	// Status: healthy
	// Idle slots: 8
}

func ExampleNewAggregator() {
	registry := circuit.NewRegistry(circuit.RegistryConfig{})

	agg := health.NewAggregator()
	agg.Register("circuits", health.NewBreakerChecker(registry))
	agg.Register("memory", health.NewMemoryChecker(health.MemoryCheckerConfig{}))

	fmt.Println("Registered checkers:", agg.CheckerNames())
	// Output:
	// Registered checkers: [circuits memory]
}

func ExampleAggregator_CheckAll() {
	agg := health.NewAggregator()

	agg.Register("gemini", health.NewCheckerFunc("gemini", func(ctx context.Context) health.Result {
		return health.Healthy("ok")
	}))
	agg.Register("ollama", health.NewCheckerFunc("ollama", func(ctx context.Context) health.Result {
		return health.Degraded("slow")
	}))

	results := agg.CheckAll(context.Background())

	fmt.Println("gemini:", results["gemini"].Status.String())
	fmt.Println("ollama:", results["ollama"].Status.String())
	fmt.Println("overall:", agg.OverallStatus(results).String())
	// Output:
	// gemini: healthy
	// ollama: degraded
	// overall: degraded
}

func ExampleAggregator_Check() {
	agg := health.NewAggregator()
	agg.Register("gemini", health.NewCheckerFunc("gemini", func(ctx context.Context) health.Result {
		return health.Healthy("ok")
	}))

	_, err := agg.Check(context.Background(), "unknown")
	fmt.Println("Unknown checker:", errors.Is(err, health.ErrCheckerNotFound))
	// Output:
	// Unknown checker: true
}

func ExampleAggregator_Checker() {
	agg := health.NewAggregator()
	agg.Register("gemini", health.NewCheckerFunc("gemini", func(ctx context.Context) health.Result {
		return health.Healthy("ok")
	}))

	checker := agg.Checker()
	result := checker.Check(context.Background())

	fmt.Println("Checker name:", checker.Name())
	fmt.Println("Overall status:", result.Status.String())
	// Output:
	// Checker name: aggregate
	// Overall status: healthy
}

func ExampleReadinessHandler() {
	registry := circuit.NewRegistry(circuit.RegistryConfig{})
	registry.Get("gemini")

	agg := health.NewAggregator()
	agg.Register("circuits", health.NewBreakerChecker(registry))

	handler := health.ReadinessHandler(agg)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	fmt.Println("Status code:", rec.Code)
	fmt.Println("Body:", rec.Body.String())
	// Output:
	// Status code: 200
	// Body: OK
}

func ExampleDetailedHandler() {
	agg := health.NewAggregator()
	agg.Register("gemini", health.NewCheckerFunc("gemini", func(ctx context.Context) health.Result {
		return health.Healthy("provider responding")
	}))

	handler := health.DetailedHandler(agg)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var response health.HealthResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &response)

	fmt.Println("Status code:", rec.Code)
	fmt.Println("Overall status:", response.Status)
	fmt.Println("Has checks:", len(response.Checks) > 0)
	// Output:
	// Status code: 200
	// Overall status: healthy
	// Has checks: true
}

func ExampleRegisterHandlers() {
	agg := health.NewAggregator()
	agg.Register("gemini", health.NewCheckerFunc("gemini", func(ctx context.Context) health.Result {
		return health.Healthy("ok")
	}))

	mux := http.NewServeMux()
	health.RegisterHandlers(mux, agg)

	for _, path := range []string{"/healthz", "/readyz", "/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		fmt.Printf("%s: %d\n", path, rec.Code)
	}
	// Output:
	// /healthz: 200
	// /readyz: 200
	// /health: 200
}
