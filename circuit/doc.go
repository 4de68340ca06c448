// Package circuit provides per-dependency failure isolation for remote
// providers and MCP servers.
//
// A Breaker moves along closed -> open -> half-open -> {closed | open}.
// In the closed state consecutive failures are counted; reaching
// FailureThreshold opens the circuit for Timeout. While open, every call
// is rejected immediately with a CircuitOpenError carrying the time of
// the next allowed attempt. Once the cool-down elapses, up to
// HalfOpenMaxCalls probe calls are admitted concurrently; SuccessThreshold
// consecutive probe successes close the circuit, and any probe failure
// reopens it, discarding the bookkeeping of probes still in flight.
//
//	cb := circuit.NewBreaker(circuit.Config{
//	    FailureThreshold: 5,
//	    SuccessThreshold: 2,
//	    Timeout:          30 * time.Second,
//	})
//
//	err := cb.Execute(ctx, func(ctx context.Context) error {
//	    return mcpClient.CallTool(ctx, req)
//	})
//
// A Registry keys breakers by remote target so each provider or MCP
// server fails independently:
//
//	reg := circuit.NewRegistry(circuit.RegistryConfig{Breaker: cfg})
//	err := reg.Execute(ctx, "mcp:filesystem", op)
//
// The breaker never retries on its own; pair it with the retry package
// and respect NextAttempt when a CircuitOpenError surfaces.
package circuit
