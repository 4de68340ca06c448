package hydraerrors

import (
	"time"
)

// baseError exists only for embedding. Embedding *Error directly would
// name the field "Error" and shadow the promoted Error() string method,
// leaving the variants without an error implementation.
type baseError = Error

// ProviderError is a failure reported by a remote model provider. The
// Gemini, llama.cpp, and Ollama variants share this type and are
// distinguished by their Code tag.
type ProviderError struct {
	*baseError
	Provider string
}

// NewProviderError creates a generic provider failure.
func NewProviderError(provider, message string, cause error) *ProviderError {
	return newProviderError("ProviderError", CodeProvider, provider, message, cause)
}

// NewGeminiError creates a failure from the Gemini API.
func NewGeminiError(message string, cause error) *ProviderError {
	return newProviderError("GeminiError", CodeGemini, "gemini", message, cause)
}

// NewLlamaCppError creates a failure from a local llama.cpp server.
func NewLlamaCppError(message string, cause error) *ProviderError {
	return newProviderError("LlamaCppError", CodeLlamaCpp, "llamacpp", message, cause)
}

// NewOllamaError creates a failure from a local Ollama server.
func NewOllamaError(message string, cause error) *ProviderError {
	return newProviderError("OllamaError", CodeOllama, "ollama", message, cause)
}

func newProviderError(name string, code Code, provider, message string, cause error) *ProviderError {
	e := Wrap(cause, message, code)
	e.Name = name
	e.Retryable = true
	e.WithContext("provider", provider)
	return &ProviderError{baseError: e, Provider: provider}
}

// NewNetworkError creates a transient transport-level failure.
func NewNetworkError(message string, cause error) *Error {
	e := Wrap(cause, message, CodeNetwork)
	e.Name = "NetworkError"
	e.Retryable = true
	return e
}

// NewConfigurationError creates an invalid-configuration failure. It is
// neither retryable nor recoverable: the process cannot make progress
// until the configuration is fixed.
func NewConfigurationError(message string) *Error {
	e := New(message, CodeConfiguration)
	e.Name = "ConfigurationError"
	e.Recoverable = false
	return e
}

// NewRoutingError creates a failure to route work to a suitable target.
func NewRoutingError(message string) *Error {
	e := New(message, CodeRouting)
	e.Name = "RoutingError"
	return e
}

// TimeoutError is raised when an operation or a queue wait exceeds its
// deadline.
type TimeoutError struct {
	*baseError
	Timeout time.Duration
}

// NewTimeoutError creates a timeout failure for the given deadline.
func NewTimeoutError(message string, timeout time.Duration) *TimeoutError {
	e := New(message, CodeTimeout)
	e.Name = "TimeoutError"
	e.Retryable = true
	e.WithContext("timeout_ms", timeout.Milliseconds())
	return &TimeoutError{baseError: e, Timeout: timeout}
}

// PipelineError is a failure in a named stage of a multi-step pipeline.
type PipelineError struct {
	*baseError
	Stage string
}

// NewPipelineError creates a pipeline failure for the given stage.
func NewPipelineError(stage, message string, cause error) *PipelineError {
	e := Wrap(cause, message, CodePipeline)
	e.Name = "PipelineError"
	e.WithContext("stage", stage)
	return &PipelineError{baseError: e, Stage: stage}
}

// RateLimitError is raised when a target reports rate limiting. RetryAfter
// is zero when the target did not say how long to back off.
type RateLimitError struct {
	*baseError
	RetryAfter time.Duration
}

// NewRateLimitError creates a rate-limit failure.
func NewRateLimitError(message string, retryAfter time.Duration) *RateLimitError {
	e := New(message, CodeRateLimit)
	e.Name = "RateLimitError"
	e.Retryable = true
	e.WithContext("retry_after_ms", retryAfter.Milliseconds())
	return &RateLimitError{baseError: e, RetryAfter: retryAfter}
}

// CircuitOpenError is raised when a circuit breaker rejects a call.
//
// It is classified retryable as a hint that the target may recover, but
// callers must respect NextAttempt rather than retrying immediately.
type CircuitOpenError struct {
	*baseError
	NextAttempt time.Time
}

// NewCircuitOpenError creates an open-circuit rejection.
func NewCircuitOpenError(message string, nextAttempt time.Time) *CircuitOpenError {
	e := New(message, CodeCircuitOpen)
	e.Name = "CircuitOpenError"
	e.Retryable = true
	e.WithContext("next_attempt_at", nextAttempt.Format(time.RFC3339Nano))
	return &CircuitOpenError{baseError: e, NextAttempt: nextAttempt}
}

// ValidationError is raised when an input value fails validation.
type ValidationError struct {
	*baseError
	Field string
}

// NewValidationError creates a validation failure for the given field.
func NewValidationError(field, message string) *ValidationError {
	e := New(message, CodeValidation)
	e.Name = "ValidationError"
	e.Recoverable = false
	e.WithContext("field", field)
	return &ValidationError{baseError: e, Field: field}
}

// PoolExhaustedError is raised when a pool has no execution slot and no
// queue capacity left.
type PoolExhaustedError struct {
	*baseError
	QueueSize int
}

// NewPoolExhaustedError creates a pool-exhaustion rejection.
func NewPoolExhaustedError(message string, queueSize int) *PoolExhaustedError {
	e := New(message, CodePoolExhausted)
	e.Name = "PoolExhaustedError"
	e.Retryable = true
	e.WithContext("queue_size", queueSize)
	return &PoolExhaustedError{baseError: e, QueueSize: queueSize}
}

// AggregateError bundles failures from several parallel operations.
type AggregateError struct {
	*baseError
	Errors []error
}

// NewAggregateError creates an aggregate of the given failures.
func NewAggregateError(message string, errs []error) *AggregateError {
	e := New(message, CodeAggregate)
	e.Name = "AggregateError"
	e.WithContext("error_count", len(errs))
	return &AggregateError{baseError: e, Errors: errs}
}

// Unwrap exposes the bundled errors for errors.Is/errors.As traversal.
func (e *AggregateError) Unwrap() []error { return e.Errors }
