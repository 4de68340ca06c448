package hydraerrors

// Code is a stable machine-readable error code. Codes are part of the
// public contract: logs, telemetry, and callers branch on them, so they
// never change once released.
type Code string

const (
	CodeUnknown       Code = "UNKNOWN_ERROR"
	CodeProvider      Code = "PROVIDER_ERROR"
	CodeGemini        Code = "GEMINI_ERROR"
	CodeLlamaCpp      Code = "LLAMACPP_ERROR"
	CodeOllama        Code = "OLLAMA_ERROR"
	CodeNetwork       Code = "NETWORK_ERROR"
	CodeTimeout       Code = "TIMEOUT"
	CodeConfiguration Code = "CONFIGURATION_ERROR"
	CodeRouting       Code = "ROUTING_ERROR"
	CodePipeline      Code = "PIPELINE_ERROR"
	CodeRateLimit     Code = "RATE_LIMIT_EXCEEDED"
	CodeCircuitOpen   Code = "CIRCUIT_OPEN"
	CodeValidation    Code = "VALIDATION_ERROR"
	CodePoolExhausted Code = "POOL_EXHAUSTED"
	CodePoolDrained   Code = "POOL_DRAINED"
	CodeAggregate     Code = "AGGREGATE_ERROR"
)
