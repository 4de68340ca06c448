package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/hydraerrors"
	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/pool"
)

const sampleDoc = `
defaults:
  pool:
    max_concurrent: 10
    max_queue_size: 100
    acquire_timeout: 30s
  rate_limit:
    max_burst: 60
    tokens_per_interval: 60
    interval: 1m
  circuit:
    failure_threshold: 5
    success_threshold: 2
    timeout: 30s
  retry:
    max_retries: 3
    base_delay: 500ms
    max_delay: 30s
    backoff_multiplier: 2.0
    jitter: true
  timeout: 60s
profiles:
  gemini:
    rate_limit:
      max_burst: 120
    circuit:
      failure_threshold: 3
  ollama:
    pool:
      discipline: lifo
    rate_limit:
      disabled: true
`

func TestParse_Defaults(t *testing.T) {
	f, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	p := f.Profile("unknown-target")
	if p.Pool.MaxConcurrent != 10 {
		t.Errorf("Pool.MaxConcurrent = %d, want 10", p.Pool.MaxConcurrent)
	}
	if p.Pool.AcquireTimeout != 30*time.Second {
		t.Errorf("Pool.AcquireTimeout = %v, want 30s", p.Pool.AcquireTimeout)
	}
	if p.RateLimit.MaxBurst != 60 {
		t.Errorf("RateLimit.MaxBurst = %d, want 60", p.RateLimit.MaxBurst)
	}
	if p.Retry.MaxRetries != 3 {
		t.Errorf("Retry.MaxRetries = %d, want 3", p.Retry.MaxRetries)
	}
	if p.Retry.BaseDelay != 500*time.Millisecond {
		t.Errorf("Retry.BaseDelay = %v, want 500ms", p.Retry.BaseDelay)
	}
	if p.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", p.Timeout)
	}
}

func TestProfile_FieldLevelFallback(t *testing.T) {
	f, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	gemini := f.Profile("gemini")
	if gemini.RateLimit.MaxBurst != 120 {
		t.Errorf("gemini RateLimit.MaxBurst = %d, want 120", gemini.RateLimit.MaxBurst)
	}
	// Fields the profile does not set fall back to the defaults.
	if gemini.RateLimit.TokensPerInterval != 60 {
		t.Errorf("gemini RateLimit.TokensPerInterval = %v, want 60", gemini.RateLimit.TokensPerInterval)
	}
	if gemini.Circuit.FailureThreshold != 3 {
		t.Errorf("gemini Circuit.FailureThreshold = %d, want 3", gemini.Circuit.FailureThreshold)
	}
	if gemini.Circuit.SuccessThreshold != 2 {
		t.Errorf("gemini Circuit.SuccessThreshold = %d, want 2", gemini.Circuit.SuccessThreshold)
	}
	if gemini.Pool.MaxConcurrent != 10 {
		t.Errorf("gemini Pool.MaxConcurrent = %d, want 10", gemini.Pool.MaxConcurrent)
	}

	ollama := f.Profile("ollama")
	if ollama.Pool.Discipline != pool.LIFO {
		t.Errorf("ollama Pool.Discipline = %v, want lifo", ollama.Pool.Discipline)
	}
	if !ollama.RateLimit.Disabled {
		t.Error("ollama RateLimit.Disabled = false, want true")
	}
	if ollama.RateLimit.MaxBurst != 60 {
		t.Errorf("ollama RateLimit.MaxBurst = %d, want 60", ollama.RateLimit.MaxBurst)
	}
}

func TestProfile_EmptyDocumentUsesBuiltins(t *testing.T) {
	f, err := Parse([]byte("{}"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	p := f.Profile("gemini")
	if p.Pool.MaxConcurrent != 0 {
		t.Errorf("Pool.MaxConcurrent = %d, want 0 (constructor default applies)", p.Pool.MaxConcurrent)
	}
	if p.Retry.MaxRetries != 3 {
		t.Errorf("Retry.MaxRetries = %d, want 3 (default policy)", p.Retry.MaxRetries)
	}
	if !p.Retry.Jitter {
		t.Error("Retry.Jitter = false, want true (default policy)")
	}
}

func TestParse_InvalidDuration(t *testing.T) {
	_, err := Parse([]byte("defaults:\n  timeout: banana\n"))
	if err == nil {
		t.Fatal("Parse() = nil, want error")
	}
	if !strings.Contains(err.Error(), `invalid duration "banana"`) {
		t.Errorf("Parse() error = %v, want invalid duration", err)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "bad discipline",
			doc:  "defaults:\n  pool:\n    discipline: random\n",
			want: "pool.discipline",
		},
		{
			name: "zero failure threshold",
			doc:  "defaults:\n  circuit:\n    failure_threshold: 0\n",
			want: "circuit.failure_threshold",
		},
		{
			name: "negative max retries",
			doc:  "profiles:\n  gemini:\n    retry:\n      max_retries: -1\n",
			want: "profiles.gemini.retry.max_retries",
		},
		{
			name: "multiplier below one",
			doc:  "defaults:\n  retry:\n    backoff_multiplier: 0.5\n",
			want: "retry.backoff_multiplier",
		},
		{
			name: "zero burst",
			doc:  "defaults:\n  rate_limit:\n    max_burst: 0\n",
			want: "rate_limit.max_burst",
		},
		{
			name: "unknown metrics exporter",
			doc:  "telemetry:\n  service_name: hydra\n  metrics:\n    enabled: true\n    exporter: statsd\n",
			want: "metrics exporter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("Parse() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse() error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("HYDRA_TEST_REGION", "us-east1")

	got, err := ExpandEnv("region: ${HYDRA_TEST_REGION}")
	if err != nil {
		t.Fatalf("ExpandEnv() error = %v", err)
	}
	if got != "region: us-east1" {
		t.Errorf("ExpandEnv() = %q, want %q", got, "region: us-east1")
	}
}

func TestExpandEnv_MissingVariablesListedSorted(t *testing.T) {
	_, err := ExpandEnv("a: ${HYDRA_TEST_ZZZ}\nb: ${HYDRA_TEST_AAA}\n")
	if err == nil {
		t.Fatal("ExpandEnv() = nil, want error")
	}
	want := "missing required environment variables: HYDRA_TEST_AAA, HYDRA_TEST_ZZZ"
	if err.Error() != want {
		t.Errorf("ExpandEnv() error = %q, want %q", err.Error(), want)
	}
}

func TestExpandEnv_MissingVariablesClassified(t *testing.T) {
	_, err := ExpandEnv("a: ${HYDRA_TEST_ZZZ}\nb: ${HYDRA_TEST_AAA}\nc: ${HYDRA_TEST_AAA}\n")
	if err == nil {
		t.Fatal("ExpandEnv() = nil, want error")
	}

	if got := hydraerrors.CodeOf(err); got != hydraerrors.CodeConfiguration {
		t.Errorf("CodeOf() = %v, want CodeConfiguration", got)
	}
	if hydraerrors.IsRetryable(err) {
		t.Error("missing-variable error should not be retryable")
	}

	var herr *hydraerrors.Error
	if !errors.As(err, &herr) {
		t.Fatalf("ExpandEnv() error type = %T, want *hydraerrors.Error", err)
	}
	missing, ok := herr.Context["missing_variables"].([]string)
	if !ok {
		t.Fatalf("missing_variables context = %#v, want []string", herr.Context["missing_variables"])
	}
	want := []string{"HYDRA_TEST_AAA", "HYDRA_TEST_ZZZ"}
	if !slices.Equal(missing, want) {
		t.Errorf("missing_variables = %v, want %v (sorted, deduplicated)", missing, want)
	}
}

func TestExpandEnv_DollarEscape(t *testing.T) {
	got, err := ExpandEnv("price: $$5")
	if err != nil {
		t.Fatalf("ExpandEnv() error = %v", err)
	}
	if got != "price: $5" {
		t.Errorf("ExpandEnv() = %q, want %q", got, "price: $5")
	}
}

func TestParse_MissingEnvFailsLoad(t *testing.T) {
	_, err := Parse([]byte("telemetry:\n  service_name: ${HYDRA_TEST_NO_SUCH_VAR}\n"))
	if err == nil {
		t.Fatal("Parse() = nil, want error")
	}
	if !strings.Contains(err.Error(), "HYDRA_TEST_NO_SUCH_VAR") {
		t.Errorf("Parse() error = %v, want missing variable named", err)
	}
}

func TestLoad_EnvOverlay(t *testing.T) {
	dir := t.TempDir()
	doc := "defaults:\n  pool:\n    max_concurrent: ${HYDRA_TEST_OVERLAY_CONC}\n"
	if err := os.WriteFile(filepath.Join(dir, "resilience.yaml"), []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("HYDRA_TEST_OVERLAY_CONC=25\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	f, err := Load(filepath.Join(dir, "resilience.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := f.Profile("any").Pool.MaxConcurrent; got != 25 {
		t.Errorf("Pool.MaxConcurrent = %d, want 25 from .env overlay", got)
	}
}

func TestLoad_EnvironmentWinsOverDotenv(t *testing.T) {
	t.Setenv("HYDRA_TEST_OVERLAY_WINNER", "7")

	dir := t.TempDir()
	doc := "defaults:\n  pool:\n    max_concurrent: ${HYDRA_TEST_OVERLAY_WINNER}\n"
	if err := os.WriteFile(filepath.Join(dir, "resilience.yaml"), []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("HYDRA_TEST_OVERLAY_WINNER=99\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	f, err := Load(filepath.Join(dir, "resilience.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := f.Profile("any").Pool.MaxConcurrent; got != 7 {
		t.Errorf("Pool.MaxConcurrent = %d, want 7 from real environment", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load() = nil, want error")
	}
}

func TestObserve_Mapping(t *testing.T) {
	doc := `
telemetry:
  service_name: geminihydra
  version: 1.2.3
  tracing:
    enabled: true
    exporter: stdout
    sample_pct: 0.5
  metrics:
    enabled: true
    exporter: prometheus
  logging:
    enabled: true
    level: debug
`
	f, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	obs := f.Observe()
	if obs.ServiceName != "geminihydra" {
		t.Errorf("ServiceName = %q, want geminihydra", obs.ServiceName)
	}
	if obs.Tracing.SamplePct != 0.5 {
		t.Errorf("Tracing.SamplePct = %v, want 0.5", obs.Tracing.SamplePct)
	}
	if obs.Metrics.Exporter != "prometheus" {
		t.Errorf("Metrics.Exporter = %q, want prometheus", obs.Metrics.Exporter)
	}
	if obs.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", obs.Logging.Level)
	}
}
