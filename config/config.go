package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/circuit"
	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/observe"
	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/pool"
	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/ratelimit"
	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/retry"
)

// File is the on-disk configuration document. A document holds a defaults
// profile, any number of named per-target profiles that fall back to the
// defaults field by field, and a telemetry section.
type File struct {
	Defaults  ProfileSpec            `yaml:"defaults"`
	Profiles  map[string]ProfileSpec `yaml:"profiles"`
	Telemetry TelemetrySpec          `yaml:"telemetry"`
}

// ProfileSpec is the YAML shape of one profile. Every field is optional;
// nil means "inherit from defaults, or failing that the built-in default".
type ProfileSpec struct {
	Pool      *PoolSpec      `yaml:"pool"`
	RateLimit *RateLimitSpec `yaml:"rate_limit"`
	Circuit   *CircuitSpec   `yaml:"circuit"`
	Retry     *RetrySpec     `yaml:"retry"`
	Timeout   *Duration      `yaml:"timeout"`
}

// PoolSpec configures the connection pool section.
type PoolSpec struct {
	MaxConcurrent  *int      `yaml:"max_concurrent"`
	MaxQueueSize   *int      `yaml:"max_queue_size"`
	AcquireTimeout *Duration `yaml:"acquire_timeout"`
	Discipline     *string   `yaml:"discipline"` // fifo|lifo
}

// RateLimitSpec configures the token bucket section.
type RateLimitSpec struct {
	MaxBurst          *int      `yaml:"max_burst"`
	TokensPerInterval *float64  `yaml:"tokens_per_interval"`
	Interval          *Duration `yaml:"interval"`
	Disabled          *bool     `yaml:"disabled"`
}

// CircuitSpec configures the circuit breaker section.
type CircuitSpec struct {
	FailureThreshold *int      `yaml:"failure_threshold"`
	SuccessThreshold *int      `yaml:"success_threshold"`
	Timeout          *Duration `yaml:"timeout"`
	HalfOpenMaxCalls *int      `yaml:"half_open_max_calls"`
}

// RetrySpec configures the retry section.
type RetrySpec struct {
	MaxRetries        *int      `yaml:"max_retries"`
	BaseDelay         *Duration `yaml:"base_delay"`
	MaxDelay          *Duration `yaml:"max_delay"`
	BackoffMultiplier *float64  `yaml:"backoff_multiplier"`
	Jitter            *bool     `yaml:"jitter"`
}

// TelemetrySpec is the YAML shape of the telemetry section.
type TelemetrySpec struct {
	ServiceName string `yaml:"service_name"`
	Version     string `yaml:"version"`
	Tracing     struct {
		Enabled   bool    `yaml:"enabled"`
		Exporter  string  `yaml:"exporter"`
		SamplePct float64 `yaml:"sample_pct"`
	} `yaml:"tracing"`
	Metrics struct {
		Enabled  bool   `yaml:"enabled"`
		Exporter string `yaml:"exporter"`
	} `yaml:"metrics"`
	Logging struct {
		Enabled bool   `yaml:"enabled"`
		Level   string `yaml:"level"`
	} `yaml:"logging"`
}

// Profile is a fully resolved per-target configuration. Fields left unset
// in the document resolve to the core packages' built-in defaults through
// their constructors.
type Profile struct {
	Pool      pool.Config
	RateLimit ratelimit.Config
	Circuit   circuit.Config
	Retry     retry.Policy
	Timeout   time.Duration
}

// Load reads the document at path, overlays a sibling .env file when one
// exists, expands ${VAR} references, parses the YAML, and validates it.
func Load(path string) (*File, error) {
	envPath := filepath.Join(filepath.Dir(path), ".env")
	if _, err := os.Stat(envPath); err == nil {
		// Overlay only: real environment variables win over .env entries.
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("config: loading %s: %w", envPath, err)
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse expands, parses, and validates a configuration document.
func Parse(raw []byte) (*File, error) {
	expanded, err := ExpandEnv(string(raw))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var f File
	if err := yaml.Unmarshal([]byte(expanded), &f); err != nil {
		return nil, fmt.Errorf("config: parsing yaml: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Profile resolves the named profile against the defaults. An unknown
// name resolves to the defaults alone, so callers can ask for any target
// without pre-registering it.
func (f *File) Profile(name string) Profile {
	spec := f.Defaults
	if override, ok := f.Profiles[name]; ok {
		spec = merged(f.Defaults, override)
	}
	return spec.resolve()
}

// Observe maps the telemetry section onto an observe.Config.
func (f *File) Observe() observe.Config {
	t := f.Telemetry
	return observe.Config{
		ServiceName: t.ServiceName,
		Version:     t.Version,
		Tracing: observe.TracingConfig{
			Enabled:   t.Tracing.Enabled,
			Exporter:  t.Tracing.Exporter,
			SamplePct: t.Tracing.SamplePct,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  t.Metrics.Enabled,
			Exporter: t.Metrics.Exporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: t.Logging.Enabled,
			Level:   t.Logging.Level,
		},
	}
}

// Validate checks every profile and the telemetry section.
func (f *File) Validate() error {
	if err := f.Defaults.validate("defaults"); err != nil {
		return err
	}
	for name, spec := range f.Profiles {
		if err := spec.validate("profiles." + name); err != nil {
			return err
		}
	}
	if f.Telemetry.Tracing.Enabled || f.Telemetry.Metrics.Enabled || f.Telemetry.Logging.Enabled {
		obs := f.Observe()
		if err := obs.Validate(); err != nil {
			return fmt.Errorf("config: telemetry: %w", err)
		}
	}
	return nil
}

func (s ProfileSpec) validate(section string) error {
	fail := func(field string, msg string) error {
		return fmt.Errorf("config: %s.%s: %s", section, field, msg)
	}

	if p := s.Pool; p != nil {
		if p.MaxConcurrent != nil && *p.MaxConcurrent <= 0 {
			return fail("pool.max_concurrent", "must be positive")
		}
		if p.MaxQueueSize != nil && *p.MaxQueueSize < 0 {
			return fail("pool.max_queue_size", "must not be negative")
		}
		if p.Discipline != nil {
			if _, err := parseDiscipline(*p.Discipline); err != nil {
				return fail("pool.discipline", err.Error())
			}
		}
	}
	if r := s.RateLimit; r != nil {
		if r.MaxBurst != nil && *r.MaxBurst <= 0 {
			return fail("rate_limit.max_burst", "must be positive")
		}
		if r.TokensPerInterval != nil && *r.TokensPerInterval <= 0 {
			return fail("rate_limit.tokens_per_interval", "must be positive")
		}
	}
	if c := s.Circuit; c != nil {
		if c.FailureThreshold != nil && *c.FailureThreshold <= 0 {
			return fail("circuit.failure_threshold", "must be positive")
		}
		if c.SuccessThreshold != nil && *c.SuccessThreshold <= 0 {
			return fail("circuit.success_threshold", "must be positive")
		}
		if c.HalfOpenMaxCalls != nil && *c.HalfOpenMaxCalls <= 0 {
			return fail("circuit.half_open_max_calls", "must be positive")
		}
	}
	if r := s.Retry; r != nil {
		if r.MaxRetries != nil && *r.MaxRetries < 0 {
			return fail("retry.max_retries", "must not be negative")
		}
		if r.BackoffMultiplier != nil && *r.BackoffMultiplier < 1 {
			return fail("retry.backoff_multiplier", "must be at least 1")
		}
	}
	return nil
}

// merged overlays override onto base, field by field within each section.
func merged(base, override ProfileSpec) ProfileSpec {
	out := base

	if override.Pool != nil {
		p := clonePool(base.Pool)
		mergePtr(&p.MaxConcurrent, override.Pool.MaxConcurrent)
		mergePtr(&p.MaxQueueSize, override.Pool.MaxQueueSize)
		mergePtr(&p.AcquireTimeout, override.Pool.AcquireTimeout)
		mergePtr(&p.Discipline, override.Pool.Discipline)
		out.Pool = p
	}
	if override.RateLimit != nil {
		r := cloneRateLimit(base.RateLimit)
		mergePtr(&r.MaxBurst, override.RateLimit.MaxBurst)
		mergePtr(&r.TokensPerInterval, override.RateLimit.TokensPerInterval)
		mergePtr(&r.Interval, override.RateLimit.Interval)
		mergePtr(&r.Disabled, override.RateLimit.Disabled)
		out.RateLimit = r
	}
	if override.Circuit != nil {
		c := cloneCircuit(base.Circuit)
		mergePtr(&c.FailureThreshold, override.Circuit.FailureThreshold)
		mergePtr(&c.SuccessThreshold, override.Circuit.SuccessThreshold)
		mergePtr(&c.Timeout, override.Circuit.Timeout)
		mergePtr(&c.HalfOpenMaxCalls, override.Circuit.HalfOpenMaxCalls)
		out.Circuit = c
	}
	if override.Retry != nil {
		r := cloneRetry(base.Retry)
		mergePtr(&r.MaxRetries, override.Retry.MaxRetries)
		mergePtr(&r.BaseDelay, override.Retry.BaseDelay)
		mergePtr(&r.MaxDelay, override.Retry.MaxDelay)
		mergePtr(&r.BackoffMultiplier, override.Retry.BackoffMultiplier)
		mergePtr(&r.Jitter, override.Retry.Jitter)
		out.Retry = r
	}
	if override.Timeout != nil {
		out.Timeout = override.Timeout
	}
	return out
}

func mergePtr[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}

func clonePool(p *PoolSpec) *PoolSpec {
	if p == nil {
		return &PoolSpec{}
	}
	c := *p
	return &c
}

func cloneRateLimit(r *RateLimitSpec) *RateLimitSpec {
	if r == nil {
		return &RateLimitSpec{}
	}
	c := *r
	return &c
}

func cloneCircuit(c *CircuitSpec) *CircuitSpec {
	if c == nil {
		return &CircuitSpec{}
	}
	cc := *c
	return &cc
}

func cloneRetry(r *RetrySpec) *RetrySpec {
	if r == nil {
		return &RetrySpec{}
	}
	c := *r
	return &c
}

func (s ProfileSpec) resolve() Profile {
	var p Profile

	if s.Pool != nil {
		if s.Pool.MaxConcurrent != nil {
			p.Pool.MaxConcurrent = *s.Pool.MaxConcurrent
		}
		if s.Pool.MaxQueueSize != nil {
			p.Pool.MaxQueueSize = *s.Pool.MaxQueueSize
		}
		if s.Pool.AcquireTimeout != nil {
			p.Pool.AcquireTimeout = s.Pool.AcquireTimeout.Std()
		}
		if s.Pool.Discipline != nil {
			d, _ := parseDiscipline(*s.Pool.Discipline)
			p.Pool.Discipline = d
		}
	}
	if s.RateLimit != nil {
		if s.RateLimit.MaxBurst != nil {
			p.RateLimit.MaxBurst = *s.RateLimit.MaxBurst
		}
		if s.RateLimit.TokensPerInterval != nil {
			p.RateLimit.TokensPerInterval = *s.RateLimit.TokensPerInterval
		}
		if s.RateLimit.Interval != nil {
			p.RateLimit.Interval = s.RateLimit.Interval.Std()
		}
		if s.RateLimit.Disabled != nil {
			p.RateLimit.Disabled = *s.RateLimit.Disabled
		}
	}
	if s.Circuit != nil {
		if s.Circuit.FailureThreshold != nil {
			p.Circuit.FailureThreshold = *s.Circuit.FailureThreshold
		}
		if s.Circuit.SuccessThreshold != nil {
			p.Circuit.SuccessThreshold = *s.Circuit.SuccessThreshold
		}
		if s.Circuit.Timeout != nil {
			p.Circuit.Timeout = s.Circuit.Timeout.Std()
		}
		if s.Circuit.HalfOpenMaxCalls != nil {
			p.Circuit.HalfOpenMaxCalls = *s.Circuit.HalfOpenMaxCalls
		}
	}
	p.Retry = retry.DefaultPolicy()
	if s.Retry != nil {
		if s.Retry.MaxRetries != nil {
			p.Retry.MaxRetries = *s.Retry.MaxRetries
		}
		if s.Retry.BaseDelay != nil {
			p.Retry.BaseDelay = s.Retry.BaseDelay.Std()
		}
		if s.Retry.MaxDelay != nil {
			p.Retry.MaxDelay = s.Retry.MaxDelay.Std()
		}
		if s.Retry.BackoffMultiplier != nil {
			p.Retry.BackoffMultiplier = *s.Retry.BackoffMultiplier
		}
		if s.Retry.Jitter != nil {
			p.Retry.Jitter = *s.Retry.Jitter
		}
	}
	if s.Timeout != nil {
		p.Timeout = s.Timeout.Std()
	}
	return p
}

func parseDiscipline(s string) (pool.Discipline, error) {
	switch s {
	case "", "fifo":
		return pool.FIFO, nil
	case "lifo":
		return pool.LIFO, nil
	default:
		return pool.FIFO, errors.New("must be \"fifo\" or \"lifo\"")
	}
}
