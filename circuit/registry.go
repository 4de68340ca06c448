package circuit

import (
	"context"
	"sort"
	"sync"
)

// RegistryConfig configures a Registry.
type RegistryConfig struct {
	// Breaker is the base configuration every lazily created breaker
	// shares.
	Breaker Config

	// OnStateChange, if set, is called on every breaker transition with
	// the key of the breaker that moved.
	OnStateChange func(key string, from, to State)
}

// Registry keys breakers by remote target (provider name, MCP server) and
// creates them lazily on first use. Breakers live for the registry's
// lifetime; only Clear discards them.
type Registry struct {
	config RegistryConfig

	mu       sync.RWMutex
	breakers map[string]*Breaker
}

// NewRegistry creates an empty registry.
func NewRegistry(config RegistryConfig) *Registry {
	return &Registry{
		config:   config,
		breakers: make(map[string]*Breaker),
	}
}

// Get returns the breaker for key, creating it on first use. Repeated
// calls with the same key return the same instance.
func (r *Registry) Get(key string) *Breaker {
	r.mu.RLock()
	b, ok := r.breakers[key]
	r.mu.RUnlock()
	if ok {
		return b
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.breakers[key]; ok {
		return b
	}

	cfg := r.config.Breaker
	if hook := r.config.OnStateChange; hook != nil {
		base := cfg.OnStateChange
		cfg.OnStateChange = func(from, to State) {
			if base != nil {
				base(from, to)
			}
			hook(key, from, to)
		}
	}

	b = NewBreaker(cfg)
	r.breakers[key] = b
	return b
}

// Execute runs the operation through the breaker for key.
func (r *Registry) Execute(ctx context.Context, key string, op func(context.Context) error) error {
	return r.Get(key).Execute(ctx, op)
}

// Statuses returns a snapshot of every known breaker.
func (r *Registry) Statuses() map[string]BreakerStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	statuses := make(map[string]BreakerStatus, len(r.breakers))
	for key, b := range r.breakers {
		statuses[key] = b.Status()
	}
	return statuses
}

// Available returns the sorted keys whose breaker is not currently open.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.breakers))
	for key, b := range r.breakers {
		if b.State() != StateOpen {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// ResetAll force-closes every breaker.
func (r *Registry) ResetAll() {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.breakers {
		b.ForceClose()
	}
}

// Clear discards all breakers. Subsequent Get calls create fresh ones.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.breakers = make(map[string]*Breaker)
}

// Len returns how many breakers have been created.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.breakers)
}
