package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maintains all known setting definitions.
type Registry struct {
	mu       sync.RWMutex
	settings map[string]Definition
}

// New creates an empty settings registry.
func New() *Registry {
	return &Registry{settings: make(map[string]Definition)}
}

// Register adds a setting definition. Settings without a default and
// duplicate keys are rejected.
func (r *Registry) Register(def Definition) error {
	if def.DefaultValue() == nil {
		return fmt.Errorf("%w: %s", ErrMissingDefault, def.SettingKey())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.settings[def.SettingKey()]; exists {
		return fmt.Errorf("%w: %s", ErrSettingAlreadyRegistered, def.SettingKey())
	}
	r.settings[def.SettingKey()] = def
	return nil
}

// MustRegister registers a setting and panics on error.
// Useful for registering built-in settings at init time.
func (r *Registry) MustRegister(def Definition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Get returns the definition registered under key.
func (r *Registry) Get(key string) (Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.settings[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSettingNotFound, key)
	}
	return def, nil
}

// Has checks if a setting is registered.
func (r *Registry) Has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.settings[key]
	return exists
}

// Keys returns all registered keys, sorted.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.settings))
	for k := range r.settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Count returns the number of registered settings.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.settings)
}
