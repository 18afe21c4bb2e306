package rules

import (
	"log/slog"
	"sort"
	"sync"
)

// Registry maps declarative rule names to rule type definitions.
//
// The registry is populated during startup (built-ins first, then any custom
// registrations) and read-mostly afterwards. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Definition
	logger  *slog.Logger
}

// NewRegistry creates a new empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*Definition),
		logger:  slog.Default().With("component", "rules.registry"),
	}
}

// Register adds def under its declared name. An existing entry under the
// same name is replaced: last registration wins, so callers can override
// built-in rule types with their own implementations.
func (r *Registry) Register(def *Definition) {
	r.register(def.Name, def, false)
}

// RegisterAs adds def under an explicit name instead of its declared one,
// with the same replace-on-conflict semantics as Register.
func (r *Registry) RegisterAs(name string, def *Definition) {
	r.register(name, def, false)
}

// RegisterDefault adds def under its declared name only when the name is
// still free. On conflict the existing entry is kept and a warning is
// logged. This is the semantics used for bulk built-in registration, where
// a collision indicates a packaging inconsistency worth flagging but must
// not abort startup.
func (r *Registry) RegisterDefault(def *Definition) {
	r.register(def.Name, def, true)
}

func (r *Registry) register(name string, def *Definition, keepExisting bool) {
	if def == nil || name == "" {
		r.logger.Warn("ignoring registration without a rule name")
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists && keepExisting {
		r.logger.Warn("rule name already registered, keeping existing entry",
			"rule", name,
		)
		return
	}
	r.entries[name] = def
}

// Get resolves a rule name to its type definition.
// Returns *UnknownRuleError when no entry exists under name.
func (r *Registry) Get(name string) (*Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.entries[name]
	if !ok {
		return nil, &UnknownRuleError{Name: name}
	}
	return def, nil
}

// Has reports whether a rule type is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[name]
	return ok
}

// Names returns a sorted list of all registered rule names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered rule types.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// RegisterBuiltins registers every rule type shipped with the tool using
// RegisterDefault semantics: collisions keep the existing entry and warn.
func (r *Registry) RegisterBuiltins() {
	for _, def := range builtinDefinitions() {
		r.RegisterDefault(def)
	}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide rule registry, populating it with
// the built-in rule set on first use. Custom rule types registered on it are
// visible to every loader that uses the default registry.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
		defaultRegistry.RegisterBuiltins()
	})
	return defaultRegistry
}
