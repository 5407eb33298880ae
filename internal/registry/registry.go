package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// Module is the interface that every package of sweep targets implements to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds every registered target for a single application instance.
type Registry struct {
	targets map[string]*Target
}

// New creates a registry populated by the given modules.
func New(modules ...Module) *Registry {
	r := &Registry{targets: make(map[string]*Target)}
	for _, m := range modules {
		m.Register(r)
	}
	return r
}

// Register adds a target. Registering the same module/func pair twice panics.
func (r *Registry) Register(t *Target) {
	if t == nil || t.Fn == nil {
		panic("registry: target and its Fn must not be nil")
	}
	key := t.Key()
	if _, exists := r.targets[key]; exists {
		panic(fmt.Sprintf("target '%s' already registered", key))
	}
	slog.Debug("Registering sweep target.", "target", key, "params", len(t.Params))
	r.targets[key] = t
}

// Lookup returns the target registered under module and name.
func (r *Registry) Lookup(module, name string) (*Target, error) {
	if t, ok := r.targets[module+"."+name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("no function '%s' in module '%s' (available: %s)", name, module, strings.Join(r.Keys(), ", "))
}

// Keys returns the sorted "module.func" keys of every target.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.targets))
	for k := range r.targets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Targets returns every target sorted by key.
func (r *Registry) Targets() []*Target {
	out := make([]*Target, 0, len(r.targets))
	for _, k := range r.Keys() {
		out = append(out, r.targets[k])
	}
	return out
}
