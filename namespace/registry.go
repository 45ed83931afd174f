package namespace

import (
	"fmt"
	"sync"
)

// Registry maps host object kinds to their representations. Hosts
// populate it once at startup; each kind maps to exactly one
// representation.
type Registry struct {
	mu   sync.RWMutex
	reps map[string]*Representation
}

// NewRegistry creates an empty representation registry.
func NewRegistry() *Registry {
	return &Registry{reps: map[string]*Representation{}}
}

// Register adds a representation for a host object kind. Registering the
// same kind twice is an error, since it would silently change what
// already-compiled scripts may access.
func (reg *Registry) Register(rep *Representation) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, exists := reg.reps[rep.kind]; exists {
		return fmt.Errorf("representation already registered for kind %q", rep.kind)
	}
	reg.reps[rep.kind] = rep
	return nil
}

// Lookup returns the representation for a host object kind.
func (reg *Registry) Lookup(kind string) (*Representation, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	rep, ok := reg.reps[kind]
	return rep, ok
}

// Wrap wraps a host object of the given kind as a script value.
func (reg *Registry) Wrap(kind string, host interface{}) (*HostObject, error) {
	rep, ok := reg.Lookup(kind)
	if !ok {
		return nil, fmt.Errorf("no representation registered for kind %q", kind)
	}
	return rep.Wrap(host), nil
}

// Default is the process-wide registry used by hosts that do not need
// isolated registries.
var Default = NewRegistry()

// Register adds a representation to the default registry.
func Register(rep *Representation) error {
	return Default.Register(rep)
}
