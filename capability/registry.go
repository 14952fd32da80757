package capability

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"sync"
)

var (
	// ErrDuplicate is returned when a capability name is registered twice.
	ErrDuplicate = errors.New("duplicate capability")

	// ErrUnknown is returned when no capability has the requested name.
	ErrUnknown = errors.New("unknown capability")

	// ErrSealed is returned when Register is called after serving began.
	ErrSealed = errors.New("registry is sealed")
)

// Registry maps capability names to their descriptors. Registration
// happens during bootstrap; the first Lookup seals the registry, after
// which Register fails with ErrSealed. A sealed registry is safe for
// concurrent lookups.
type Registry struct {
	mu     sync.RWMutex
	sealed bool
	byName map[string]*Descriptor
	order  []string
}

// NewRegistry returns an empty, unsealed registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Descriptor)}
}

// Register adds a descriptor. It fails without modifying the registry if
// the descriptor is malformed, the name is already taken, or serving has
// already begun.
func (r *Registry) Register(d *Descriptor) error {
	if err := d.validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("register %q: %w", d.Name, ErrSealed)
	}
	if _, ok := r.byName[d.Name]; ok {
		return fmt.Errorf("register %q: %w", d.Name, ErrDuplicate)
	}

	r.byName[d.Name] = d
	r.order = append(r.order, d.Name)
	return nil
}

// Lookup returns the descriptor registered under name, sealing the
// registry as a side effect.
func (r *Registry) Lookup(name string) (*Descriptor, error) {
	r.mu.RLock()
	if r.sealed {
		defer r.mu.RUnlock()
		d, ok := r.byName[name]
		if !ok {
			return nil, fmt.Errorf("lookup %q: %w", name, ErrUnknown)
		}
		return d, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	r.sealed = true
	d, ok := r.byName[name]
	r.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("lookup %q: %w", name, ErrUnknown)
	}
	return d, nil
}

// Names yields the registered capability names in registration order.
// The sequence is restartable and safe to hold across registrations.
func (r *Registry) Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		r.mu.RLock()
		names := slices.Clone(r.order)
		r.mu.RUnlock()

		for _, name := range names {
			if !yield(name) {
				return
			}
		}
	}
}

// Len returns the number of registered capabilities.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
