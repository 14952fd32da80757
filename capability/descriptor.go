package capability

import (
	"context"
	"errors"
	"fmt"
)

// Kind is the declared shape of a parameter value.
type Kind string

const (
	String  Kind = "string"
	Number  Kind = "number"
	Boolean Kind = "boolean"
	Object  Kind = "object"
	Array   Kind = "array"
)

func (k Kind) valid() bool {
	switch k {
	case String, Number, Boolean, Object, Array:
		return true
	}
	return false
}

// Param declares one named parameter of a capability.
type Param struct {
	Name     string
	Required bool
	Kind     Kind
}

// Handler executes one invocation. The argument map has already passed
// validation against the descriptor's parameter list.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// Mode selects how the dispatcher runs a handler.
type Mode int

const (
	// ModeSync runs the handler to completion on the calling goroutine.
	ModeSync Mode = iota

	// ModeDetached runs the handler on its own goroutine so the caller
	// can abandon the wait. A result arriving after abandonment is
	// discarded, never queued.
	ModeDetached
)

// Descriptor is the registered metadata for one capability. Descriptors
// are owned by the registry after registration and must not be mutated.
type Descriptor struct {
	Name        string
	Description string
	Params      []Param
	Handler     Handler

	// Fallback, if set, is tried at most once when Handler returns a
	// transient fault. It never triggers another fallback.
	Fallback Handler

	Mode Mode
}

func (d *Descriptor) validate() error {
	if d == nil {
		return errors.New("nil descriptor")
	}
	if d.Name == "" {
		return errors.New("descriptor has no name")
	}
	if d.Handler == nil {
		return fmt.Errorf("descriptor %q has no handler", d.Name)
	}
	seen := make(map[string]bool, len(d.Params))
	for _, p := range d.Params {
		if p.Name == "" {
			return fmt.Errorf("descriptor %q has an unnamed parameter", d.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("descriptor %q declares parameter %q twice", d.Name, p.Name)
		}
		seen[p.Name] = true
		if !p.Kind.valid() {
			return fmt.Errorf("descriptor %q parameter %q has invalid kind %q", d.Name, p.Name, p.Kind)
		}
	}
	return nil
}
