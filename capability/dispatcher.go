package capability

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Request is a single invocation of a named capability. It is consumed
// once by the dispatcher and not retained.
type Request struct {
	Operation string         `json:"operation"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// Dispatcher resolves, validates, and executes invocations against a
// registry. It holds no mutable state of its own, so concurrent Invoke
// calls from different callers are independent.
type Dispatcher struct {
	registry *Registry
	logger   *slog.Logger
	strict   bool
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the logger used for handler faults and fallbacks.
func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithStrictArguments rejects argument names that are not declared in the
// capability's parameter list. The default is to ignore them.
func WithStrictArguments() DispatcherOption {
	return func(d *Dispatcher) {
		d.strict = true
	}
}

// NewDispatcher creates a dispatcher over the given registry.
func NewDispatcher(registry *Registry, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Invoke runs one request to completion and always returns an envelope.
// It never panics and no handler fault escapes it.
func (d *Dispatcher) Invoke(ctx context.Context, req Request) Envelope {
	desc, err := d.registry.Lookup(req.Operation)
	if err != nil {
		return Failf(KindUnknownOperation, "no capability named %q", req.Operation)
	}

	if name, problem, ok := checkArguments(desc.Params, req.Arguments, d.strict); !ok {
		return Failf(KindInvalidArguments, "parameter %q %s", name, problem)
	}

	payload, err := d.run(ctx, desc, req.Arguments)
	if err == nil {
		return OK(payload)
	}

	if IsTransient(err) && desc.Fallback != nil {
		d.logger.Warn("trying fallback", "operation", desc.Name, "error", err)
		payload, ferr := call(ctx, desc.Fallback, req.Arguments)
		if ferr != nil {
			d.logger.Error("fallback failed", "operation", desc.Name, "error", ferr)
			return Failf(KindFallbackFailed, "fallback for %q failed: %v", desc.Name, ferr)
		}
		return Degraded(payload, NoteFallback)
	}

	d.logger.Error("handler failed", "operation", desc.Name, "error", err)
	return Fail(KindHandlerError, err.Error())
}

// run executes the primary handler under the descriptor's mode. Detached
// handlers run on their own goroutine; if the caller's context ends first,
// their eventual result is discarded.
func (d *Dispatcher) run(ctx context.Context, desc *Descriptor, args map[string]any) (any, error) {
	if desc.Mode == ModeSync {
		return call(ctx, desc.Handler, args)
	}

	type outcome struct {
		payload any
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		payload, err := call(ctx, desc.Handler, args)
		done <- outcome{payload, err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("invocation abandoned: %w", ctx.Err())
	case out := <-done:
		return out.payload, out.err
	}
}

// call invokes a handler, converting a panic into an error so that raw
// faults never reach the caller.
func call(ctx context.Context, h Handler, args map[string]any) (payload any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return h(ctx, args)
}
