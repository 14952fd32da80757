package capability

import "fmt"

// Fault kinds. Classification is deterministic: the same condition always
// produces the same kind, so transports may rely on it verbatim.
const (
	KindUnknownOperation    = "unknown_operation"
	KindInvalidArguments    = "invalid_arguments"
	KindHandlerError        = "handler_error"
	KindFallbackFailed      = "fallback_failed"
	KindDuplicateCapability = "duplicate_capability"
)

// NoteFallback annotates envelopes whose payload came from a fallback
// handler rather than the primary one.
const NoteFallback = "served from fallback"

// Fault describes why an invocation failed.
type Fault struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// Envelope is the uniform result of every invocation. Exactly one of
// Payload and Error is set, and Success reports which.
type Envelope struct {
	Success bool   `json:"success"`
	Payload any    `json:"payload,omitempty"`
	Error   *Fault `json:"error,omitempty"`
	Note    string `json:"note,omitempty"`
}

// OK wraps a handler's return value in a successful envelope.
func OK(payload any) Envelope {
	return Envelope{Success: true, Payload: payload}
}

// Degraded wraps a fallback result in a successful envelope annotated
// with the given note.
func Degraded(payload any, note string) Envelope {
	return Envelope{Success: true, Payload: payload, Note: note}
}

// Fail produces a failed envelope with the given fault kind and message.
func Fail(kind, message string) Envelope {
	return Envelope{Success: false, Error: &Fault{Kind: kind, Message: message}}
}

// Failf is Fail with a formatted message.
func Failf(kind, format string, args ...any) Envelope {
	return Fail(kind, fmt.Sprintf(format, args...))
}
