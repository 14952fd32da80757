package jsonrpc

import "fmt"

// ErrorCode represents a JSON-RPC error code.
type ErrorCode int

// Standard codes from the JSON-RPC 2.0 specification.
const (
	ErrParse          ErrorCode = -32700
	ErrInvalidRequest ErrorCode = -32600
	ErrMethodNotFound ErrorCode = -32601
	ErrInvalidParams  ErrorCode = -32602
	ErrInternal       ErrorCode = -32603
)

var errorMessages = map[ErrorCode]string{
	ErrParse:          "Parse error",
	ErrInvalidRequest: "Invalid Request",
	ErrMethodNotFound: "Method not found",
	ErrInvalidParams:  "Invalid params",
	ErrInternal:       "Internal error",
}

// Error represents a JSON-RPC error object.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Data    any       `json:"data,omitempty"`
}

var _ error = &Error{}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// NewError creates an error with the standard message for code and
// optional attached data.
func NewError(code ErrorCode, data any) *Error {
	msg, ok := errorMessages[code]
	if !ok {
		msg = "Server error"
	}
	return &Error{Code: code, Message: msg, Data: data}
}
