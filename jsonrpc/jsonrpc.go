// Package jsonrpc implements the subset of JSON-RPC 2.0 spoken on the
// capsule wire: single requests and responses, no batching.
package jsonrpc

import (
	"context"
	"encoding/json"
)

// Version is the protocol version stamped on every message.
const Version = "2.0"

// Request represents a JSON-RPC request object.
type Request struct {
	Version string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      ID              `json:"id"`
}

// Response represents a JSON-RPC response object.
type Response struct {
	Version string `json:"jsonrpc"`
	Result  any    `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
	ID      ID     `json:"id"`
}

// NewResponse builds a response carrying either a result or an error.
func NewResponse(id ID, result any, err *Error) Response {
	return Response{
		Version: Version,
		Result:  result,
		Error:   err,
		ID:      id,
	}
}

// Handler answers a single request.
type Handler interface {
	Handle(ctx context.Context, req Request) Response
}
