package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/inletworks/capsule/jsonrpc"
)

// Transport reads newline-delimited JSON-RPC requests and writes one
// response per request.
type Transport struct {
	handler jsonrpc.Handler
	scanner *bufio.Scanner
	encoder *json.Encoder
	bufOut  *bufio.Writer
	errOut  io.Writer
}

// NewStdioTransport creates a transport over the given streams. Input
// lines are capped at 1 MiB.
func NewStdioTransport(handler jsonrpc.Handler, in io.Reader, out io.Writer, errOut io.Writer) *Transport {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	bufOut := bufio.NewWriter(out)
	return &Transport{
		handler: handler,
		scanner: scanner,
		encoder: json.NewEncoder(bufOut),
		bufOut:  bufOut,
		errOut:  errOut,
	}
}

// Run reads requests until EOF or context cancellation. Unparseable lines
// are answered on the wire with a parse error rather than ending the loop.
func (t *Transport) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if !t.scanner.Scan() {
				if err := t.scanner.Err(); err != nil {
					return fmt.Errorf("reading request: %w", err)
				}
				return nil
			}

			line := t.scanner.Text()
			if line == "" {
				continue
			}

			var req jsonrpc.Request
			if err := json.Unmarshal([]byte(line), &req); err != nil {
				t.write(jsonrpc.NewResponse(jsonrpc.ID{}, nil, jsonrpc.NewError(jsonrpc.ErrParse, err.Error())))
				continue
			}

			t.write(t.handler.Handle(ctx, req))
		}
	}
}

func (t *Transport) write(resp jsonrpc.Response) {
	if err := t.encoder.Encode(resp); err != nil {
		fmt.Fprintf(t.errOut, "error encoding response: %v\n", err)
	}
	t.bufOut.Flush()
}
