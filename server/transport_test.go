package server

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inletworks/capsule/capability"
)

func runTransport(t *testing.T, input string) []map[string]any {
	t.Helper()

	s := newTestServer(t)
	var out, errOut bytes.Buffer
	transport := NewStdioTransport(s, strings.NewReader(input), &out, &errOut)

	require.NoError(t, transport.Run(context.Background()))

	var responses []map[string]any
	dec := json.NewDecoder(&out)
	for dec.More() {
		var resp map[string]any
		require.NoError(t, dec.Decode(&resp))
		responses = append(responses, resp)
	}
	return responses
}

func TestTransportRoundTrip(t *testing.T) {
	input := `{"jsonrpc":"2.0","method":"capabilities/invoke","params":{"operation":"echo","arguments":{"text":"hi"}},"id":1}
{"jsonrpc":"2.0","method":"capabilities/invoke","params":{"operation":"echo","arguments":{}},"id":2}
`
	responses := runTransport(t, input)
	require.Len(t, responses, 2)

	first := responses[0]
	assert.EqualValues(t, 1, first["id"])
	result, ok := first["result"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, result["success"])
	assert.Equal(t, map[string]any{"echoed": "hi"}, result["payload"])

	second := responses[1]
	assert.EqualValues(t, 2, second["id"])
	result, ok = second["result"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, result["success"])
	fault, ok := result["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, capability.KindInvalidArguments, fault["kind"])
}

func TestTransportParseError(t *testing.T) {
	responses := runTransport(t, "this is not json\n")
	require.Len(t, responses, 1)

	errObj, ok := responses[0]["error"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, -32700, errObj["code"])
	assert.Nil(t, responses[0]["id"])
}

func TestTransportSkipsBlankLines(t *testing.T) {
	input := "\n\n" + `{"jsonrpc":"2.0","method":"ping","id":7}` + "\n"

	responses := runTransport(t, input)
	require.Len(t, responses, 1)
	assert.EqualValues(t, 7, responses[0]["id"])
}

func TestTransportStopsOnCancelledContext(t *testing.T) {
	s := newTestServer(t)
	var out bytes.Buffer

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	transport := NewStdioTransport(s, strings.NewReader(""), &out, &out)
	err := transport.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
