package capability

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeJSONShape(t *testing.T) {
	ok, err := json.Marshal(OK(map[string]any{"echoed": "hi"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"payload":{"echoed":"hi"}}`, string(ok))

	degraded, err := json.Marshal(Degraded("canned", NoteFallback))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"payload":"canned","note":"served from fallback"}`, string(degraded))

	failed, err := json.Marshal(Failf(KindUnknownOperation, "no capability named %q", "ping"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":{"kind":"unknown_operation","message":"no capability named \"ping\""}}`, string(failed))
}

func TestTransientClassification(t *testing.T) {
	assert.False(t, IsTransient(assert.AnError))
	assert.True(t, IsTransient(Transient(assert.AnError)))
	assert.True(t, IsTransient(Transientf("dependency down: %v", assert.AnError)))
	assert.Nil(t, Transient(nil))
}
