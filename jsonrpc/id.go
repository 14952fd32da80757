package jsonrpc

import (
	"encoding/json"
	"fmt"
)

// ID is a request identifier: a JSON string or number. The zero ID
// marshals as null, which is what responses to unparseable requests carry.
type ID struct {
	value any
}

// StringID returns an ID holding a string value.
func StringID(s string) ID { return ID{value: s} }

// IntID returns an ID holding a numeric value.
func IntID(n int) ID { return ID{value: n} }

// IsZero reports whether the ID is unset.
func (id ID) IsZero() bool { return id.value == nil }

var _ json.Marshaler = ID{}

func (id ID) MarshalJSON() ([]byte, error) {
	if id.value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(id.value)
}

var _ json.Unmarshaler = &ID{}

func (id *ID) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		id.value = v
	case float64: // JSON numbers decode as float64
		id.value = int(v)
	case nil:
		id.value = nil
	default:
		return fmt.Errorf("id must be a string or number, got %T", raw)
	}
	return nil
}
