// Package analyze provides the JSON structure analysis capability.
package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/inletworks/capsule/capability"
)

// Process parses the JSON document in the arguments and reports its
// structure: value type, byte size, top-level keys, length, and nesting
// depth. Invalid JSON is an ordinary handler fault, never transient.
func Process(ctx context.Context, args map[string]any) (any, error) {
	raw, _ := args["json"].(string)

	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	analysis := map[string]any{
		"type":         typeName(data),
		"size":         len(raw),
		"nestedLevels": depth(data),
	}
	switch v := data.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		analysis["keys"] = keys
		analysis["length"] = len(v)
	case []any:
		analysis["length"] = len(v)
	}

	return map[string]any{
		"data":     data,
		"analysis": analysis,
		"valid":    true,
	}, nil
}

func typeName(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64, json.Number:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// depth counts nesting levels; scalars are level zero and empty
// containers count as their own level.
func depth(v any) int {
	switch val := v.(type) {
	case map[string]any:
		max := 0
		for _, child := range val {
			if d := depth(child); d > max {
				max = d
			}
		}
		return max + 1
	case []any:
		max := 0
		for _, child := range val {
			if d := depth(child); d > max {
				max = d
			}
		}
		return max + 1
	default:
		return 0
	}
}

// Capability returns the process_json descriptor.
func Capability() *capability.Descriptor {
	return &capability.Descriptor{
		Name:        "process_json",
		Description: "Parse a JSON document and report its structure",
		Params: []capability.Param{
			{Name: "json", Required: true, Kind: capability.String},
		},
		Handler: Process,
	}
}
