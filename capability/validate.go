package capability

import (
	"encoding/json"
	"maps"
	"reflect"
	"slices"
)

// matches reports whether v conforms to the declared kind. Number accepts
// any numeric representation; Object accepts any keyed container and Array
// any sequence, regardless of nested shape. A string holding digits is not
// a number: kinds match on decoded shape only, never by coercion.
func matches(k Kind, v any) bool {
	switch k {
	case String:
		_, ok := v.(string)
		return ok
	case Number:
		switch v.(type) {
		case int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			float32, float64, json.Number:
			return true
		}
		return false
	case Boolean:
		_, ok := v.(bool)
		return ok
	case Object:
		if _, ok := v.(map[string]any); ok {
			return true
		}
		return reflect.ValueOf(v).Kind() == reflect.Map
	case Array:
		if _, ok := v.([]any); ok {
			return true
		}
		rk := reflect.ValueOf(v).Kind()
		return rk == reflect.Slice || rk == reflect.Array
	}
	return false
}

// checkArguments validates args against the declared parameter list and
// returns the name of the first offending parameter with a short problem
// description. Parameters are checked in declaration order; with strict
// set, argument names absent from the declaration are offenders too.
func checkArguments(params []Param, args map[string]any, strict bool) (name, problem string, ok bool) {
	for _, p := range params {
		v, present := args[p.Name]
		if !present {
			if p.Required {
				return p.Name, "is required", false
			}
			continue
		}
		if !matches(p.Kind, v) {
			return p.Name, "must be of kind " + string(p.Kind), false
		}
	}

	if strict {
		declared := make(map[string]bool, len(params))
		for _, p := range params {
			declared[p.Name] = true
		}
		for _, k := range slices.Sorted(maps.Keys(args)) {
			if !declared[k] {
				return k, "is not a declared parameter", false
			}
		}
	}

	return "", "", true
}
