package evaluator

import (
	"encoding/json"
	"fmt"
	"math"
)

// Sanitize recursively coerces any numeric-like value to a plain
// float64, any mapping to a mapping of sanitized values, any sequence
// to a sequence of sanitized values, and anything else to its string
// form. Applied once at the evaluator boundary so the rest of the
// service only ever sees JSON-safe values.
func Sanitize(v interface{}) interface{} {
	switch t := v.(type) {
	case nil, bool, string:
		return t
	case json.Number:
		f, err := t.Float64()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return t.String()
		}
		return f
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return fmt.Sprintf("%v", t)
		}
		return t
	case float32:
		return Sanitize(float64(t))
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case uint64:
		return float64(t)
	case map[string]interface{}:
		clean := make(map[string]interface{}, len(t))
		for k, val := range t {
			clean[k] = Sanitize(val)
		}
		return clean
	case []interface{}:
		clean := make([]interface{}, len(t))
		for i, val := range t {
			clean[i] = Sanitize(val)
		}
		return clean
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Number coerces a sanitized value to float64, returning 0 for
// anything non-numeric.
func Number(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case json.Number:
		f, _ := t.Float64()
		return f
	case int:
		return float64(t)
	case int64:
		return float64(t)
	default:
		return 0
	}
}

// Text coerces a sanitized value to its string form, returning the
// fallback for nil.
func Text(v interface{}, fallback string) string {
	if v == nil {
		return fallback
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// ObjectField extracts a nested object, returning an empty map when
// the field is missing or has a different shape.
func ObjectField(m map[string]interface{}, key string) map[string]interface{} {
	if obj, ok := m[key].(map[string]interface{}); ok {
		return obj
	}
	return map[string]interface{}{}
}

// NumberMap flattens an object of numeric values, dropping anything
// non-numeric.
func NumberMap(m map[string]interface{}, key string) map[string]float64 {
	obj := ObjectField(m, key)
	out := make(map[string]float64, len(obj))
	for k, v := range obj {
		out[k] = Number(v)
	}
	return out
}
