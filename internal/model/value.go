package model

import (
	"encoding/json"
	"strconv"
)

// Value is a closed representation of arbitrarily nested document metadata.
// Case files carry heterogeneous key/value structures (upload forms, OCR
// sidecars, export dumps); modeling them as a tagged union keeps the
// recursive traversal total instead of panicking on unexpected shapes.
type Value interface {
	isValue()
}

// String is a string metadata value
type String string

// Number is a numeric metadata value
type Number float64

// Bool is a boolean metadata value
type Bool bool

// Null is an explicit null metadata value
type Null struct{}

// List is an ordered list of metadata values
type List []Value

// Map is a string-keyed collection of metadata values
type Map map[string]Value

func (String) isValue() {}
func (Number) isValue() {}
func (Bool) isValue()   {}
func (Null) isValue()   {}
func (List) isValue()   {}
func (Map) isValue()    {}

// MarshalJSON renders an explicit null as JSON null, not an empty object, so
// metadata survives a report round-trip unchanged
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// FromAny converts a decoded YAML/JSON value into the closed Value type.
// Unrecognized shapes collapse to Null rather than erroring.
func FromAny(v interface{}) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case int:
		return Number(t)
	case int64:
		return Number(t)
	case float64:
		return Number(t)
	case []interface{}:
		list := make(List, 0, len(t))
		for _, item := range t {
			list = append(list, FromAny(item))
		}
		return list
	case map[string]interface{}:
		m := make(Map, len(t))
		for k, item := range t {
			m[k] = FromAny(item)
		}
		return m
	case map[interface{}]interface{}:
		// Older YAML decoders produce interface-keyed maps
		m := make(Map, len(t))
		for k, item := range t {
			if key, ok := k.(string); ok {
				m[key] = FromAny(item)
			}
		}
		return m
	default:
		return Null{}
	}
}

// UnmarshalJSON decodes arbitrary JSON objects into the closed Value type
func (m *Map) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	converted, _ := FromAny(raw).(Map)
	*m = converted
	return nil
}

// AsString returns the string form of scalar values, with ok=false for
// composite or null values
func AsString(v Value) (string, bool) {
	switch t := v.(type) {
	case String:
		return string(t), true
	case Number:
		return strconv.FormatFloat(float64(t), 'f', -1, 64), true
	case Bool:
		return strconv.FormatBool(bool(t)), true
	default:
		return "", false
	}
}
