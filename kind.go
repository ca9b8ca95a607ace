package elemattr

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
)

// Kind selects the coercion strategy for a declared attribute.
//
// The kind is decided once, at declaration time, from the shape of the
// declared default value, and carried on the declaration - it is never
// re-inspected at access time. Exactly five kinds exist; there is no
// extension point for user-defined coercions.
type Kind int

const (
	// KindInvalid is the zero Kind and matches nothing.
	KindInvalid Kind = iota

	// Number stores a float64 as decimal attribute text.
	// An absent or empty attribute reads as 0.
	Number

	// Boolean stores presence only: true means the attribute exists with
	// empty text, false means it is removed. Any attribute text, including
	// the literal "false", reads as true.
	Boolean

	// String stores attribute text verbatim. Absent reads as "".
	String

	// Array stores a JSON-encoded array. Absent reads as an empty []any.
	Array

	// Object stores a JSON-encoded object. Absent reads as an empty
	// map[string]any.
	Object
)

// String returns the kind's name for error messages.
func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "invalid"
	}
}

// KindOf classifies a value's shape into one of the five kinds.
// Returns ErrUnsupportedKind when the shape matches none of them
// (nil, structs, channels, funcs, maps with non-string keys).
func KindOf(v any) (Kind, error) {
	if v == nil {
		return KindInvalid, fmt.Errorf("%w: nil", ErrUnsupportedKind)
	}
	switch t := reflect.TypeOf(v); t.Kind() {
	case reflect.Bool:
		return Boolean, nil
	case reflect.String:
		return String, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return Number, nil
	case reflect.Slice, reflect.Array:
		return Array, nil
	case reflect.Map:
		if t.Key().Kind() == reflect.String {
			return Object, nil
		}
		return KindInvalid, fmt.Errorf("%w: map with %s keys", ErrUnsupportedKind, t.Key().Kind())
	default:
		return KindInvalid, fmt.Errorf("%w: %T", ErrUnsupportedKind, v)
	}
}

// codec is the get/set pair for one kind, reading and writing a single
// attribute on the element store.
type codec struct {
	decode func(el *Element, attr string) (any, error)
	encode func(el *Element, attr string, v any) error
}

// codecFor returns the coercion codec for a kind.
func codecFor(k Kind) (codec, bool) {
	switch k {
	case Number:
		return codec{decodeNumber, encodeNumber}, true
	case Boolean:
		return codec{decodeBoolean, encodeBoolean}, true
	case String:
		return codec{decodeString, encodeString}, true
	case Array:
		return codec{decodeArray, encodeArray}, true
	case Object:
		return codec{decodeObject, encodeObject}, true
	default:
		return codec{}, false
	}
}

func decodeNumber(el *Element, attr string) (any, error) {
	text, ok := el.GetAttribute(attr)
	if !ok || text == "" {
		return float64(0), nil
	}
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a decimal number", ErrDecodeShape, text)
	}
	return n, nil
}

func encodeNumber(el *Element, attr string, v any) error {
	n, ok := asFloat(v)
	if !ok {
		return fmt.Errorf("%w: %T is not a number", ErrKindMismatch, v)
	}
	el.SetAttribute(attr, strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

// scalarValue returns v's reflect value when its underlying kind is want.
// Encoding dispatches on underlying kinds, matching KindOf, so named types
// (type pixels float64) pass through the same codec their declaration
// validated against.
func scalarValue(v any, want reflect.Kind) (reflect.Value, bool) {
	if v == nil {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	return rv, rv.Kind() == want
}

func decodeBoolean(el *Element, attr string) (any, error) {
	return el.HasAttribute(attr), nil
}

func encodeBoolean(el *Element, attr string, v any) error {
	rv, ok := scalarValue(v, reflect.Bool)
	if !ok {
		return fmt.Errorf("%w: %T is not a bool", ErrKindMismatch, v)
	}
	el.ToggleAttribute(attr, rv.Bool())
	return nil
}

func decodeString(el *Element, attr string) (any, error) {
	text, _ := el.GetAttribute(attr)
	return text, nil
}

func encodeString(el *Element, attr string, v any) error {
	rv, ok := scalarValue(v, reflect.String)
	if !ok {
		return fmt.Errorf("%w: %T is not a string", ErrKindMismatch, v)
	}
	el.SetAttribute(attr, rv.String())
	return nil
}

func decodeArray(el *Element, attr string) (any, error) {
	text, ok := el.GetAttribute(attr)
	if !ok {
		text = "[]"
	}
	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeShape, err)
	}
	arr, ok := decoded.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an array", ErrDecodeShape, text)
	}
	return arr, nil
}

func encodeArray(el *Element, attr string, v any) error {
	if v == nil {
		el.SetAttribute(attr, "[]")
		return nil
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return fmt.Errorf("%w: %T is not a slice", ErrKindMismatch, v)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrKindMismatch, err)
	}
	el.SetAttribute(attr, string(data))
	return nil
}

func decodeObject(el *Element, attr string) (any, error) {
	text, ok := el.GetAttribute(attr)
	if !ok {
		text = "{}"
	}
	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeShape, err)
	}
	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an object", ErrDecodeShape, text)
	}
	return obj, nil
}

func encodeObject(el *Element, attr string, v any) error {
	if v == nil {
		el.SetAttribute(attr, "{}")
		return nil
	}
	t := reflect.TypeOf(v)
	if t.Kind() != reflect.Map || t.Key().Kind() != reflect.String {
		return fmt.Errorf("%w: %T is not a string-keyed map", ErrKindMismatch, v)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrKindMismatch, err)
	}
	el.SetAttribute(attr, string(data))
	return nil
}

// asFloat widens any value with a numeric underlying kind to float64.
func asFloat(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}
