// Package optional contains safer code to handle optional values.
//
// A [Value] is either empty (see [None]) or contains a value (see [Some]).
// When used as a struct field decoded from JSON, a missing key and a JSON
// `null` both leave the [Value] empty, which allows callers to distinguish
// "absent" from the zero value of the wrapped type.
package optional

import (
	"bytes"
	"encoding/json"
	"reflect"

	"github.com/ooni/onionoo/internal/runtimex"
)

// Value is an optional value. The zero value is an empty [Value].
type Value[T any] struct {
	// indirect is the indirect pointer to the value.
	indirect *T
}

// None constructs an empty value.
func None[T any]() Value[T] {
	return Value[T]{nil}
}

// Some constructs a some value unless T is a pointer and points to
// nil, in which case [Some] is equivalent to [None].
func Some[T any](value T) Value[T] {
	v := None[T]()
	if !isNil(value) {
		v.indirect = &value
	}
	return v
}

// isNil returns whether value is a nil pointer.
func isNil[T any](value T) bool {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return true
	}
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// Compile-time assertion that Value implements the JSON interfaces.
var (
	_ json.Marshaler   = Value[int]{}
	_ json.Unmarshaler = &Value[int]{}
)

// UnmarshalJSON implements json.Unmarshaler. Note that a `null` JSON
// value always leads to an empty [Value].
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	// A `null` value should become an empty Value
	if bytes.Equal(data, []byte(`null`)) {
		v.indirect = nil
		return nil
	}

	// attempt to unmarshal into the underlying type
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	// make sure that we're not wrapping a nil pointer
	*v = Some(value)
	return nil
}

// MarshalJSON implements json.Marshaler. An empty [Value] serializes
// to `null` and otherwise we serialize the underlying value.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if v.indirect == nil {
		return json.Marshal(nil)
	}
	return json.Marshal(*v.indirect)
}

// IsNone returns whether this [Value] is empty.
func (v Value[T]) IsNone() bool {
	return v.indirect == nil
}

// IsSome returns whether this [Value] contains a value.
func (v Value[T]) IsSome() bool {
	return v.indirect != nil
}

// Unwrap returns the underlying value or panics. In case of
// panic, the value passed to panic is an error.
func (v Value[T]) Unwrap() T {
	runtimex.Assert(!v.IsNone(), "is none")
	return *v.indirect
}

// UnwrapOr returns the fallback if the [Value] is empty.
func (v Value[T]) UnwrapOr(fallback T) T {
	if v.IsNone() {
		return fallback
	}
	return v.Unwrap()
}

// Get returns the underlying value and whether it was present.
func (v Value[T]) Get() (T, bool) {
	if v.IsNone() {
		return *new(T), false
	}
	return *v.indirect, true
}

// Equal returns whether two values are both empty or both contain deeply
// equal values. This method also allows go-cmp to compare values.
func (v Value[T]) Equal(other Value[T]) bool {
	if v.IsNone() || other.IsNone() {
		return v.IsNone() == other.IsNone()
	}
	return reflect.DeepEqual(*v.indirect, *other.indirect)
}
