package httpclientx

import (
	"errors"
	"reflect"
)

// ErrIsNil indicates that a server response decoded to a nil value, which
// happens when the body is the JSON literal null.
var ErrIsNil = errors.New("httpclientx: decoded a nil map, pointer, or slice")

// NilSafetyErrorIfNil returns [ErrIsNil] when value is a nil map, pointer, or slice
// and otherwise returns value unchanged.
func NilSafetyErrorIfNil[Type any](value Type) (Type, error) {
	rv := reflect.ValueOf(value)
	if k := rv.Kind(); (k == reflect.Map || k == reflect.Pointer || k == reflect.Slice) && rv.IsNil() {
		var zero Type
		return zero, ErrIsNil
	}
	return value, nil
}

// NilSafetyAvoidNilBytesSlice returns an empty slice in place of a nil one.
func NilSafetyAvoidNilBytesSlice(input []byte) []byte {
	if input != nil {
		return input
	}
	return []byte{}
}
