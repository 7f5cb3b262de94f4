// Package runtimex contains runtime extensions. This package is inspired to
// https://pkg.go.dev/github.com/m-lab/go/rtx, except that it's simpler.
package runtimex

import "errors"

// Assert calls panic with an error wrapping message if assertion is false.
func Assert(assertion bool, message string) {
	if !assertion {
		panic(errors.New(message))
	}
}
