package onionoo

import (
	"fmt"
	"net/http"
	"strings"
)

// TransportError indicates that the HTTP request failed before we
// could obtain a response (e.g., DNS, TCP, TLS, or timeout failures).
type TransportError struct {
	Err error
}

var _ error = &TransportError{}

// Error implements error.
func (err *TransportError) Error() string {
	return fmt.Sprintf("HTTP request failed: %s", err.Err.Error())
}

// Unwrap allows using errors.Is and errors.As with the underlying error.
func (err *TransportError) Unwrap() error {
	return err.Err
}

// StatusCodeError indicates that the server returned a non-successful
// status code. We do not attempt to decode the body in this case.
type StatusCodeError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Body is the response body returned by the server.
	Body string
}

var _ error = &StatusCodeError{}

// Error implements error.
func (err *StatusCodeError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", err.StatusCode, err.reason())
}

// reason returns the body when available or the status text otherwise.
func (err *StatusCodeError) reason() string {
	if body := strings.TrimSpace(err.Body); body != "" {
		return body
	}
	if text := http.StatusText(err.StatusCode); text != "" {
		return strings.ToLower(text)
	}
	return "unknown status"
}

// DeserializationError indicates that we could not parse a response body.
type DeserializationError struct {
	Message string
}

var _ error = &DeserializationError{}

func newDeserializationError(err error) *DeserializationError {
	return &DeserializationError{Message: err.Error()}
}

// Error implements error.
func (err *DeserializationError) Error() string {
	return fmt.Sprintf("JSON deserialization failed: %s", err.Message)
}

// URLConstructionError indicates that we could not build the request URL.
type URLConstructionError struct {
	Message string
}

var _ error = &URLConstructionError{}

// Error implements error.
func (err *URLConstructionError) Error() string {
	return fmt.Sprintf("URL construction error: %s", err.Message)
}
