// Package httpclientx contains extensions to more easily invoke HTTP APIs.
//
// The main entry point is [GetRaw], which fetches a response body using
// the given [*Config] and fails with [*ErrRequestFailed] when the server
// does not return a successful status code. The [*Overlapped] type allows
// fetching the same resource from several functionally equivalent
// endpoints, returning the first successful response.
package httpclientx
