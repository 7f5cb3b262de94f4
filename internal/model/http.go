package model

//
// Common HTTP definitions.
//

import (
	"net/http"

	"github.com/ooni/onionoo/internal/version"
)

// HTTPClient is the HTTP client used to fetch Onionoo documents. The
// [*http.Client] type from the standard library implements it.
type HTTPClient interface {
	// Do sends an HTTP request and returns an HTTP response.
	Do(req *http.Request) (*http.Response, error)

	// CloseIdleConnections closes idle connections.
	CloseIdleConnections()
}

var _ HTTPClient = &http.Client{}

// HTTPHeaderUserAgent is the default User-Agent header.
const HTTPHeaderUserAgent = "onionoo-go/" + version.Version

// HTTPHeaderAccept is the Accept header used when fetching documents.
const HTTPHeaderAccept = "application/json"
