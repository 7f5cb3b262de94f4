package httpclientx

import "github.com/ooni/onionoo/internal/model"

// DefaultMaxResponseBodySize is the default maximum response body size. Full
// details documents are large, so this limit is quite generous.
const DefaultMaxResponseBodySize = 1 << 27

// Config contains configuration shared by [GetRaw] and [*Overlapped].
//
// The zero value is invalid; initialize the MANDATORY fields.
type Config struct {
	// Client is the MANDATORY [model.HTTPClient] to use.
	Client model.HTTPClient

	// Logger is the MANDATORY [model.Logger] to use.
	Logger model.Logger

	// MaxResponseBodySize is the OPTIONAL maximum response body size. When
	// zero or negative, we use [DefaultMaxResponseBodySize].
	MaxResponseBodySize int64

	// UserAgent is the MANDATORY User-Agent header value to use.
	UserAgent string
}

// maxResponseBodySize returns the effective body size limit.
func (c *Config) maxResponseBodySize() int64 {
	if c.MaxResponseBodySize <= 0 {
		return DefaultMaxResponseBodySize
	}
	return c.MaxResponseBodySize
}
