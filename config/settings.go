package config

// Settings that can be set in the configuration file. Command line
// flags take precedence over the values read from the file.
type Settings struct {
	// BaseURL is the base URL of the Onionoo instance.
	BaseURL string `json:"base_url"`

	// Mirrors contains equivalent Onionoo instances.
	Mirrors []string `json:"mirrors"`

	// UserAgent overrides the default User-Agent header.
	UserAgent string `json:"user_agent"`

	// TimeoutSeconds is the timeout of each request. Zero means no timeout.
	TimeoutSeconds int64 `json:"timeout_seconds"`

	// Verbose enables debug logging.
	Verbose bool `json:"verbose"`
}
