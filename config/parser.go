package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ooni/onionoo/internal/hujsonx"
	"github.com/ooni/onionoo/pkg/onionoo"
	"github.com/pkg/errors"
)

// ReadConfig reads the configuration from the path
func ReadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c, err := ParseConfig(b)
	if err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}
	c.path = path
	return c, nil
}

// ReadDefaultConfig reads the configuration from [DefaultPath]. A missing
// file is not an error and yields the default configuration.
func ReadDefaultConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	c, err := ReadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		c = &Config{}
		if err := c.Default(); err != nil {
			return nil, err
		}
		return c, nil
	}
	return c, err
}

// ParseConfig returns config from JSON-with-comments bytes.
func ParseConfig(b []byte) (*Config, error) {
	var c Config

	if err := hujsonx.Unmarshal(b, &c.Settings); err != nil {
		return nil, errors.Wrap(err, "parsing json")
	}

	if err := c.Default(); err != nil {
		return nil, errors.Wrap(err, "defaulting")
	}

	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating")
	}

	return &c, nil
}

// DefaultPath returns the default path of the configuration file.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "onionoo", "config.hujson"), nil
}

// Config for the onionoo command line client
type Config struct {
	Settings

	path string
}

// Path returns the path from which we read the config, if any.
func (c *Config) Path() string {
	return c.path
}

// Timeout returns the request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Default config settings
func (c *Config) Default() error {
	if c.BaseURL == "" {
		c.BaseURL = onionoo.DefaultBaseURL
	}
	return nil
}

// Validate the config file
func (c *Config) Validate() error {
	for _, URL := range append([]string{c.BaseURL}, c.Mirrors...) {
		if err := validateURL(URL); err != nil {
			return err
		}
	}
	if c.TimeoutSeconds < 0 {
		return errors.Errorf("negative timeout: %d", c.TimeoutSeconds)
	}
	return nil
}

// validateURL ensures URL is an absolute HTTP or HTTPS URL.
func validateURL(URL string) error {
	parsed, err := url.Parse(URL)
	if err != nil {
		return errors.Wrapf(err, "invalid URL %q", URL)
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	default:
		return errors.Errorf("invalid URL %q: unsupported scheme", URL)
	}
	if parsed.Host == "" {
		return errors.Errorf("invalid URL %q: missing host", URL)
	}
	return nil
}
