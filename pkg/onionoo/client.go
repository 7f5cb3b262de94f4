package onionoo

//
// client.go - the Onionoo client.
//

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/ooni/onionoo/internal/httpclientx"
	"github.com/ooni/onionoo/internal/model"
)

// DefaultBaseURL is the base URL of the official Onionoo instance.
const DefaultBaseURL = "https://onionoo.torproject.org"

// Client is an Onionoo client. Construct using [NewClient].
//
// The fields are exported for inspection. Modifying them after the client
// is in use is a data race.
type Client struct {
	// BaseURL is the base URL of the Onionoo instance.
	BaseURL string

	// Mirrors contains OPTIONAL base URLs of equivalent Onionoo instances. When
	// not empty, we issue overlapped requests using BaseURL first and then each
	// mirror, and we return the first successful response.
	Mirrors []string

	// HTTPClient is the HTTP client to use.
	HTTPClient model.HTTPClient

	// Logger is the logger to use.
	Logger model.Logger

	// UserAgent is the User-Agent header to send.
	UserAgent string
}

// Option is an option for [NewClient].
type Option func(c *Client)

// WithBaseURL sets the base URL. A trailing slash is removed.
func WithBaseURL(URL string) Option {
	return func(c *Client) {
		c.BaseURL = strings.TrimSuffix(URL, "/")
	}
}

// WithMirrors adds equivalent Onionoo instances.
func WithMirrors(URLs ...string) Option {
	return func(c *Client) {
		for _, URL := range URLs {
			c.Mirrors = append(c.Mirrors, strings.TrimSuffix(URL, "/"))
		}
	}
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(clnt model.HTTPClient) Option {
	return func(c *Client) {
		c.HTTPClient = clnt
	}
}

// WithLogger sets the logger.
func WithLogger(logger model.Logger) Option {
	return func(c *Client) {
		c.Logger = logger
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.UserAgent = ua
	}
}

// NewClient creates a new [*Client] using the official instance, the default
// HTTP client, and a logger discarding all messages unless options say otherwise.
func NewClient(options ...Option) *Client {
	c := &Client{
		BaseURL:    DefaultBaseURL,
		Mirrors:    nil,
		HTTPClient: http.DefaultClient,
		Logger:     model.DiscardLogger,
		UserAgent:  model.HTTPHeaderUserAgent,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// CloseIdleConnections closes the idle connections of the HTTP client.
func (c *Client) CloseIdleConnections() {
	c.HTTPClient.CloseIdleConnections()
}

// URL returns the URL used to fetch the given path with the given params
// from the BaseURL, or a [*URLConstructionError].
func (c *Client) URL(path string, params QueryParameters) (string, error) {
	return buildURL(c.BaseURL, path, params)
}

// buildURL concatenates base, path, and the encoded params.
func buildURL(base, path string, params QueryParameters) (string, error) {
	if !strings.HasPrefix(path, "/") {
		return "", &URLConstructionError{Message: "path must begin with '/': " + path}
	}
	URL := strings.TrimSuffix(base, "/") + path + params.Encode()
	parsed, err := url.Parse(URL)
	if err != nil {
		return "", &URLConstructionError{Message: err.Error()}
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", &URLConstructionError{Message: "invalid base URL: " + base}
	}
	return URL, nil
}

// endpoints returns the [*httpclientx.Endpoint] for BaseURL and each mirror.
func (c *Client) endpoints(path string, params QueryParameters) ([]*httpclientx.Endpoint, error) {
	var URLs []string
	for _, base := range append([]string{c.BaseURL}, c.Mirrors...) {
		URL, err := buildURL(base, path, params)
		if err != nil {
			return nil, err
		}
		URLs = append(URLs, URL)
	}
	return httpclientx.NewEndpoints(URLs...), nil
}

// Get fetches the given path (e.g., "/summary") with the given params and
// returns the raw body of a successful response.
//
// This method returns a [*URLConstructionError] when path does not begin
// with "/", a [*StatusCodeError] when the status code is not 2xx, and a
// [*TransportError] in case of network errors.
func (c *Client) Get(ctx context.Context, path string, params QueryParameters) ([]byte, error) {
	epnts, err := c.endpoints(path, params)
	if err != nil {
		return nil, err
	}

	config := &httpclientx.Config{
		Client:    c.HTTPClient,
		Logger:    model.ValidLoggerOrDefault(c.Logger),
		UserAgent: c.UserAgent,
	}

	var body []byte
	switch len(epnts) {
	case 1:
		body, err = httpclientx.GetRaw(ctx, epnts[0], config)
	default:
		var idx int
		body, idx, err = httpclientx.NewOverlappedGetRaw(config).Run(ctx, epnts...)
		if err == nil {
			config.Logger.Debugf("onionoo: %s served by %s", path, epnts[idx].URL)
		}
	}
	if err != nil {
		return nil, classifyError(err)
	}
	return body, nil
}

// classifyError maps errors returned by httpclientx to our error types.
func classifyError(err error) error {
	var failed *httpclientx.ErrRequestFailed
	if errors.As(err, &failed) {
		return &StatusCodeError{StatusCode: failed.StatusCode, Body: string(failed.Body)}
	}
	return &TransportError{Err: err}
}

// GetEndpoint is like [*Client.Get] but uses the path of the given endpoint.
func (c *Client) GetEndpoint(ctx context.Context, endpoint Endpoint, params QueryParameters) ([]byte, error) {
	if !endpoint.Valid() {
		return nil, &URLConstructionError{Message: "unknown endpoint: " + endpoint.String()}
	}
	return c.Get(ctx, endpoint.Path(), params)
}

// fetch gets the given endpoint and decodes the body.
func fetch[Doc Document](ctx context.Context, c *Client, endpoint Endpoint, params QueryParameters) (*Doc, error) {
	body, err := c.GetEndpoint(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	return Decode[Doc](body)
}

// Summary fetches the summary document.
func (c *Client) Summary(ctx context.Context, params QueryParameters) (*SummaryDocument, error) {
	return fetch[SummaryDocument](ctx, c, Summary, params)
}

// Details fetches the details document.
func (c *Client) Details(ctx context.Context, params QueryParameters) (*DetailsDocument, error) {
	return fetch[DetailsDocument](ctx, c, Details, params)
}

// Bandwidth fetches the bandwidth document.
func (c *Client) Bandwidth(ctx context.Context, params QueryParameters) (*BandwidthDocument, error) {
	return fetch[BandwidthDocument](ctx, c, Bandwidth, params)
}

// Weights fetches the weights document.
func (c *Client) Weights(ctx context.Context, params QueryParameters) (*WeightsDocument, error) {
	return fetch[WeightsDocument](ctx, c, Weights, params)
}

// Clients fetches the clients document.
func (c *Client) Clients(ctx context.Context, params QueryParameters) (*ClientsDocument, error) {
	return fetch[ClientsDocument](ctx, c, Clients, params)
}

// Uptime fetches the uptime document.
func (c *Client) Uptime(ctx context.Context, params QueryParameters) (*UptimeDocument, error) {
	return fetch[UptimeDocument](ctx, c, Uptime, params)
}

// Fetch fetches and decodes the document of any endpoint. See [DecodeAny]
// for the concrete type of the result.
func (c *Client) Fetch(ctx context.Context, endpoint Endpoint, params QueryParameters) (any, error) {
	body, err := c.GetEndpoint(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	return DecodeAny(endpoint, body)
}
