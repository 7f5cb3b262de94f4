package httpclientx

// Endpoint is an HTTP endpoint.
//
// The zero value is invalid; construct using [NewEndpoint].
type Endpoint struct {
	// URL is the MANDATORY endpoint URL.
	URL string
}

// NewEndpoint constructs a new [*Endpoint] instance using the given URL.
func NewEndpoint(URL string) *Endpoint {
	return &Endpoint{URL: URL}
}

// NewEndpoints constructs an [*Endpoint] for each URL, skipping empty URLs.
func NewEndpoints(URLs ...string) (out []*Endpoint) {
	for _, URL := range URLs {
		if URL == "" {
			continue
		}
		out = append(out, NewEndpoint(URL))
	}
	return
}
