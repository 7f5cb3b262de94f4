package onionoo

//
// endpoint.go - the catalog of Onionoo endpoints.
//

import (
	"fmt"
	"strings"

	"github.com/ooni/onionoo/internal/runtimex"
)

// Endpoint is one of the six Onionoo endpoints.
type Endpoint int

const (
	// Summary returns short summaries of relays and bridges.
	Summary Endpoint = iota

	// Details returns detailed information about relays and bridges.
	Details

	// Bandwidth returns the bandwidth history of relays and bridges.
	Bandwidth

	// Weights returns the path selection probabilities of relays.
	Weights

	// Clients returns the estimated number of clients of bridges.
	Clients

	// Uptime returns the fractional uptime of relays and bridges.
	Uptime
)

// endpointInfo describes an [Endpoint].
type endpointInfo struct {
	name        string
	relays      bool
	bridges     bool
	description string
}

var endpointCatalog = [...]endpointInfo{
	Summary: {
		name:    "summary",
		relays:  true,
		bridges: true,
		description: "Returns a summary document containing short summaries of relays with " +
			"nicknames, fingerprints, IP addresses, and running information as well as " +
			"bridges with hashed fingerprints and running information.",
	},
	Details: {
		name:    "details",
		relays:  true,
		bridges: true,
		description: "Returns a details document based on network statuses published by the " +
			"Tor directories, server descriptors published by relays and bridges, and data " +
			"published by Tor network services TorDNSEL and BridgeDB.",
	},
	Bandwidth: {
		name:    "bandwidth",
		relays:  true,
		bridges: true,
		description: "Returns a bandwidth document containing aggregate statistics of a " +
			"relay's or bridge's consumed bandwidth for different time intervals. Only " +
			"updated when a relay or bridge publishes a new server descriptor, which may " +
			"take up to 18 hours during normal operation.",
	},
	Weights: {
		name:   "weights",
		relays: true,
		description: "Returns a weights document containing aggregate statistics of a " +
			"relay's probability to be selected by clients for building paths. Available " +
			"for relays only.",
	},
	Clients: {
		name:    "clients",
		bridges: true,
		description: "Returns a clients document containing estimates of the average number " +
			"of clients connecting to a bridge every day. Available for bridges only.",
	},
	Uptime: {
		name:    "uptime",
		relays:  true,
		bridges: true,
		description: "Returns an uptime document containing fractional uptimes of relays " +
			"and bridges for different time intervals.",
	},
}

// info returns the description of e or panics if e is not valid.
func (e Endpoint) info() endpointInfo {
	runtimex.Assert(e.Valid(), fmt.Sprintf("onionoo: invalid endpoint %d", int(e)))
	return endpointCatalog[e]
}

// Valid returns whether e is one of the six known endpoints.
func (e Endpoint) Valid() bool {
	return e >= Summary && e <= Uptime
}

// Name returns the lowercase canonical name of the endpoint.
func (e Endpoint) Name() string {
	return e.info().name
}

// Path returns the URL path of the endpoint.
func (e Endpoint) Path() string {
	return "/" + e.info().name
}

// Method returns the HTTP method used by the endpoint.
func (e Endpoint) Method() string {
	return "GET"
}

// Description returns the protocol documentation of the endpoint.
func (e Endpoint) Description() string {
	return e.info().description
}

// AppliesToRelays returns whether the endpoint returns relay entries.
func (e Endpoint) AppliesToRelays() bool {
	return e.info().relays
}

// AppliesToBridges returns whether the endpoint returns bridge entries.
func (e Endpoint) AppliesToBridges() bool {
	return e.info().bridges
}

// String implements fmt.Stringer.
func (e Endpoint) String() string {
	if !e.Valid() {
		return fmt.Sprintf("Endpoint(%d)", int(e))
	}
	return e.Name()
}

// FindByName returns the endpoint with the given name, ignoring case.
func FindByName(name string) (Endpoint, bool) {
	name = strings.ToLower(name)
	for idx, info := range endpointCatalog {
		if info.name == name {
			return Endpoint(idx), true
		}
	}
	return 0, false
}

// AllEndpoints returns all the endpoints.
func AllEndpoints() []Endpoint {
	return []Endpoint{Summary, Details, Bandwidth, Weights, Clients, Uptime}
}

// RelayAndBridgeEndpoints returns the endpoints returning both relays and bridges.
func RelayAndBridgeEndpoints() []Endpoint {
	return []Endpoint{Summary, Details, Bandwidth, Uptime}
}

// RelayOnlyEndpoints returns the endpoints returning only relays.
func RelayOnlyEndpoints() []Endpoint {
	return []Endpoint{Weights}
}

// BridgeOnlyEndpoints returns the endpoints returning only bridges.
func BridgeOnlyEndpoints() []Endpoint {
	return []Endpoint{Clients}
}
