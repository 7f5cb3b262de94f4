// Package geodist computes the geographic distribution of relays.
package geodist

import (
	"sort"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/ooni/onionoo/pkg/onionoo"
)

// Unknown is the key used for relays without location information.
const Unknown = "??"

// Row is a row of a [Distribution].
type Row struct {
	// Key is the country code or the AS number.
	Key string `json:"key"`

	// Label is the country name or the AS name.
	Label string `json:"label"`

	// Count is the number of relays.
	Count int64 `json:"count"`

	// Fraction is Count divided by the total number of relays.
	Fraction float64 `json:"fraction"`

	// Weight is the sum of the consensus weight fractions of the relays.
	Weight float64 `json:"weight"`
}

// Distribution is a list of rows sorted by decreasing count.
type Distribution []Row

// Top returns at most the first n rows.
func (d Distribution) Top(n int) Distribution {
	if n >= 0 && n < len(d) {
		return d[:n]
	}
	return d
}

// ByCountry groups relays by country code.
func ByCountry(relays []onionoo.RelayDetails) Distribution {
	return group(relays, func(relay *onionoo.RelayDetails) (string, string) {
		return strings.ToLower(relay.Country.UnwrapOr("")), relay.CountryName.UnwrapOr("")
	})
}

// ByAS groups relays by autonomous system.
func ByAS(relays []onionoo.RelayDetails) Distribution {
	return group(relays, func(relay *onionoo.RelayDetails) (string, string) {
		return strings.ToUpper(relay.ASNumber.UnwrapOr("")), relay.ASName.UnwrapOr("")
	})
}

type bucket struct {
	label   string
	count   int64
	weights stats.Float64Data
}

// group groups relays using the key and label returned by fx.
func group(relays []onionoo.RelayDetails, fx func(relay *onionoo.RelayDetails) (string, string)) Distribution {
	buckets := make(map[string]*bucket)
	for idx := range relays {
		key, label := fx(&relays[idx])
		if key == "" {
			key = Unknown
		}
		b := buckets[key]
		if b == nil {
			b = &bucket{}
			buckets[key] = b
		}
		if b.label == "" {
			b.label = label
		}
		b.count++
		if weight, found := relays[idx].ConsensusWeightFraction.Get(); found {
			b.weights = append(b.weights, weight)
		}
	}

	out := Distribution{}
	for key, b := range buckets {
		var weight float64
		if b.weights.Len() > 0 {
			weight, _ = b.weights.Sum()
		}
		out = append(out, Row{
			Key:      key,
			Label:    b.label,
			Count:    b.count,
			Fraction: float64(b.count) / float64(len(relays)),
			Weight:   weight,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Location is the position of a relay.
type Location struct {
	Nickname  string  `json:"nickname"`
	Country   string  `json:"country"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Locations returns the position of the relays with coordinates.
func Locations(relays []onionoo.RelayDetails) []Location {
	var out []Location
	for _, relay := range relays {
		lat, latFound := relay.Latitude.Get()
		lon, lonFound := relay.Longitude.Get()
		if !latFound || !lonFound {
			continue
		}
		out = append(out, Location{
			Nickname:  relay.Nickname,
			Country:   relay.CountryName.UnwrapOr("Unknown"),
			City:      relay.CityName.UnwrapOr("Unknown"),
			Latitude:  lat,
			Longitude: lon,
		})
	}
	return out
}
