// Package histstats computes descriptive statistics of Onionoo graph histories.
package histstats

import (
	"errors"
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/ooni/onionoo/pkg/onionoo"
	"github.com/ooni/onionoo/pkg/optional"
)

// ErrNoData indicates that a history contains no data points.
var ErrNoData = errors.New("histstats: no data points")

// Summary contains the statistics of a single [onionoo.GraphHistory].
type Summary struct {
	// Window is the name of the history window (e.g., "1_month").
	Window string

	// Slots is the total number of slots, including the empty ones.
	Slots int

	// Present is the number of slots containing data.
	Present int

	// Min is the smallest real value.
	Min float64

	// Max is the largest real value.
	Max float64

	// Mean is the mean of the real values.
	Mean float64

	// Median is the median of the real values.
	Median float64

	// P95 is the 95th percentile of the real values.
	P95 float64

	// StdDev is the population standard deviation of the real values.
	StdDev float64

	// Last is the most recent real value.
	Last float64
}

// Coverage returns the fraction of slots containing data.
func (s *Summary) Coverage() float64 {
	if s.Slots <= 0 {
		return 0
	}
	return float64(s.Present) / float64(s.Slots)
}

// Summarize computes the statistics of the real values of the given history.
//
// This function returns [ErrNoData] when no slot contains data.
func Summarize(window string, history *onionoo.GraphHistory) (*Summary, error) {
	data := stats.Float64Data(history.Present())
	if data.Len() <= 0 {
		return nil, ErrNoData
	}
	out := &Summary{
		Window:  window,
		Slots:   history.Len(),
		Present: data.Len(),
		Last:    data.Get(data.Len() - 1),
	}
	var err error
	if out.Min, err = data.Min(); err != nil {
		return nil, err
	}
	if out.Max, err = data.Max(); err != nil {
		return nil, err
	}
	if out.Mean, err = data.Mean(); err != nil {
		return nil, err
	}
	if out.Median, err = data.Median(); err != nil {
		return nil, err
	}
	if out.P95, err = stats.PercentileNearestRank(data, 95); err != nil {
		return nil, err
	}
	if out.StdDev, err = data.StandardDeviationPopulation(); err != nil {
		return nil, err
	}
	return out, nil
}

// SummarizeGroup summarizes every window of a group containing data, from the
// shortest to the longest window.
func SummarizeGroup(group *onionoo.HistoryGroup) []*Summary {
	var out []*Summary
	for _, window := range group.Windows() {
		summary, err := Summarize(window.Name, &window.History)
		if err != nil {
			continue
		}
		out = append(out, summary)
	}
	return out
}

// Series is a named history of a relay or a bridge.
type Series struct {
	// Kind is either "relay" or "bridge".
	Kind onionoo.NodeType

	// Fingerprint is the (hashed, for bridges) fingerprint.
	Fingerprint string

	// Metric is the wire name of the metric (e.g., "write_history").
	Metric string

	// Group contains the histories of the metric.
	Group onionoo.HistoryGroup
}

// ErrNoHistories indicates that a document type does not contain histories.
var ErrNoHistories = errors.New("histstats: document does not contain histories")

// Collect extracts all the present histories from a bandwidth, weights,
// clients, or uptime document, such as the ones returned by [onionoo.DecodeAny].
func Collect(doc any) ([]Series, error) {
	c := &collector{}
	switch v := doc.(type) {
	case *onionoo.BandwidthDocument:
		for _, e := range v.Relays {
			c.add(onionoo.TypeRelay, e.Fingerprint, "write_history", e.WriteHistory)
			c.add(onionoo.TypeRelay, e.Fingerprint, "read_history", e.ReadHistory)
		}
		for _, e := range v.Bridges {
			c.add(onionoo.TypeBridge, e.Fingerprint, "write_history", e.WriteHistory)
			c.add(onionoo.TypeBridge, e.Fingerprint, "read_history", e.ReadHistory)
		}
	case *onionoo.WeightsDocument:
		for _, e := range v.Relays {
			c.add(onionoo.TypeRelay, e.Fingerprint, "consensus_weight_fraction", e.ConsensusWeightFraction)
			c.add(onionoo.TypeRelay, e.Fingerprint, "guard_probability", e.GuardProbability)
			c.add(onionoo.TypeRelay, e.Fingerprint, "middle_probability", e.MiddleProbability)
			c.add(onionoo.TypeRelay, e.Fingerprint, "exit_probability", e.ExitProbability)
			c.add(onionoo.TypeRelay, e.Fingerprint, "consensus_weight", e.ConsensusWeight)
		}
	case *onionoo.ClientsDocument:
		for _, e := range v.Bridges {
			c.add(onionoo.TypeBridge, e.Fingerprint, "average_clients", e.AverageClients)
		}
	case *onionoo.UptimeDocument:
		for _, e := range v.Relays {
			c.add(onionoo.TypeRelay, e.Fingerprint, "uptime", e.Uptime)
			flags := e.Flags.UnwrapOr(nil)
			names := make([]string, 0, len(flags))
			for name := range flags {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				c.series = append(c.series, Series{
					Kind:        onionoo.TypeRelay,
					Fingerprint: e.Fingerprint,
					Metric:      "flags/" + name,
					Group:       flags[name],
				})
			}
		}
		for _, e := range v.Bridges {
			c.add(onionoo.TypeBridge, e.Fingerprint, "uptime", e.Uptime)
		}
	default:
		return nil, fmt.Errorf("%w: %T", ErrNoHistories, doc)
	}
	return c.series, nil
}

// collector accumulates [Series].
type collector struct {
	series []Series
}

// add appends a series if the group is present.
func (c *collector) add(kind onionoo.NodeType, fingerprint, metric string, group optional.Value[onionoo.HistoryGroup]) {
	if value, found := group.Get(); found {
		c.series = append(c.series, Series{
			Kind:        kind,
			Fingerprint: fingerprint,
			Metric:      metric,
			Group:       value,
		})
	}
}
