package onionoo

//
// history.go - graph history objects.
//

import (
	"fmt"
	"time"

	"github.com/ooni/onionoo/pkg/optional"
)

// TimestampLayout is the layout of the UTC timestamps used by Onionoo.
const TimestampLayout = "2006-01-02 15:04:05"

// GraphHistory is a time series of normalized values.
//
// Each value is either empty, meaning that there is no data for the
// corresponding slot, or a number between 0 and 999. To obtain the real
// value, multiply the normalized value by Factor.
type GraphHistory struct {
	// First is the UTC timestamp of the first data point.
	First string `json:"first"`

	// Last is the UTC timestamp of the last data point.
	Last string `json:"last"`

	// Interval is the time between two data points in seconds.
	Interval uint64 `json:"interval"`

	// Factor is the factor by which values need to be multiplied.
	Factor float64 `json:"factor"`

	// Count is the declared number of data points.
	Count optional.Value[uint64] `json:"count"`

	// Values contains the normalized data points.
	Values []optional.Value[float64] `json:"values"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (gh *GraphHistory) UnmarshalJSON(data []byte) error {
	type plain GraphHistory
	return decodeStrict(data, (*plain)(gh), "first", "last", "interval", "factor", "values")
}

// Len returns the number of data points.
func (gh GraphHistory) Len() int {
	return len(gh.Values)
}

// Scaled returns the real value of the i-th data point, that is the normalized
// value multiplied by Factor. The result is empty when there is no data for
// the given slot or when i is out of range.
func (gh GraphHistory) Scaled(i int) optional.Value[float64] {
	if i < 0 || i >= len(gh.Values) {
		return optional.None[float64]()
	}
	value, found := gh.Values[i].Get()
	if !found {
		return optional.None[float64]()
	}
	return optional.Some(value * gh.Factor)
}

// ScaledValues returns all the real values in order.
func (gh GraphHistory) ScaledValues() []optional.Value[float64] {
	out := make([]optional.Value[float64], 0, len(gh.Values))
	for idx := range gh.Values {
		out = append(out, gh.Scaled(idx))
	}
	return out
}

// Present returns the real values of the slots containing data.
func (gh GraphHistory) Present() []float64 {
	var out []float64
	for idx := range gh.Values {
		if value, found := gh.Scaled(idx).Get(); found {
			out = append(out, value)
		}
	}
	return out
}

// FirstTime parses First.
func (gh GraphHistory) FirstTime() (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, gh.First, time.UTC)
}

// LastTime parses Last.
func (gh GraphHistory) LastTime() (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, gh.Last, time.UTC)
}

// Point is a data point of a [GraphHistory].
type Point struct {
	// Time is the time of the data point.
	Time time.Time

	// Value is the real value, empty if there is no data.
	Value optional.Value[float64]
}

// Points returns the data points with their timestamps, computed from
// First and Interval. It fails if First is not a valid timestamp.
func (gh GraphHistory) Points() ([]Point, error) {
	first, err := gh.FirstTime()
	if err != nil {
		return nil, fmt.Errorf("onionoo: invalid first timestamp: %w", err)
	}
	interval := time.Duration(gh.Interval) * time.Second
	out := make([]Point, 0, len(gh.Values))
	for idx := range gh.Values {
		out = append(out, Point{
			Time:  first.Add(time.Duration(idx) * interval),
			Value: gh.Scaled(idx),
		})
	}
	return out, nil
}

// Names of the history windows.
const (
	WindowOneMonth  = "1_month"
	WindowSixMonths = "6_months"
	WindowOneYear   = "1_year"
	WindowFiveYears = "5_years"
)

// HistoryGroup groups the graph histories of a metric by time window.
type HistoryGroup struct {
	// OneMonth is the OPTIONAL history of the last month.
	OneMonth optional.Value[GraphHistory] `json:"1_month"`

	// SixMonths is the OPTIONAL history of the last six months.
	SixMonths optional.Value[GraphHistory] `json:"6_months"`

	// OneYear is the OPTIONAL history of the last year.
	OneYear optional.Value[GraphHistory] `json:"1_year"`

	// FiveYears is the OPTIONAL history of the last five years.
	FiveYears optional.Value[GraphHistory] `json:"5_years"`
}

// Window is a present history window.
type Window struct {
	// Name is the wire name of the window (e.g., "1_month").
	Name string

	// History is the corresponding history.
	History GraphHistory
}

// Windows returns the present windows, from the shortest to the longest.
func (hg HistoryGroup) Windows() []Window {
	candidates := []struct {
		name  string
		value optional.Value[GraphHistory]
	}{
		{WindowOneMonth, hg.OneMonth},
		{WindowSixMonths, hg.SixMonths},
		{WindowOneYear, hg.OneYear},
		{WindowFiveYears, hg.FiveYears},
	}
	var out []Window
	for _, entry := range candidates {
		if history, found := entry.value.Get(); found {
			out = append(out, Window{Name: entry.name, History: history})
		}
	}
	return out
}

// Window returns the window with the given wire name.
func (hg HistoryGroup) Window(name string) optional.Value[GraphHistory] {
	switch name {
	case WindowOneMonth:
		return hg.OneMonth
	case WindowSixMonths:
		return hg.SixMonths
	case WindowOneYear:
		return hg.OneYear
	case WindowFiveYears:
		return hg.FiveYears
	default:
		return optional.None[GraphHistory]()
	}
}

// Shortest returns the shortest present window.
func (hg HistoryGroup) Shortest() optional.Value[Window] {
	windows := hg.Windows()
	if len(windows) <= 0 {
		return optional.None[Window]()
	}
	return optional.Some(windows[0])
}

// Longest returns the longest present window.
func (hg HistoryGroup) Longest() optional.Value[Window] {
	windows := hg.Windows()
	if len(windows) <= 0 {
		return optional.None[Window]()
	}
	return optional.Some(windows[len(windows)-1])
}
