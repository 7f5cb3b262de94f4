package render

import (
	"bytes"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
	"github.com/google/go-cmp/cmp"
	"github.com/ooni/onionoo/internal/histstats"
	"github.com/ooni/onionoo/pkg/onionoo"
	"github.com/ooni/onionoo/pkg/optional"
)

// capture replaces the global logger with one recording the entries.
func capture(t *testing.T) *memory.Handler {
	handler := memory.New()
	saved := log.Log
	log.Log = &log.Logger{Level: log.InfoLevel, Handler: handler}
	t.Cleanup(func() { log.Log = saved })
	return handler
}

// types returns the "type" field of each entry.
func types(handler *memory.Handler) []string {
	var out []string
	for _, entry := range handler.Entries {
		out = append(out, entry.Fields.Get("type").(string))
	}
	return out
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	doc := &onionoo.SummaryDocument{
		Header: onionoo.Header{Version: "8.0"},
		Relays: []onionoo.RelaySummary{{N: "moria1", F: "AA", A: []string{"1.2.3.4:9001"}, R: true}},
	}
	if err := JSON(&buf, doc); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"n": "moria1"`)) {
		t.Fatal("unexpected JSON", buf.String())
	}
	if !bytes.HasSuffix(buf.Bytes(), []byte("}\n")) {
		t.Fatal("expected a trailing newline")
	}
}

func TestDocument(t *testing.T) {
	t.Run("summary", func(t *testing.T) {
		handler := capture(t)
		doc := &onionoo.SummaryDocument{
			Relays:  []onionoo.RelaySummary{{N: "a"}, {N: "b"}},
			Bridges: []onionoo.BridgeSummary{{N: "c"}},
		}
		if err := Document(doc, ""); err != nil {
			t.Fatal(err)
		}
		expect := []string{"table", "section_title", "relay_item", "relay_item", "section_title", "bridge_item"}
		if diff := cmp.Diff(expect, types(handler)); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("details", func(t *testing.T) {
		handler := capture(t)
		doc := &onionoo.DetailsDocument{
			Relays: []onionoo.RelayDetails{{
				Nickname:        "a",
				ConsensusWeight: 10,
				Country:         optional.Some("de"),
				Flags:           optional.Some([]string{"Guard"}),
			}},
		}
		if err := Document(doc, ""); err != nil {
			t.Fatal(err)
		}
		entry := handler.Entries[2]
		if entry.Fields.Get("country") != "de" || entry.Fields.Get("consensus_weight") != int64(10) {
			t.Fatal("unexpected entry", entry.Fields)
		}
	})

	t.Run("histories", func(t *testing.T) {
		handler := capture(t)
		history := onionoo.GraphHistory{Factor: 1, Values: []optional.Value[float64]{optional.Some(4.0)}}
		doc := &onionoo.ClientsDocument{
			Bridges: []onionoo.BridgeClients{{
				Fingerprint: "BB",
				AverageClients: optional.Some(onionoo.HistoryGroup{
					OneMonth: optional.Some(history),
					OneYear:  optional.Some(history),
				}),
			}},
		}
		if err := Document(doc, onionoo.WindowOneYear); err != nil {
			t.Fatal(err)
		}
		expect := []string{"table", "section_title", "history_item"}
		if diff := cmp.Diff(expect, types(handler)); diff != "" {
			t.Fatal(diff)
		}
		if handler.Entries[2].Fields.Get("window") != onionoo.WindowOneYear {
			t.Fatal("unexpected window")
		}
	})

	t.Run("unsupported", func(t *testing.T) {
		capture(t)
		if err := Document("antani", ""); err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestHistorySummaries(t *testing.T) {
	history := onionoo.GraphHistory{
		Factor: 2,
		Values: []optional.Value[float64]{optional.Some(1.0), optional.None[float64](), optional.Some(3.0)},
	}
	series := []histstats.Series{{
		Kind:        onionoo.TypeRelay,
		Fingerprint: "AA",
		Metric:      "uptime",
		Group:       onionoo.HistoryGroup{OneMonth: optional.Some(history)},
	}}
	items := HistorySummaries(series, "")
	if len(items) != 1 {
		t.Fatal("unexpected items", items)
	}
	item := items[0]
	if item.Kind != "relay" || item.Slots != 3 || item.Present != 2 || item.Max != 6 || item.Last != 6 {
		t.Fatal("unexpected item", item)
	}
}
