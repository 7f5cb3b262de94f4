// Package render emits Onionoo documents either as JSON or as typed
// log entries rendered by the CLI log handler.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/ooni/onionoo/internal/histstats"
	"github.com/ooni/onionoo/internal/output"
	"github.com/ooni/onionoo/pkg/onionoo"
)

// JSON writes v to w as indented JSON followed by a newline.
func JSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// Header logs the metadata of a document.
func Header(header *onionoo.Header) {
	fields := log.Fields{
		"Version":           header.Version,
		"Relays published":  header.RelaysPublished,
		"Bridges published": header.BridgesPublished,
	}
	if value, found := header.RelaysTruncated.Get(); found {
		fields["Relays truncated"] = value
	}
	if value, found := header.BridgesTruncated.Get(); found {
		fields["Bridges truncated"] = value
	}
	if value, found := header.NextMajorVersionScheduled.Get(); found {
		fields["Next major version"] = value
	}
	output.Table("Document", fields)
}

// Document logs a document returned by [onionoo.DecodeAny] or by [onionoo.Client.Fetch].
//
// The window argument selects the history window to print for documents
// containing histories. An empty window means all windows.
func Document(doc any, window string) error {
	switch v := doc.(type) {
	case *onionoo.SummaryDocument:
		Header(&v.Header)
		Summary(v)
		return nil
	case *onionoo.DetailsDocument:
		Header(&v.Header)
		Details(v)
		return nil
	case *onionoo.BandwidthDocument:
		Header(&v.Header)
	case *onionoo.WeightsDocument:
		Header(&v.Header)
	case *onionoo.ClientsDocument:
		Header(&v.Header)
	case *onionoo.UptimeDocument:
		Header(&v.Header)
	default:
		return fmt.Errorf("render: unsupported document type %T", doc)
	}
	return Histories(doc, window)
}

// Summary logs the entries of a summary document.
func Summary(doc *onionoo.SummaryDocument) {
	output.SectionTitle(fmt.Sprintf("Relays (%d)", len(doc.Relays)))
	for _, relay := range doc.Relays {
		output.RelayItem(output.RelayItemData{
			Nickname:    relay.Nickname(),
			Fingerprint: relay.Fingerprint(),
			Running:     relay.IsRunning(),
			Addresses:   relay.Addresses(),
		})
	}
	output.SectionTitle(fmt.Sprintf("Bridges (%d)", len(doc.Bridges)))
	for _, bridge := range doc.Bridges {
		output.BridgeItem(output.BridgeItemData{
			Nickname:          bridge.Nickname(),
			HashedFingerprint: bridge.HashedFingerprint(),
			Running:           bridge.IsRunning(),
		})
	}
}

// Details logs the entries of a details document.
func Details(doc *onionoo.DetailsDocument) {
	output.SectionTitle(fmt.Sprintf("Relays (%d)", len(doc.Relays)))
	for _, relay := range doc.Relays {
		output.RelayItem(output.RelayItemData{
			Nickname:        relay.Nickname,
			Fingerprint:     relay.Fingerprint,
			Running:         relay.Running,
			Addresses:       relay.ORAddresses,
			Country:         relay.Country.UnwrapOr(""),
			AS:              relay.ASNumber.UnwrapOr(""),
			ConsensusWeight: int64(relay.ConsensusWeight),
			Flags:           relay.Flags.UnwrapOr(nil),
		})
	}
	output.SectionTitle(fmt.Sprintf("Bridges (%d)", len(doc.Bridges)))
	for _, bridge := range doc.Bridges {
		output.BridgeItem(output.BridgeItemData{
			Nickname:          bridge.Nickname,
			HashedFingerprint: bridge.HashedFingerprint,
			Running:           bridge.Running,
			Transports:        bridge.Transports.UnwrapOr(nil),
		})
	}
}

// Histories logs the statistics of every history contained in doc.
func Histories(doc any, window string) error {
	series, err := histstats.Collect(doc)
	if err != nil {
		return err
	}
	output.SectionTitle(fmt.Sprintf("Histories (%d)", len(series)))
	for _, entry := range HistorySummaries(series, window) {
		output.HistoryItem(entry)
	}
	return nil
}

// HistorySummaries summarizes the given series, optionally keeping only
// the given window.
func HistorySummaries(series []histstats.Series, window string) []output.HistoryItemData {
	var out []output.HistoryItemData
	for _, entry := range series {
		for _, summary := range histstats.SummarizeGroup(&entry.Group) {
			if window != "" && summary.Window != window {
				continue
			}
			out = append(out, output.HistoryItemData{
				Kind:        entry.Kind.String(),
				Fingerprint: entry.Fingerprint,
				Metric:      entry.Metric,
				Window:      summary.Window,
				Slots:       summary.Slots,
				Present:     summary.Present,
				Min:         summary.Min,
				Max:         summary.Max,
				Mean:        summary.Mean,
				Median:      summary.Median,
				P95:         summary.P95,
				Last:        summary.Last,
			})
		}
	}
	return out
}
