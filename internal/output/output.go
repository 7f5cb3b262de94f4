// Package output emits typed log entries rendered by the CLI log handler.
package output

import (
	"github.com/apex/log"
)

// SectionTitle logs a section title
func SectionTitle(title string) {
	log.WithFields(log.Fields{
		"type":  "section_title",
		"title": title,
	}).Info(title)
}

// Table logs a boxed list of key-value pairs sorted by key
func Table(msg string, fields log.Fields) {
	tf := log.Fields{"type": "table"}
	for key, value := range fields {
		tf[key] = value
	}
	log.WithFields(tf).Info(msg)
}

// RelayItemData is the metadata about a relay
type RelayItemData struct {
	Nickname        string
	Fingerprint     string
	Running         bool
	Addresses       []string
	Country         string
	AS              string
	ConsensusWeight int64
	Flags           []string
}

// RelayItem logs a relay
func RelayItem(relay RelayItemData) {
	log.WithFields(log.Fields{
		"type":             "relay_item",
		"nickname":         relay.Nickname,
		"fingerprint":      relay.Fingerprint,
		"running":          relay.Running,
		"addresses":        relay.Addresses,
		"country":          relay.Country,
		"as":               relay.AS,
		"consensus_weight": relay.ConsensusWeight,
		"flags":            relay.Flags,
	}).Info("relay item")
}

// BridgeItemData is the metadata about a bridge
type BridgeItemData struct {
	Nickname          string
	HashedFingerprint string
	Running           bool
	Transports        []string
}

// BridgeItem logs a bridge
func BridgeItem(bridge BridgeItemData) {
	log.WithFields(log.Fields{
		"type":               "bridge_item",
		"nickname":           bridge.Nickname,
		"hashed_fingerprint": bridge.HashedFingerprint,
		"running":            bridge.Running,
		"transports":         bridge.Transports,
	}).Info("bridge item")
}

// HistoryItemData contains the statistics of a history window
type HistoryItemData struct {
	Kind        string
	Fingerprint string
	Metric      string
	Window      string
	Slots       int
	Present     int
	Min         float64
	Max         float64
	Mean        float64
	Median      float64
	P95         float64
	Last        float64
}

// HistoryItem logs the statistics of a history window
func HistoryItem(item HistoryItemData) {
	log.WithFields(log.Fields{
		"type":        "history_item",
		"kind":        item.Kind,
		"fingerprint": item.Fingerprint,
		"metric":      item.Metric,
		"window":      item.Window,
		"slots":       item.Slots,
		"present":     item.Present,
		"min":         item.Min,
		"max":         item.Max,
		"mean":        item.Mean,
		"median":      item.Median,
		"p95":         item.P95,
		"last":        item.Last,
	}).Info("history item")
}

// DistributionItemData is a row of a distribution
type DistributionItemData struct {
	Key      string
	Label    string
	Count    int64
	Fraction float64
	Weight   float64
}

// DistributionItem logs a row of a distribution
func DistributionItem(item DistributionItemData) {
	log.WithFields(log.Fields{
		"type":     "distribution_item",
		"key":      item.Key,
		"label":    item.Label,
		"count":    item.Count,
		"fraction": item.Fraction,
		"weight":   item.Weight,
	}).Info("distribution item")
}
