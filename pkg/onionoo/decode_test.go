package onionoo

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ooni/onionoo/pkg/optional"
)

// header is the shared metadata used by the documents in this file.
const header = `"version":"8.0","relays_published":"2024-01-31 12:00:00","bridges_published":"2024-01-31 11:51:20"`

const summaryBody = `{` + header + `,
	"build_revision":"6d8ae7e",
	"relays":[{"n":"moria1","f":"9695DFC35FFEB861329B9F1AB04C46397020CE31","a":["128.31.0.34"],"r":true}],
	"bridges":[{"n":"Unnamed","h":"0010D49C6DA1E46A316563099F41BFE40B6C7183","r":false}],
	"bridges_truncated":12
}`

const detailsBody = `{` + header + `,
	"relays":[{
		"nickname":"moria1",
		"fingerprint":"9695DFC35FFEB861329B9F1AB04C46397020CE31",
		"or_addresses":["128.31.0.34:9101"],
		"last_seen":"2024-01-31 12:00:00",
		"first_seen":"2007-01-01 00:00:00",
		"running":true,
		"consensus_weight":20,
		"flags":["Authority","Running","Valid"],
		"as":"AS3",
		"country":"us",
		"guard_probability":0.05,
		"exit_policy_summary":{"reject":["1-65535"]},
		"some_future_field":{"nested":[1,2,3]}
	}],
	"bridges":[{
		"nickname":"Unnamed",
		"hashed_fingerprint":"0010D49C6DA1E46A316563099F41BFE40B6C7183",
		"or_addresses":["10.0.0.1:443"],
		"last_seen":"2024-01-31 11:00:00",
		"first_seen":"2023-05-01 00:00:00",
		"running":false,
		"transports":["obfs4"]
	}]
}`

const bandwidthBody = `{` + header + `,
	"relays":[{
		"fingerprint":"9695DFC35FFEB861329B9F1AB04C46397020CE31",
		"write_history":{
			"1_month":{"first":"2024-01-01 00:00:00","last":"2024-01-31 00:00:00","interval":86400,"factor":1.234,"values":[500,null,600]}
		},
		"overload_ratelimits":{"rate-limit":1048576,"burst-limit":2097152,"timestamp":1706700000000,"read-overload-count":3,"write-overload-count":4}
	}],
	"bridges":[]
}`

const weightsBody = `{` + header + `,
	"relays":[{
		"fingerprint":"9695DFC35FFEB861329B9F1AB04C46397020CE31",
		"guard_probability":{
			"1_month":{"first":"2024-01-01 00:00:00","last":"2024-01-03 00:00:00","interval":86400,"factor":0.001,"count":3,"values":[1,2,3]}
		}
	}],
	"bridges":[{"fingerprint":"ignored"}]
}`

const clientsBody = `{` + header + `,
	"relays":[{"fingerprint":"ignored"}],
	"bridges":[{
		"fingerprint":"0010D49C6DA1E46A316563099F41BFE40B6C7183",
		"average_clients":{
			"6_months":{"first":"2023-08-01 12:00:00","last":"2024-01-28 12:00:00","interval":86400,"factor":0.01,"values":[100,null]}
		}
	}]
}`

const uptimeBody = `{` + header + `,
	"relays":[{
		"fingerprint":"9695DFC35FFEB861329B9F1AB04C46397020CE31",
		"uptime":{
			"5_years":{"first":"2019-01-01 00:00:00","last":"2024-01-01 00:00:00","interval":864000,"factor":0.001001001,"values":[999]}
		},
		"flags":{
			"Running":{"1_month":{"first":"2024-01-01 00:00:00","last":"2024-01-01 04:00:00","interval":14400,"factor":0.001001001,"values":[999,999]}},
			"Guard":{}
		}
	}],
	"bridges":[{"fingerprint":"0010D49C6DA1E46A316563099F41BFE40B6C7183"}]
}`

func TestDecodeSummary(t *testing.T) {
	doc, err := DecodeSummary([]byte(summaryBody))
	if err != nil {
		t.Fatal(err)
	}

	if doc.Version != "8.0" || doc.RelaysPublished != "2024-01-31 12:00:00" {
		t.Fatal("unexpected header", doc.Header)
	}
	if doc.BuildRevision.Unwrap() != "6d8ae7e" {
		t.Fatal("unexpected build revision")
	}
	if doc.BridgesTruncated.Unwrap() != 12 {
		t.Fatal("unexpected bridges_truncated")
	}
	if !doc.RelaysTruncated.IsNone() || !doc.NextMajorVersionScheduled.IsNone() {
		t.Fatal("expected missing optional header fields to be empty")
	}

	expectRelays := []RelaySummary{{
		N: "moria1",
		F: "9695DFC35FFEB861329B9F1AB04C46397020CE31",
		A: []string{"128.31.0.34"},
		R: true,
	}}
	if diff := cmp.Diff(expectRelays, doc.Relays); diff != "" {
		t.Fatal(diff)
	}

	relay := doc.Relays[0]
	if relay.Nickname() != "moria1" || !relay.IsRunning() || relay.Fingerprint() != relay.F {
		t.Fatal("unexpected accessors")
	}
	if diff := cmp.Diff([]string{"128.31.0.34"}, relay.Addresses()); diff != "" {
		t.Fatal(diff)
	}

	bridge := doc.Bridges[0]
	if bridge.Nickname() != "Unnamed" || bridge.IsRunning() || bridge.HashedFingerprint() != bridge.H {
		t.Fatal("unexpected bridge", bridge)
	}
}

func TestDecodeDetails(t *testing.T) {
	doc, err := DecodeDetails([]byte(detailsBody))
	if err != nil {
		t.Fatal(err)
	}
	relay := doc.Relays[0]

	t.Run("present optional fields are decoded", func(t *testing.T) {
		if relay.GuardProbability.Unwrap() != 0.05 {
			t.Fatal("unexpected guard probability")
		}
		if relay.ASNumber.Unwrap() != "AS3" {
			t.Fatal("unexpected AS number")
		}
		summary := relay.ExitPolicySummary.Unwrap()
		if diff := cmp.Diff(optional.Some([]string{"1-65535"}), summary.Reject); diff != "" {
			t.Fatal(diff)
		}
		if !summary.Accept.IsNone() {
			t.Fatal("expected no accept list")
		}
	})

	t.Run("missing optional fields are empty", func(t *testing.T) {
		if !relay.ExitProbability.IsNone() {
			t.Fatal("expected empty exit probability")
		}
		if !relay.LastChangedAddressOrPort.IsNone() || !relay.Contact.IsNone() {
			t.Fatal("expected empty fields")
		}
	})

	t.Run("helpers", func(t *testing.T) {
		if !relay.HasFlag("running") || relay.HasFlag("Exit") {
			t.Fatal("unexpected HasFlag result")
		}
		if relay.Identity() != "moria1 (9695DFC35FFEB861329B9F1AB04C46397020CE31)" {
			t.Fatal("unexpected identity", relay.Identity())
		}
	})

	t.Run("bridges", func(t *testing.T) {
		bridge := doc.Bridges[0]
		if bridge.Running || bridge.HashedFingerprint != "0010D49C6DA1E46A316563099F41BFE40B6C7183" {
			t.Fatal("unexpected bridge")
		}
		if diff := cmp.Diff(optional.Some([]string{"obfs4"}), bridge.Transports); diff != "" {
			t.Fatal(diff)
		}
		if bridge.HasFlag("Running") {
			t.Fatal("unexpected flag")
		}
	})
}

func TestDecodeFieldNamesAreCaseSensitive(t *testing.T) {
	t.Run("keys differing only by case do not overwrite fields", func(t *testing.T) {
		body := `{` + header + `,"Version":"9.9",
			"relays":[{"n":"moria1","f":"9695DFC35FFEB861329B9F1AB04C46397020CE31","a":[],"r":true,"N":"other"}],
			"bridges":[]
		}`
		doc, err := DecodeSummary([]byte(body))
		if err != nil {
			t.Fatal(err)
		}
		if doc.Version != "8.0" {
			t.Fatal("unexpected version", doc.Version)
		}
		if doc.Relays[0].N != "moria1" {
			t.Fatal("unexpected nickname", doc.Relays[0].N)
		}
	})

	t.Run("keys differing only by case are ignored whatever their type", func(t *testing.T) {
		body := `{` + header + `,
			"relays":[{
				"nickname":"moria1",
				"fingerprint":"9695DFC35FFEB861329B9F1AB04C46397020CE31",
				"or_addresses":["128.31.0.34:9101"],
				"last_seen":"2024-01-31 12:00:00",
				"first_seen":"2007-01-01 00:00:00",
				"running":true,
				"consensus_weight":20,
				"as":"AS3",
				"AS":{"future":"object"}
			}],
			"bridges":[]
		}`
		doc, err := DecodeDetails([]byte(body))
		if err != nil {
			t.Fatal(err)
		}
		if got := doc.Relays[0].ASNumber.Unwrap(); got != "AS3" {
			t.Fatal("unexpected AS number", got)
		}
	})

	t.Run("a key differing only by case does not satisfy a mandatory field", func(t *testing.T) {
		body := `{"Version":"8.0","relays_published":"2024-01-31 12:00:00","bridges_published":"2024-01-31 11:51:20","relays":[],"bridges":[]}`
		_, err := DecodeSummary([]byte(body))
		var derr *DeserializationError
		if !errors.As(err, &derr) {
			t.Fatal("unexpected error", err)
		}
	})
}

func TestDecodeBandwidth(t *testing.T) {
	doc, err := DecodeBandwidth([]byte(bandwidthBody))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Bridges) != 0 {
		t.Fatal("expected no bridges")
	}
	relay := doc.Relays[0]

	history := relay.WriteHistory.Unwrap().OneMonth.Unwrap()
	expect := GraphHistory{
		First:    "2024-01-01 00:00:00",
		Last:     "2024-01-31 00:00:00",
		Interval: 86400,
		Factor:   1.234,
		Count:    optional.None[uint64](),
		Values: []optional.Value[float64]{
			optional.Some(500.0),
			optional.None[float64](),
			optional.Some(600.0),
		},
	}
	if diff := cmp.Diff(expect, history); diff != "" {
		t.Fatal(diff)
	}
	if history.Scaled(0).Unwrap() != 500*history.Factor {
		t.Fatal("unexpected scaled value", history.Scaled(0))
	}

	if !relay.ReadHistory.IsNone() || !relay.OverloadFDExhausted.IsNone() {
		t.Fatal("expected empty fields")
	}
	ratelimits := relay.OverloadRatelimits.Unwrap()
	if ratelimits.RateLimit.Unwrap() != 1048576 || ratelimits.WriteOverloadCount.Unwrap() != 4 {
		t.Fatal("unexpected rate limits")
	}
}

func TestDecodeWeights(t *testing.T) {
	doc, err := DecodeWeights([]byte(weightsBody))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Bridges()) != 0 {
		t.Fatal("weights documents cannot contain bridges")
	}
	history := doc.Relays[0].GuardProbability.Unwrap().OneMonth.Unwrap()
	if history.Count.Unwrap() != 3 || history.Len() != 3 {
		t.Fatal("unexpected history")
	}
	if !doc.Relays[0].ExitProbability.IsNone() {
		t.Fatal("expected no exit probability")
	}
}

func TestDecodeClients(t *testing.T) {
	doc, err := DecodeClients([]byte(clientsBody))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Relays()) != 0 {
		t.Fatal("clients documents cannot contain relays")
	}
	group := doc.Bridges[0].AverageClients.Unwrap()
	if !group.OneMonth.IsNone() {
		t.Fatal("expected no 1_month history")
	}
	if got := group.SixMonths.Unwrap().Present(); len(got) != 1 || got[0] != 1 {
		t.Fatal("unexpected values", got)
	}
}

func TestDecodeUptime(t *testing.T) {
	doc, err := DecodeUptime([]byte(uptimeBody))
	if err != nil {
		t.Fatal(err)
	}
	relay := doc.Relays[0]
	if relay.Uptime.Unwrap().FiveYears.Unwrap().Len() != 1 {
		t.Fatal("unexpected uptime")
	}
	running := relay.FlagHistory("Running")
	if running.Unwrap().OneMonth.Unwrap().Len() != 2 {
		t.Fatal("unexpected Running history")
	}
	guard := relay.FlagHistory("Guard")
	if len(guard.Unwrap().Windows()) != 0 {
		t.Fatal("expected no Guard windows")
	}
	if !relay.FlagHistory("Exit").IsNone() {
		t.Fatal("expected no Exit history")
	}
	if !doc.Bridges[0].Uptime.IsNone() {
		t.Fatal("expected no bridge uptime")
	}
}

func TestDecodeErrors(t *testing.T) {
	type testcase struct {
		name   string
		body   string
		expect string
	}

	cases := []testcase{{
		name:   "malformed JSON",
		body:   `{"version":`,
		expect: "unexpected end of JSON input",
	}, {
		name:   "empty body",
		body:   ``,
		expect: "unexpected end of JSON input",
	}, {
		name:   "null body",
		body:   `null`,
		expect: "null",
	}, {
		name:   "not an object",
		body:   `[]`,
		expect: "cannot unmarshal array",
	}, {
		name:   "missing version",
		body:   `{"relays_published":"x","bridges_published":"y","relays":[],"bridges":[]}`,
		expect: "missing field `version`",
	}, {
		name:   "missing relays",
		body:   `{` + header + `,"bridges":[]}`,
		expect: "missing field `relays`",
	}, {
		name:   "null bridges",
		body:   `{` + header + `,"relays":[],"bridges":null}`,
		expect: "invalid type: null for field `bridges`",
	}, {
		name:   "missing mandatory entry field",
		body:   `{` + header + `,"relays":[{"nickname":"x"}],"bridges":[]}`,
		expect: "missing field `fingerprint`",
	}, {
		name:   "wrong type",
		body:   `{` + header + `,"relays":[],"bridges":[],"relays_skipped":"many"}`,
		expect: "cannot unmarshal string",
	}}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := DecodeDetails([]byte(tc.body))
			var derr *DeserializationError
			if !errors.As(err, &derr) {
				t.Fatal("expected a DeserializationError, got", err)
			}
			if doc != nil {
				t.Fatal("expected nil document")
			}
			if !strings.HasPrefix(err.Error(), "JSON deserialization failed: ") {
				t.Fatal("unexpected error message", err.Error())
			}
			if !strings.Contains(derr.Message, tc.expect) {
				t.Fatal("expected", tc.expect, "got", derr.Message)
			}
		})
	}

	t.Run("history with a missing mandatory field", func(t *testing.T) {
		body := `{` + header + `,"relays":[{"fingerprint":"x","uptime":{"1_month":{"first":"a","last":"b","interval":1,"values":[]}}}],"bridges":[]}`
		_, err := DecodeUptime([]byte(body))
		if err == nil || !strings.Contains(err.Error(), "missing field `factor`") {
			t.Fatal("unexpected error", err)
		}
	})
}

func TestDecodeAny(t *testing.T) {
	bodies := map[Endpoint]string{
		Summary:   summaryBody,
		Details:   detailsBody,
		Bandwidth: bandwidthBody,
		Weights:   weightsBody,
		Clients:   clientsBody,
		Uptime:    uptimeBody,
	}

	for endpoint, body := range bodies {
		t.Run(endpoint.Name(), func(t *testing.T) {
			doc, err := DecodeAny(endpoint, []byte(body))
			if err != nil {
				t.Fatal(err)
			}
			var ok bool
			switch endpoint {
			case Summary:
				_, ok = doc.(*SummaryDocument)
			case Details:
				_, ok = doc.(*DetailsDocument)
			case Bandwidth:
				_, ok = doc.(*BandwidthDocument)
			case Weights:
				_, ok = doc.(*WeightsDocument)
			case Clients:
				_, ok = doc.(*ClientsDocument)
			case Uptime:
				_, ok = doc.(*UptimeDocument)
			}
			if !ok {
				t.Fatalf("unexpected type %T", doc)
			}
		})
	}

	t.Run("errors yield a nil interface", func(t *testing.T) {
		doc, err := DecodeAny(Summary, []byte(`null`))
		if err == nil {
			t.Fatal("expected an error")
		}
		if doc != nil {
			t.Fatal("expected nil")
		}
	})

	t.Run("unknown endpoint", func(t *testing.T) {
		_, err := DecodeAny(Endpoint(99), []byte(summaryBody))
		var derr *DeserializationError
		if !errors.As(err, &derr) {
			t.Fatal("unexpected error", err)
		}
	})
}
