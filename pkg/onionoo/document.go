package onionoo

//
// document.go - response documents.
//

import (
	"strings"

	"github.com/ooni/onionoo/pkg/optional"
)

// Header contains the metadata shared by all the documents.
type Header struct {
	// Version is the protocol version.
	Version string `json:"version"`

	// NextMajorVersionScheduled is the OPTIONAL UTC date when the next
	// major protocol version is scheduled to be deployed.
	NextMajorVersionScheduled optional.Value[string] `json:"next_major_version_scheduled"`

	// BuildRevision is the OPTIONAL git revision of the server software.
	BuildRevision optional.Value[string] `json:"build_revision"`

	// RelaysPublished is the UTC time when the last relay network status
	// consensus started being valid.
	RelaysPublished string `json:"relays_published"`

	// RelaysSkipped is the OPTIONAL number of skipped relays.
	RelaysSkipped optional.Value[uint64] `json:"relays_skipped"`

	// RelaysTruncated is the OPTIONAL number of relays left out by limit.
	RelaysTruncated optional.Value[uint64] `json:"relays_truncated"`

	// BridgesPublished is the UTC time when the last bridge network
	// status was published.
	BridgesPublished string `json:"bridges_published"`

	// BridgesSkipped is the OPTIONAL number of skipped bridges.
	BridgesSkipped optional.Value[uint64] `json:"bridges_skipped"`

	// BridgesTruncated is the OPTIONAL number of bridges left out by limit.
	BridgesTruncated optional.Value[uint64] `json:"bridges_truncated"`
}

// headerKeys are the mandatory keys of [Header].
var headerKeys = []string{"version", "relays_published", "bridges_published"}

//
// Summary documents
//

// SummaryDocument is the document returned by the summary endpoint.
type SummaryDocument struct {
	Header
	Relays  []RelaySummary  `json:"relays"`
	Bridges []BridgeSummary `json:"bridges"`
}

// RelaySummary is a short summary of a relay.
type RelaySummary struct {
	// N is the relay nickname.
	N string `json:"n"`

	// F is the relay fingerprint.
	F string `json:"f"`

	// A contains the addresses where the relay accepts onion-routing connections.
	A []string `json:"a"`

	// R says whether the relay was running in the last consensus.
	R bool `json:"r"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *RelaySummary) UnmarshalJSON(data []byte) error {
	type plain RelaySummary
	return decodeStrict(data, (*plain)(e), "n", "f", "a", "r")
}

// Nickname returns the relay nickname.
func (e *RelaySummary) Nickname() string {
	return e.N
}

// Fingerprint returns the relay fingerprint.
func (e *RelaySummary) Fingerprint() string {
	return e.F
}

// Addresses returns the relay addresses.
func (e *RelaySummary) Addresses() []string {
	return e.A
}

// IsRunning returns whether the relay is running.
func (e *RelaySummary) IsRunning() bool {
	return e.R
}

// BridgeSummary is a short summary of a bridge.
type BridgeSummary struct {
	// N is the bridge nickname.
	N string `json:"n"`

	// H is the SHA-1 hash of the bridge fingerprint.
	H string `json:"h"`

	// R says whether the bridge was successfully tested by bridgestrap.
	R bool `json:"r"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *BridgeSummary) UnmarshalJSON(data []byte) error {
	type plain BridgeSummary
	return decodeStrict(data, (*plain)(e), "n", "h", "r")
}

// Nickname returns the bridge nickname.
func (e *BridgeSummary) Nickname() string {
	return e.N
}

// HashedFingerprint returns the hashed bridge fingerprint.
func (e *BridgeSummary) HashedFingerprint() string {
	return e.H
}

// IsRunning returns whether the bridge is running.
func (e *BridgeSummary) IsRunning() bool {
	return e.R
}

//
// Details documents
//

// DetailsDocument is the document returned by the details endpoint.
type DetailsDocument struct {
	Header
	Relays  []RelayDetails  `json:"relays"`
	Bridges []BridgeDetails `json:"bridges"`
}

// ExitPolicySummary summarizes an exit policy as either accepted or rejected ports.
type ExitPolicySummary struct {
	Accept optional.Value[[]string] `json:"accept"`
	Reject optional.Value[[]string] `json:"reject"`
}

// RelayDetails contains detailed information about a relay.
type RelayDetails struct {
	Nickname    string   `json:"nickname"`
	Fingerprint string   `json:"fingerprint"`
	ORAddresses []string `json:"or_addresses"`
	LastSeen    string   `json:"last_seen"`
	FirstSeen   string   `json:"first_seen"`
	Running     bool     `json:"running"`

	// ConsensusWeight is the weight assigned by the directory authorities.
	ConsensusWeight uint64 `json:"consensus_weight"`

	ExitAddresses            optional.Value[[]string]          `json:"exit_addresses"`
	DirAddress               optional.Value[string]            `json:"dir_address"`
	LastChangedAddressOrPort optional.Value[string]            `json:"last_changed_address_or_port"`
	Hibernating              optional.Value[bool]              `json:"hibernating"`
	Flags                    optional.Value[[]string]          `json:"flags"`
	Country                  optional.Value[string]            `json:"country"`
	CountryName              optional.Value[string]            `json:"country_name"`
	RegionName               optional.Value[string]            `json:"region_name"`
	CityName                 optional.Value[string]            `json:"city_name"`
	Latitude                 optional.Value[float64]           `json:"latitude"`
	Longitude                optional.Value[float64]           `json:"longitude"`
	ASNumber                 optional.Value[string]            `json:"as"`
	ASName                   optional.Value[string]            `json:"as_name"`
	VerifiedHostNames        optional.Value[[]string]          `json:"verified_host_names"`
	UnverifiedHostNames      optional.Value[[]string]          `json:"unverified_host_names"`
	LastRestarted            optional.Value[string]            `json:"last_restarted"`
	BandwidthRate            optional.Value[uint64]            `json:"bandwidth_rate"`
	BandwidthBurst           optional.Value[uint64]            `json:"bandwidth_burst"`
	ObservedBandwidth        optional.Value[uint64]            `json:"observed_bandwidth"`
	AdvertisedBandwidth      optional.Value[uint64]            `json:"advertised_bandwidth"`
	OverloadGeneralTimestamp optional.Value[uint64]            `json:"overload_general_timestamp"`
	ExitPolicy               optional.Value[[]string]          `json:"exit_policy"`
	ExitPolicySummary        optional.Value[ExitPolicySummary] `json:"exit_policy_summary"`
	ExitPolicyV6Summary      optional.Value[ExitPolicySummary] `json:"exit_policy_v6_summary"`
	Contact                  optional.Value[string]            `json:"contact"`
	Platform                 optional.Value[string]            `json:"platform"`
	Version                  optional.Value[string]            `json:"version"`
	RecommendedVersion       optional.Value[bool]              `json:"recommended_version"`
	VersionStatus            optional.Value[string]            `json:"version_status"`
	EffectiveFamily          optional.Value[[]string]          `json:"effective_family"`
	AllegedFamily            optional.Value[[]string]          `json:"alleged_family"`
	IndirectFamily           optional.Value[[]string]          `json:"indirect_family"`
	ConsensusWeightFraction  optional.Value[float64]           `json:"consensus_weight_fraction"`
	GuardProbability         optional.Value[float64]           `json:"guard_probability"`
	MiddleProbability        optional.Value[float64]           `json:"middle_probability"`
	ExitProbability          optional.Value[float64]           `json:"exit_probability"`
	Measured                 optional.Value[bool]              `json:"measured"`
	UnreachableORAddresses   optional.Value[[]string]          `json:"unreachable_or_addresses"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *RelayDetails) UnmarshalJSON(data []byte) error {
	type plain RelayDetails
	return decodeStrict(data, (*plain)(e), "nickname", "fingerprint", "or_addresses",
		"last_seen", "first_seen", "running", "consensus_weight")
}

// HasFlag returns whether the relay has the given flag, ignoring case.
func (e *RelayDetails) HasFlag(flag string) bool {
	for _, entry := range e.Flags.UnwrapOr(nil) {
		if strings.EqualFold(entry, flag) {
			return true
		}
	}
	return false
}

// Identity returns "nickname (fingerprint)".
func (e *RelayDetails) Identity() string {
	return e.Nickname + " (" + e.Fingerprint + ")"
}

// BridgeDetails contains detailed information about a bridge.
type BridgeDetails struct {
	Nickname          string   `json:"nickname"`
	HashedFingerprint string   `json:"hashed_fingerprint"`
	ORAddresses       []string `json:"or_addresses"`
	LastSeen          string   `json:"last_seen"`
	FirstSeen         string   `json:"first_seen"`
	Running           bool     `json:"running"`

	Flags                    optional.Value[[]string] `json:"flags"`
	LastRestarted            optional.Value[string]   `json:"last_restarted"`
	AdvertisedBandwidth      optional.Value[uint64]   `json:"advertised_bandwidth"`
	OverloadGeneralTimestamp optional.Value[uint64]   `json:"overload_general_timestamp"`
	Platform                 optional.Value[string]   `json:"platform"`
	Version                  optional.Value[string]   `json:"version"`
	RecommendedVersion       optional.Value[bool]     `json:"recommended_version"`
	VersionStatus            optional.Value[string]   `json:"version_status"`
	Transports               optional.Value[[]string] `json:"transports"`
	Blocklist                optional.Value[[]string] `json:"blocklist"`
	BridgeDBDistributor      optional.Value[string]   `json:"bridgedb_distributor"`
	Contact                  optional.Value[string]   `json:"contact"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *BridgeDetails) UnmarshalJSON(data []byte) error {
	type plain BridgeDetails
	return decodeStrict(data, (*plain)(e), "nickname", "hashed_fingerprint", "or_addresses",
		"last_seen", "first_seen", "running")
}

// HasFlag returns whether the bridge has the given flag, ignoring case.
func (e *BridgeDetails) HasFlag(flag string) bool {
	for _, entry := range e.Flags.UnwrapOr(nil) {
		if strings.EqualFold(entry, flag) {
			return true
		}
	}
	return false
}

//
// Bandwidth documents
//

// BandwidthDocument is the document returned by the bandwidth endpoint.
type BandwidthDocument struct {
	Header
	Relays  []RelayBandwidth  `json:"relays"`
	Bridges []BridgeBandwidth `json:"bridges"`
}

// OverloadRatelimits describes when a node reached its rate limits.
type OverloadRatelimits struct {
	Timestamp          optional.Value[uint64] `json:"timestamp"`
	RateLimit          optional.Value[uint64] `json:"rate-limit"`
	BurstLimit         optional.Value[uint64] `json:"burst-limit"`
	ReadOverloadCount  optional.Value[uint64] `json:"read-overload-count"`
	WriteOverloadCount optional.Value[uint64] `json:"write-overload-count"`
}

// OverloadFDExhausted describes when a node ran out of file descriptors.
type OverloadFDExhausted struct {
	Timestamp optional.Value[uint64] `json:"timestamp"`
}

// RelayBandwidth contains the bandwidth history of a relay.
type RelayBandwidth struct {
	Fingerprint         string                              `json:"fingerprint"`
	WriteHistory        optional.Value[HistoryGroup]        `json:"write_history"`
	ReadHistory         optional.Value[HistoryGroup]        `json:"read_history"`
	OverloadRatelimits  optional.Value[OverloadRatelimits]  `json:"overload_ratelimits"`
	OverloadFDExhausted optional.Value[OverloadFDExhausted] `json:"overload_fd_exhausted"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *RelayBandwidth) UnmarshalJSON(data []byte) error {
	type plain RelayBandwidth
	return decodeStrict(data, (*plain)(e), "fingerprint")
}

// BridgeBandwidth contains the bandwidth history of a bridge. The
// fingerprint is the SHA-1 hash of the bridge fingerprint.
type BridgeBandwidth struct {
	Fingerprint         string                              `json:"fingerprint"`
	WriteHistory        optional.Value[HistoryGroup]        `json:"write_history"`
	ReadHistory         optional.Value[HistoryGroup]        `json:"read_history"`
	OverloadRatelimits  optional.Value[OverloadRatelimits]  `json:"overload_ratelimits"`
	OverloadFDExhausted optional.Value[OverloadFDExhausted] `json:"overload_fd_exhausted"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *BridgeBandwidth) UnmarshalJSON(data []byte) error {
	type plain BridgeBandwidth
	return decodeStrict(data, (*plain)(e), "fingerprint")
}

//
// Weights documents
//

// WeightsDocument is the document returned by the weights endpoint. Weights
// are only available for relays, so this document has no bridges.
type WeightsDocument struct {
	Header
	Relays []RelayWeights `json:"relays"`
}

// Bridges returns an empty slice since weights documents never contain bridges.
func (d *WeightsDocument) Bridges() []struct{} {
	return []struct{}{}
}

// RelayWeights contains the path selection history of a relay.
type RelayWeights struct {
	Fingerprint             string                       `json:"fingerprint"`
	ConsensusWeightFraction optional.Value[HistoryGroup] `json:"consensus_weight_fraction"`
	GuardProbability        optional.Value[HistoryGroup] `json:"guard_probability"`
	MiddleProbability       optional.Value[HistoryGroup] `json:"middle_probability"`
	ExitProbability         optional.Value[HistoryGroup] `json:"exit_probability"`
	ConsensusWeight         optional.Value[HistoryGroup] `json:"consensus_weight"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *RelayWeights) UnmarshalJSON(data []byte) error {
	type plain RelayWeights
	return decodeStrict(data, (*plain)(e), "fingerprint")
}

//
// Clients documents
//

// ClientsDocument is the document returned by the clients endpoint. Client
// estimates are only available for bridges, so this document has no relays.
type ClientsDocument struct {
	Header
	Bridges []BridgeClients `json:"bridges"`
}

// Relays returns an empty slice since clients documents never contain relays.
func (d *ClientsDocument) Relays() []struct{} {
	return []struct{}{}
}

// BridgeClients contains the estimated number of clients of a bridge.
type BridgeClients struct {
	Fingerprint    string                       `json:"fingerprint"`
	AverageClients optional.Value[HistoryGroup] `json:"average_clients"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *BridgeClients) UnmarshalJSON(data []byte) error {
	type plain BridgeClients
	return decodeStrict(data, (*plain)(e), "fingerprint")
}

//
// Uptime documents
//

// UptimeDocument is the document returned by the uptime endpoint.
type UptimeDocument struct {
	Header
	Relays  []RelayUptime  `json:"relays"`
	Bridges []BridgeUptime `json:"bridges"`
}

// RelayUptime contains the uptime history of a relay.
type RelayUptime struct {
	Fingerprint string                       `json:"fingerprint"`
	Uptime      optional.Value[HistoryGroup] `json:"uptime"`

	// Flags maps each relay flag name to the history of the fraction of
	// time the relay had that flag. The set of flags is open-ended.
	Flags optional.Value[map[string]HistoryGroup] `json:"flags"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *RelayUptime) UnmarshalJSON(data []byte) error {
	type plain RelayUptime
	return decodeStrict(data, (*plain)(e), "fingerprint")
}

// FlagHistory returns the history of the given flag.
func (e *RelayUptime) FlagHistory(flag string) optional.Value[HistoryGroup] {
	flags, found := e.Flags.Get()
	if !found {
		return optional.None[HistoryGroup]()
	}
	group, found := flags[flag]
	if !found {
		return optional.None[HistoryGroup]()
	}
	return optional.Some(group)
}

// BridgeUptime contains the uptime history of a bridge.
type BridgeUptime struct {
	Fingerprint string                       `json:"fingerprint"`
	Uptime      optional.Value[HistoryGroup] `json:"uptime"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *BridgeUptime) UnmarshalJSON(data []byte) error {
	type plain BridgeUptime
	return decodeStrict(data, (*plain)(e), "fingerprint")
}
