package onionoo

//
// params.go - query parameters.
//

import (
	"errors"
	"fmt"
	"maps"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Names of the query parameters understood by Onionoo.
const (
	ParamType               = "type"
	ParamRunning            = "running"
	ParamSearch             = "search"
	ParamLookup             = "lookup"
	ParamCountry            = "country"
	ParamAS                 = "as"
	ParamASName             = "as_name"
	ParamFlag               = "flag"
	ParamFirstSeenDays      = "first_seen_days"
	ParamLastSeenDays       = "last_seen_days"
	ParamFirstSeenSince     = "first_seen_since"
	ParamLastSeenSince      = "last_seen_since"
	ParamContact            = "contact"
	ParamFamily             = "family"
	ParamVersion            = "version"
	ParamOS                 = "os"
	ParamHostName           = "host_name"
	ParamRecommendedVersion = "recommended_version"
	ParamFields             = "fields"
	ParamOrder              = "order"
	ParamOffset             = "offset"
	ParamLimit              = "limit"
)

// SelectionParameters returns the names of the parameters selecting relays and bridges.
func SelectionParameters() []string {
	return []string{
		ParamType,
		ParamRunning,
		ParamSearch,
		ParamLookup,
		ParamCountry,
		ParamAS,
		ParamASName,
		ParamFlag,
		ParamFirstSeenDays,
		ParamLastSeenDays,
		ParamFirstSeenSince,
		ParamLastSeenSince,
		ParamContact,
		ParamFamily,
		ParamVersion,
		ParamOS,
		ParamHostName,
		ParamRecommendedVersion,
	}
}

// FieldParameters returns the names of the parameters filtering fields.
func FieldParameters() []string {
	return []string{ParamFields}
}

// PaginationParameters returns the names of the ordering and pagination parameters.
func PaginationParameters() []string {
	return []string{ParamOrder, ParamOffset, ParamLimit}
}

// ParameterNames returns the names of all the parameters in canonical order.
func ParameterNames() []string {
	out := SelectionParameters()
	out = append(out, FieldParameters()...)
	out = append(out, PaginationParameters()...)
	return out
}

// IsParameterName returns whether name is the name of a known parameter.
func IsParameterName(name string) bool {
	_, found := parameterDescriptions[name]
	return found
}

// NodeType is the value of the type parameter.
type NodeType string

const (
	// TypeRelay selects relays only.
	TypeRelay = NodeType("relay")

	// TypeBridge selects bridges only.
	TypeBridge = NodeType("bridge")
)

// String implements fmt.Stringer.
func (t NodeType) String() string {
	return string(t)
}

// ErrInvalidNodeType indicates that a string is neither "relay" nor "bridge".
var ErrInvalidNodeType = errors.New("onionoo: invalid node type")

// ParseNodeType parses a node type in a case-insensitive way.
func ParseNodeType(s string) (NodeType, error) {
	switch v := NodeType(strings.ToLower(s)); v {
	case TypeRelay, TypeBridge:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidNodeType, s)
	}
}

// DaysRange is a range of days ago such as "x-y", "x-", "-y", or "x".
type DaysRange string

// DaysExactly returns the range matching exactly x days ago.
func DaysExactly(x uint) DaysRange {
	return DaysRange(strconv.FormatUint(uint64(x), 10))
}

// DaysBetween returns the range matching at least x and at most y days ago.
func DaysBetween(x, y uint) DaysRange {
	return DaysRange(fmt.Sprintf("%d-%d", x, y))
}

// DaysAtLeast returns the range matching at least x days ago.
func DaysAtLeast(x uint) DaysRange {
	return DaysRange(fmt.Sprintf("%d-", x))
}

// DaysAtMost returns the range matching at most y days ago.
func DaysAtMost(y uint) DaysRange {
	return DaysRange(fmt.Sprintf("-%d", y))
}

// String implements fmt.Stringer.
func (r DaysRange) String() string {
	return string(r)
}

// DateLayout is the layout of the since parameters.
const DateLayout = "2006-01-02"

// Date is a date using the yyyy-MM-dd format.
type Date string

// DateOf returns the UTC date of t.
func DateOf(t time.Time) Date {
	return Date(t.UTC().Format(DateLayout))
}

// String implements fmt.Stringer.
func (d Date) String() string {
	return string(d)
}

// VersionList is a comma separated list of Tor versions or version ranges.
type VersionList string

// Versions returns a list containing the given versions or ranges.
func Versions(versions ...string) VersionList {
	return VersionList(strings.Join(versions, ","))
}

// VersionRange returns the range of versions between from and to, inclusive.
func VersionRange(from, to string) string {
	return from + ".." + to
}

// String implements fmt.Stringer.
func (v VersionList) String() string {
	return string(v)
}

// ASList is a comma separated list of AS numbers.
type ASList string

// ASNumbers returns a list containing the given AS numbers.
func ASNumbers(numbers ...string) ASList {
	return ASList(strings.Join(numbers, ","))
}

// String implements fmt.Stringer.
func (l ASList) String() string {
	return string(l)
}

// FieldsList is a comma separated list of field names.
type FieldsList string

// FieldsOf returns a list containing the given field names.
func FieldsOf(names ...string) FieldsList {
	return FieldsList(strings.Join(names, ","))
}

// String implements fmt.Stringer.
func (l FieldsList) String() string {
	return string(l)
}

// Fields accepted by the order parameter.
const (
	OrderConsensusWeight = "consensus_weight"
	OrderFirstSeen       = "first_seen"
)

// OrderList is a comma separated list of fields, each possibly prefixed
// with a minus sign to select descending order.
type OrderList string

// OrderBy returns an ordering using the given keys.
func OrderBy(keys ...string) OrderList {
	return OrderList(strings.Join(keys, ","))
}

// Descending returns the key that sorts by field in descending order.
func Descending(field string) string {
	return "-" + field
}

// String implements fmt.Stringer.
func (l OrderList) String() string {
	return string(l)
}

// QueryParameters contains the query parameters of an Onionoo request.
//
// The zero value is an empty parameter set ready to use. A [QueryParameters]
// is a value: each setter returns an updated copy and never modifies the
// receiver, so it is safe to share and reuse parameter sets across goroutines.
//
// Values are not validated and not percent-encoded; the server decides
// whether they are acceptable.
type QueryParameters struct {
	values map[string]string
}

// NewQueryParameters returns an empty [QueryParameters].
func NewQueryParameters() QueryParameters {
	return QueryParameters{}
}

// with returns a copy of p where name is set to value.
func (p QueryParameters) with(name, value string) QueryParameters {
	values := maps.Clone(p.values)
	if values == nil {
		values = make(map[string]string)
	}
	values[name] = value
	return QueryParameters{values}
}

// Type returns only relay or only bridge documents.
func (p QueryParameters) Type(value NodeType) QueryParameters {
	return p.with(ParamType, value.String())
}

// Running returns only running or only non-running relays and bridges.
func (p QueryParameters) Running(value bool) QueryParameters {
	return p.with(ParamRunning, strconv.FormatBool(value))
}

// Search returns relays and bridges matching the given search terms.
func (p QueryParameters) Search(value string) QueryParameters {
	return p.with(ParamSearch, value)
}

// Lookup returns the relay or bridge with the given (hashed) fingerprint.
func (p QueryParameters) Lookup(value string) QueryParameters {
	return p.with(ParamLookup, value)
}

// Country returns relays located in the given country.
func (p QueryParameters) Country(value string) QueryParameters {
	return p.with(ParamCountry, value)
}

// AS returns relays located in either one of the given autonomous systems.
func (p QueryParameters) AS(value ASList) QueryParameters {
	return p.with(ParamAS, value.String())
}

// ASName returns relays whose AS name matches the given value.
func (p QueryParameters) ASName(value string) QueryParameters {
	return p.with(ParamASName, value)
}

// Flag returns relays having the given relay flag.
func (p QueryParameters) Flag(value string) QueryParameters {
	return p.with(ParamFlag, value)
}

// FirstSeenDays returns relays and bridges first seen during the given range of days ago.
func (p QueryParameters) FirstSeenDays(value DaysRange) QueryParameters {
	return p.with(ParamFirstSeenDays, value.String())
}

// LastSeenDays returns relays and bridges last seen during the given range of days ago.
func (p QueryParameters) LastSeenDays(value DaysRange) QueryParameters {
	return p.with(ParamLastSeenDays, value.String())
}

// FirstSeenSince returns relays and bridges first seen after the given date.
func (p QueryParameters) FirstSeenSince(value Date) QueryParameters {
	return p.with(ParamFirstSeenSince, value.String())
}

// LastSeenSince returns relays and bridges last seen after the given date.
func (p QueryParameters) LastSeenSince(value Date) QueryParameters {
	return p.with(ParamLastSeenSince, value.String())
}

// Contact returns relays whose contact line matches the given value.
func (p QueryParameters) Contact(value string) QueryParameters {
	return p.with(ParamContact, value)
}

// Family returns the given relay and the relays in its effective family.
func (p QueryParameters) Family(value string) QueryParameters {
	return p.with(ParamFamily, value)
}

// Version returns relays and bridges running the given Tor versions.
func (p QueryParameters) Version(value VersionList) QueryParameters {
	return p.with(ParamVersion, value.String())
}

// OS returns relays and bridges running on an operating system starting with value.
func (p QueryParameters) OS(value string) QueryParameters {
	return p.with(ParamOS, value)
}

// HostName returns relays whose domain name ends with value.
func (p QueryParameters) HostName(value string) QueryParameters {
	return p.with(ParamHostName, value)
}

// RecommendedVersion returns relays and bridges whose Tor version is or is not recommended.
func (p QueryParameters) RecommendedVersion(value bool) QueryParameters {
	return p.with(ParamRecommendedVersion, strconv.FormatBool(value))
}

// Fields restricts details documents to the given fields.
func (p QueryParameters) Fields(value FieldsList) QueryParameters {
	return p.with(ParamFields, value.String())
}

// Order re-orders results by the given fields.
func (p QueryParameters) Order(value OrderList) QueryParameters {
	return p.with(ParamOrder, value.String())
}

// Offset skips the given number of relays and bridges.
func (p QueryParameters) Offset(value uint32) QueryParameters {
	return p.with(ParamOffset, strconv.FormatUint(uint64(value), 10))
}

// Limit limits the result to the given number of relays and bridges.
func (p QueryParameters) Limit(value uint32) QueryParameters {
	return p.with(ParamLimit, strconv.FormatUint(uint64(value), 10))
}

// ErrUnknownParameter indicates that a parameter name is not known.
var ErrUnknownParameter = errors.New("onionoo: unknown parameter")

// ErrInvalidParameterValue indicates that a typed parameter has an invalid value.
var ErrInvalidParameterValue = errors.New("onionoo: invalid parameter value")

// Set returns a copy of p where the parameter with the given wire name has the
// given value. The typed parameters (type, running, recommended_version, offset,
// and limit) are parsed and normalized; all the others are used verbatim.
func (p QueryParameters) Set(name, value string) (QueryParameters, error) {
	switch name {
	case ParamType:
		nodeType, err := ParseNodeType(value)
		if err != nil {
			return p, err
		}
		return p.Type(nodeType), nil

	case ParamRunning, ParamRecommendedVersion:
		flag, err := strconv.ParseBool(strings.ToLower(value))
		if err != nil {
			return p, fmt.Errorf("%w: %s=%q", ErrInvalidParameterValue, name, value)
		}
		return p.with(name, strconv.FormatBool(flag)), nil

	case ParamOffset, ParamLimit:
		number, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return p, fmt.Errorf("%w: %s=%q", ErrInvalidParameterValue, name, value)
		}
		return p.with(name, strconv.FormatUint(number, 10)), nil

	default:
		if !IsParameterName(name) {
			return p, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
		}
		return p.with(name, value), nil
	}
}

// Get returns the string form of the given parameter and whether it is set.
func (p QueryParameters) Get(name string) (string, bool) {
	value, found := p.values[name]
	return value, found
}

// Has returns whether the given parameter is set.
func (p QueryParameters) Has(name string) bool {
	_, found := p.values[name]
	return found
}

// Len returns the number of parameters that are set.
func (p QueryParameters) Len() int {
	return len(p.values)
}

// Encode renders the parameters as a query string.
//
// Each set parameter becomes a "name=value" pair. Pairs are sorted as whole
// strings and joined with "&", and the result is prefixed with "?". An empty
// parameter set encodes to the empty string.
func (p QueryParameters) Encode() string {
	if len(p.values) <= 0 {
		return ""
	}
	pairs := make([]string, 0, len(p.values))
	for name, value := range p.values {
		pairs = append(pairs, name+"="+value)
	}
	sort.Strings(pairs)
	return "?" + strings.Join(pairs, "&")
}

// String implements fmt.Stringer and is equivalent to [QueryParameters.Encode].
func (p QueryParameters) String() string {
	return p.Encode()
}
