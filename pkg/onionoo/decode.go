package onionoo

//
// decode.go - response decoding.
//

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/ooni/onionoo/internal/httpclientx"
)

// decodeStrict unmarshals data into out after checking that each of the
// given keys is present and not null.
//
// Field names are case sensitive: keys that only match a field name when
// ignoring case are unknown fields, so we drop them before decoding.
//
// The out argument MUST NOT implement json.Unmarshaler itself, otherwise
// this function would recurse. Callers use a locally-defined plain type.
func decodeStrict(data []byte, out any, keys ...string) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := requireKeys(raw, keys...); err != nil {
		return err
	}
	if dropCaseFoldedKeys(raw, jsonFieldNames(reflect.TypeOf(out))) {
		filtered, err := json.Marshal(raw)
		if err != nil {
			return err
		}
		data = filtered
	}
	return json.Unmarshal(data, out)
}

// dropCaseFoldedKeys removes from raw the keys that are not field names but
// equal one of them under case folding. It returns whether it removed any.
func dropCaseFoldedKeys(raw map[string]json.RawMessage, names map[string]bool) (dropped bool) {
	for key := range raw {
		if names[key] {
			continue
		}
		for name := range names {
			if strings.EqualFold(key, name) {
				delete(raw, key)
				dropped = true
				break
			}
		}
	}
	return
}

// jsonFieldNames returns the JSON names of the fields of the struct pointed
// to by t, including the fields of embedded structs.
func jsonFieldNames(t reflect.Type) map[string]bool {
	out := make(map[string]bool)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return out
	}
	for idx := 0; idx < t.NumField(); idx++ {
		field := t.Field(idx)
		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if field.Anonymous && name == "" {
			for embedded := range jsonFieldNames(field.Type) {
				out[embedded] = true
			}
			continue
		}
		if !field.IsExported() {
			continue
		}
		if name == "" {
			name = field.Name
		}
		out[name] = true
	}
	return out
}

// requireKeys ensures each key exists in raw and is not null.
func requireKeys(raw map[string]json.RawMessage, keys ...string) error {
	for _, key := range keys {
		value, found := raw[key]
		if !found {
			return fmt.Errorf("missing field `%s`", key)
		}
		if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return fmt.Errorf("invalid type: null for field `%s`", key)
		}
	}
	return nil
}

// documentKeys returns the mandatory keys of a document.
func documentKeys(containers ...string) []string {
	out := append([]string{}, headerKeys...)
	return append(out, containers...)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *SummaryDocument) UnmarshalJSON(data []byte) error {
	type plain SummaryDocument
	return decodeStrict(data, (*plain)(d), documentKeys("relays", "bridges")...)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DetailsDocument) UnmarshalJSON(data []byte) error {
	type plain DetailsDocument
	return decodeStrict(data, (*plain)(d), documentKeys("relays", "bridges")...)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *BandwidthDocument) UnmarshalJSON(data []byte) error {
	type plain BandwidthDocument
	return decodeStrict(data, (*plain)(d), documentKeys("relays", "bridges")...)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *WeightsDocument) UnmarshalJSON(data []byte) error {
	type plain WeightsDocument
	return decodeStrict(data, (*plain)(d), documentKeys("relays")...)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *ClientsDocument) UnmarshalJSON(data []byte) error {
	type plain ClientsDocument
	return decodeStrict(data, (*plain)(d), documentKeys("bridges")...)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *UptimeDocument) UnmarshalJSON(data []byte) error {
	type plain UptimeDocument
	return decodeStrict(data, (*plain)(d), documentKeys("relays", "bridges")...)
}

// Document is the set of documents returned by the Onionoo endpoints.
type Document interface {
	SummaryDocument | DetailsDocument | BandwidthDocument |
		WeightsDocument | ClientsDocument | UptimeDocument
}

// Decode parses the body of a successful response into a new document.
//
// Unknown fields are ignored. Missing or null optional fields are empty. A
// missing or null mandatory field, a malformed body, and a literal null
// body all cause a [*DeserializationError].
func Decode[Doc Document](body []byte) (*Doc, error) {
	var doc *Doc
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, newDeserializationError(err)
	}
	if _, err := httpclientx.NilSafetyErrorIfNil(doc); err != nil {
		return nil, newDeserializationError(errors.New("invalid type: null, expected a document"))
	}
	return doc, nil
}

// DecodeSummary decodes a summary document.
func DecodeSummary(body []byte) (*SummaryDocument, error) {
	return Decode[SummaryDocument](body)
}

// DecodeDetails decodes a details document.
func DecodeDetails(body []byte) (*DetailsDocument, error) {
	return Decode[DetailsDocument](body)
}

// DecodeBandwidth decodes a bandwidth document.
func DecodeBandwidth(body []byte) (*BandwidthDocument, error) {
	return Decode[BandwidthDocument](body)
}

// DecodeWeights decodes a weights document.
func DecodeWeights(body []byte) (*WeightsDocument, error) {
	return Decode[WeightsDocument](body)
}

// DecodeClients decodes a clients document.
func DecodeClients(body []byte) (*ClientsDocument, error) {
	return Decode[ClientsDocument](body)
}

// DecodeUptime decodes an uptime document.
func DecodeUptime(body []byte) (*UptimeDocument, error) {
	return Decode[UptimeDocument](body)
}

// DecodeAny decodes the body returned by the given endpoint. The concrete
// type of the result is the pointer to the endpoint document, for example
// [*WeightsDocument] for [Weights].
func DecodeAny(endpoint Endpoint, body []byte) (any, error) {
	switch endpoint {
	case Summary:
		return anyOrNil(DecodeSummary(body))
	case Details:
		return anyOrNil(DecodeDetails(body))
	case Bandwidth:
		return anyOrNil(DecodeBandwidth(body))
	case Weights:
		return anyOrNil(DecodeWeights(body))
	case Clients:
		return anyOrNil(DecodeClients(body))
	case Uptime:
		return anyOrNil(DecodeUptime(body))
	default:
		return nil, newDeserializationError(fmt.Errorf("unknown endpoint: %s", endpoint))
	}
}

// anyOrNil avoids returning a non-nil interface wrapping a nil pointer.
func anyOrNil[T any](doc *T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return doc, nil
}
