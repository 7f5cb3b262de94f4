// Package onionoo is a typed client for the Onionoo protocol, which serves
// JSON documents describing the relays and bridges of the Tor network.
//
// Build [QueryParameters] with its chainable setters, then use a [*Client]
// to fetch one of the six documents:
//
//	client := onionoo.NewClient()
//	params := onionoo.NewQueryParameters().Type(onionoo.TypeRelay).Running(true).Limit(3)
//	doc, err := client.Summary(ctx, params)
//
// Optional document fields use optional.Value, which is empty when the
// server omits the field or sends null.
//
// The client does not cache, retry, or validate parameter values. Errors are
// one of [*TransportError], [*StatusCodeError], [*DeserializationError], and
// [*URLConstructionError]; use errors.As to distinguish them.
package onionoo
