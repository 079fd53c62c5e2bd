// Package types defines the Store and Table interfaces, the product and
// customer entities, the metadata and form-state shapes exchanged with the
// remote API, and the standard errors for metaform.
//
// A MetadataEntry is what the remote API returns on read. An OutboundEntry is
// what a submit sends back: its value is plain text or, for delimited-list
// fields, a list of strings. FormState is the flat field-name mapping an
// editing session mutates between load and submit.
package types
