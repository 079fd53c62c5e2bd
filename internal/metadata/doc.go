// Package metadata projects an entity's key/value metadata list into typed
// form fields and composes the form fields back into a metadata list on
// submit.
//
// Both directions consult the same immutable Registry. Projection is a
// tolerant reader: a missing key, an empty list or a malformed value falls
// back to the field default and never returns an error. Composition emits
// exactly one entry per registered field. Keys that are not registered are
// read past and dropped from the outbound list; Inspect reports them so the
// loss can be surfaced before a submit.
package metadata
