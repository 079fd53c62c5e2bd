package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// MetadataEntry is one key/value pair attached to a remote entity, in the
// shape the API returns on read. Keys are not guaranteed unique; readers
// take the first match.
type MetadataEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// OutboundValue is the value of a metadata entry on write. The API accepts
// either plain text or a list of strings, although it always returns a flat
// string on read.
type OutboundValue struct {
	text   string
	list   []string
	isList bool
}

// TextValue returns a plain text outbound value.
func TextValue(s string) OutboundValue {
	return OutboundValue{text: s}
}

// ListValue returns a list outbound value. A nil slice is stored as empty.
func ListValue(items []string) OutboundValue {
	cp := make([]string, len(items))
	copy(cp, items)
	return OutboundValue{list: cp, isList: true}
}

// IsList reports whether the value is a list.
func (v OutboundValue) IsList() bool { return v.isList }

// Text returns the plain text value. It is empty for list values.
func (v OutboundValue) Text() string { return v.text }

// List returns a copy of the list items. It is nil for text values.
func (v OutboundValue) List() []string {
	if !v.isList {
		return nil
	}
	cp := make([]string, len(v.list))
	copy(cp, v.list)
	return cp
}

// MarshalJSON encodes the value as a JSON string or a JSON array of strings.
func (v OutboundValue) MarshalJSON() ([]byte, error) {
	if v.isList {
		return json.Marshal(v.list)
	}
	return json.Marshal(v.text)
}

// UnmarshalJSON accepts a JSON string or a JSON array of strings.
func (v *OutboundValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("decoding list value: %w", err)
		}
		*v = ListValue(items)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding text value: %w", err)
	}
	*v = TextValue(s)
	return nil
}

// OutboundEntry is one metadata entry in a submit payload.
type OutboundEntry struct {
	Key   string        `json:"key"`
	Value OutboundValue `json:"value"`
}

// MetadataRecord is a stored metadata entry. Position preserves the order of
// the entity's metadata list so first-match lookups stay stable across loads.
type MetadataRecord struct {
	MetadataID  string    `json:"metadata_id"`
	EntityTable string    `json:"entity_table"`
	EntityID    string    `json:"entity_id"`
	Position    int       `json:"position"`
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	CreatedAt   time.Time `json:"created_at"`
}

// Entry returns the record as a read-shape metadata entry.
func (r *MetadataRecord) Entry() MetadataEntry {
	return MetadataEntry{Key: r.Key, Value: r.Value}
}
