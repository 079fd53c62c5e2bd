package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// FormState maps form field names to their current values. Text fields hold
// strings and toggles hold booleans; a name lives in exactly one of the two.
// An editing session mutates one field at a time and the last write wins.
type FormState struct {
	values map[string]string
	flags  map[string]bool
}

// FieldChange is a single form field edit: Value is a string for text
// inputs and a bool for toggles.
type FieldChange struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// NewFormState returns an empty form state.
func NewFormState() *FormState {
	return &FormState{
		values: make(map[string]string),
		flags:  make(map[string]bool),
	}
}

// Set stores a text value for name.
func (s *FormState) Set(name, value string) {
	s.init()
	delete(s.flags, name)
	s.values[name] = value
}

// SetBool stores a toggle value for name.
func (s *FormState) SetBool(name string, value bool) {
	s.init()
	delete(s.values, name)
	s.flags[name] = value
}

// init allocates the maps of a zero FormState.
func (s *FormState) init() {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	if s.flags == nil {
		s.flags = make(map[string]bool)
	}
}

// Apply stores one field change. Returns ErrInvalidName for an empty name and
// ErrInvalidFieldType when the value is neither a string nor a bool.
func (s *FormState) Apply(change FieldChange) error {
	if change.Name == "" {
		return ErrInvalidName
	}
	switch v := change.Value.(type) {
	case string:
		s.Set(change.Name, v)
	case bool:
		s.SetBool(change.Name, v)
	default:
		return fmt.Errorf("field %q: %w", change.Name, ErrInvalidFieldType)
	}
	return nil
}

// String returns the text value for name, or "" when absent. A nil state
// reads as empty.
func (s *FormState) String(name string) string {
	if s == nil {
		return ""
	}
	return s.values[name]
}

// Bool returns the toggle value for name, or false when absent.
func (s *FormState) Bool(name string) bool {
	if s == nil {
		return false
	}
	return s.flags[name]
}

// Has reports whether name holds a text or toggle value.
func (s *FormState) Has(name string) bool {
	if s == nil {
		return false
	}
	if _, ok := s.values[name]; ok {
		return true
	}
	_, ok := s.flags[name]
	return ok
}

// IsBool reports whether name holds a toggle value.
func (s *FormState) IsBool(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.flags[name]
	return ok
}

// Names returns every field name in sorted order.
func (s *FormState) Names() []string {
	if s == nil {
		return []string{}
	}
	names := make([]string, 0, len(s.values)+len(s.flags))
	for name := range s.values {
		names = append(names, name)
	}
	for name := range s.flags {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of fields held.
func (s *FormState) Len() int {
	if s == nil {
		return 0
	}
	return len(s.values) + len(s.flags)
}

// Clone returns an independent copy.
func (s *FormState) Clone() *FormState {
	if s == nil {
		return NewFormState()
	}
	c := &FormState{
		values: maps.Clone(s.values),
		flags:  maps.Clone(s.flags),
	}
	c.init()
	return c
}

// MarshalJSON encodes the state as a flat JSON object.
func (s *FormState) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, s.Len())
	for name, v := range s.values {
		out[name] = v
	}
	for name, v := range s.flags {
		out[name] = v
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a flat JSON object of strings and booleans and
// merges it into s: names in the object overwrite, other names keep their
// values. On error s is unchanged.
func (s *FormState) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding form state: %w", err)
	}
	state := NewFormState()
	for name, msg := range raw {
		msg = bytes.TrimSpace(msg)
		var str string
		if err := json.Unmarshal(msg, &str); err == nil {
			state.Set(name, str)
			continue
		}
		var flag bool
		if err := json.Unmarshal(msg, &flag); err == nil {
			state.SetBool(name, flag)
			continue
		}
		return fmt.Errorf("field %q: %w", name, ErrInvalidFieldType)
	}
	s.Merge(state)
	return nil
}

// Merge copies every field of other into s, overwriting names both hold.
func (s *FormState) Merge(other *FormState) {
	if other == nil {
		return
	}
	for name, v := range other.values {
		s.Set(name, v)
	}
	for name, v := range other.flags {
		s.SetBool(name, v)
	}
}
