package metadata

import (
	"fmt"
	"slices"

	"github.com/mesh-intelligence/metaform/pkg/types"
)

// Registry is an ordered, immutable set of metadata-backed fields. The same
// Registry drives both Project and Compose so the read and write paths cannot
// drift apart.
type Registry struct {
	fields []types.Field
	byName map[string]int
}

// NewRegistry validates the fields and returns a Registry in the given
// order. Field names and metadata keys must be unique.
func NewRegistry(fields ...types.Field) (*Registry, error) {
	r := &Registry{
		fields: make([]types.Field, 0, len(fields)),
		byName: make(map[string]int, len(fields)),
	}
	keys := make(map[string]bool, len(fields))
	for _, f := range fields {
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		if _, dup := r.byName[f.Name]; dup {
			return nil, fmt.Errorf("field %q: %w", f.Name, types.ErrDuplicateField)
		}
		if keys[f.Key] {
			return nil, fmt.Errorf("field %q key %q: %w", f.Name, f.Key, types.ErrDuplicateKey)
		}
		keys[f.Key] = true
		f.Choices = slices.Clone(f.Choices)
		r.byName[f.Name] = len(r.fields)
		r.fields = append(r.fields, f)
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on an invalid definition. It
// is meant for registries declared in code.
func MustRegistry(fields ...types.Field) *Registry {
	r, err := NewRegistry(fields...)
	if err != nil {
		panic(err)
	}
	return r
}

// Len returns the number of fields.
func (r *Registry) Len() int {
	return len(r.fields)
}

// Fields returns a copy of the field definitions in registry order.
func (r *Registry) Fields() []types.Field {
	out := make([]types.Field, len(r.fields))
	for i, f := range r.fields {
		f.Choices = slices.Clone(f.Choices)
		out[i] = f
	}
	return out
}

// Lookup returns the field registered under name.
func (r *Registry) Lookup(name string) (types.Field, bool) {
	i, ok := r.byName[name]
	if !ok {
		return types.Field{}, false
	}
	f := r.fields[i]
	f.Choices = slices.Clone(f.Choices)
	return f, true
}

// Names returns the field names in registry order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.fields))
	for i, f := range r.fields {
		names[i] = f.Name
	}
	return names
}

// Keys returns the metadata keys in registry order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.fields))
	for i, f := range r.fields {
		keys[i] = f.Key
	}
	return keys
}

// hasKey reports whether key is registered.
func (r *Registry) hasKey(key string) bool {
	for _, f := range r.fields {
		if f.Key == key {
			return true
		}
	}
	return false
}
