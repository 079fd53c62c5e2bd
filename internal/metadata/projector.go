package metadata

import (
	"slices"

	"github.com/mesh-intelligence/metaform/pkg/types"
)

// Option configures Project.
type Option func(*options)

type options struct {
	decodeList func(string) string
}

// WithListDecoding selects the delimited-list decoder by mode name
// (types.ListDecodingNormalized or types.ListDecodingLegacy). Unknown modes
// keep the normalized decoder.
func WithListDecoding(mode string) Option {
	return func(o *options) {
		if mode == types.ListDecodingLegacy {
			o.decodeList = DecodeDelimitedListLegacy
			return
		}
		o.decodeList = DecodeDelimitedList
	}
}

// Project reads every registered field out of metadata and returns a new
// form state holding one value per field. The first entry carrying a
// field's key wins; a missing or malformed value yields the field default.
// metadata may be nil and is never modified.
func Project(metadata []types.MetadataEntry, reg *Registry, opts ...Option) *types.FormState {
	o := options{decodeList: DecodeDelimitedList}
	for _, opt := range opts {
		opt(&o)
	}

	state := types.NewFormState()
	for _, f := range reg.fields {
		raw, found := firstValue(metadata, f.Key)
		switch f.Encoding {
		case types.EncodingBoolean:
			def := BoolOrDefault(f.Default, false)
			if !found {
				state.SetBool(f.Name, def)
				continue
			}
			state.SetBool(f.Name, BoolOrDefault(raw, def))
		case types.EncodingDelimitedList:
			if !found {
				state.Set(f.Name, f.Default)
				continue
			}
			state.Set(f.Name, o.decodeList(raw))
		case types.EncodingEnum:
			if !found || !slices.Contains(f.Choices, raw) {
				state.Set(f.Name, f.Default)
				continue
			}
			state.Set(f.Name, raw)
		default:
			if !found {
				state.Set(f.Name, f.Default)
				continue
			}
			state.Set(f.Name, raw)
		}
	}
	return state
}

// firstValue returns the value of the first entry whose key matches.
func firstValue(metadata []types.MetadataEntry, key string) (string, bool) {
	for _, e := range metadata {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}
