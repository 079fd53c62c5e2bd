package metadata

import (
	"slices"

	"github.com/mesh-intelligence/metaform/pkg/types"
)

// Report describes how a metadata list lines up with a registry. Project
// never fails, so the report is the only place these conditions show up.
type Report struct {
	// Missing lists fields with no entry; they project to their default.
	Missing []string `json:"missing,omitempty"`
	// Malformed lists fields whose stored value could not be decoded.
	Malformed []string `json:"malformed,omitempty"`
	// Shadowed lists registered keys carried by more than one entry; only
	// the first is read.
	Shadowed []string `json:"shadowed,omitempty"`
	// Unregistered lists keys outside the registry. They are not part of
	// the composed list, so a submit drops them.
	Unregistered []string `json:"unregistered,omitempty"`
}

// Clean reports whether nothing was found.
func (r Report) Clean() bool {
	return len(r.Missing) == 0 && len(r.Malformed) == 0 &&
		len(r.Shadowed) == 0 && len(r.Unregistered) == 0
}

// Inspect compares metadata against reg.
func Inspect(metadata []types.MetadataEntry, reg *Registry) Report {
	var r Report
	counts := make(map[string]int, len(metadata))
	for _, e := range metadata {
		counts[e.Key]++
		if counts[e.Key] == 1 && !reg.hasKey(e.Key) {
			r.Unregistered = append(r.Unregistered, e.Key)
		}
	}
	for _, f := range reg.fields {
		raw, found := firstValue(metadata, f.Key)
		if !found {
			r.Missing = append(r.Missing, f.Name)
			continue
		}
		if counts[f.Key] > 1 {
			r.Shadowed = append(r.Shadowed, f.Key)
		}
		switch f.Encoding {
		case types.EncodingBoolean:
			if _, ok := ParseBool(raw); !ok {
				r.Malformed = append(r.Malformed, f.Name)
			}
		case types.EncodingEnum:
			if raw != "" && !slices.Contains(f.Choices, raw) {
				r.Malformed = append(r.Malformed, f.Name)
			}
		}
	}
	return r
}
