package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mesh-intelligence/metaform/internal/metadata"
	"github.com/mesh-intelligence/metaform/pkg/types"
)

// applySets applies name=value assignments to the metadata fields of a
// form. Names must be registered; toggles take true or false and enum
// fields take one of their choices or the empty string.
func applySets(state *types.FormState, reg *metadata.Registry, sets []string) error {
	for _, set := range sets {
		name, value, ok := strings.Cut(set, "=")
		if !ok || name == "" {
			return fmt.Errorf("--set %q: want name=value: %w", set, types.ErrInvalidName)
		}
		f, found := reg.Lookup(name)
		if !found {
			return fmt.Errorf("--set %q: %w", name, types.ErrUnknownField)
		}

		change := types.FieldChange{Name: name, Value: value}
		switch f.Encoding {
		case types.EncodingBoolean:
			b, ok := metadata.ParseBool(value)
			if !ok {
				return fmt.Errorf("--set %s=%q: %w", name, value, types.ErrInvalidFieldType)
			}
			change.Value = b
		case types.EncodingEnum:
			if value != "" && !slices.Contains(f.Choices, value) {
				return fmt.Errorf("--set %s=%q: want one of %s: %w",
					name, value, strings.Join(f.Choices, ", "), types.ErrInvalidData)
			}
		}
		if err := state.Apply(change); err != nil {
			return err
		}
	}
	return nil
}
