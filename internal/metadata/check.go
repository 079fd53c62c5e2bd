package metadata

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mesh-intelligence/metaform/pkg/types"
)

// Check validates a form state against reg before it is composed. Every
// name must be registered, toggles must hold booleans and the other
// encodings strings. An enum holds "" or one of its choices. A nil state
// is valid.
func Check(state *types.FormState, reg *Registry) error {
	for _, name := range state.Names() {
		f, ok := reg.Lookup(name)
		if !ok {
			return fmt.Errorf("field %q: %w", name, types.ErrUnknownField)
		}
		if f.IsFlag() != state.IsBool(name) {
			want := "a string"
			if f.IsFlag() {
				want = "a boolean"
			}
			return fmt.Errorf("field %q: want %s: %w", name, want, types.ErrInvalidFieldType)
		}
		if f.Encoding == types.EncodingEnum {
			v := state.String(name)
			if v != "" && !slices.Contains(f.Choices, v) {
				return fmt.Errorf("field %q value %q: want one of %s: %w",
					name, v, strings.Join(f.Choices, ", "), types.ErrInvalidData)
			}
		}
	}
	return nil
}
