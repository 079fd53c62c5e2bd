package metadata

import (
	"strconv"

	"github.com/mesh-intelligence/metaform/pkg/types"
)

// Compose builds the outbound metadata list from a form state: one entry per
// registered field, in registry order, whether or not the value changed or
// is empty. Delimited-list fields are sent as a list; toggles are sent as a
// serialized boolean under their registered key. A nil state composes as an
// empty one.
func Compose(state *types.FormState, reg *Registry) []types.OutboundEntry {
	if state == nil {
		state = types.NewFormState()
	}
	out := make([]types.OutboundEntry, 0, len(reg.fields))
	for _, f := range reg.fields {
		var v types.OutboundValue
		switch f.Encoding {
		case types.EncodingDelimitedList:
			v = types.ListValue(EncodeDelimitedList(state.String(f.Name)))
		case types.EncodingBoolean:
			v = types.TextValue(strconv.FormatBool(state.Bool(f.Name)))
		default:
			v = types.TextValue(state.String(f.Name))
		}
		out = append(out, types.OutboundEntry{Key: f.Key, Value: v})
	}
	return out
}
