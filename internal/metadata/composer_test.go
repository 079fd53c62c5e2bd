package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/metaform/pkg/types"
)

func entryByKey(t *testing.T, entries []types.OutboundEntry, key string) types.OutboundEntry {
	t.Helper()
	for _, e := range entries {
		if e.Key == key {
			return e
		}
	}
	t.Fatalf("no entry with key %q", key)
	return types.OutboundEntry{}
}

func TestComposeSplitsDelimitedList(t *testing.T) {
	state := types.NewFormState()
	state.Set(FieldCombineExceptions, "A,B,C")

	entries := Compose(state, ProductRegistry())
	e := entryByKey(t, entries, FieldCombineExceptions)
	require.True(t, e.Value.IsList())
	assert.Equal(t, []string{"A", "B", "C"}, e.Value.List())
}

func TestComposeEmitsEveryFieldInOrder(t *testing.T) {
	reg := ProductRegistry()
	state := types.NewFormState()
	state.Set(FieldWeight, "")

	entries := Compose(state, reg)
	require.Len(t, entries, reg.Len())
	for i, key := range reg.Keys() {
		assert.Equal(t, key, entries[i].Key)
	}
	assert.Equal(t, "", entryByKey(t, entries, FieldWeight).Value.Text())
	assert.Equal(t, []string{""}, entryByKey(t, entries, FieldCombineExceptions).Value.List())
}

func TestComposeNilState(t *testing.T) {
	entries := Compose(nil, CustomerRegistry())
	require.Len(t, entries, 3)
	assert.Equal(t, "false", entryByKey(t, entries, KeyFee).Value.Text())
}

func TestComposeFeeUsesSentinelKey(t *testing.T) {
	state := Project([]types.MetadataEntry{{Key: KeyFee, Value: "true"}}, CustomerRegistry())
	entries := Compose(state, CustomerRegistry())

	fee := entryByKey(t, entries, KeyFee)
	assert.Equal(t, "true", fee.Value.Text())

	// The written value reads back through the same sentinel.
	back := Project([]types.MetadataEntry{{Key: fee.Key, Value: fee.Value.Text()}}, CustomerRegistry())
	assert.True(t, back.Bool(FieldIsFee))
}

func TestComposeEmptyOverwritesNonEmptyDefault(t *testing.T) {
	state := Project(nil, CustomerRegistry())
	require.Equal(t, "0", state.String(FieldDiscountValue))

	state.Set(FieldDiscountValue, "")
	entries := Compose(state, CustomerRegistry())
	assert.Equal(t, "", entryByKey(t, entries, FieldDiscountValue).Value.Text())
}

func TestRoundTripKeySetMatchesRegistry(t *testing.T) {
	inputs := [][]types.MetadataEntry{
		nil,
		{},
		{{Key: "colour", Value: "red"}, {Key: "weight", Value: "4"}},
		{{Key: FieldCombineExceptions, Value: "['X']"}, {Key: FieldCombineExceptions, Value: "['Y']"}},
	}
	for _, reg := range []*Registry{ProductRegistry(), CustomerRegistry()} {
		for _, md := range inputs {
			entries := Compose(Project(md, reg), reg)
			keys := make([]string, len(entries))
			for i, e := range entries {
				keys[i] = e.Key
			}
			assert.Equal(t, reg.Keys(), keys)
		}
	}
}

func TestRoundTripStoredListSurvives(t *testing.T) {
	reg := ProductRegistry()
	stored := FormatStoredList([]string{"A", "B", "C"})
	state := Project([]types.MetadataEntry{{Key: FieldCombineExceptions, Value: stored}}, reg)
	entries := Compose(state, reg)
	assert.Equal(t, []string{"A", "B", "C"}, entryByKey(t, entries, FieldCombineExceptions).Value.List())
}
