package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboundEntryJSON(t *testing.T) {
	entries := []OutboundEntry{
		{Key: "weight", Value: TextValue("10")},
		{Key: "combineExceptions", Value: ListValue([]string{"A", "B"})},
	}
	data, err := json.Marshal(entries)
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"key":"weight","value":"10"},{"key":"combineExceptions","value":["A","B"]}]`,
		string(data))

	var back []OutboundEntry
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, 2)
	assert.False(t, back[0].Value.IsList())
	assert.Equal(t, "10", back[0].Value.Text())
	assert.True(t, back[1].Value.IsList())
	assert.Equal(t, []string{"A", "B"}, back[1].Value.List())
}

func TestListValueCopiesInput(t *testing.T) {
	items := []string{"A"}
	v := ListValue(items)
	items[0] = "Z"
	assert.Equal(t, []string{"A"}, v.List())

	got := v.List()
	got[0] = "Y"
	assert.Equal(t, []string{"A"}, v.List())
}

func TestOutboundValueUnmarshalRejectsObjects(t *testing.T) {
	var v OutboundValue
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &v))
}

func TestFieldValidate(t *testing.T) {
	tests := []struct {
		name    string
		field   Field
		wantErr error
	}{
		{"identity", Field{Name: "weight", Key: "weight", Encoding: EncodingIdentity}, nil},
		{"no name", Field{Key: "weight", Encoding: EncodingIdentity}, ErrInvalidName},
		{"no key", Field{Name: "weight", Encoding: EncodingIdentity}, ErrInvalidKey},
		{"bad encoding", Field{Name: "a", Key: "a", Encoding: "csv"}, ErrInvalidEncoding},
		{"enum without choices", Field{Name: "a", Key: "a", Encoding: EncodingEnum}, ErrChoicesRequired},
		{"enum default outside choices", Field{Name: "a", Key: "a", Encoding: EncodingEnum, Choices: []string{"X"}, Default: "Y"}, ErrInvalidDefault},
		{"boolean bad default", Field{Name: "a", Key: "a", Encoding: EncodingBoolean, Default: "yes"}, ErrInvalidDefault},
		{"boolean default", Field{Name: "a", Key: "a", Encoding: EncodingBoolean, Default: "false"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.field.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
