package metadata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/metaform/pkg/types"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{name: "projected state", doc: `{"isFee": true, "discountValue": "0", "inputType": ""}`},
		{name: "partial state", doc: `{"inputType": "DISCOUNT_CODE4030"}`},
		{name: "boolean as string", doc: `{"isFee": "true"}`, wantErr: types.ErrInvalidFieldType},
		{name: "string as boolean", doc: `{"discountValue": false}`, wantErr: types.ErrInvalidFieldType},
		{name: "unregistered name", doc: `{"isfee": true}`, wantErr: types.ErrUnknownField},
		{name: "enum outside choices", doc: `{"inputType": "DISCOUNT_CODE9999"}`, wantErr: types.ErrInvalidData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := types.NewFormState()
			require.NoError(t, json.Unmarshal([]byte(tt.doc), state))
			err := Check(state, CustomerRegistry())
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheckAcceptsProjectedStates(t *testing.T) {
	assert.NoError(t, Check(nil, ProductRegistry()))
	assert.NoError(t, Check(Project(nil, ProductRegistry()), ProductRegistry()))
	assert.NoError(t, Check(Project([]types.MetadataEntry{
		{Key: KeyFee, Value: "yes"},
		{Key: FieldInputType, Value: "DISCOUNT_CODE9999"},
	}, CustomerRegistry()), CustomerRegistry()))
}
