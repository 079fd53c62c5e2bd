package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/metaform/internal/metadata"
	"github.com/mesh-intelligence/metaform/pkg/types"
)

func sampleCustomer() *types.Customer {
	return &types.Customer{
		ID:        "c1",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		IsActive:  true,
		Note:      "net 30",
		Metadata: []types.MetadataEntry{
			{Key: "inputType", Value: "DISCOUNT_CODE4020"},
			{Key: "discountValue", Value: "1.5"},
			{Key: "fee", Value: "true"},
		},
	}
}

func TestNewFormData(t *testing.T) {
	fd := NewFormData(sampleCustomer())

	assert.Equal(t, "Ada", fd.FirstName)
	assert.Equal(t, "Lovelace", fd.LastName)
	assert.Equal(t, "ada@example.com", fd.Email)
	assert.True(t, fd.IsActive)
	assert.Equal(t, "net 30", fd.Note)
	assert.True(t, fd.IsFee())
	assert.Equal(t, "1.5", fd.DiscountValue())
	assert.Equal(t, "DISCOUNT_CODE4020", fd.DiscountCode())
}

func TestNewFormDataReadsByKeyNotPosition(t *testing.T) {
	c := sampleCustomer()
	c.Metadata = []types.MetadataEntry{
		{Key: "fee", Value: "false"},
		{Key: "discountValue", Value: "0.5"},
	}
	fd := NewFormData(c)
	assert.False(t, fd.IsFee())
	assert.Equal(t, "0.5", fd.DiscountValue())
	assert.Equal(t, "", fd.DiscountCode())
}

func TestNewFormDataDefaults(t *testing.T) {
	for name, c := range map[string]*types.Customer{
		"nil":         nil,
		"no metadata": {ID: "c2"},
		"malformed fee": {ID: "c3", Metadata: []types.MetadataEntry{
			{Key: "fee", Value: "yes"},
			{Key: "inputType", Value: "DISCOUNT_CODE9999"},
		}},
	} {
		t.Run(name, func(t *testing.T) {
			fd := NewFormData(c)
			require.NotNil(t, fd.Metadata)
			assert.False(t, fd.IsFee())
			assert.Equal(t, "0", fd.DiscountValue())
			assert.Equal(t, "", fd.DiscountCode())
		})
	}
}

func TestFormDataAccessorsOnZeroValue(t *testing.T) {
	var fd FormData
	assert.False(t, fd.IsFee())
	assert.Equal(t, "", fd.DiscountValue())
	assert.Equal(t, metadata.CustomerRegistry().Len(), len(metadata.Compose(fd.Metadata, metadata.CustomerRegistry())))
}
