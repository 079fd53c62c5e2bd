package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/metaform/pkg/types"
)

func TestInspect(t *testing.T) {
	md := []types.MetadataEntry{
		{Key: KeyFee, Value: "maybe"},
		{Key: "loyaltyTier", Value: "gold"},
		{Key: FieldInputType, Value: "DISCOUNT_CODE4000"},
		{Key: FieldInputType, Value: "DISCOUNT_CODE4020"},
		{Key: "loyaltyTier", Value: "silver"},
	}
	r := Inspect(md, CustomerRegistry())

	assert.Equal(t, []string{FieldDiscountValue}, r.Missing)
	assert.Equal(t, []string{FieldIsFee}, r.Malformed)
	assert.Equal(t, []string{FieldInputType}, r.Shadowed)
	assert.Equal(t, []string{"loyaltyTier"}, r.Unregistered)
	assert.False(t, r.Clean())
}

func TestInspectClean(t *testing.T) {
	md := []types.MetadataEntry{
		{Key: KeyFee, Value: "false"},
		{Key: FieldDiscountValue, Value: "5"},
		{Key: FieldInputType, Value: ""},
	}
	assert.True(t, Inspect(md, CustomerRegistry()).Clean())
}
