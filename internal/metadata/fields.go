package metadata

import (
	"sync"

	"github.com/mesh-intelligence/metaform/pkg/types"
)

// Product metadata field names. Each is stored under a metadata key of the
// same name.
const (
	FieldItemNumber            = "itemNumber"
	FieldWeight                = "weight"
	FieldItemStackConfigLength = "itemStackConfigLength"
	FieldItemStackConfigWidth  = "itemStackConfigWidth"
	FieldItemStackConfigHeight = "itemStackConfigHeight"
	FieldItemSizeLength        = "itemSizeLength"
	FieldItemSizeWidth         = "itemSizeWidth"
	FieldItemSizeHeight        = "itemSizeHeight"
	FieldCombineExceptions     = "combineExceptions"
	FieldShipClassLTL1         = "shipClassLTL1"
	FieldShipClassLTL2         = "shipClassLTL2"
	FieldShipClassLTL3         = "shipClassLTL3"
	FieldShipClassLTL4         = "shipClassLTL4"
	FieldShipClassLTL5         = "shipClassLTL5"
	FieldShipClassLTL6         = "shipClassLTL6"
	FieldShipClassLTL7         = "shipClassLTL7"
	FieldShipClassLTL8         = "shipClassLTL8"
)

// Customer metadata field names and keys.
const (
	FieldIsFee         = "isFee"
	FieldDiscountValue = "discountValue"
	FieldInputType     = "inputType"

	// KeyFee is the sentinel key holding the serialized flat-fee boolean.
	KeyFee = "fee"
)

// DiscountCodes are the discount code types a customer can carry.
var DiscountCodes = []string{
	"DISCOUNT_CODE4000",
	"DISCOUNT_CODE4020",
	"DISCOUNT_CODE4022",
	"DISCOUNT_CODE4030",
	"DISCOUNT_CODE4040",
}

func text(name string) types.Field {
	return types.Field{Name: name, Key: name, Encoding: types.EncodingIdentity}
}

// ProductRegistry returns the product field registry. It is built on first
// use and shared by every caller.
var ProductRegistry = sync.OnceValue(func() *Registry {
	return MustRegistry(
		text(FieldItemNumber),
		text(FieldWeight),
		text(FieldItemStackConfigLength),
		text(FieldItemStackConfigWidth),
		text(FieldItemStackConfigHeight),
		text(FieldItemSizeLength),
		text(FieldItemSizeWidth),
		text(FieldItemSizeHeight),
		types.Field{
			Name:     FieldCombineExceptions,
			Key:      FieldCombineExceptions,
			Encoding: types.EncodingDelimitedList,
		},
		text(FieldShipClassLTL1),
		text(FieldShipClassLTL2),
		text(FieldShipClassLTL3),
		text(FieldShipClassLTL4),
		text(FieldShipClassLTL5),
		text(FieldShipClassLTL6),
		text(FieldShipClassLTL7),
		text(FieldShipClassLTL8),
	)
})

// CustomerRegistry returns the customer fees-and-discounts field registry.
var CustomerRegistry = sync.OnceValue(func() *Registry {
	return MustRegistry(
		types.Field{
			Name:     FieldIsFee,
			Key:      KeyFee,
			Default:  "false",
			Encoding: types.EncodingBoolean,
		},
		types.Field{
			Name:     FieldDiscountValue,
			Key:      FieldDiscountValue,
			Default:  "0",
			Encoding: types.EncodingIdentity,
		},
		types.Field{
			Name:     FieldInputType,
			Key:      FieldInputType,
			Encoding: types.EncodingEnum,
			Choices:  DiscountCodes,
		},
	)
})
