package product

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/metaform/internal/metadata"
	"github.com/mesh-intelligence/metaform/pkg/types"
)

func submitFor(p *types.Product) SubmitData {
	return SubmitData{
		FormData:   NewFormData(p),
		Attributes: []AttributeSubmit{{ID: "a1", Value: []string{"galvanized"}}},
	}
}

func TestBuildUpdateSimpleProduct(t *testing.T) {
	p := sampleProduct()
	data := submitFor(p)
	data.Metadata.Set(metadata.FieldWeight, "120")
	data.AddStocks = []StockRow{{ID: "w3", Value: "5"}}
	data.UpdateStocks = []StockRow{{ID: "w1", Value: "9"}}
	data.RemoveStocks = []string{"w2"}

	u, err := BuildUpdate(p, data)
	require.NoError(t, err)
	require.True(t, u.IsSimple())
	s := u.Simple

	assert.Equal(t, "p1", s.ID)
	assert.Equal(t, "v1", s.ProductVariantID)
	assert.Equal(t, VariantInput{SKU: "PR-1", TrackInventory: true}, s.ProductVariantInput)
	assert.Equal(t, []StockInput{{Quantity: 5, Warehouse: "w3"}}, s.AddStocks)
	assert.Equal(t, []StockInput{{Quantity: 9, Warehouse: "w1"}}, s.UpdateStocks)
	assert.Equal(t, []string{"w2"}, s.DeleteStocks)
	assert.Equal(t, `{"blocks":[{"text":"Steel"}]}`, s.DescriptionJSON)
	require.NotNil(t, s.BasePrice)
	assert.Equal(t, "199.9", s.BasePrice.String())

	require.Len(t, s.Metadata, metadata.ProductRegistry().Len())
	byKey := map[string]types.OutboundValue{}
	for _, e := range s.Metadata {
		byKey[e.Key] = e.Value
	}
	assert.Equal(t, "120", byKey[metadata.FieldWeight].Text())
	assert.Equal(t, "PR-1", byKey[metadata.FieldItemNumber].Text())
	assert.True(t, byKey[metadata.FieldCombineExceptions].IsList())
	assert.Equal(t, []string{"LTL", "FREIGHT"}, byKey[metadata.FieldCombineExceptions].List())
}

func TestBuildUpdateProductWithVariantsOmitsMetadata(t *testing.T) {
	p := sampleProduct()
	p.ProductType.HasVariants = true

	u, err := BuildUpdate(p, submitFor(p))
	require.NoError(t, err)
	assert.False(t, u.IsSimple())
	require.NotNil(t, u.Product)

	b, err := json.Marshal(u.Variables())
	require.NoError(t, err)
	assert.NotContains(t, string(b), `"metadata"`)
	assert.NotContains(t, string(b), `"productVariantId"`)
}

func TestBuildUpdateVariableShapes(t *testing.T) {
	p := sampleProduct()
	data := submitFor(p)
	data.PublicationDate = ""
	data.BasePrice = ""
	data.Attributes = []AttributeSubmit{{ID: "a1", Value: []string{""}}, {ID: "a2"}}
	data.Collections = nil

	u, err := BuildUpdate(p, data)
	require.NoError(t, err)

	b, err := json.Marshal(u.Variables())
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))

	assert.Nil(t, got["publicationDate"])
	assert.Contains(t, got, "publicationDate")
	assert.Nil(t, got["basePrice"])
	assert.Equal(t, []any{}, got["collections"])
	assert.Equal(t, []any{
		map[string]any{"id": "a1", "values": []any{}},
		map[string]any{"id": "a2", "values": []any{}},
	}, got["attributes"])
	assert.Equal(t, map[string]any{"description": "A rack", "title": "Rack"}, got["seo"])
}

func TestBuildUpdateErrors(t *testing.T) {
	p := sampleProduct()

	data := submitFor(p)
	data.BasePrice = "lots"
	_, err := BuildUpdate(p, data)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	data = submitFor(p)
	data.UpdateStocks = []StockRow{{ID: "w1", Value: "many"}}
	_, err = BuildUpdate(p, data)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	noVariants := sampleProduct()
	noVariants.Variants = nil
	_, err = BuildUpdate(noVariants, submitFor(noVariants))
	assert.ErrorIs(t, err, ErrNoVariant)

	data = submitFor(p)
	data.Metadata.SetBool(metadata.FieldWeight, true)
	_, err = BuildUpdate(p, data)
	assert.ErrorIs(t, err, types.ErrInvalidFieldType)

	data = submitFor(p)
	data.Metadata.Set("colour", "red")
	_, err = BuildUpdate(p, data)
	assert.ErrorIs(t, err, types.ErrUnknownField)

	_, err = BuildUpdate(nil, SubmitData{})
	assert.ErrorIs(t, err, types.ErrInvalidData)
}

func TestSubmitDataJSON(t *testing.T) {
	raw := `{
		"name": "Rack",
		"basePrice": "10",
		"metadata": {"itemNumber": "X-1", "combineExceptions": "A,B"},
		"attributes": [{"id": "a1", "value": ["x"]}],
		"updateStocks": [{"id": "w1", "value": "3"}]
	}`
	var data SubmitData
	require.NoError(t, json.Unmarshal([]byte(raw), &data))
	assert.Equal(t, "Rack", data.Name)
	require.NotNil(t, data.Metadata)
	assert.Equal(t, "X-1", data.Metadata.String("itemNumber"))

	u, err := BuildUpdate(sampleProduct(), data)
	require.NoError(t, err)
	assert.Equal(t, []StockInput{{Quantity: 3, Warehouse: "w1"}}, u.Simple.UpdateStocks)
}
