// Unit tests for products table operations.
package sqlite

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/metaform/pkg/types"
)

func productsTable(t *testing.T) types.Table {
	t.Helper()
	b, _ := attachTemp(t)
	tbl, err := b.GetTable(types.ProductsTable)
	require.NoError(t, err)
	return tbl
}

func TestProducts_SetGet(t *testing.T) {
	tbl := productsTable(t)

	in := &types.Product{
		Name:        "Hex bolt",
		BasePrice:   &types.Money{Amount: decimal.RequireFromString("12.50"), Currency: "USD"},
		ProductType: types.ProductType{ID: "pt1", Name: "Fastener"},
		Variants:    []types.Variant{{ID: "v1", SKU: "HB-10", TrackInventory: true}},
		Images:      []types.Image{{URL: "a.png"}, {ID: "img-b", URL: "b.png"}},
		Metadata: []types.MetadataEntry{
			{Key: "combineExceptions", Value: "['A', 'B']"},
			{Key: "itemNumber", Value: "HB-10"},
		},
	}
	id, err := tbl.Set("", in)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, in.ID)
	assert.NotEmpty(t, in.Images[0].ID, "images without an id get one")
	assert.Equal(t, "img-b", in.Images[1].ID)

	got, err := tbl.Get(id)
	require.NoError(t, err)
	p, ok := got.(*types.Product)
	require.True(t, ok)
	assert.Equal(t, "Hex bolt", p.Name)
	assert.True(t, p.BasePrice.Amount.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, "HB-10", p.Variants[0].SKU)
	assert.Equal(t, in.Metadata, p.Metadata)
	assert.False(t, p.UpdatedAt.IsZero())
}

func TestProducts_SetReplacesMetadata(t *testing.T) {
	tbl := productsTable(t)

	id, err := tbl.Set("p1", &types.Product{
		Name:     "Washer",
		Metadata: []types.MetadataEntry{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", id)

	_, err = tbl.Set("p1", &types.Product{
		Name:     "Washer",
		Metadata: []types.MetadataEntry{{Key: "b", Value: "3"}},
	})
	require.NoError(t, err)

	got, err := tbl.Get("p1")
	require.NoError(t, err)
	assert.Equal(t, []types.MetadataEntry{{Key: "b", Value: "3"}}, got.(*types.Product).Metadata)
}

func TestProducts_EmptyMetadataIsEmptySlice(t *testing.T) {
	tbl := productsTable(t)
	id, err := tbl.Set("", &types.Product{Name: "Nut"})
	require.NoError(t, err)

	got, err := tbl.Get(id)
	require.NoError(t, err)
	md := got.(*types.Product).Metadata
	assert.NotNil(t, md)
	assert.Empty(t, md)
}

func TestProducts_SetErrors(t *testing.T) {
	tbl := productsTable(t)

	_, err := tbl.Set("", &types.Product{Name: "  "})
	assert.ErrorIs(t, err, types.ErrInvalidName)

	_, err = tbl.Set("", &types.Customer{Email: "x@y"})
	assert.ErrorIs(t, err, types.ErrInvalidData)

	_, err = tbl.Set("", (*types.Product)(nil))
	assert.ErrorIs(t, err, types.ErrInvalidData)
}

func TestProducts_GetErrors(t *testing.T) {
	tbl := productsTable(t)

	_, err := tbl.Get("")
	assert.ErrorIs(t, err, types.ErrInvalidID)
	_, err = tbl.Get("missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestProducts_Delete(t *testing.T) {
	b, _ := attachTemp(t)
	tbl, err := b.GetTable(types.ProductsTable)
	require.NoError(t, err)
	mdTbl, err := b.GetTable(types.MetadataTable)
	require.NoError(t, err)

	id, err := tbl.Set("", &types.Product{Name: "Rivet", Metadata: []types.MetadataEntry{{Key: "k", Value: "v"}}})
	require.NoError(t, err)

	require.NoError(t, tbl.Delete(id))
	_, err = tbl.Get(id)
	assert.ErrorIs(t, err, types.ErrNotFound)

	rest, err := mdTbl.Fetch(map[string]any{"entity_id": id})
	require.NoError(t, err)
	assert.Empty(t, rest, "metadata goes with the product")

	assert.ErrorIs(t, tbl.Delete(id), types.ErrNotFound)
	assert.ErrorIs(t, tbl.Delete(""), types.ErrInvalidID)
}

func TestProducts_Fetch(t *testing.T) {
	tbl := productsTable(t)
	for _, name := range []string{"Hex bolt", "Carriage bolt", "Washer"} {
		_, err := tbl.Set("", &types.Product{Name: name})
		require.NoError(t, err)
	}

	all, err := tbl.Fetch(nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Carriage bolt", all[0].(*types.Product).Name, "ordered by name")

	bolts, err := tbl.Fetch(map[string]any{"name_contains": "BOLT"})
	require.NoError(t, err)
	assert.Len(t, bolts, 2)

	page, err := tbl.Fetch(map[string]any{"limit": 1, "offset": 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Hex bolt", page[0].(*types.Product).Name)

	rest, err := tbl.Fetch(map[string]any{"offset": 2})
	require.NoError(t, err)
	require.Len(t, rest, 1, "offset applies without a limit")
	assert.Equal(t, "Washer", rest[0].(*types.Product).Name)

	_, err = tbl.Fetch(map[string]any{"limit": "ten"})
	assert.ErrorIs(t, err, types.ErrInvalidFilter)
	_, err = tbl.Fetch(map[string]any{"name_contains": 3})
	assert.ErrorIs(t, err, types.ErrInvalidFilter)
}
