package submit

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/metaform/internal/customer"
	"github.com/mesh-intelligence/metaform/internal/metadata"
	"github.com/mesh-intelligence/metaform/internal/product"
	"github.com/mesh-intelligence/metaform/pkg/types"
)

// Local applies mutations to a types.Store the way the remote API would.
// Metadata is upserted by key and list values are stored flattened, so a
// later read sees the same string shape the API returns.
type Local struct {
	store  types.Store
	logger *zap.Logger
}

// NewLocal returns an executor over an attached store.
func NewLocal(store types.Store, logger *zap.Logger) *Local {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Local{store: store, logger: logger}
}

// UpdateProduct applies a product update.
func (l *Local) UpdateProduct(ctx context.Context, u product.Update) error {
	vars := u.Product
	if u.IsSimple() {
		vars = &u.Simple.UpdateVariables
	}
	if vars == nil {
		return types.ErrInvalidData
	}
	return l.withProduct(ctx, vars.ID, func(p *types.Product) error {
		applyProductFields(p, vars)
		if !u.IsSimple() {
			return nil
		}
		s := u.Simple
		v := findVariant(p, s.ProductVariantID)
		if v == nil {
			return fmt.Errorf("variant %s: %w", s.ProductVariantID, types.ErrNotFound)
		}
		v.SKU = s.ProductVariantInput.SKU
		v.TrackInventory = s.ProductVariantInput.TrackInventory
		applyStocks(v, s.AddStocks, s.UpdateStocks, s.DeleteStocks)
		p.Metadata = UpsertMetadata(p.Metadata, s.Metadata)
		return nil
	})
}

// ReorderImages reorders a product's images. The ids must be a permutation
// of the product's image ids.
func (l *Local) ReorderImages(ctx context.Context, v product.ImageReorderVariables) error {
	return l.withProduct(ctx, v.ProductID, func(p *types.Product) error {
		if len(v.ImagesIDs) != len(p.Images) {
			return fmt.Errorf("reorder %d ids for %d images: %w", len(v.ImagesIDs), len(p.Images), types.ErrInvalidData)
		}
		byID := make(map[string]types.Image, len(p.Images))
		for _, img := range p.Images {
			byID[img.ID] = img
		}
		out := make([]types.Image, 0, len(v.ImagesIDs))
		for _, id := range v.ImagesIDs {
			img, ok := byID[id]
			if !ok {
				return fmt.Errorf("image %s: %w", id, types.ErrInvalidData)
			}
			delete(byID, id)
			out = append(out, img)
		}
		p.Images = out
		return nil
	})
}

// CreateImage appends an image; the store assigns its id.
func (l *Local) CreateImage(ctx context.Context, v product.ImageCreateVariables) error {
	return l.withProduct(ctx, v.Product, func(p *types.Product) error {
		p.Images = append(p.Images, types.Image{URL: v.Image, Alt: v.Alt})
		return nil
	})
}

// UpdateCustomer applies a customer update.
func (l *Local) UpdateCustomer(ctx context.Context, v customer.UpdateVariables) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tbl, err := l.store.GetTable(types.CustomersTable)
	if err != nil {
		return err
	}
	got, err := tbl.Get(v.ID)
	if err != nil {
		return fmt.Errorf("loading customer %s: %w", v.ID, err)
	}
	c := got.(*types.Customer)
	c.FirstName = v.Input.FirstName
	c.LastName = v.Input.LastName
	c.Email = v.Input.Email
	c.IsActive = v.Input.IsActive
	c.Note = v.Input.Note
	c.Metadata = UpsertMetadata(c.Metadata, v.Metadata)
	if _, err := tbl.Set(c.ID, c); err != nil {
		return fmt.Errorf("saving customer %s: %w", c.ID, err)
	}
	l.logger.Info("customer updated", zap.String("id", c.ID), zap.Int("metadata", len(c.Metadata)))
	return nil
}

func (l *Local) withProduct(ctx context.Context, id string, apply func(*types.Product) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tbl, err := l.store.GetTable(types.ProductsTable)
	if err != nil {
		return err
	}
	got, err := tbl.Get(id)
	if err != nil {
		return fmt.Errorf("loading product %s: %w", id, err)
	}
	p := got.(*types.Product)
	if err := apply(p); err != nil {
		return err
	}
	if _, err := tbl.Set(p.ID, p); err != nil {
		return fmt.Errorf("saving product %s: %w", p.ID, err)
	}
	l.logger.Info("product updated", zap.String("id", p.ID), zap.Int("metadata", len(p.Metadata)))
	return nil
}

// UpsertMetadata merges outbound entries into stored metadata. The first
// entry with a key takes the new value and later duplicates are dropped;
// new keys are appended in outbound order. List values are flattened with
// metadata.FormatStoredList.
func UpsertMetadata(stored []types.MetadataEntry, outbound []types.OutboundEntry) []types.MetadataEntry {
	values := make(map[string]string, len(outbound))
	var added []string
	for _, e := range outbound {
		v := e.Value.Text()
		if e.Value.IsList() {
			v = metadata.FormatStoredList(e.Value.List())
		}
		if _, seen := values[e.Key]; !seen {
			added = append(added, e.Key)
		}
		values[e.Key] = v
	}

	out := make([]types.MetadataEntry, 0, len(stored)+len(added))
	written := make(map[string]bool, len(values))
	for _, e := range stored {
		v, ok := values[e.Key]
		if !ok {
			out = append(out, e)
			continue
		}
		if written[e.Key] {
			continue
		}
		written[e.Key] = true
		out = append(out, types.MetadataEntry{Key: e.Key, Value: v})
	}
	for _, k := range added {
		if !written[k] {
			out = append(out, types.MetadataEntry{Key: k, Value: values[k]})
		}
	}
	return out
}

func applyProductFields(p *types.Product, v *product.UpdateVariables) {
	p.Name = v.Name
	p.ChargeTaxes = v.ChargeTaxes
	p.IsPublished = v.IsPublished
	p.SEOTitle = v.SEO.Title
	p.SEODescription = v.SEO.Description
	p.DescriptionJSON = v.DescriptionJSON

	p.PublicationDate = ""
	if v.PublicationDate != nil {
		p.PublicationDate = *v.PublicationDate
	}

	if v.BasePrice == nil {
		p.BasePrice = nil
	} else {
		currency := ""
		if p.BasePrice != nil {
			currency = p.BasePrice.Currency
		}
		p.BasePrice = &types.Money{Amount: *v.BasePrice, Currency: currency}
	}

	switch {
	case v.Category == "":
		p.Category = nil
	case p.Category == nil || p.Category.ID != v.Category:
		p.Category = &types.Category{ID: v.Category}
	}

	names := make(map[string]string, len(p.Collections))
	for _, c := range p.Collections {
		names[c.ID] = c.Name
	}
	p.Collections = make([]types.Collection, 0, len(v.Collections))
	for _, id := range v.Collections {
		p.Collections = append(p.Collections, types.Collection{ID: id, Name: names[id]})
	}

	for _, in := range v.Attributes {
		for i := range p.Attributes {
			sa := &p.Attributes[i]
			if sa.Attribute.ID != in.ID {
				continue
			}
			sa.Values = make([]types.AttributeValue, 0, len(in.Values))
			for _, slug := range in.Values {
				sa.Values = append(sa.Values, attributeValue(sa.Attribute, slug))
			}
		}
	}
}

func attributeValue(a types.Attribute, slug string) types.AttributeValue {
	for _, v := range a.Values {
		if v.Slug == slug {
			return v
		}
	}
	return types.AttributeValue{Name: slug, Slug: slug}
}

func findVariant(p *types.Product, id string) *types.Variant {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i]
		}
	}
	return nil
}

func applyStocks(v *types.Variant, add, update []product.StockInput, remove []string) {
	drop := make(map[string]bool, len(remove))
	for _, w := range remove {
		drop[w] = true
	}
	kept := v.Stocks[:0]
	for _, s := range v.Stocks {
		if !drop[s.Warehouse.ID] {
			kept = append(kept, s)
		}
	}
	v.Stocks = kept

	for _, in := range update {
		for i := range v.Stocks {
			if v.Stocks[i].Warehouse.ID == in.Warehouse {
				v.Stocks[i].Quantity = in.Quantity
			}
		}
	}
	for _, in := range add {
		v.Stocks = append(v.Stocks, types.Stock{Warehouse: types.Warehouse{ID: in.Warehouse}, Quantity: in.Quantity})
	}
}
