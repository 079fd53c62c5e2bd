// Package product maps catalogue products to the product edit form and turns
// a submitted form back into update mutation variables.
package product

import (
	"encoding/json"

	"github.com/mesh-intelligence/metaform/internal/metadata"
	"github.com/mesh-intelligence/metaform/pkg/types"
)

// FormData is the initial state of the product edit form. Typed product
// attributes are plain fields; metadata-backed fields live in Metadata.
type FormData struct {
	BasePrice       string           `json:"basePrice"`
	Category        string           `json:"category"`
	ChargeTaxes     bool             `json:"chargeTaxes"`
	Collections     []string         `json:"collections"`
	Description     json.RawMessage  `json:"description,omitempty"`
	IsPublished     bool             `json:"isPublished"`
	Name            string           `json:"name"`
	PublicationDate string           `json:"publicationDate"`
	SEODescription  string           `json:"seoDescription"`
	SEOTitle        string           `json:"seoTitle"`
	SKU             string           `json:"sku"`
	TrackInventory  bool             `json:"trackInventory"`
	Metadata        *types.FormState `json:"metadata"`
}

// NewFormData builds the form state for p. The product's metadata is
// projected through the product registry; opts select the list decoding.
// A nil product yields an all-default form.
func NewFormData(p *types.Product, opts ...metadata.Option) FormData {
	if p == nil {
		return FormData{
			BasePrice:   "0",
			Collections: []string{},
			Metadata:    metadata.Project(nil, metadata.ProductRegistry(), opts...),
		}
	}

	fd := FormData{
		BasePrice:       "0",
		ChargeTaxes:     p.ChargeTaxes,
		Collections:     make([]string, 0, len(p.Collections)),
		IsPublished:     p.IsPublished,
		Name:            p.Name,
		PublicationDate: p.PublicationDate,
		SEODescription:  p.SEODescription,
		SEOTitle:        p.SEOTitle,
		Metadata:        metadata.Project(p.Metadata, metadata.ProductRegistry(), opts...),
	}
	if p.BasePrice != nil {
		fd.BasePrice = p.BasePrice.Amount.String()
	}
	if p.Category != nil {
		fd.Category = p.Category.ID
	}
	for _, c := range p.Collections {
		fd.Collections = append(fd.Collections, c.ID)
	}
	if p.DescriptionJSON != "" && json.Valid([]byte(p.DescriptionJSON)) {
		fd.Description = json.RawMessage(p.DescriptionJSON)
	}
	// Products with variants edit their SKUs per variant.
	if !p.ProductType.HasVariants && len(p.Variants) > 0 {
		fd.SKU = p.Variants[0].SKU
	}
	if len(p.Variants) > 0 {
		fd.TrackInventory = p.Variants[0].TrackInventory
	}
	return fd
}

// AttributeInput is one attribute row of the product form.
type AttributeInput struct {
	ID        string                 `json:"id"`
	Label     string                 `json:"label"`
	InputType string                 `json:"inputType"`
	Required  bool                   `json:"required"`
	Choices   []types.AttributeValue `json:"choices"`
	Value     []string               `json:"value"`
}

// AttributeInputs lists the product's attributes with the slugs of their
// selected values.
func AttributeInputs(p *types.Product) []AttributeInput {
	if p == nil {
		return []AttributeInput{}
	}
	out := make([]AttributeInput, 0, len(p.Attributes))
	for _, a := range p.Attributes {
		in := AttributeInput{
			ID:        a.Attribute.ID,
			Label:     a.Attribute.Name,
			InputType: a.Attribute.InputType,
			Required:  a.Attribute.ValueRequired,
			Choices:   a.Attribute.Values,
			Value:     make([]string, 0, len(a.Values)),
		}
		for _, v := range a.Values {
			in.Value = append(in.Value, v.Slug)
		}
		out = append(out, in)
	}
	return out
}
