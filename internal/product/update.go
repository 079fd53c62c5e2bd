package product

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/metaform/internal/metadata"
	"github.com/mesh-intelligence/metaform/pkg/types"
)

// Update errors.
var (
	ErrInvalidPrice = errors.New("invalid base price")
	ErrNoVariant    = errors.New("simple product has no variant")
)

// AttributeSubmit is the submitted selection for one attribute.
type AttributeSubmit struct {
	ID    string   `json:"id"`
	Value []string `json:"value"`
}

// SubmitData is the product form at the moment of submit.
type SubmitData struct {
	FormData
	Attributes   []AttributeSubmit `json:"attributes"`
	AddStocks    []StockRow        `json:"addStocks"`
	UpdateStocks []StockRow        `json:"updateStocks"`
	RemoveStocks []string          `json:"removeStocks"`
}

// AttributeValueInput is the mutation input for one attribute.
type AttributeValueInput struct {
	ID     string   `json:"id"`
	Values []string `json:"values"`
}

// SEOInput is the mutation input for search metadata.
type SEOInput struct {
	Description string `json:"description"`
	Title       string `json:"title"`
}

// UpdateVariables are the variables of the product update mutation.
type UpdateVariables struct {
	Attributes      []AttributeValueInput `json:"attributes"`
	BasePrice       *decimal.Decimal      `json:"basePrice"`
	Category        string                `json:"category"`
	ChargeTaxes     bool                  `json:"chargeTaxes"`
	Collections     []string              `json:"collections"`
	DescriptionJSON string                `json:"descriptionJson,omitempty"`
	ID              string                `json:"id"`
	IsPublished     bool                  `json:"isPublished"`
	Name            string                `json:"name"`
	PublicationDate *string               `json:"publicationDate"`
	SEO             SEOInput              `json:"seo"`
}

// VariantInput updates the implicit variant of a simple product.
type VariantInput struct {
	SKU            string `json:"sku"`
	TrackInventory bool   `json:"trackInventory"`
}

// SimpleUpdateVariables are the variables of the simple product update
// mutation. It is the only product mutation that carries metadata.
type SimpleUpdateVariables struct {
	UpdateVariables
	AddStocks           []StockInput          `json:"addStocks"`
	DeleteStocks        []string              `json:"deleteStocks"`
	Metadata            []types.OutboundEntry `json:"metadata"`
	ProductVariantID    string                `json:"productVariantId"`
	ProductVariantInput VariantInput          `json:"productVariantInput"`
	UpdateStocks        []StockInput          `json:"updateStocks"`
}

// Update is a product mutation ready to execute. Exactly one of Product and
// Simple is set.
type Update struct {
	Product *UpdateVariables
	Simple  *SimpleUpdateVariables
}

// IsSimple reports whether the update targets a product without variants.
func (u Update) IsSimple() bool { return u.Simple != nil }

// Variables returns the mutation variables.
func (u Update) Variables() any {
	if u.Simple != nil {
		return u.Simple
	}
	return u.Product
}

// BuildUpdate assembles the update for p from the submitted form. Products
// whose type has variants get the plain update; all others get the simple
// update with stocks, variant fields and the composed metadata list.
func BuildUpdate(p *types.Product, data SubmitData) (Update, error) {
	if p == nil {
		return Update{}, types.ErrInvalidData
	}
	if err := metadata.Check(data.Metadata, metadata.ProductRegistry()); err != nil {
		return Update{}, err
	}

	vars, err := baseVariables(p, data)
	if err != nil {
		return Update{}, err
	}
	if p.ProductType.HasVariants {
		return Update{Product: &vars}, nil
	}

	if len(p.Variants) == 0 {
		return Update{}, fmt.Errorf("%w: product %s", ErrNoVariant, p.ID)
	}
	add, err := stockInputs(data.AddStocks)
	if err != nil {
		return Update{}, err
	}
	upd, err := stockInputs(data.UpdateStocks)
	if err != nil {
		return Update{}, err
	}
	remove := data.RemoveStocks
	if remove == nil {
		remove = []string{}
	}

	return Update{Simple: &SimpleUpdateVariables{
		UpdateVariables:  vars,
		AddStocks:        add,
		DeleteStocks:     remove,
		Metadata:         metadata.Compose(data.Metadata, metadata.ProductRegistry()),
		ProductVariantID: p.Variants[0].ID,
		ProductVariantInput: VariantInput{
			SKU:            data.SKU,
			TrackInventory: data.TrackInventory,
		},
		UpdateStocks: upd,
	}}, nil
}

func baseVariables(p *types.Product, data SubmitData) (UpdateVariables, error) {
	vars := UpdateVariables{
		Attributes:  make([]AttributeValueInput, 0, len(data.Attributes)),
		Category:    data.Category,
		ChargeTaxes: data.ChargeTaxes,
		Collections: data.Collections,
		ID:          p.ID,
		IsPublished: data.IsPublished,
		Name:        data.Name,
		SEO: SEOInput{
			Description: data.SEODescription,
			Title:       data.SEOTitle,
		},
	}
	if vars.Collections == nil {
		vars.Collections = []string{}
	}

	for _, a := range data.Attributes {
		values := a.Value
		// An attribute cleared in the form submits a single empty value.
		if len(values) > 0 && values[0] == "" {
			values = []string{}
		}
		if values == nil {
			values = []string{}
		}
		vars.Attributes = append(vars.Attributes, AttributeValueInput{ID: a.ID, Values: values})
	}

	if price := strings.TrimSpace(data.BasePrice); price != "" {
		d, err := decimal.NewFromString(price)
		if err != nil {
			return UpdateVariables{}, fmt.Errorf("%w: %q", ErrInvalidPrice, data.BasePrice)
		}
		vars.BasePrice = &d
	}

	if data.PublicationDate != "" {
		date := data.PublicationDate
		vars.PublicationDate = &date
	}

	if len(data.Description) > 0 {
		compact, err := compactJSON(data.Description)
		if err != nil {
			return UpdateVariables{}, fmt.Errorf("encoding description: %w", err)
		}
		vars.DescriptionJSON = compact
	}
	return vars, nil
}

func compactJSON(raw json.RawMessage) (string, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", err
	}
	return buf.String(), nil
}
