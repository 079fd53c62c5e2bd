package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Money is an amount in a currency.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// Category is the catalogue category a product belongs to.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Collection is a merchandising collection a product belongs to.
type Collection struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductType describes the product's shape. Products whose type has no
// variants are edited as simple products with a single implicit variant.
type ProductType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	HasVariants bool   `json:"hasVariants"`
}

// Warehouse is a stock location.
type Warehouse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Stock is the quantity of a variant held in one warehouse.
type Stock struct {
	Warehouse Warehouse `json:"warehouse"`
	Quantity  int       `json:"quantity"`
}

// Variant is a sellable version of a product.
type Variant struct {
	ID             string  `json:"id"`
	SKU            string  `json:"sku"`
	TrackInventory bool    `json:"trackInventory"`
	Stocks         []Stock `json:"stocks"`
}

// Image is a product image. Images are ordered by their position in
// Product.Images.
type Image struct {
	ID  string `json:"id"`
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// AttributeValue is one selectable value of an attribute.
type AttributeValue struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Attribute is a product attribute definition.
type Attribute struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	InputType     string           `json:"inputType"`
	ValueRequired bool             `json:"valueRequired"`
	Values        []AttributeValue `json:"values"`
}

// SelectedAttribute pairs an attribute with the values chosen for a product.
type SelectedAttribute struct {
	Attribute Attribute        `json:"attribute"`
	Values    []AttributeValue `json:"values"`
}

// Product is a catalogue product as the remote API returns it.
type Product struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	DescriptionJSON string              `json:"descriptionJson"`
	SEOTitle        string              `json:"seoTitle"`
	SEODescription  string              `json:"seoDescription"`
	Category        *Category           `json:"category"`
	Collections     []Collection        `json:"collections"`
	BasePrice       *Money              `json:"basePrice"`
	ChargeTaxes     bool                `json:"chargeTaxes"`
	IsPublished     bool                `json:"isPublished"`
	PublicationDate string              `json:"publicationDate"`
	ProductType     ProductType         `json:"productType"`
	Variants        []Variant           `json:"variants"`
	Images          []Image             `json:"images"`
	Attributes      []SelectedAttribute `json:"attributes"`
	Metadata        []MetadataEntry     `json:"metadata"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// Customer is a customer account as the remote API returns it.
type Customer struct {
	ID        string          `json:"id"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Email     string          `json:"email"`
	IsActive  bool            `json:"isActive"`
	Note      string          `json:"note"`
	Metadata  []MetadataEntry `json:"metadata"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
