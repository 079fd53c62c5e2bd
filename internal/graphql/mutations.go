package graphql

import (
	"context"

	"github.com/mesh-intelligence/metaform/internal/customer"
	"github.com/mesh-intelligence/metaform/internal/product"
)

// Operation names.
const (
	OpProductUpdate       = "ProductUpdate"
	OpSimpleProductUpdate = "SimpleProductUpdate"
	OpProductImageReorder = "ProductImageReorder"
	OpProductImageCreate  = "ProductImageCreate"
	OpUpdateCustomer      = "UpdateCustomer"
)

const productUpdateMutation = `
mutation ProductUpdate($id: ID!, $attributes: [AttributeValueInput], $publicationDate: Date, $category: ID, $chargeTaxes: Boolean!, $collections: [ID], $descriptionJson: JSONString, $isPublished: Boolean!, $name: String, $basePrice: Decimal, $seo: SeoInput) {
	productUpdate(id: $id, input: {attributes: $attributes, publicationDate: $publicationDate, category: $category, chargeTaxes: $chargeTaxes, collections: $collections, descriptionJson: $descriptionJson, isPublished: $isPublished, name: $name, basePrice: $basePrice, seo: $seo}) {
		errors: productErrors { field message code }
		product { id }
	}
}`

const simpleProductUpdateMutation = `
mutation SimpleProductUpdate($id: ID!, $attributes: [AttributeValueInput], $publicationDate: Date, $category: ID, $chargeTaxes: Boolean!, $collections: [ID], $descriptionJson: JSONString, $isPublished: Boolean!, $name: String, $basePrice: Decimal, $seo: SeoInput, $productVariantId: ID!, $productVariantInput: ProductVariantInput!, $addStocks: [StockInput!]!, $deleteStocks: [ID!]!, $updateStocks: [StockInput!]!, $metadata: [MetadataInput!]!) {
	productUpdate(id: $id, input: {attributes: $attributes, publicationDate: $publicationDate, category: $category, chargeTaxes: $chargeTaxes, collections: $collections, descriptionJson: $descriptionJson, isPublished: $isPublished, name: $name, basePrice: $basePrice, seo: $seo}) {
		errors: productErrors { field message code }
	}
	productVariantUpdate(id: $productVariantId, input: $productVariantInput) {
		errors: productErrors { field message code }
	}
	productVariantStocksCreate(stocks: $addStocks, variantId: $productVariantId) {
		errors: bulkStockErrors { field message code }
	}
	productVariantStocksDelete(warehouseIds: $deleteStocks, variantId: $productVariantId) {
		errors: stockErrors { field message code }
	}
	productVariantStocksUpdate(stocks: $updateStocks, variantId: $productVariantId) {
		errors: bulkStockErrors { field message code }
	}
	updateMetadata(id: $id, input: $metadata) {
		errors: metadataErrors { field message code }
	}
}`

const productImageReorderMutation = `
mutation ProductImageReorder($productId: ID!, $imagesIds: [ID]!) {
	productImageReorder(productId: $productId, imagesIds: $imagesIds) {
		errors: productErrors { field message code }
	}
}`

const productImageCreateMutation = `
mutation ProductImageCreate($product: ID!, $image: Upload!, $alt: String) {
	productImageCreate(input: {alt: $alt, image: $image, product: $product}) {
		errors: productErrors { field message code }
	}
}`

const updateCustomerMutation = `
mutation UpdateCustomer($id: ID!, $input: CustomerInput!, $metadata: [MetadataInput!]!) {
	customerUpdate(id: $id, input: $input) {
		errors: accountErrors { field message code }
	}
	updateMetadata(id: $id, input: $metadata) {
		errors: metadataErrors { field message code }
	}
}`

// UpdateProduct sends a product update. Simple products go through the
// mutation that also writes stocks, the variant and metadata.
func (c *Client) UpdateProduct(ctx context.Context, u product.Update) error {
	if u.IsSimple() {
		return c.Execute(ctx, OpSimpleProductUpdate, simpleProductUpdateMutation, u.Simple, nil)
	}
	return c.Execute(ctx, OpProductUpdate, productUpdateMutation, u.Product, nil)
}

// ReorderImages sends an image reorder.
func (c *Client) ReorderImages(ctx context.Context, v product.ImageReorderVariables) error {
	return c.Execute(ctx, OpProductImageReorder, productImageReorderMutation, v, nil)
}

// CreateImage sends an image upload.
func (c *Client) CreateImage(ctx context.Context, v product.ImageCreateVariables) error {
	return c.Execute(ctx, OpProductImageCreate, productImageCreateMutation, v, nil)
}

// UpdateCustomer sends a customer update with its metadata.
func (c *Client) UpdateCustomer(ctx context.Context, v customer.UpdateVariables) error {
	return c.Execute(ctx, OpUpdateCustomer, updateCustomerMutation, v, nil)
}
