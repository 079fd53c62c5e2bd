// Package submit executes product and customer mutations against either the
// remote API or the local store.
package submit

import (
	"context"

	"github.com/mesh-intelligence/metaform/internal/customer"
	"github.com/mesh-intelligence/metaform/internal/graphql"
	"github.com/mesh-intelligence/metaform/internal/product"
)

// Executor runs mutations. Each call is one atomic submit.
type Executor interface {
	UpdateProduct(ctx context.Context, u product.Update) error
	ReorderImages(ctx context.Context, v product.ImageReorderVariables) error
	CreateImage(ctx context.Context, v product.ImageCreateVariables) error
	UpdateCustomer(ctx context.Context, v customer.UpdateVariables) error
}

var (
	_ Executor = (*graphql.Client)(nil)
	_ Executor = (*Local)(nil)
)
