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

// Submitter turns submitted forms into mutations and runs them.
type Submitter struct {
	exec   Executor
	logger *zap.Logger
}

// NewSubmitter returns a Submitter over exec.
func NewSubmitter(exec Executor, logger *zap.Logger) *Submitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Submitter{exec: exec, logger: logger}
}

// Product submits the product form. The update is built from data as it
// stands now; nothing is cached between calls.
func (s *Submitter) Product(ctx context.Context, p *types.Product, data product.SubmitData) (product.Update, error) {
	u, err := product.BuildUpdate(p, data)
	if err != nil {
		return product.Update{}, err
	}
	s.report(types.ProductsTable, p.ID, p.Metadata, metadata.ProductRegistry())
	if !u.IsSimple() {
		s.logger.Debug("product has variants, metadata not sent", zap.String("id", p.ID))
	}
	if err := s.exec.UpdateProduct(ctx, u); err != nil {
		return product.Update{}, fmt.Errorf("updating product %s: %w", p.ID, err)
	}
	return u, nil
}

// Customer submits the customer form.
func (s *Submitter) Customer(ctx context.Context, c *types.Customer, data customer.FormData) (customer.UpdateVariables, error) {
	vars, err := customer.BuildUpdate(c, data)
	if err != nil {
		return customer.UpdateVariables{}, err
	}
	s.report(types.CustomersTable, c.ID, c.Metadata, metadata.CustomerRegistry())
	if err := s.exec.UpdateCustomer(ctx, vars); err != nil {
		return customer.UpdateVariables{}, fmt.Errorf("updating customer %s: %w", c.ID, err)
	}
	return vars, nil
}

// ReorderImages moves one of the product's images.
func (s *Submitter) ReorderImages(ctx context.Context, p *types.Product, oldIndex, newIndex int) (product.ImageReorderVariables, error) {
	v, err := product.ReorderImages(p, oldIndex, newIndex)
	if err != nil {
		return product.ImageReorderVariables{}, err
	}
	if err := s.exec.ReorderImages(ctx, v); err != nil {
		return product.ImageReorderVariables{}, fmt.Errorf("reordering images of %s: %w", p.ID, err)
	}
	return v, nil
}

// UploadImage adds an image to the product.
func (s *Submitter) UploadImage(ctx context.Context, productID, image string) error {
	if err := s.exec.CreateImage(ctx, product.ImageCreate(productID, image)); err != nil {
		return fmt.Errorf("uploading image to %s: %w", productID, err)
	}
	return nil
}

// report logs metadata the form does not represent.
func (s *Submitter) report(table, id string, md []types.MetadataEntry, reg *metadata.Registry) {
	r := metadata.Inspect(md, reg)
	if r.Clean() {
		return
	}
	s.logger.Info("metadata not represented by the form",
		zap.String("table", table),
		zap.String("id", id),
		zap.Strings("unregistered", r.Unregistered),
		zap.Strings("shadowed", r.Shadowed),
		zap.Strings("malformed", r.Malformed),
		zap.Strings("missing", r.Missing),
	)
}
