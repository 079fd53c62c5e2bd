// Package customer maps customer accounts to the customer details form and
// back to update mutation variables.
package customer

import (
	"github.com/mesh-intelligence/metaform/internal/metadata"
	"github.com/mesh-intelligence/metaform/pkg/types"
)

// FormData is the state of the customer details form. The fees and
// discounts section lives in Metadata.
type FormData struct {
	FirstName string           `json:"firstName"`
	LastName  string           `json:"lastName"`
	Email     string           `json:"email"`
	IsActive  bool             `json:"isActive"`
	Note      string           `json:"note"`
	Metadata  *types.FormState `json:"metadata"`
}

// NewFormData builds the form state for c. A nil customer yields an
// all-default form.
func NewFormData(c *types.Customer, opts ...metadata.Option) FormData {
	if c == nil {
		return FormData{Metadata: metadata.Project(nil, metadata.CustomerRegistry(), opts...)}
	}
	return FormData{
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		IsActive:  c.IsActive,
		Note:      c.Note,
		Metadata:  metadata.Project(c.Metadata, metadata.CustomerRegistry(), opts...),
	}
}

// IsFee reports whether the flat fee applies.
func (f FormData) IsFee() bool { return f.Metadata.Bool(metadata.FieldIsFee) }

// DiscountValue returns the discount value as typed.
func (f FormData) DiscountValue() string { return f.Metadata.String(metadata.FieldDiscountValue) }

// DiscountCode returns the selected discount code type, or "".
func (f FormData) DiscountCode() string { return f.Metadata.String(metadata.FieldInputType) }
