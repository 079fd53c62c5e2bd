package customer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/metaform/internal/metadata"
	"github.com/mesh-intelligence/metaform/pkg/types"
)

// ErrInvalidDiscount is returned when the discount value is not a
// non-negative number.
var ErrInvalidDiscount = errors.New("invalid discount value")

// UpdateInput holds the typed customer fields of the update mutation.
type UpdateInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	IsActive  bool   `json:"isActive"`
	Note      string `json:"note"`
}

// UpdateVariables are the variables of the customer update mutation.
type UpdateVariables struct {
	ID       string                `json:"id"`
	Input    UpdateInput           `json:"input"`
	Metadata []types.OutboundEntry `json:"metadata"`
}

// BuildUpdate assembles the update for c from the submitted form. The
// metadata list always carries every customer field. Metadata fields are
// checked against the customer registry first.
func BuildUpdate(c *types.Customer, data FormData) (UpdateVariables, error) {
	if c == nil {
		return UpdateVariables{}, types.ErrInvalidData
	}
	if err := metadata.Check(data.Metadata, metadata.CustomerRegistry()); err != nil {
		return UpdateVariables{}, err
	}
	if v := strings.TrimSpace(data.DiscountValue()); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil || d.IsNegative() {
			return UpdateVariables{}, fmt.Errorf("%w: %q", ErrInvalidDiscount, v)
		}
	}
	return UpdateVariables{
		ID: c.ID,
		Input: UpdateInput{
			FirstName: data.FirstName,
			LastName:  data.LastName,
			Email:     data.Email,
			IsActive:  data.IsActive,
			Note:      data.Note,
		},
		Metadata: metadata.Compose(data.Metadata, metadata.CustomerRegistry()),
	}, nil
}
