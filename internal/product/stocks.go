package product

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/metaform/pkg/types"
)

// ErrInvalidQuantity is returned when a stock row's value is not a base-10
// integer.
var ErrInvalidQuantity = errors.New("invalid stock quantity")

// StockRow is one warehouse row of the stock formset. Value holds the
// quantity as typed.
type StockRow struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// StockInput is the mutation input for one warehouse's stock.
type StockInput struct {
	Quantity  int    `json:"quantity"`
	Warehouse string `json:"warehouse"`
}

// StockRows returns the stock formset for the product's first variant.
func StockRows(p *types.Product) []StockRow {
	if p == nil || len(p.Variants) == 0 {
		return []StockRow{}
	}
	stocks := p.Variants[0].Stocks
	out := make([]StockRow, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, StockRow{
			ID:    s.Warehouse.ID,
			Label: s.Warehouse.Name,
			Value: strconv.Itoa(s.Quantity),
		})
	}
	return out
}

// NewStockInput converts a formset row into a stock input.
func NewStockInput(row StockRow) (StockInput, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(row.Value), 10, 0)
	if err != nil {
		return StockInput{}, fmt.Errorf("%w: warehouse %s: %q", ErrInvalidQuantity, row.ID, row.Value)
	}
	return StockInput{Quantity: int(n), Warehouse: row.ID}, nil
}

func stockInputs(rows []StockRow) ([]StockInput, error) {
	out := make([]StockInput, 0, len(rows))
	for _, r := range rows {
		in, err := NewStockInput(r)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, nil
}
