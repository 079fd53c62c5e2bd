// This file implements the customers table accessor for the SQLite backend.
package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mesh-intelligence/metaform/pkg/types"
)

// getCustomer hydrates a customer and its metadata list.
func (t *table) getCustomer(id string) (any, error) {
	row, err := t.getDocument(customerKind, id)
	if err != nil {
		return nil, err
	}
	return t.hydrateCustomer(row)
}

func (t *table) hydrateCustomer(row documentRow) (*types.Customer, error) {
	var c types.Customer
	if err := json.Unmarshal(row.document, &c); err != nil {
		return nil, fmt.Errorf("decoding customer %s: %w", row.id, err)
	}
	c.ID = row.id
	c.UpdatedAt = row.updatedAt
	md, err := loadMetadata(t.backend.db, types.CustomersTable, row.id)
	if err != nil {
		return nil, err
	}
	c.Metadata = md
	return &c, nil
}

// setCustomer upserts a customer.
func (t *table) setCustomer(id string, data any) (string, error) {
	c, ok := data.(*types.Customer)
	if !ok || c == nil {
		return "", types.ErrInvalidData
	}
	if id == "" {
		id = c.ID
	}
	if id == "" {
		id = newUUID()
	}

	now := time.Now().UTC().Truncate(time.Second)
	c.ID = id
	c.UpdatedAt = now

	doc := *c
	doc.Metadata = nil
	b, err := json.Marshal(&doc)
	if err != nil {
		return "", fmt.Errorf("encoding customer: %w", err)
	}

	if err := t.putDocument(customerKind, id, c.Email, b, now, c.Metadata); err != nil {
		return "", err
	}
	return id, nil
}

// fetchCustomers supports filters "email" (exact string), "limit" and
// "offset" (int).
func (t *table) fetchCustomers(filter map[string]any) ([]any, error) {
	var where string
	var args []any
	if s, ok, err := filterString(filter, "email"); err != nil {
		return nil, err
	} else if ok {
		where = "email = ? COLLATE NOCASE"
		args = append(args, s)
	}
	limit, err := filterInt(filter, "limit")
	if err != nil {
		return nil, err
	}
	offset, err := filterInt(filter, "offset")
	if err != nil {
		return nil, err
	}

	rows, err := t.fetchDocuments(customerKind, where, args, limit, offset)
	if err != nil {
		return nil, err
	}
	results := make([]any, 0, len(rows))
	for _, row := range rows {
		c, err := t.hydrateCustomer(row)
		if err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, nil
}
