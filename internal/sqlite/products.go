// This file implements the products table accessor for the SQLite backend.
package sqlite

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/metaform/pkg/types"
)

// getProduct hydrates a product and its metadata list.
func (t *table) getProduct(id string) (any, error) {
	row, err := t.getDocument(productKind, id)
	if err != nil {
		return nil, err
	}
	return t.hydrateProduct(row)
}

func (t *table) hydrateProduct(row documentRow) (*types.Product, error) {
	var p types.Product
	if err := json.Unmarshal(row.document, &p); err != nil {
		return nil, fmt.Errorf("decoding product %s: %w", row.id, err)
	}
	p.ID = row.id
	p.UpdatedAt = row.updatedAt
	md, err := loadMetadata(t.backend.db, types.ProductsTable, row.id)
	if err != nil {
		return nil, err
	}
	p.Metadata = md
	return &p, nil
}

// setProduct upserts a product. Images without an ID get a UUID v7.
func (t *table) setProduct(id string, data any) (string, error) {
	p, ok := data.(*types.Product)
	if !ok || p == nil {
		return "", types.ErrInvalidData
	}
	if strings.TrimSpace(p.Name) == "" {
		return "", types.ErrInvalidName
	}
	if id == "" {
		id = p.ID
	}
	if id == "" {
		id = newUUID()
	}

	now := time.Now().UTC().Truncate(time.Second)
	p.ID = id
	p.UpdatedAt = now
	for i := range p.Images {
		if p.Images[i].ID == "" {
			p.Images[i].ID = newUUID()
		}
	}

	doc := *p
	doc.Metadata = nil
	b, err := json.Marshal(&doc)
	if err != nil {
		return "", fmt.Errorf("encoding product: %w", err)
	}

	if err := t.putDocument(productKind, id, p.Name, b, now, p.Metadata); err != nil {
		return "", err
	}
	return id, nil
}

// fetchProducts supports filters "name_contains" (string), "limit" and
// "offset" (int).
func (t *table) fetchProducts(filter map[string]any) ([]any, error) {
	var where string
	var args []any
	if s, ok, err := filterString(filter, "name_contains"); err != nil {
		return nil, err
	} else if ok {
		where = "name LIKE ? COLLATE NOCASE"
		args = append(args, "%"+s+"%")
	}
	limit, err := filterInt(filter, "limit")
	if err != nil {
		return nil, err
	}
	offset, err := filterInt(filter, "offset")
	if err != nil {
		return nil, err
	}

	rows, err := t.fetchDocuments(productKind, where, args, limit, offset)
	if err != nil {
		return nil, err
	}
	results := make([]any, 0, len(rows))
	for _, row := range rows {
		p, err := t.hydrateProduct(row)
		if err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, nil
}
