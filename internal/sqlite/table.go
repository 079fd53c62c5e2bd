// This file provides the shared table accessor: routing by table name,
// document storage and filter helpers.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mesh-intelligence/metaform/pkg/types"
)

// table implements types.Table for a single entity type.
type table struct {
	name    string   // Table name (e.g. "products").
	backend *Backend // Parent backend for DB access and JSONL writes.
}

var _ types.Table = (*table)(nil)

func newTable(b *Backend, name string) *table {
	return &table{name: name, backend: b}
}

// Get retrieves an entity by ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if not found.
func (t *table) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()
	if !t.backend.attached {
		return nil, types.ErrStoreDetached
	}

	switch t.name {
	case types.ProductsTable:
		return t.getProduct(id)
	case types.CustomersTable:
		return t.getCustomer(id)
	case types.MetadataTable:
		return t.getMetadata(id)
	default:
		return nil, types.ErrTableNotFound
	}
}

// Set creates or updates an entity. If id is empty, the entity's own ID is
// used, and a UUID v7 is generated when that is empty too.
func (t *table) Set(id string, data any) (string, error) {
	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()
	if !t.backend.attached {
		return "", types.ErrStoreDetached
	}

	switch t.name {
	case types.ProductsTable:
		return t.setProduct(id, data)
	case types.CustomersTable:
		return t.setCustomer(id, data)
	case types.MetadataTable:
		return t.setMetadata(id, data)
	default:
		return "", types.ErrTableNotFound
	}
}

// Delete removes an entity by ID. Deleting a product or customer removes its
// metadata too. Returns ErrInvalidID if id is empty, ErrNotFound if not found.
func (t *table) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()
	if !t.backend.attached {
		return types.ErrStoreDetached
	}

	switch t.name {
	case types.ProductsTable:
		return t.deleteEntity(productKind, id)
	case types.CustomersTable:
		return t.deleteEntity(customerKind, id)
	case types.MetadataTable:
		return t.deleteMetadata(id)
	default:
		return types.ErrTableNotFound
	}
}

// Fetch returns entities matching the filter. Empty filter matches all.
func (t *table) Fetch(filter map[string]any) ([]any, error) {
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()
	if !t.backend.attached {
		return nil, types.ErrStoreDetached
	}

	switch t.name {
	case types.ProductsTable:
		return t.fetchProducts(filter)
	case types.CustomersTable:
		return t.fetchCustomers(filter)
	case types.MetadataTable:
		return t.fetchMetadata(filter)
	default:
		return nil, types.ErrTableNotFound
	}
}

// entityKind describes how a document-backed entity is stored.
type entityKind struct {
	table    string // SQL table, also the Table name and metadata entity_table.
	idCol    string
	labelCol string
	file     string
}

var (
	productKind  = entityKind{types.ProductsTable, "product_id", "name", productsJSONL}
	customerKind = entityKind{types.CustomersTable, "customer_id", "email", customersJSONL}
)

// documentRow is one stored entity before it is decoded.
type documentRow struct {
	id        string
	document  []byte
	updatedAt time.Time
}

// getDocument loads one entity row. Returns ErrNotFound if absent.
func (t *table) getDocument(k entityKind, id string) (documentRow, error) {
	var doc, updatedAt string
	err := t.backend.db.QueryRow(
		fmt.Sprintf("SELECT document, updated_at FROM %s WHERE %s = ?", k.table, k.idCol), id,
	).Scan(&doc, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return documentRow{}, types.ErrNotFound
		}
		return documentRow{}, fmt.Errorf("getting %s %s: %w", k.table, id, err)
	}
	row := documentRow{id: id, document: []byte(doc)}
	row.updatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return documentRow{}, fmt.Errorf("parsing updated_at: %w", err)
	}
	return row, nil
}

// pageClause renders LIMIT/OFFSET. SQLite accepts OFFSET only after LIMIT;
// LIMIT -1 means no limit.
func pageClause(limit, offset int) string {
	switch {
	case limit > 0 && offset > 0:
		return fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	case limit > 0:
		return fmt.Sprintf(" LIMIT %d", limit)
	case offset > 0:
		return fmt.Sprintf(" LIMIT -1 OFFSET %d", offset)
	}
	return ""
}

// fetchDocuments loads entity rows ordered by label then id.
func (t *table) fetchDocuments(k entityKind, where string, args []any, limit, offset int) ([]documentRow, error) {
	query := fmt.Sprintf("SELECT %s, document, updated_at FROM %s", k.idCol, k.table)
	if where != "" {
		query += " WHERE " + where
	}
	query += fmt.Sprintf(" ORDER BY %s ASC, %s ASC", k.labelCol, k.idCol)
	query += pageClause(limit, offset)

	rows, err := t.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", k.table, err)
	}
	defer rows.Close()

	var out []documentRow
	for rows.Next() {
		var id, doc, updatedAt string
		if err := rows.Scan(&id, &doc, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", k.table, err)
		}
		ts, err := time.Parse(time.RFC3339, updatedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		out = append(out, documentRow{id: id, document: []byte(doc), updatedAt: ts})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", k.table, err)
	}
	return out, nil
}

// putDocument upserts an entity row and replaces its metadata list in one
// transaction, then rewrites the entity and metadata JSONL files.
func (t *table) putDocument(k entityKind, id, label string, doc []byte, now time.Time, md []types.MetadataEntry) error {
	tx, err := t.backend.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		fmt.Sprintf(
			"INSERT INTO %[1]s (%[2]s, %[3]s, document, updated_at) VALUES (?, ?, ?, ?) "+
				"ON CONFLICT(%[2]s) DO UPDATE SET %[3]s = excluded.%[3]s, document = excluded.document, updated_at = excluded.updated_at",
			k.table, k.idCol, k.labelCol,
		),
		id, label, string(doc), now.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("persisting %s: %w", k.table, err)
	}

	if err := replaceMetadata(tx, k.table, id, md, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s: %w", k.table, err)
	}

	if err := t.persistEntityJSONL(k); err != nil {
		return err
	}
	return t.persistMetadataJSONL()
}

// deleteEntity removes an entity row and its metadata.
func (t *table) deleteEntity(k entityKind, id string) error {
	tx, err := t.backend.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", k.table, k.idCol), id)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", k.table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting %s: %w", k.table, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	if _, err := tx.Exec("DELETE FROM metadata WHERE entity_table = ? AND entity_id = ?", k.table, id); err != nil {
		return fmt.Errorf("deleting metadata: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s deletion: %w", k.table, err)
	}

	if err := t.persistEntityJSONL(k); err != nil {
		return err
	}
	return t.persistMetadataJSONL()
}

// persistEntityJSONL rewrites the entity's JSONL file from SQLite.
func (t *table) persistEntityJSONL(k entityKind) error {
	rows, err := t.backend.db.Query(fmt.Sprintf(
		"SELECT %s, %s, document, updated_at FROM %s ORDER BY %s",
		k.idCol, k.labelCol, k.table, k.idCol,
	))
	if err != nil {
		return fmt.Errorf("reading %s for JSONL: %w", k.table, err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var id, label, doc, updatedAt string
		if err := rows.Scan(&id, &label, &doc, &updatedAt); err != nil {
			return fmt.Errorf("scanning %s for JSONL: %w", k.table, err)
		}
		var rec any
		switch k.table {
		case types.CustomersTable:
			rec = customerJSON{CustomerID: id, Email: label, Document: json.RawMessage(doc), UpdatedAt: updatedAt}
		default:
			rec = productJSON{ProductID: id, Name: label, Document: json.RawMessage(doc), UpdatedAt: updatedAt}
		}
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding %s record: %w", k.table, err)
		}
		records = append(records, b)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if err := writeJSONL(filepath.Join(t.backend.dataDir, k.file), records); err != nil {
		return fmt.Errorf("persisting %s: %w", k.file, err)
	}
	return nil
}

// filterString reads an optional string filter value.
func filterString(filter map[string]any, key string) (string, bool, error) {
	v, ok := filter[key]
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, types.ErrInvalidFilter
	}
	return s, true, nil
}

// filterInt reads an optional int filter value.
func filterInt(filter map[string]any, key string) (int, error) {
	v, ok := filter[key]
	if !ok {
		return 0, nil
	}
	n, ok := v.(int)
	if !ok {
		return 0, types.ErrInvalidFilter
	}
	return n, nil
}
