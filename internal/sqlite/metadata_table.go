// This file implements metadata storage: the ordered key/value list attached
// to each product and customer, and the metadata table accessor.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mesh-intelligence/metaform/pkg/types"
)

const metadataColumns = "metadata_id, entity_table, entity_id, position, meta_key, meta_value, created_at"

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// loadMetadata returns an entity's metadata in stored order. The result is
// empty, not nil, when the entity has none.
func loadMetadata(q querier, entityTable, entityID string) ([]types.MetadataEntry, error) {
	rows, err := q.Query(
		"SELECT meta_key, meta_value FROM metadata WHERE entity_table = ? AND entity_id = ? ORDER BY position ASC",
		entityTable, entityID,
	)
	if err != nil {
		return nil, fmt.Errorf("loading metadata for %s %s: %w", entityTable, entityID, err)
	}
	defer rows.Close()

	md := []types.MetadataEntry{}
	for rows.Next() {
		var e types.MetadataEntry
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			return nil, fmt.Errorf("scanning metadata: %w", err)
		}
		md = append(md, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating metadata: %w", err)
	}
	return md, nil
}

// replaceMetadata swaps an entity's metadata list for entries, keeping their
// order. The caller owns the transaction.
func replaceMetadata(tx *sql.Tx, entityTable, entityID string, entries []types.MetadataEntry, now time.Time) error {
	if _, err := tx.Exec("DELETE FROM metadata WHERE entity_table = ? AND entity_id = ?", entityTable, entityID); err != nil {
		return fmt.Errorf("clearing metadata: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	stmt, err := tx.Prepare("INSERT INTO metadata (" + metadataColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing metadata insert: %w", err)
	}
	defer stmt.Close()

	createdAt := now.Format(time.RFC3339)
	for i, e := range entries {
		if _, err := stmt.Exec(newUUID(), entityTable, entityID, i, e.Key, e.Value, createdAt); err != nil {
			return fmt.Errorf("inserting metadata %q: %w", e.Key, err)
		}
	}
	return nil
}

// getMetadata retrieves a single metadata record by ID.
func (t *table) getMetadata(id string) (any, error) {
	row := t.backend.db.QueryRow("SELECT "+metadataColumns+" FROM metadata WHERE metadata_id = ?", id)
	m, err := hydrateMetadata(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting metadata %s: %w", id, err)
	}
	return m, nil
}

// setMetadata creates or updates one metadata record. New records are
// appended after the entity's existing entries; updates change the key and
// value in place.
func (t *table) setMetadata(id string, data any) (string, error) {
	m, ok := data.(*types.MetadataRecord)
	if !ok || m == nil {
		return "", types.ErrInvalidData
	}
	if m.Key == "" {
		return "", types.ErrInvalidKey
	}
	var kind entityKind
	switch m.EntityTable {
	case types.ProductsTable:
		kind = productKind
	case types.CustomersTable:
		kind = customerKind
	default:
		return "", types.ErrInvalidData
	}

	var one int
	err := t.backend.db.QueryRow(
		fmt.Sprintf("SELECT 1 FROM %s WHERE %s = ?", kind.table, kind.idCol), m.EntityID,
	).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", types.ErrNotFound
		}
		return "", fmt.Errorf("checking %s existence: %w", kind.table, err)
	}

	if id == "" {
		id = newUUID()
	}

	existing, err := t.getMetadata(id)
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		return "", err
	}

	tx, err := t.backend.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if prev, ok := existing.(*types.MetadataRecord); ok {
		_, err = tx.Exec(
			"UPDATE metadata SET meta_key = ?, meta_value = ? WHERE metadata_id = ?",
			m.Key, m.Value, id,
		)
		m.Position = prev.Position
		m.CreatedAt = prev.CreatedAt
	} else {
		var next int
		if err := tx.QueryRow(
			"SELECT COALESCE(MAX(position) + 1, 0) FROM metadata WHERE entity_table = ? AND entity_id = ?",
			m.EntityTable, m.EntityID,
		).Scan(&next); err != nil {
			return "", fmt.Errorf("finding metadata position: %w", err)
		}
		m.Position = next
		m.CreatedAt = time.Now().UTC().Truncate(time.Second)
		_, err = tx.Exec(
			"INSERT INTO metadata ("+metadataColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
			id, m.EntityTable, m.EntityID, m.Position, m.Key, m.Value, m.CreatedAt.Format(time.RFC3339),
		)
	}
	if err != nil {
		return "", fmt.Errorf("persisting metadata: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing metadata: %w", err)
	}
	m.MetadataID = id

	if err := t.persistMetadataJSONL(); err != nil {
		return "", err
	}
	return id, nil
}

// deleteMetadata removes one metadata record.
func (t *table) deleteMetadata(id string) error {
	res, err := t.backend.db.Exec("DELETE FROM metadata WHERE metadata_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting metadata: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting metadata: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return t.persistMetadataJSONL()
}

// fetchMetadata supports filters "entity_table", "entity_id" and "key"
// (string), "limit" and "offset" (int). Results are ordered by entity, then
// position.
func (t *table) fetchMetadata(filter map[string]any) ([]any, error) {
	var conditions []string
	var args []any
	for _, f := range []struct{ filter, column string }{
		{"entity_table", "entity_table"},
		{"entity_id", "entity_id"},
		{"key", "meta_key"},
	} {
		s, ok, err := filterString(filter, f.filter)
		if err != nil {
			return nil, err
		}
		if ok {
			conditions = append(conditions, f.column+" = ?")
			args = append(args, s)
		}
	}

	query := "SELECT " + metadataColumns + " FROM metadata"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY entity_table ASC, entity_id ASC, position ASC"
	limit, err := filterInt(filter, "limit")
	if err != nil {
		return nil, err
	}
	offset, err := filterInt(filter, "offset")
	if err != nil {
		return nil, err
	}
	query += pageClause(limit, offset)

	rows, err := t.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching metadata: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		m, err := hydrateMetadata(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating metadata: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating metadata: %w", err)
	}
	return results, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// hydrateMetadata converts a row into a *types.MetadataRecord.
func hydrateMetadata(row scanner) (*types.MetadataRecord, error) {
	var m types.MetadataRecord
	var createdAt string
	if err := row.Scan(&m.MetadataID, &m.EntityTable, &m.EntityID, &m.Position, &m.Key, &m.Value, &createdAt); err != nil {
		return nil, err
	}
	var err error
	m.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &m, nil
}

// persistMetadataJSONL rewrites metadata.jsonl from SQLite.
func (t *table) persistMetadataJSONL() error {
	rows, err := t.backend.db.Query(
		"SELECT " + metadataColumns + " FROM metadata ORDER BY entity_table, entity_id, position",
	)
	if err != nil {
		return fmt.Errorf("reading metadata for JSONL: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var rec metadataJSON
		if err := rows.Scan(&rec.MetadataID, &rec.EntityTable, &rec.EntityID, &rec.Position,
			&rec.MetaKey, &rec.MetaValue, &rec.CreatedAt); err != nil {
			return fmt.Errorf("scanning metadata for JSONL: %w", err)
		}
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding metadata record: %w", err)
		}
		records = append(records, b)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if err := writeJSONL(filepath.Join(t.backend.dataDir, metadataJSONL), records); err != nil {
		return fmt.Errorf("persisting %s: %w", metadataJSONL, err)
	}
	return nil
}
