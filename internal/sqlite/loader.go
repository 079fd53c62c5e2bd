// This file loads the JSONL data files into a fresh SQLite database on attach.
package sqlite

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// jsonlTableMapping maps JSONL filenames to their SQLite tables and columns.
// Entity tables load before metadata.
var jsonlTableMapping = []struct {
	file    string
	table   string
	columns []string
}{
	{productsJSONL, "products", []string{"product_id", "name", "document", "updated_at"}},
	{customersJSONL, "customers", []string{"customer_id", "email", "document", "updated_at"}},
	{metadataJSONL, "metadata", []string{"metadata_id", "entity_table", "entity_id", "position", "meta_key", "meta_value", "created_at"}},
}

// loadAllJSONL reads each JSONL file from dataDir and inserts its records
// into the matching SQLite table in one transaction. Malformed lines and
// records that violate constraints are skipped; unknown fields are ignored.
// Returns the number of records inserted.
func loadAllJSONL(db *sql.DB, dataDir string) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	total := 0
	for _, mapping := range jsonlTableMapping {
		records, _, err := readJSONL(filepath.Join(dataDir, mapping.file))
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", mapping.file, err)
		}
		if len(records) == 0 {
			continue
		}
		n, err := insertRecords(tx, mapping.table, mapping.columns, records)
		if err != nil {
			return 0, fmt.Errorf("loading %s into %s: %w", mapping.file, mapping.table, err)
		}
		total += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing load transaction: %w", err)
	}
	return total, nil
}

// insertRecords inserts parsed JSONL records into a SQLite table. Only the
// listed columns are read; nested JSON values are stored as their raw text.
func insertRecords(tx *sql.Tx, table string, columns []string, records []json.RawMessage) (int, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	insertSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), placeholders,
	)

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return 0, fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	defer stmt.Close()

	inserted := 0
	for _, rec := range records {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(rec, &obj); err != nil {
			continue
		}

		args := make([]any, len(columns))
		for i, col := range columns {
			args[i] = columnValue(obj[col])
		}

		if _, err := stmt.Exec(args...); err != nil {
			continue
		}
		inserted++
	}
	return inserted, nil
}

// columnValue converts a raw JSON field into a SQLite argument. Strings are
// unquoted, numbers pass through, objects and arrays keep their JSON text.
func columnValue(raw json.RawMessage) any {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		return s
	case '{', '[':
		return string(raw)
	case 't', 'f':
		return bytes.Equal(raw, []byte("true"))
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil
		}
		if i, err := n.Int64(); err == nil {
			return i
		}
		return n.String()
	}
}
