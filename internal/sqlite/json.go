// JSON record structures for SQLite backend persistence.
// These structures define the JSONL record format for data files.
package sqlite

import "encoding/json"

// JSON record structures that mirror the JSONL file format.

// productJSON represents a product in products.jsonl. Document holds the
// product without its metadata, which lives in metadata.jsonl.
type productJSON struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Document  json.RawMessage `json:"document"`
	UpdatedAt string          `json:"updated_at"`
}

// customerJSON represents a customer in customers.jsonl.
type customerJSON struct {
	CustomerID string          `json:"customer_id"`
	Email      string          `json:"email"`
	Document   json.RawMessage `json:"document"`
	UpdatedAt  string          `json:"updated_at"`
}

// metadataJSON represents one metadata entry in metadata.jsonl.
type metadataJSON struct {
	MetadataID  string `json:"metadata_id"`
	EntityTable string `json:"entity_table"`
	EntityID    string `json:"entity_id"`
	Position    int    `json:"position"`
	MetaKey     string `json:"meta_key"`
	MetaValue   string `json:"meta_value"`
	CreatedAt   string `json:"created_at"`
}
