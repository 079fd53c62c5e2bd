// This file provides the SQLite schema rebuilt on every attach.
package sqlite

// Schema DDL for all tables.
const (
	createProducts = `CREATE TABLE products (
    product_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    document TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createCustomers = `CREATE TABLE customers (
    customer_id TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    document TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createMetadata = `CREATE TABLE metadata (
    metadata_id TEXT PRIMARY KEY,
    entity_table TEXT NOT NULL,
    entity_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    meta_key TEXT NOT NULL,
    meta_value TEXT NOT NULL,
    created_at TEXT NOT NULL
);`
)

// Index DDL for common queries.
const (
	idxProductsName   = `CREATE INDEX idx_products_name ON products(name);`
	idxCustomersEmail = `CREATE INDEX idx_customers_email ON customers(email);`
	idxMetadataEntity = `CREATE INDEX idx_metadata_entity ON metadata(entity_table, entity_id, position);`
	idxMetadataKey    = `CREATE INDEX idx_metadata_key ON metadata(meta_key);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createProducts,
	createCustomers,
	createMetadata,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxProductsName,
	idxCustomersEmail,
	idxMetadataEntity,
	idxMetadataKey,
}
