package types

// Standard table names for Store.GetTable.
const (
	ProductsTable  = "products"
	CustomersTable = "customers"
	MetadataTable  = "metadata"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	ProductsTable,
	CustomersTable,
	MetadataTable,
}
