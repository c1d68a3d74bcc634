package dialect

// Introspector abstracts the catalog queries and statement syntax of one
// SQL family. Every ColumnsQuery must yield the same eight columns in the
// same order: table name, column name, data type, character max length,
// numeric precision, numeric scale, nullable flag ('YES'/'NO'), and key
// marker ('PRI' for primary key columns, empty otherwise). TablesQuery
// yields table name and kind ('BASE TABLE' or 'VIEW').
type Introspector interface {
	TablesQuery(schema string) string
	ColumnsQuery(schema string) string

	// DefaultSchema resolves an empty configured schema to the family's
	// conventional default ("public", "dbo", ...).
	DefaultSchema(configured string) string

	// Placeholder returns the bind-parameter token for a 0-based index:
	// ?, $1, @p1, :1 depending on the family.
	Placeholder(index int) string

	// InsertQuery builds the parameterized insert used by the demo seeder.
	InsertQuery(table string, cols []string) string

	// CreateTableQuery renders a minimal CREATE TABLE for the demo seeder.
	CreateTableQuery(table string, colDefs []string) string
}
