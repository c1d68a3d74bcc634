package schema

import "strings"

// Family identifies a supported database family. The set is closed; the
// dialect rule table and the introspection factory are both keyed by it.
type Family string

const (
	FamilyPostgres  Family = "postgres"
	FamilyMySQL     Family = "mysql"
	FamilySQLServer Family = "sqlserver"
	FamilyOracle    Family = "oracle"
	FamilySnowflake Family = "snowflake"
	FamilyMongo     Family = "mongodb"
)

// ParseFamily maps driver/config names onto a Family. Aliases cover the
// driver names the connection registry accepts.
func ParseFamily(s string) (Family, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "postgres", "postgresql", "pgx":
		return FamilyPostgres, true
	case "mysql", "mariadb":
		return FamilyMySQL, true
	case "sqlserver", "mssql":
		return FamilySQLServer, true
	case "oracle":
		return FamilyOracle, true
	case "snowflake":
		return FamilySnowflake, true
	case "mongodb", "mongo":
		return FamilyMongo, true
	}
	return "", false
}

// UnifiedSchema is the normalized representation of one database,
// independent of the source family. It is built fresh per extraction and
// never mutated afterwards.
type UnifiedSchema struct {
	DatabaseName string
	Family       Family
	Tables       []Table
}

// TableKind distinguishes relational tables and views from document
// collections.
type TableKind string

const (
	KindTable      TableKind = "table"
	KindView       TableKind = "view"
	KindCollection TableKind = "collection"
)

type Table struct {
	Name     string
	Kind     TableKind
	RowCount *int64 // nil when the source does not report one
	Columns  []Column
}

// Column carries normalized per-column metadata. PrimaryKey is a heuristic:
// a name match or the source driver's flag, never a constraint lookup.
// Document stores have no constraint catalog at all and several relational
// drivers report constraints unreliably, so the heuristic is the documented
// behavior, not a shortcut.
type Column struct {
	Name       string
	RawType    string
	Nullable   bool
	PrimaryKey bool
	MaxLength  *int
	Precision  *int
	Scale      *int
}

// Column returns the named column, matched case-insensitively, or nil.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if strings.EqualFold(t.Columns[i].Name, name) {
			return &t.Columns[i]
		}
	}
	return nil
}

// IdentifierLike reports whether a column name looks like an entity
// identifier: "id" itself or anything ending in "id" ("patient_id",
// "visitid"). Loose on purpose; it backs anchor selection and projection.
func IdentifierLike(name string) bool {
	n := strings.ToLower(name)
	return n == "id" || strings.HasSuffix(n, "_id") || strings.HasSuffix(n, "id")
}
