// Package introspect performs the live catalog scans whose output feeds
// the schema normalizer. All network I/O of the core pipeline lives here;
// everything downstream is a pure transform.
package introspect

import (
	"context"
	"database/sql"

	"medquery/internal/dialect"
	"medquery/internal/schema"
)

// Analyze scans the catalog of a live SQL database into the flat raw shape
// the normalizer consumes. Any catalog failure comes back wrapped in an
// IntrospectionError.
func Analyze(ctx context.Context, db *sql.DB, intro dialect.Introspector, family schema.Family, dbName, schemaName string) (schema.RawSchema, error) {
	raw := schema.RawSchema{DatabaseName: dbName}
	target := intro.DefaultSchema(schemaName)

	rows, err := db.QueryContext(ctx, intro.TablesQuery(target), target)
	if err != nil {
		return raw, &schema.IntrospectionError{Family: family, Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var name, kind sql.NullString
		if err := rows.Scan(&name, &kind); err != nil {
			return raw, &schema.IntrospectionError{Family: family, Err: err}
		}
		if !name.Valid {
			continue
		}
		raw.Tables = append(raw.Tables, schema.RawTable{
			Name: name.String,
			Kind: kind.String,
		})
	}
	if err := rows.Err(); err != nil {
		return raw, &schema.IntrospectionError{Family: family, Err: err}
	}

	colRows, err := db.QueryContext(ctx, intro.ColumnsQuery(target), target)
	if err != nil {
		return raw, &schema.IntrospectionError{Family: family, Err: err}
	}
	defer colRows.Close()

	for colRows.Next() {
		var tName, cName, dType, isNull, key sql.NullString
		var maxLen, precision, scale sql.NullInt64

		if err := colRows.Scan(&tName, &cName, &dType, &maxLen, &precision, &scale, &isNull, &key); err != nil {
			return raw, &schema.IntrospectionError{Family: family, Err: err}
		}
		if !tName.Valid || !cName.Valid {
			continue // skip malformed catalog rows
		}

		raw.Columns = append(raw.Columns, schema.RawColumn{
			TableName: tName.String,
			Name:      cName.String,
			DataType:  dType.String,
			MaxLength: intPtr(maxLen),
			Precision: intPtr(precision),
			Scale:     intPtr(scale),
			Nullable:  isNull.String == "YES",
			Key:       key.String,
		})
	}
	if err := colRows.Err(); err != nil {
		return raw, &schema.IntrospectionError{Family: family, Err: err}
	}

	return raw, nil
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
