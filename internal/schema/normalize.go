package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptySchema is returned when the source reports zero tables or
// collections. A table with zero columns is not an error; it is kept.
var ErrEmptySchema = errors.New("schema contains no tables")

// IntrospectionError wraps a failure of the underlying catalog query.
type IntrospectionError struct {
	Family Family
	Err    error
}

func (e *IntrospectionError) Error() string {
	return fmt.Sprintf("introspection failed (%s): %v", e.Family, e.Err)
}

func (e *IntrospectionError) Unwrap() error { return e.Err }

// RawTable and RawColumn are the flat shape the catalog scan produces.
// Columns reference their table by name; Normalize does the grouping.
type RawTable struct {
	Name     string
	Kind     string // "BASE TABLE", "VIEW", driver spellings vary
	RowCount *int64
}

type RawColumn struct {
	TableName string
	Name      string
	DataType  string
	MaxLength *int
	Precision *int
	Scale     *int
	Nullable  bool
	Key       string // "PRI" when the driver flags a primary key
}

// RawSchema is the introspection result before normalization.
type RawSchema struct {
	DatabaseName string
	Tables       []RawTable
	Columns      []RawColumn
}

// Normalize groups flat catalog rows into a UnifiedSchema. Table order
// follows the raw table order; column order follows the raw column order.
// Primary keys are inferred per table (driver flag first, then name
// heuristics) so that at most one column per table carries the flag.
func Normalize(raw RawSchema, family Family) (*UnifiedSchema, error) {
	if len(raw.Tables) == 0 {
		return nil, ErrEmptySchema
	}

	// Normalized keys for case-insensitive lookup; Oracle and Snowflake
	// report upper-cased names.
	index := make(map[string]int, len(raw.Tables))
	tables := make([]Table, 0, len(raw.Tables))
	for _, rt := range raw.Tables {
		tables = append(tables, Table{
			Name:     rt.Name,
			Kind:     tableKind(rt.Kind),
			RowCount: rt.RowCount,
		})
		index[strings.ToUpper(rt.Name)] = len(tables) - 1
	}

	for _, rc := range raw.Columns {
		i, ok := index[strings.ToUpper(rc.TableName)]
		if !ok {
			continue // column for a table the source did not list
		}
		tables[i].Columns = append(tables[i].Columns, Column{
			Name:      rc.Name,
			RawType:   canonicalType(rc.DataType, rc.MaxLength, rc.Precision, rc.Scale),
			Nullable:  rc.Nullable,
			MaxLength: rc.MaxLength,
			Precision: rc.Precision,
			Scale:     rc.Scale,
		})
	}

	for i := range tables {
		markPrimaryKey(&tables[i], raw.Columns)
	}

	return &UnifiedSchema{
		DatabaseName: raw.DatabaseName,
		Family:       family,
		Tables:       tables,
	}, nil
}

func tableKind(s string) TableKind {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "VIEW":
		return KindView
	case "COLLECTION":
		return KindCollection
	default:
		return KindTable
	}
}

// canonicalType renders one canonical string per column type: character
// types carry their declared length, fixed numerics their precision and
// scale.
func canonicalType(dataType string, maxLen, precision, scale *int) string {
	t := strings.ToLower(strings.TrimSpace(dataType))
	switch {
	case maxLen != nil && *maxLen > 0 && isCharType(t):
		return fmt.Sprintf("%s(%d)", t, *maxLen)
	case precision != nil && *precision > 0 && isNumericType(t):
		if scale != nil && *scale > 0 {
			return fmt.Sprintf("%s(%d,%d)", t, *precision, *scale)
		}
		return fmt.Sprintf("%s(%d)", t, *precision)
	default:
		return t
	}
}

func isCharType(t string) bool {
	return strings.Contains(t, "char") || t == "text" || t == "string"
}

func isNumericType(t string) bool {
	return t == "numeric" || t == "decimal" || t == "number"
}

// markPrimaryKey flags at most one column per table. Driver flag wins;
// otherwise "id", then "<singular>_id"/"<singular>id", then the first
// column ending in "_id". Constraint catalogs are deliberately not
// consulted; several drivers report them unreliably and document stores
// have none.
func markPrimaryKey(t *Table, raw []RawColumn) {
	for _, rc := range raw {
		if strings.EqualFold(rc.TableName, t.Name) && strings.Contains(strings.ToUpper(rc.Key), "PRI") {
			if c := t.Column(rc.Name); c != nil {
				c.PrimaryKey = true
				return
			}
		}
	}

	sing := Singular(t.Name)
	candidates := []func(string) bool{
		func(n string) bool { return n == "id" },
		func(n string) bool { return n == sing+"_id" || n == sing+"id" },
		func(n string) bool { return strings.HasSuffix(n, "_id") },
	}
	for _, match := range candidates {
		for i := range t.Columns {
			if match(strings.ToLower(t.Columns[i].Name)) {
				t.Columns[i].PrimaryKey = true
				return
			}
		}
	}
}

// Singular strips a naive English plural from a table name, lower-cased.
func Singular(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.HasSuffix(n, "ies"):
		return strings.TrimSuffix(n, "ies") + "y"
	case strings.HasSuffix(n, "ses"):
		return strings.TrimSuffix(n, "es")
	case strings.HasSuffix(n, "s") && !strings.HasSuffix(n, "ss"):
		return strings.TrimSuffix(n, "s")
	default:
		return n
	}
}

// Plural is the inverse guess used when turning a foreign identifier column
// into a referenced table name.
func Plural(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.HasSuffix(n, "y") && len(n) > 1 && !isVowel(n[len(n)-2]):
		return strings.TrimSuffix(n, "y") + "ies"
	case strings.HasSuffix(n, "s") || strings.HasSuffix(n, "x") || strings.HasSuffix(n, "ch") || strings.HasSuffix(n, "sh"):
		return n + "es"
	default:
		return n + "s"
	}
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
