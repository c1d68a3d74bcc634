// Package classify tags unified-schema tables with healthcare domain
// categories using ordered name-pattern rules. Classification is a pure
// function of the schema: no call order or external state involved.
package classify

import (
	"strings"

	"medquery/internal/schema"
)

// Category is the closed set of domain tags. Anchor marks candidate
// primary-entity tables a synthesized query can be filtered against.
type Category int

const (
	Uncategorized Category = iota
	Anchor
	Clinical
	Financial
	Administrative
)

func (c Category) String() string {
	switch c {
	case Anchor:
		return "anchor"
	case Clinical:
		return "clinical"
	case Financial:
		return "financial"
	case Administrative:
		return "administrative"
	default:
		return "uncategorized"
	}
}

// rules are evaluated in order, first match wins. Patterns are substring
// matches against lower-cased names; stems like "diagnos" and "allerg"
// cover both singular and plural spellings.
var rules = []struct {
	category Category
	patterns []string
}{
	{Anchor, []string{"patient", "person", "individual", "member", "client"}},
	{Clinical, []string{"diagnos", "condition", "procedure", "medication", "lab", "observation", "encounter", "allerg", "vital", "immuniz"}},
	{Financial, []string{"bill", "claim", "payment", "insurance", "charge", "invoice"}},
	{Administrative, []string{"appointment", "provider", "staff", "department", "schedule", "location"}},
}

// ForeignID is a column whose name suggests a reference to another table's
// primary identifier, with a pluralized guess at the referenced table.
type ForeignID struct {
	Column     string
	References string
}

// TableClass pairs a table with its category and detected foreign
// identifier columns. Index mirrors the schema's table order.
type TableClass struct {
	Table      *schema.Table
	Category   Category
	ForeignIDs []ForeignID
}

type Result struct {
	Tables []TableClass
}

// ByCategory returns the classified tables carrying the given tag, in
// schema order.
func (r Result) ByCategory(c Category) []TableClass {
	var out []TableClass
	for _, tc := range r.Tables {
		if tc.Category == c {
			out = append(out, tc)
		}
	}
	return out
}

// Classify tags every table in the schema. A table matches a category when
// its own name matches, or when at least two of its columns match; the
// column fallback exists because naming conventions vary enough across
// source systems that a pure table-name match misses too many schemas.
func Classify(s *schema.UnifiedSchema) Result {
	res := Result{Tables: make([]TableClass, 0, len(s.Tables))}
	for i := range s.Tables {
		t := &s.Tables[i]
		res.Tables = append(res.Tables, TableClass{
			Table:      t,
			Category:   categorize(t),
			ForeignIDs: foreignIDs(t),
		})
	}
	return res
}

func categorize(t *schema.Table) Category {
	name := strings.ToLower(t.Name)
	for _, rule := range rules {
		if matchesAny(name, rule.patterns) {
			return rule.category
		}
		hits := 0
		for _, col := range t.Columns {
			if matchesAny(strings.ToLower(col.Name), rule.patterns) {
				hits++
				if hits >= 2 {
					return rule.category
				}
			}
		}
	}
	return Uncategorized
}

func matchesAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(name, p) {
			return true
		}
	}
	return false
}

// foreignIDs collects *_id columns that are not the table's own primary
// key, each tagged with a guessed referenced-table name obtained by
// stripping the suffix and pluralizing.
func foreignIDs(t *schema.Table) []ForeignID {
	var out []ForeignID
	for _, col := range t.Columns {
		n := strings.ToLower(col.Name)
		if !strings.HasSuffix(n, "_id") || col.PrimaryKey {
			continue
		}
		stem := strings.TrimSuffix(n, "_id")
		out = append(out, ForeignID{
			Column:     col.Name,
			References: schema.Plural(stem),
		})
	}
	return out
}
