package dialect

import (
	"fmt"
	"strings"
)

// PaginationStrategy tags how a family bounds result sets. The renderer
// switches on this tag, never on the family name.
type PaginationStrategy int

const (
	// SuffixLimit appends "LIMIT n" to the statement.
	SuffixLimit PaginationStrategy = iota
	// PrefixTop inserts "TOP n" right after the SELECT keyword.
	PrefixTop
	// PredicateRownum conjoins "ROWNUM <= n" to the filter predicate.
	PredicateRownum
)

// Rules is the per-family syntax data consulted at render time: the quote
// pair, the reserved-word set, and the pagination strategy. Adding a new
// SQL dialect means adding one entry to ruleTable.
type Rules struct {
	Family     string
	QuoteOpen  string
	QuoteClose string
	Reserved   map[string]struct{}
	Pagination PaginationStrategy
}

// Quote wraps the identifier in the dialect's quote pair only when its
// lower-cased form is reserved; everything else renders bare.
func (r Rules) Quote(name string) string {
	if _, ok := r.Reserved[strings.ToLower(name)]; ok {
		return r.QuoteOpen + name + r.QuoteClose
	}
	return name
}

// UnsupportedDialectError marks a family absent from the rule table. The
// document family lands here too: it has no SQL rendering rules.
type UnsupportedDialectError struct {
	Family string
}

func (e *UnsupportedDialectError) Error() string {
	return fmt.Sprintf("no dialect rules for database family %q", e.Family)
}

// RulesFor looks up the rule entry for a family name.
func RulesFor(family string) (Rules, error) {
	r, ok := ruleTable[strings.ToLower(family)]
	if !ok {
		return Rules{}, &UnsupportedDialectError{Family: family}
	}
	return r, nil
}

// ansiReserved is the shared core; per-family sets extend it.
var ansiReserved = []string{
	"select", "from", "where", "and", "or", "not", "null", "in", "is",
	"as", "on", "by", "asc", "desc", "like", "between", "exists",
	"join", "left", "right", "inner", "outer", "cross", "union", "all",
	"distinct", "group", "having", "order", "case", "when", "then",
	"else", "end", "insert", "update", "delete", "create", "drop",
	"alter", "grant", "table", "view", "index", "column", "values",
	"into", "set", "default", "primary", "key", "foreign", "references",
	"check", "user",
}

func reserved(extra ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(ansiReserved)+len(extra))
	for _, w := range ansiReserved {
		m[w] = struct{}{}
	}
	for _, w := range extra {
		m[w] = struct{}{}
	}
	return m
}

var ruleTable = map[string]Rules{
	"postgres": {
		Family:     "postgres",
		QuoteOpen:  `"`,
		QuoteClose: `"`,
		Reserved:   reserved("limit", "offset", "ilike", "returning", "window", "current_date", "current_time"),
		Pagination: SuffixLimit,
	},
	"mysql": {
		Family:     "mysql",
		QuoteOpen:  "`",
		QuoteClose: "`",
		Reserved:   reserved("limit", "rank", "rows", "groups", "schema", "show", "condition"),
		Pagination: SuffixLimit,
	},
	"sqlserver": {
		Family:     "sqlserver",
		QuoteOpen:  "[",
		QuoteClose: "]",
		Reserved:   reserved("top", "percent", "plan", "file", "database", "backup", "merge"),
		Pagination: PrefixTop,
	},
	"oracle": {
		Family:     "oracle",
		QuoteOpen:  `"`,
		QuoteClose: `"`,
		Reserved:   reserved("level", "rownum", "date", "number", "size", "mode", "access", "comment", "session"),
		Pagination: PredicateRownum,
	},
	"snowflake": {
		Family:     "snowflake",
		QuoteOpen:  `"`,
		QuoteClose: `"`,
		Reserved:   reserved("limit", "qualify", "ilike", "sample", "database", "schema"),
		Pagination: SuffixLimit,
	},
}
