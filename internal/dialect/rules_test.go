package dialect

import (
	"errors"
	"testing"
)

func TestRulesFor_KnownFamilies(t *testing.T) {
	tests := []struct {
		family     string
		pagination PaginationStrategy
		open, clos string
	}{
		{"postgres", SuffixLimit, `"`, `"`},
		{"mysql", SuffixLimit, "`", "`"},
		{"sqlserver", PrefixTop, "[", "]"},
		{"oracle", PredicateRownum, `"`, `"`},
		{"snowflake", SuffixLimit, `"`, `"`},
	}
	for _, tt := range tests {
		r, err := RulesFor(tt.family)
		if err != nil {
			t.Fatalf("%s: %v", tt.family, err)
		}
		if r.Pagination != tt.pagination {
			t.Errorf("%s: pagination = %v, want %v", tt.family, r.Pagination, tt.pagination)
		}
		if r.QuoteOpen != tt.open || r.QuoteClose != tt.clos {
			t.Errorf("%s: quote pair = %q %q", tt.family, r.QuoteOpen, r.QuoteClose)
		}
	}
}

func TestRulesFor_Unsupported(t *testing.T) {
	for _, family := range []string{"mongodb", "sqlite", ""} {
		_, err := RulesFor(family)
		var ude *UnsupportedDialectError
		if !errors.As(err, &ude) {
			t.Errorf("%q: expected UnsupportedDialectError, got %v", family, err)
		}
	}
}

func TestQuote_ReservedOnly(t *testing.T) {
	r, err := RulesFor("sqlserver")
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Quote("Order"); got != "[Order]" {
		t.Errorf("reserved word should quote case-insensitively, got %q", got)
	}
	if got := r.Quote("patient_id"); got != "patient_id" {
		t.Errorf("unreserved identifier should render bare, got %q", got)
	}
}

func TestFor_CoversEverySQLFamily(t *testing.T) {
	for _, family := range []string{"postgres", "mysql", "sqlserver", "oracle", "snowflake"} {
		if For(family) == nil {
			t.Errorf("no introspector for %s", family)
		}
	}
	if For("mongodb") != nil {
		t.Error("the document family must not have a SQL introspector")
	}
}

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		intro Introspector
		want  []string
	}{
		{&Postgres{}, []string{"$1", "$2"}},
		{&MySQL{}, []string{"?", "?"}},
		{&MSSQL{}, []string{"@p1", "@p2"}},
		{&Oracle{}, []string{":1", ":2"}},
		{&Snowflake{}, []string{"?", "?"}},
	}
	for _, tt := range tests {
		for i, want := range tt.want {
			if got := tt.intro.Placeholder(i); got != want {
				t.Errorf("%T.Placeholder(%d) = %q, want %q", tt.intro, i, got, want)
			}
		}
	}
}

func TestInsertQuery(t *testing.T) {
	cols := []string{"a", "b"}
	if got := (&Postgres{}).InsertQuery("t", cols); got != "INSERT INTO t (a, b) VALUES ($1, $2) ON CONFLICT DO NOTHING" {
		t.Errorf("postgres insert = %q", got)
	}
	if got := (&MySQL{}).InsertQuery("t", cols); got != "INSERT IGNORE INTO t (a, b) VALUES (?, ?)" {
		t.Errorf("mysql insert = %q", got)
	}
}
