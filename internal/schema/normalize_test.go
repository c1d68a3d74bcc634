package schema

import (
	"errors"
	"testing"
)

func intp(v int) *int { return &v }

func TestNormalize_GroupsAndFormats(t *testing.T) {
	raw := RawSchema{
		DatabaseName: "clinic",
		Tables: []RawTable{
			{Name: "patients", Kind: "BASE TABLE"},
			{Name: "visit_summary", Kind: "VIEW"},
			{Name: "empty_audit", Kind: "BASE TABLE"},
		},
		Columns: []RawColumn{
			{TableName: "patients", Name: "patient_id", DataType: "integer", Nullable: false, Key: "PRI"},
			{TableName: "patients", Name: "first_name", DataType: "character varying", MaxLength: intp(50), Nullable: true},
			{TableName: "patients", Name: "balance", DataType: "numeric", Precision: intp(10), Scale: intp(2), Nullable: true},
			{TableName: "visit_summary", Name: "visit_count", DataType: "bigint", Nullable: true},
			{TableName: "orphans", Name: "x", DataType: "text"}, // table not listed
		},
	}

	us, err := Normalize(raw, FamilyPostgres)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if len(us.Tables) != 3 {
		t.Fatalf("expected 3 tables, got %d", len(us.Tables))
	}

	patients := us.Tables[0]
	if patients.Kind != KindTable {
		t.Errorf("expected table kind, got %s", patients.Kind)
	}
	if got := patients.Columns[1].RawType; got != "character varying(50)" {
		t.Errorf("expected length-qualified type, got %q", got)
	}
	if got := patients.Columns[2].RawType; got != "numeric(10,2)" {
		t.Errorf("expected precision/scale type, got %q", got)
	}
	if !patients.Columns[0].PrimaryKey {
		t.Error("driver-flagged patient_id should be primary key")
	}

	if us.Tables[1].Kind != KindView {
		t.Errorf("expected view kind, got %s", us.Tables[1].Kind)
	}
	// zero-column tables are kept, not rejected
	if len(us.Tables[2].Columns) != 0 {
		t.Errorf("expected empty column list, got %d columns", len(us.Tables[2].Columns))
	}
}

func TestNormalize_EmptySchema(t *testing.T) {
	_, err := Normalize(RawSchema{DatabaseName: "empty"}, FamilyMySQL)
	if !errors.Is(err, ErrEmptySchema) {
		t.Fatalf("expected ErrEmptySchema, got %v", err)
	}
}

func TestNormalize_PrimaryKeyNameHeuristic(t *testing.T) {
	tests := []struct {
		table   string
		columns []string
		wantPK  string
	}{
		{"patients", []string{"patient_id", "first_name"}, "patient_id"},
		{"conditions", []string{"condition_id", "patient_id", "code"}, "condition_id"},
		{"users", []string{"id", "email"}, "id"},
		{"audit_log", []string{"entry_no", "actor_id"}, "actor_id"}, // last-resort _id suffix
	}

	for _, tt := range tests {
		raw := RawSchema{
			Tables: []RawTable{{Name: tt.table, Kind: "BASE TABLE"}},
		}
		for _, c := range tt.columns {
			raw.Columns = append(raw.Columns, RawColumn{TableName: tt.table, Name: c, DataType: "text"})
		}
		us, err := Normalize(raw, FamilyPostgres)
		if err != nil {
			t.Fatalf("%s: %v", tt.table, err)
		}
		for _, col := range us.Tables[0].Columns {
			if col.PrimaryKey != (col.Name == tt.wantPK) {
				t.Errorf("%s: expected PK %q, flag set on %q=%v", tt.table, tt.wantPK, col.Name, col.PrimaryKey)
			}
		}
	}
}

func TestNormalize_CaseInsensitiveTableLookup(t *testing.T) {
	// Oracle reports upper-cased identifiers
	raw := RawSchema{
		Tables:  []RawTable{{Name: "PATIENTS", Kind: "BASE TABLE"}},
		Columns: []RawColumn{{TableName: "patients", Name: "PATIENT_ID", DataType: "NUMBER"}},
	}
	us, err := Normalize(raw, FamilyOracle)
	if err != nil {
		t.Fatal(err)
	}
	if len(us.Tables[0].Columns) != 1 {
		t.Fatalf("column not matched to upper-cased table")
	}
}

func TestSingularPlural(t *testing.T) {
	tests := []struct{ in, singular string }{
		{"patients", "patient"},
		{"allergies", "allergy"},
		{"diagnoses", "diagnos"},
		{"staff", "staff"},
	}
	for _, tt := range tests {
		if got := Singular(tt.in); got != tt.singular {
			t.Errorf("Singular(%q) = %q, want %q", tt.in, got, tt.singular)
		}
	}

	plurals := []struct{ in, want string }{
		{"patient", "patients"},
		{"allergy", "allergies"},
		{"diagnosis", "diagnosises"}, // naive, accepted
	}
	for _, tt := range plurals {
		if got := Plural(tt.in); got != tt.want {
			t.Errorf("Plural(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIdentifierLike(t *testing.T) {
	for _, name := range []string{"id", "patient_id", "PATIENT_ID", "visitid"} {
		if !IdentifierLike(name) {
			t.Errorf("expected %q to be identifier-like", name)
		}
	}
	for _, name := range []string{"name", "idempotency", "identifier"} {
		if IdentifierLike(name) {
			t.Errorf("expected %q not to be identifier-like", name)
		}
	}
}
