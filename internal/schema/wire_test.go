package schema

import (
	"errors"
	"testing"
)

func TestParseUnified_RoundTrip(t *testing.T) {
	doc := []byte(`{
		"database_info": {"name": "clinic", "type": "postgres"},
		"tables": [
			{
				"name": "patients",
				"type": "table",
				"row_count": 120,
				"fields": [
					{"name": "patient_id", "type": "integer", "nullable": false, "primary_key": true, "default": null},
					{"name": "first_name", "type": "varchar(50)", "nullable": true, "default": null}
				]
			},
			{
				"name": "visits",
				"type": "collection",
				"row_count": null,
				"fields": []
			}
		],
		"extensions": {"ignored": true}
	}`)

	us, err := ParseUnified(doc)
	if err != nil {
		t.Fatalf("ParseUnified: %v", err)
	}
	if us.DatabaseName != "clinic" || us.Family != FamilyPostgres {
		t.Errorf("database info mismatch: %s/%s", us.DatabaseName, us.Family)
	}
	if len(us.Tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(us.Tables))
	}
	if us.Tables[0].RowCount == nil || *us.Tables[0].RowCount != 120 {
		t.Error("row_count not carried through")
	}
	if !us.Tables[0].Columns[0].PrimaryKey {
		t.Error("primary_key flag not carried through")
	}
	if us.Tables[1].Kind != KindCollection {
		t.Errorf("expected collection kind, got %s", us.Tables[1].Kind)
	}

	out, err := us.MarshalWire()
	if err != nil {
		t.Fatalf("MarshalWire: %v", err)
	}
	back, err := ParseUnified(out)
	if err != nil {
		t.Fatalf("re-parse of marshaled schema: %v", err)
	}
	if len(back.Tables) != len(us.Tables) {
		t.Error("round trip lost tables")
	}
}

func TestParseUnified_MissingTables(t *testing.T) {
	for _, doc := range []string{
		`{"database_info": {"name": "x", "type": "mysql"}}`,
		`{"database_info": {"name": "x", "type": "mysql"}, "tables": []}`,
	} {
		if _, err := ParseUnified([]byte(doc)); !errors.Is(err, ErrEmptySchema) {
			t.Errorf("expected ErrEmptySchema for %s, got %v", doc, err)
		}
	}
}

func TestParseUnified_UnknownFamily(t *testing.T) {
	doc := `{"database_info": {"name": "x", "type": "dbase"}, "tables": [{"name": "t", "type": "table", "fields": []}]}`
	if _, err := ParseUnified([]byte(doc)); err == nil {
		t.Fatal("expected error for unknown family")
	}
}
