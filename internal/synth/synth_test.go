package synth

import (
	"errors"
	"strings"
	"testing"

	"medquery/internal/classify"
	"medquery/internal/schema"
)

func table(name string, pk string, cols ...string) schema.Table {
	t := schema.Table{Name: name, Kind: schema.KindTable}
	for _, c := range cols {
		t.Columns = append(t.Columns, schema.Column{Name: c, RawType: "text", PrimaryKey: c == pk})
	}
	return t
}

func clinicSchema() *schema.UnifiedSchema {
	return &schema.UnifiedSchema{
		DatabaseName: "clinic",
		Family:       schema.FamilyPostgres,
		Tables: []schema.Table{
			table("patients", "patient_id", "patient_id", "first_name"),
			table("conditions", "condition_id", "condition_id", "patient_id", "code"),
		},
	}
}

func TestSynthesize_EndToEnd(t *testing.T) {
	us := clinicSchema()
	cls := classify.Classify(us)

	got, plan, err := Synthesize(us, cls, Clinical, "abc-123", 50)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	want := "SELECT p.patient_id, p.first_name, t1.condition_id, t1.code " +
		"FROM patients p LEFT JOIN conditions t1 ON p.patient_id = t1.patient_id " +
		"WHERE p.patient_id = 'abc-123' LIMIT 50"
	if got != want {
		t.Errorf("query mismatch:\n got:  %s\n want: %s", got, want)
	}

	if plan.AnchorTable != "patients" || plan.AnchorAlias != "p" {
		t.Errorf("unexpected anchor: %s %s", plan.AnchorTable, plan.AnchorAlias)
	}
	if len(plan.Related) != 1 || plan.Related[0].Table != "conditions" {
		t.Errorf("unexpected related set: %+v", plan.Related)
	}
}

func TestSynthesize_Idempotent(t *testing.T) {
	us := clinicSchema()
	cls := classify.Classify(us)

	first, _, err := Synthesize(us, cls, Comprehensive, "42", 10)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, _, err := Synthesize(us, cls, Comprehensive, "42", 10)
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatalf("output varies across identical calls:\n%s\n%s", first, again)
		}
	}
}

func TestSynthesize_EscapesQuotes(t *testing.T) {
	us := clinicSchema()
	cls := classify.Classify(us)

	got, plan, err := Synthesize(us, cls, Basic, "O'Brien", 10)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "= 'O''Brien'") {
		t.Errorf("quote not doubled in literal: %s", got)
	}
	if strings.Count(plan.FilterPredicate, "'") != 4 {
		t.Errorf("filter predicate should hold one doubled literal: %s", plan.FilterPredicate)
	}
}

func TestSynthesize_RelatedCaps(t *testing.T) {
	// More categorized tables than any intent may take.
	us := &schema.UnifiedSchema{
		Family: schema.FamilyPostgres,
		Tables: []schema.Table{table("patients", "patient_id", "patient_id", "name")},
	}
	clinical := []string{"conditions", "medications", "lab_orders", "observations", "procedures", "encounters", "allergies", "diagnoses", "immunizations"}
	financial := []string{"billing_claims", "payments", "insurance_plans", "charges"}
	admin := []string{"appointments", "providers", "departments"}
	for _, group := range [][]string{clinical, financial, admin} {
		for _, name := range group {
			us.Tables = append(us.Tables, table(name, name+"_id", name+"_id", "patient_id", "status"))
		}
	}
	cls := classify.Classify(us)

	maxRelated := map[Intent]int{Comprehensive: 10, Clinical: 8, Billing: 7, Basic: 2}
	for intent, limit := range maxRelated {
		_, plan, err := Synthesize(us, cls, intent, "1", 5)
		if err != nil {
			t.Fatalf("%s: %v", intent, err)
		}
		if len(plan.Related) > limit {
			t.Errorf("%s: %d related tables exceeds cap %d", intent, len(plan.Related), limit)
		}
	}
}

func TestSynthesize_JoinDropWarning(t *testing.T) {
	us := &schema.UnifiedSchema{
		Family: schema.FamilyPostgres,
		Tables: []schema.Table{
			table("patients", "patient_id", "patient_id", "name"),
			// clinical by name, but nothing joins it to patients
			table("lab_instruments", "instrument_id", "instrument_id", "model"),
		},
	}
	cls := classify.Classify(us)

	_, plan, err := Synthesize(us, cls, Clinical, "1", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.Related) != 0 {
		t.Fatalf("unjoinable table should be dropped, got %+v", plan.Related)
	}
	if len(plan.Warnings) != 1 || !strings.Contains(plan.Warnings[0], "lab_instruments") {
		t.Errorf("expected a drop warning naming the table, got %v", plan.Warnings)
	}
}

func TestSynthesize_AnchorLadder(t *testing.T) {
	// No anchor-category table; the first table with a foreign identifier
	// takes its place.
	us := &schema.UnifiedSchema{
		Family: schema.FamilyPostgres,
		Tables: []schema.Table{
			table("notes", "", "body"),
			table("encounters", "encounter_id", "encounter_id", "subject_id", "status"),
		},
	}
	cls := classify.Classify(us)
	_, plan, err := Synthesize(us, cls, Basic, "1", 5)
	if err != nil {
		t.Fatal(err)
	}
	if plan.AnchorTable != "encounters" {
		t.Errorf("expected encounters as fallback anchor, got %s", plan.AnchorTable)
	}
}

func TestSynthesize_NoAnchorTable(t *testing.T) {
	us := &schema.UnifiedSchema{
		Family: schema.FamilyPostgres,
		Tables: []schema.Table{table("notes", "", "body", "title")},
	}
	cls := classify.Classify(us)
	_, _, err := Synthesize(us, cls, Comprehensive, "1", 5)
	if !errors.Is(err, ErrNoAnchorTable) {
		t.Fatalf("expected ErrNoAnchorTable, got %v", err)
	}
}

func TestSynthesize_NoFilterColumn(t *testing.T) {
	// Anchor by name, but without any identifier column to filter on.
	us := &schema.UnifiedSchema{
		Family: schema.FamilyPostgres,
		Tables: []schema.Table{table("patients", "", "first_name", "last_name")},
	}
	cls := classify.Classify(us)
	_, _, err := Synthesize(us, cls, Comprehensive, "1", 5)
	if !errors.Is(err, ErrNoFilterColumn) {
		t.Fatalf("expected ErrNoFilterColumn, got %v", err)
	}
}

func TestSynthesize_DefaultLimit(t *testing.T) {
	us := clinicSchema()
	cls := classify.Classify(us)
	got, _, err := Synthesize(us, cls, Basic, "1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(got, "LIMIT 100") {
		t.Errorf("limit should default to 100: %s", got)
	}
}

func TestSynthesize_UnsupportedFamily(t *testing.T) {
	us := clinicSchema()
	us.Family = schema.FamilyMongo
	cls := classify.Classify(us)
	if _, _, err := Synthesize(us, cls, Basic, "1", 5); err == nil {
		t.Fatal("expected unsupported dialect error for the document family")
	}
}

func TestParseIntent(t *testing.T) {
	tests := []struct {
		in   string
		want Intent
	}{
		{"clinical", Clinical},
		{"BILLING", Billing},
		{" Basic ", Basic},
		{"comprehensive", Comprehensive},
		{"everything-else", Comprehensive},
		{"", Comprehensive},
	}
	for _, tt := range tests {
		if got := ParseIntent(tt.in); got != tt.want {
			t.Errorf("ParseIntent(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestProfileCaps(t *testing.T) {
	caps, anchorCols, relatedCols := Profile(Comprehensive)
	if caps[classify.Clinical] != 5 || caps[classify.Financial] != 3 || caps[classify.Administrative] != 2 {
		t.Errorf("comprehensive related caps wrong: %v", caps)
	}
	if anchorCols != 20 || relatedCols != 12 {
		t.Errorf("comprehensive column caps wrong: %d/%d", anchorCols, relatedCols)
	}

	caps, anchorCols, _ = Profile(Clinical)
	if caps[classify.Clinical] != 8 || caps[classify.Financial] != 0 {
		t.Errorf("clinical related caps wrong: %v", caps)
	}
	if anchorCols != 15 {
		t.Errorf("clinical anchor column cap wrong: %d", anchorCols)
	}
}
