// Package seed creates and fills a small demo clinical schema so the
// query synthesizer has something real to run against. SQL families only.
package seed

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gosuri/uiprogress"

	"medquery/internal/dialect"
)

type column struct {
	name string
	def  string
	gen  func(patientID int) interface{}
}

type table struct {
	name    string
	columns []column
}

// Dates are stored as plain strings to keep the demo portable across
// families without per-dialect session format setup.
var demoTables = []table{
	{
		name: "patients",
		columns: []column{
			{"patient_id", "INTEGER", func(id int) interface{} { return id }},
			{"first_name", "VARCHAR(50)", func(int) interface{} { return gofakeit.FirstName() }},
			{"last_name", "VARCHAR(50)", func(int) interface{} { return gofakeit.LastName() }},
			{"birth_date", "VARCHAR(30)", func(int) interface{} { return gofakeit.Date().Format("2006-01-02") }},
			{"gender", "VARCHAR(10)", func(int) interface{} { return gofakeit.Gender() }},
			{"phone", "VARCHAR(30)", func(int) interface{} { return gofakeit.Phone() }},
			{"email", "VARCHAR(100)", func(int) interface{} { return gofakeit.Email() }},
		},
	},
	{
		name: "conditions",
		columns: []column{
			{"condition_id", "INTEGER", nil}, // sequential, filled by the runner
			{"patient_id", "INTEGER", func(id int) interface{} { return id }},
			{"code", "VARCHAR(20)", func(int) interface{} { return fmt.Sprintf("I%02d.%d", gofakeit.Number(0, 99), gofakeit.Number(0, 9)) }},
			{"description", "VARCHAR(200)", func(int) interface{} { return gofakeit.Sentence(6) }},
			{"onset_date", "VARCHAR(30)", func(int) interface{} { return gofakeit.Date().Format("2006-01-02") }},
		},
	},
	{
		name: "medications",
		columns: []column{
			{"medication_id", "INTEGER", nil},
			{"patient_id", "INTEGER", func(id int) interface{} { return id }},
			{"name", "VARCHAR(100)", func(int) interface{} { return gofakeit.BeerName() }},
			{"dosage", "VARCHAR(30)", func(int) interface{} { return fmt.Sprintf("%dmg", gofakeit.Number(5, 500)) }},
			{"start_date", "VARCHAR(30)", func(int) interface{} { return gofakeit.Date().Format("2006-01-02") }},
		},
	},
	{
		name: "billing_claims",
		columns: []column{
			{"claim_id", "INTEGER", nil},
			{"patient_id", "INTEGER", func(id int) interface{} { return id }},
			{"amount", "DECIMAL(10,2)", func(int) interface{} { return gofakeit.Price(20, 5000) }},
			{"status", "VARCHAR(20)", func(int) interface{} { return gofakeit.RandomString([]string{"submitted", "paid", "denied", "pending"}) }},
			{"claim_date", "VARCHAR(30)", func(int) interface{} { return gofakeit.Date().Format("2006-01-02") }},
		},
	},
	{
		name: "appointments",
		columns: []column{
			{"appointment_id", "INTEGER", nil},
			{"patient_id", "INTEGER", func(id int) interface{} { return id }},
			{"provider_name", "VARCHAR(100)", func(int) interface{} { return gofakeit.Name() }},
			{"department", "VARCHAR(50)", func(int) interface{} { return gofakeit.RandomString([]string{"cardiology", "oncology", "radiology", "general"}) }},
			{"scheduled_at", "VARCHAR(30)", func(int) interface{} { return gofakeit.Date().Format("2006-01-02 15:04") }},
		},
	},
}

// Run creates the demo tables (skipping ones that already exist) and
// inserts one row per patient id into each.
func Run(db *sql.DB, intro dialect.Introspector, rows int) error {
	if rows <= 0 {
		rows = 25
	}

	for _, t := range demoTables {
		defs := make([]string, len(t.columns))
		for i, c := range t.columns {
			defs[i] = c.name + " " + c.def
		}
		if _, err := db.Exec(intro.CreateTableQuery(t.name, defs)); err != nil {
			// Most likely the table exists from a previous run.
			log.Printf("[seed] create %s skipped: %v", t.name, err)
		}
	}

	uiprogress.Start()
	defer uiprogress.Stop()

	for _, t := range demoTables {
		t := t
		bar := uiprogress.AddBar(rows).AppendCompleted()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return fmt.Sprintf("%-16s", t.name)
		})

		cols := make([]string, len(t.columns))
		for i, c := range t.columns {
			cols[i] = c.name
		}
		insert := intro.InsertQuery(t.name, cols)

		for id := 1; id <= rows; id++ {
			vals := make([]interface{}, len(t.columns))
			for i, c := range t.columns {
				if c.gen == nil {
					vals[i] = id // sequential surrogate key
					continue
				}
				vals[i] = c.gen(id)
			}
			if _, err := db.Exec(insert, vals...); err != nil {
				return fmt.Errorf("failed to insert into %s: %w", t.name, err)
			}
			bar.Incr()
		}
	}
	return nil
}
