package dialect

import "fmt"

type Postgres struct{}

func (d *Postgres) TablesQuery(schema string) string {
	return `SELECT table_name,
       CASE WHEN table_type = 'VIEW' THEN 'VIEW' ELSE 'BASE TABLE' END
FROM information_schema.tables
WHERE table_schema = $1 AND table_type IN ('BASE TABLE', 'VIEW')
ORDER BY table_name`
}

func (d *Postgres) ColumnsQuery(schema string) string {
	// PK marker via a correlated subquery; information_schema alone does
	// not expose it on the columns view.
	return `SELECT c.table_name,
       c.column_name,
       c.data_type,
       c.character_maximum_length,
       c.numeric_precision,
       c.numeric_scale,
       c.is_nullable,
       COALESCE((SELECT 'PRI'
                 FROM information_schema.table_constraints tc
                 JOIN information_schema.key_column_usage kcu
                   ON tc.constraint_name = kcu.constraint_name
                 WHERE tc.constraint_type = 'PRIMARY KEY'
                   AND kcu.table_schema = c.table_schema
                   AND kcu.table_name = c.table_name
                   AND kcu.column_name = c.column_name
                 LIMIT 1), '')
FROM information_schema.columns c
WHERE c.table_schema = $1
ORDER BY c.table_name, c.ordinal_position`
}

func (d *Postgres) DefaultSchema(configured string) string {
	if configured == "" {
		return "public"
	}
	return configured
}

func (d *Postgres) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index+1)
}

func (d *Postgres) InsertQuery(table string, cols []string) string {
	return basicInsert(table, cols, d.Placeholder) + " ON CONFLICT DO NOTHING"
}

func (d *Postgres) CreateTableQuery(table string, colDefs []string) string {
	return basicCreateTable(table, colDefs)
}
