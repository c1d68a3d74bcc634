package dialect

import (
	"fmt"
	"strings"
)

type MySQL struct{}

func (d *MySQL) TablesQuery(schema string) string {
	return `SELECT TABLE_NAME,
       CASE WHEN TABLE_TYPE = 'VIEW' THEN 'VIEW' ELSE 'BASE TABLE' END
FROM information_schema.TABLES
WHERE TABLE_SCHEMA = ? AND TABLE_TYPE IN ('BASE TABLE', 'VIEW')
ORDER BY TABLE_NAME`
}

func (d *MySQL) ColumnsQuery(schema string) string {
	return `SELECT TABLE_NAME,
       COLUMN_NAME,
       DATA_TYPE,
       CHARACTER_MAXIMUM_LENGTH,
       NUMERIC_PRECISION,
       NUMERIC_SCALE,
       IS_NULLABLE,
       CASE WHEN COLUMN_KEY = 'PRI' THEN 'PRI' ELSE '' END
FROM information_schema.COLUMNS
WHERE TABLE_SCHEMA = ?
ORDER BY TABLE_NAME, ORDINAL_POSITION`
}

func (d *MySQL) DefaultSchema(configured string) string {
	// MySQL has no fixed default; the DSN selects the database and the
	// caller passes it through.
	return configured
}

func (d *MySQL) Placeholder(index int) string {
	return "?"
}

func (d *MySQL) InsertQuery(table string, cols []string) string {
	return fmt.Sprintf("INSERT IGNORE INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), placeholderList(len(cols), d.Placeholder))
}

func (d *MySQL) CreateTableQuery(table string, colDefs []string) string {
	return basicCreateTable(table, colDefs)
}
