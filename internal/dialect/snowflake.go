package dialect

type Snowflake struct{}

func (d *Snowflake) TablesQuery(schema string) string {
	return `SELECT TABLE_NAME,
       CASE WHEN TABLE_TYPE = 'VIEW' THEN 'VIEW' ELSE 'BASE TABLE' END
FROM INFORMATION_SCHEMA.TABLES
WHERE TABLE_SCHEMA = ? AND TABLE_TYPE IN ('BASE TABLE', 'VIEW')
ORDER BY TABLE_NAME`
}

func (d *Snowflake) ColumnsQuery(schema string) string {
	// Snowflake does not enforce primary keys; the key marker stays empty
	// and inference falls back to the name heuristic.
	return `SELECT TABLE_NAME,
       COLUMN_NAME,
       DATA_TYPE,
       CHARACTER_MAXIMUM_LENGTH,
       NUMERIC_PRECISION,
       NUMERIC_SCALE,
       IS_NULLABLE,
       ''
FROM INFORMATION_SCHEMA.COLUMNS
WHERE TABLE_SCHEMA = ?
ORDER BY TABLE_NAME, ORDINAL_POSITION`
}

func (d *Snowflake) DefaultSchema(configured string) string {
	if configured == "" {
		return "PUBLIC"
	}
	return configured
}

func (d *Snowflake) Placeholder(index int) string {
	return "?"
}

func (d *Snowflake) InsertQuery(table string, cols []string) string {
	return basicInsert(table, cols, d.Placeholder)
}

func (d *Snowflake) CreateTableQuery(table string, colDefs []string) string {
	return basicCreateTable(table, colDefs)
}
