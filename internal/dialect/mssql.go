package dialect

import "fmt"

type MSSQL struct{}

func (d *MSSQL) TablesQuery(schema string) string {
	return `SELECT TABLE_NAME,
       CASE WHEN TABLE_TYPE = 'VIEW' THEN 'VIEW' ELSE 'BASE TABLE' END
FROM INFORMATION_SCHEMA.TABLES
WHERE TABLE_SCHEMA = @p1 AND TABLE_TYPE IN ('BASE TABLE', 'VIEW')
ORDER BY TABLE_NAME`
}

func (d *MSSQL) ColumnsQuery(schema string) string {
	return `SELECT c.TABLE_NAME,
       c.COLUMN_NAME,
       c.DATA_TYPE,
       c.CHARACTER_MAXIMUM_LENGTH,
       c.NUMERIC_PRECISION,
       c.NUMERIC_SCALE,
       c.IS_NULLABLE,
       CASE WHEN pk.COLUMN_NAME IS NOT NULL THEN 'PRI' ELSE '' END
FROM INFORMATION_SCHEMA.COLUMNS c
LEFT JOIN (
    SELECT kcu.TABLE_NAME, kcu.COLUMN_NAME
    FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc
    JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu
      ON tc.CONSTRAINT_NAME = kcu.CONSTRAINT_NAME
    WHERE tc.CONSTRAINT_TYPE = 'PRIMARY KEY' AND tc.TABLE_SCHEMA = @p1
) pk ON c.TABLE_NAME = pk.TABLE_NAME AND c.COLUMN_NAME = pk.COLUMN_NAME
WHERE c.TABLE_SCHEMA = @p1
ORDER BY c.TABLE_NAME, c.ORDINAL_POSITION`
}

func (d *MSSQL) DefaultSchema(configured string) string {
	if configured == "" {
		return "dbo"
	}
	return configured
}

func (d *MSSQL) Placeholder(index int) string {
	return fmt.Sprintf("@p%d", index+1)
}

func (d *MSSQL) InsertQuery(table string, cols []string) string {
	return basicInsert(table, cols, d.Placeholder)
}

func (d *MSSQL) CreateTableQuery(table string, colDefs []string) string {
	return basicCreateTable(table, colDefs)
}
