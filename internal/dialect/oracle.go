package dialect

import "fmt"

type Oracle struct{}

func (d *Oracle) TablesQuery(schema string) string {
	// USER_* views list objects owned by the connected user; the dummy
	// predicate consumes the schema argument standard callers pass.
	return `SELECT OBJECT_NAME,
       CASE WHEN OBJECT_TYPE = 'VIEW' THEN 'VIEW' ELSE 'BASE TABLE' END
FROM USER_OBJECTS
WHERE OBJECT_TYPE IN ('TABLE', 'VIEW') AND :1 IS NOT NULL
ORDER BY OBJECT_NAME`
}

func (d *Oracle) ColumnsQuery(schema string) string {
	return `SELECT t.TABLE_NAME,
       t.COLUMN_NAME,
       t.DATA_TYPE,
       CASE WHEN t.DATA_TYPE LIKE '%CHAR%' THEN t.CHAR_LENGTH ELSE NULL END,
       t.DATA_PRECISION,
       t.DATA_SCALE,
       CASE WHEN t.NULLABLE = 'Y' THEN 'YES' ELSE 'NO' END,
       CASE WHEN p.CONSTRAINT_NAME IS NOT NULL THEN 'PRI' ELSE '' END
FROM USER_TAB_COLUMNS t
LEFT JOIN (
    SELECT cc.TABLE_NAME, cc.COLUMN_NAME, cc.CONSTRAINT_NAME
    FROM USER_CONS_COLUMNS cc
    JOIN USER_CONSTRAINTS uc ON cc.CONSTRAINT_NAME = uc.CONSTRAINT_NAME
    WHERE uc.CONSTRAINT_TYPE = 'P'
) p ON t.TABLE_NAME = p.TABLE_NAME AND t.COLUMN_NAME = p.COLUMN_NAME
WHERE :1 IS NOT NULL
ORDER BY t.TABLE_NAME, t.COLUMN_ID`
}

func (d *Oracle) DefaultSchema(configured string) string {
	return configured
}

func (d *Oracle) Placeholder(index int) string {
	return fmt.Sprintf(":%d", index+1)
}

func (d *Oracle) InsertQuery(table string, cols []string) string {
	return basicInsert(table, cols, d.Placeholder)
}

func (d *Oracle) CreateTableQuery(table string, colDefs []string) string {
	return basicCreateTable(table, colDefs)
}
