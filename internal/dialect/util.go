package dialect

import (
	"fmt"
	"strings"
)

// placeholderList builds the comma-separated bind list for an insert.
func placeholderList(count int, placeholder func(int) string) string {
	parts := make([]string, count)
	for i := 0; i < count; i++ {
		parts[i] = placeholder(i)
	}
	return strings.Join(parts, ", ")
}

func basicInsert(table string, cols []string, placeholder func(int) string) string {
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), placeholderList(len(cols), placeholder))
}

func basicCreateTable(table string, colDefs []string) string {
	return fmt.Sprintf("CREATE TABLE %s (%s)", table, strings.Join(colDefs, ", "))
}
