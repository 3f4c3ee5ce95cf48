package dbexport

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// ListTables returns the names of the tables in the current database in the
// order the server reports them, optionally restricted to one table type.
func ListTables(ctx context.Context, db Queryer, tableType TableType) ([]string, error) {
	query := ListTablesQuery(tableType)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		// SHOW FULL TABLES yields (Tables_in_<db>, Table_type)
		var tableName, kind string
		if err := rows.Scan(&tableName, &kind); err != nil {
			return nil, fmt.Errorf("error scanning table name: %w", err)
		}
		tables = append(tables, tableName)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error: %w", err)
	}
	return tables, nil
}

// ListTablesQuery builds the SHOW FULL TABLES statement for the given filter.
func ListTablesQuery(tableType TableType) string {
	if tableType == TableTypeAll {
		return "SHOW FULL TABLES"
	}
	return fmt.Sprintf("SHOW FULL TABLES WHERE TABLE_TYPE = '%s'", tableType)
}

// ReadTableFile reads a file with one table name per line. Surrounding
// whitespace is trimmed and blank lines are dropped; order is preserved.
func ReadTableFile(tableFile string) ([]string, error) {
	data, err := os.ReadFile(tableFile)
	if err != nil {
		return nil, fmt.Errorf("error reading table file: %w", err)
	}
	return parseTableList(string(data)), nil
}

func parseTableList(content string) []string {
	var tables []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			tables = append(tables, trimmed)
		}
	}
	return tables
}
