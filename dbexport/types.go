package dbexport

import (
	"context"
	"database/sql"
	"fmt"
)

// Rows is a minimal interface for *sql.Rows and test wrappers
// Used for dependency injection and testability in output writers.
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Columns() ([]string, error)
	Close() error
	Err() error
}

// Queryer is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// TableType is a MySQL catalog classification as reported in the
// Table_type column of SHOW FULL TABLES. The zero value means no filter.
type TableType string

const (
	TableTypeAll        TableType = ""
	TableTypeBaseTable  TableType = "BASE TABLE"
	TableTypeView       TableType = "VIEW"
	TableTypeSystemView TableType = "SYSTEM VIEW"
)

var tableTypeChoices = []TableType{TableTypeBaseTable, TableTypeView, TableTypeSystemView}

// ParseTableType maps the command-line choice 1, 2 or 3 to its table type.
func ParseTableType(n int) (TableType, error) {
	if n < 1 || n > len(tableTypeChoices) {
		return TableTypeAll, fmt.Errorf("invalid table type: %d (choose from 1, 2, 3)", n)
	}
	return tableTypeChoices[n-1], nil
}
