package dbexport

import (
	"fmt"
	"time"
)

// dateTimeLayout matches how MySQL itself renders DATETIME values.
const dateTimeLayout = "2006-01-02 15:04:05"

// ScanRowStrings scans the current row and renders every column as text.
func ScanRowStrings(rows Rows, cols []string) ([]string, error) {
	columns := make([]interface{}, len(cols))
	columnPointers := make([]interface{}, len(cols))
	for i := range columns {
		columnPointers[i] = &columns[i]
	}
	if err := rows.Scan(columnPointers...); err != nil {
		return nil, fmt.Errorf("error scanning row: %w", err)
	}
	vals := make([]string, len(cols))
	for i, v := range columns {
		vals[i] = FormatValue(v)
	}
	return vals, nil
}

// FormatValue stringifies a value as returned by the driver. NULL becomes an
// empty field; no further type coercion is applied.
func FormatValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(dateTimeLayout)
	default:
		return fmt.Sprint(t)
	}
}
