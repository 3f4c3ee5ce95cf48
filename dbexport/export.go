package dbexport

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// SelectQuery builds the full-table select. The name is used verbatim unless
// quote is set, in which case it is wrapped in backticks.
func SelectQuery(table string, quote bool) string {
	if quote {
		table = QuoteIdentifier(table)
	}
	return "SELECT * FROM " + table
}

// QuoteIdentifier backtick-quotes a MySQL identifier, doubling any embedded
// backticks.
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// ExportTable runs a full-table select and streams the result into a TSV file
// at outputPath. It returns the number of data rows written. The file is only
// created once the query has succeeded; a file left by a failed write is not
// removed.
func ExportTable(ctx context.Context, db Queryer, table, outputPath string, quote bool) (int, error) {
	rows, err := db.QueryContext(ctx, SelectQuery(table, quote))
	if err != nil {
		return 0, fmt.Errorf("error querying table rows: %w", err)
	}
	defer rows.Close()

	file, err := os.Create(outputPath)
	if err != nil {
		return 0, fmt.Errorf("error creating output file: %w", err)
	}
	n, err := WriteTSV(file, rows)
	if cerr := file.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("error closing output file: %w", cerr)
	}
	return n, err
}

// WriteTSV writes a header of column names followed by one line per row.
// Rows are consumed one at a time, so memory use does not grow with the
// size of the result set.
func WriteTSV(w io.Writer, rows Rows) (int, error) {
	cols, err := rows.Columns()
	if err != nil {
		return 0, fmt.Errorf("error getting columns: %w", err)
	}

	tw := csv.NewWriter(w)
	tw.Comma = '\t'
	tw.UseCRLF = runtime.GOOS == "windows"

	if err := writeRecord(w, tw, cols); err != nil {
		return 0, fmt.Errorf("error writing TSV header: %w", err)
	}
	rowCount := 0
	for rows.Next() {
		vals, err := ScanRowStrings(rows, cols)
		if err != nil {
			return rowCount, err
		}
		if err := writeRecord(w, tw, vals); err != nil {
			return rowCount, fmt.Errorf("error writing TSV row: %w", err)
		}
		rowCount++
	}
	if err := rows.Err(); err != nil {
		tw.Flush()
		return rowCount, fmt.Errorf("row error: %w", err)
	}
	tw.Flush()
	if err := tw.Error(); err != nil {
		return rowCount, fmt.Errorf("error writing TSV file: %w", err)
	}
	return rowCount, nil
}

// writeRecord writes one record through tw. A record made of a single empty
// field is written as "" so it does not come out as a blank line, which
// readers skip.
func writeRecord(w io.Writer, tw *csv.Writer, record []string) error {
	if len(record) != 1 || record[0] != "" {
		return tw.Write(record)
	}
	tw.Flush()
	if err := tw.Error(); err != nil {
		return err
	}
	line := "\"\"\n"
	if tw.UseCRLF {
		line = "\"\"\r\n"
	}
	_, err := io.WriteString(w, line)
	return err
}
