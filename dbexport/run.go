package dbexport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Options controls a full export run.
type Options struct {
	TableType        TableType
	TableFile        string
	OutputDir        string
	QuoteIdentifiers bool
	// KeepGoing continues past failing tables instead of stopping at the
	// first one. The run still fails if any table failed.
	KeepGoing bool
}

// TableError records which table an export failure belongs to.
type TableError struct {
	Table string
	Err   error
}

func (e *TableError) Error() string {
	return fmt.Sprintf("error exporting table %q: %v", e.Table, e.Err)
}

func (e *TableError) Unwrap() error { return e.Err }

// ResolveTables returns the names to export: the contents of the table file
// when one is given, otherwise the live table list. The table type only
// applies to the live list.
func ResolveTables(ctx context.Context, db Queryer, opts Options, logger zerolog.Logger) ([]string, error) {
	if opts.TableFile != "" {
		if opts.TableType != TableTypeAll {
			logger.Debug().Str("table_type", string(opts.TableType)).Msg("table type ignored, using table file")
		}
		logger.Debug().Str("file", opts.TableFile).Msg("reading table names from file")
		return ReadTableFile(opts.TableFile)
	}
	logger.Debug().Str("query", ListTablesQuery(opts.TableType)).Msg("listing tables")
	return ListTables(ctx, db, opts.TableType)
}

// OutputPath is where the export of table lands.
func OutputPath(outputDir, table string) string {
	return filepath.Join(outputDir, table+".tsv")
}

// Run exports every resolved table in order. A progress line is written to
// progress as each table starts. It returns the number of tables exported.
func Run(ctx context.Context, db Queryer, opts Options, progress io.Writer, logger zerolog.Logger) (int, error) {
	tables, err := ResolveTables(ctx, db, opts, logger)
	if err != nil {
		return 0, fmt.Errorf("error listing tables: %w", err)
	}
	logger.Debug().Int("tables", len(tables)).Msg("resolved table list")

	var failed []error
	exported := 0
	for _, table := range tables {
		if err := ctx.Err(); err != nil {
			return exported, errors.Join(append(failed, err)...)
		}
		fmt.Fprintf(progress, "Exporting table: %s\n", table)
		start := time.Now()
		path := OutputPath(opts.OutputDir, table)
		n, err := ExportTable(ctx, db, table, path, opts.QuoteIdentifiers)
		if err != nil {
			tableErr := &TableError{Table: table, Err: err}
			if !opts.KeepGoing {
				return exported, tableErr
			}
			logger.Error().Err(err).Str("table", table).Msg("export failed, continuing")
			failed = append(failed, tableErr)
			continue
		}
		exported++
		logger.Info().
			Str("table", table).
			Str("file", path).
			Int("rows", n).
			Dur("elapsed", time.Since(start)).
			Msg("table exported")
	}
	if len(failed) > 0 {
		return exported, errors.Join(failed...)
	}
	return exported, nil
}
