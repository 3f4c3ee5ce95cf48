package cmd

import (
	"context"
	"database/sql"
	"io"

	"extractmysql/config"
	"extractmysql/dbexport"

	"github.com/rs/zerolog/log"
)

// runExport performs one export run: credentials, connection, table list,
// one file per table.
func runExport(ctx context.Context, cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) error {
	password, err := resolvePassword(cfg.Password, newPasswordReader(stdin, stderr))
	if err != nil {
		return err
	}
	return withDB(ctx, cfg, password, func(ctx context.Context, db *sql.DB) error {
		n, err := dbexport.Run(ctx, db, cfg.ExportOptions(), stdout, log.Logger)
		if err != nil {
			return err
		}
		log.Info().
			Int("tables", n).
			Str("output_dir", cfg.OutputDir).
			Msg("export completed")
		return nil
	})
}
