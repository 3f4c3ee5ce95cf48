package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"extractmysql/config"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

// exitFunc is swapped out in tests.
var exitFunc = os.Exit

// usageError marks an invalid invocation. It is reported together with the
// usage text and exits with status 2.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func newUsageError(err error) error {
	if err == nil {
		return nil
	}
	return &usageError{err: err}
}

type logOptions struct {
	verbose bool
	quiet   bool
	json    bool
}

func newRootCmd() *cobra.Command {
	var logOpts logOptions
	cmd := &cobra.Command{
		Use:   "extract-mysql-tables [flags] database [table-file]",
		Short: "Export MySQL tables to TSV files",
		Long: `Command-line utility for exporting tables from a MySQL database to files in
tab-separated values (TSV) format. Each table is written to <output-dir>/<table>.tsv
with a header row of column names.

If table-file is given, it lists the tables to export, one per line; otherwise
every table in the database is exported.`,
		Version:       Version,
		Args:          validateArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd.ErrOrStderr(), logOpts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags(), args)
			if err != nil {
				return newUsageError(err)
			}
			return runExport(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.SetVersionTemplate("extract-mysql-tables {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return newUsageError(err)
	})

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.BoolP("version", "V", false, "show program's version number and exit")
	config.RegisterFlags(flags)
	_ = cmd.MarkFlagDirname(config.FlagOutputDir)

	pflags := cmd.PersistentFlags()
	pflags.BoolVarP(&logOpts.verbose, "verbose", "v", false, "enable verbose (debug) logging")
	pflags.BoolVarP(&logOpts.quiet, "quiet", "q", false, "log errors only")
	pflags.BoolVar(&logOpts.json, "log-json", false, "write logs as JSON")
	return cmd
}

func validateArgs(cmd *cobra.Command, args []string) error {
	return newUsageError(cobra.RangeArgs(1, 2)(cmd, args))
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	exitFunc(execute(newRootCmd(), os.Args[1:]))
}

func execute(cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	stderr := cmd.ErrOrStderr()
	var uerr *usageError
	if errors.As(err, &uerr) {
		printUsageError(stderr, cmd, uerr)
		return 2
	}
	log.Error().Err(err).Msg("export failed")
	if hint := errorHint(err); hint != "" {
		fmt.Fprintln(stderr, hint)
	}
	return 1
}

func printUsageError(w io.Writer, cmd *cobra.Command, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	fmt.Fprint(w, cmd.UsageString())
}
