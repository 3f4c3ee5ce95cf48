// Package config turns command-line flags and environment variables into the
// immutable settings of one export run.
//
// Connection parameters can also be set through the environment, optionally
// from a .env file in the working directory:
//   - MYSQL_HOST:     database host
//   - MYSQL_TCP_PORT: database port
//   - MYSQL_USER:     database user
//   - MYSQL_PWD:      database password
//
// Flags take precedence over the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"extractmysql/dbexport"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Flag names shared with the command definitions.
const (
	FlagUser             = "user"
	FlagPassword         = "password"
	FlagHost             = "host"
	FlagPort             = "port"
	FlagTableType        = "table-type"
	FlagOutputDir        = "output-dir"
	FlagQuoteIdentifiers = "quote-identifiers"
	FlagKeepGoing        = "keep-going"
)

// Defaults for the connection flags.
const (
	DefaultUser = "root"
	DefaultHost = "localhost"
	DefaultPort = 3306
)

var envBindings = map[string]string{
	FlagHost:     "MYSQL_HOST",
	FlagPort:     "MYSQL_TCP_PORT",
	FlagUser:     "MYSQL_USER",
	FlagPassword: "MYSQL_PWD",
}

// Config holds everything an export run needs.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string // empty means ask interactively
	Database string

	TableType        dbexport.TableType
	OutputDir        string
	TableFile        string
	QuoteIdentifiers bool
	KeepGoing        bool
}

// RegisterFlags defines the export flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagUser, "u", DefaultUser, "MySQL user (env: MYSQL_USER)")
	fs.StringP(FlagPassword, "p", "", "MySQL password (env: MYSQL_PWD; prompted for if empty)")
	fs.String(FlagHost, DefaultHost, "database host (env: MYSQL_HOST)")
	fs.IntP(FlagPort, "P", DefaultPort, "database port (env: MYSQL_TCP_PORT)")
	fs.Int(FlagTableType, 0, "table type to include in export: 1=BASE TABLE; 2=VIEW; 3=SYSTEM VIEW (ignored if a table-file is given)")
	fs.StringP(FlagOutputDir, "o", "", "path to the output directory (default: current directory)")
	fs.Bool(FlagQuoteIdentifiers, false, "quote table names with backticks in SELECT statements")
	fs.Bool(FlagKeepGoing, false, "continue with the remaining tables when one fails")
}

// ExportOptions returns the part of the configuration the exporter consumes.
func (c *Config) ExportOptions() dbexport.Options {
	return dbexport.Options{
		TableType:        c.TableType,
		TableFile:        c.TableFile,
		OutputDir:        c.OutputDir,
		QuoteIdentifiers: c.QuoteIdentifiers,
		KeepGoing:        c.KeepGoing,
	}
}

// Load builds a Config from parsed flags and the positional arguments
// (database [table-file]). Paths are validated here, so a bad path is
// reported before any connection is attempted.
func Load(fs *pflag.FlagSet, args []string) (*Config, error) {
	if len(args) < 1 || strings.TrimSpace(args[0]) == "" {
		return nil, fmt.Errorf("missing required database argument")
	}
	if len(args) > 2 {
		return nil, fmt.Errorf("too many arguments: %s", strings.Join(args[2:], " "))
	}

	_ = godotenv.Load()
	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("error binding flags: %w", err)
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", env, err)
		}
	}

	cfg := &Config{
		Host:             strings.TrimSpace(v.GetString(FlagHost)),
		Port:             v.GetInt(FlagPort),
		User:             strings.TrimSpace(v.GetString(FlagUser)),
		Password:         v.GetString(FlagPassword),
		Database:         args[0],
		QuoteIdentifiers: v.GetBool(FlagQuoteIdentifiers),
		KeepGoing:        v.GetBool(FlagKeepGoing),
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.User == "" {
		cfg.User = DefaultUser
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %s", v.GetString(FlagPort))
	}

	if fs.Changed(FlagTableType) {
		n, err := fs.GetInt(FlagTableType)
		if err != nil {
			return nil, err
		}
		if cfg.TableType, err = dbexport.ParseTableType(n); err != nil {
			return nil, err
		}
	}

	outputDir := v.GetString(FlagOutputDir)
	if !fs.Changed(FlagOutputDir) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("cannot determine current directory: %w", err)
		}
		outputDir = wd
	}
	dir, err := ResolveDirectory(outputDir)
	if err != nil {
		return nil, err
	}
	cfg.OutputDir = dir

	if len(args) == 2 {
		file, err := ResolveFile(args[1])
		if err != nil {
			return nil, err
		}
		cfg.TableFile = file
	}
	return cfg, nil
}
