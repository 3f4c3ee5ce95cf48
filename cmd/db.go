// Package cmd contains the command-line interface logic for the
// extract-mysql-tables tool.
//
// This file provides the helper that owns the single MySQL connection of a
// run: it opens it, verifies it and guarantees it is closed on every exit
// path, including errors and interrupts.
package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"extractmysql/config"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
)

// sqlOpen and dbPing are package-level variables to allow test injection.
var sqlOpen = sql.Open
var dbPing = func(ctx context.Context, db *sql.DB) error { return db.PingContext(ctx) }

// connectionCharset is fixed for every connection.
const connectionCharset = "utf8"

// mysqlDSN builds the driver DSN for cfg and password.
func mysqlDSN(cfg *config.Config, password string) (string, error) {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mc.DBName = cfg.Database
	if err := mc.Apply(mysql.Charset(connectionCharset, "")); err != nil {
		return "", err
	}
	return mc.FormatDSN(), nil
}

// withDB opens one connection to the configured database, calls fn with it and
// closes it afterwards, whatever fn returns. SIGINT and SIGTERM cancel the
// context handed to fn.
func withDB(ctx context.Context, cfg *config.Config, password string, fn func(ctx context.Context, db *sql.DB) error) error {
	dsn, err := mysqlDSN(cfg, password)
	if err != nil {
		return fmt.Errorf("error building connection string: %w", err)
	}
	db, err := sqlOpen("mysql", dsn)
	if err != nil {
		return fmt.Errorf("error creating connection: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing database connection")
		}
	}()
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := dbPing(ctx, db); err != nil {
		return fmt.Errorf("cannot connect to database: %w", err)
	}
	log.Debug().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("user", cfg.User).
		Str("database", cfg.Database).
		Msg("connected to MySQL")
	return fn(ctx, db)
}
