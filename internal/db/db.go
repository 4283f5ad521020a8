// Package db opens the database and applies goose migrations. SQLite is the
// default driver; Postgres deployments select pgx through DB_DRIVER.
package db

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Open connects to the database and configures the connection pool.
// sqlx.Connect verifies the connection with a ping.
func Open(driver, dsn string) (*sqlx.DB, error) {
	if driver == "sqlite" {
		err := ensureDataDir(dsn)
		if err != nil {
			return nil, err
		}
	}

	database, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	database.SetMaxOpenConns(25)
	database.SetMaxIdleConns(5)
	database.SetConnMaxLifetime(5 * time.Minute)

	slog.Info("database connected", "driver", driver)
	return database, nil
}

// ensureDataDir creates the directory holding the sqlite file. The DSN may
// carry _pragma options after the path, and in-memory databases have no file.
func ensureDataDir(dsn string) error {
	path := dsn
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if path == ":memory:" || path == "" {
		return nil
	}

	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}
