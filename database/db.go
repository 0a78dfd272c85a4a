package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"fitness-ai-assistant/logging"
)

// Dialect selects placeholder and schema flavor
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// Placeholder returns the n-th (1-based) bind parameter
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// ConnectPostgres establishes a connection to PostgreSQL, retrying until the
// server answers or maxRetries pings have failed.
func ConnectPostgres(ctx context.Context, dsn string, maxRetries int, wait time.Duration) (*sql.DB, error) {
	log := logging.L()

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if maxRetries < 1 {
		maxRetries = 1
	}
	for i := 0; i < maxRetries; i++ {
		err = db.PingContext(ctx)
		if err == nil {
			log.Info("Successfully connected to database")
			return db, nil
		}
		log.Warnf("Failed to connect to database (attempt %d/%d): %v", i+1, maxRetries, err)

		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}

	db.Close()
	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// OpenSQLite opens (creating if needed) the SQLite database at path
func OpenSQLite(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	return db, nil
}
