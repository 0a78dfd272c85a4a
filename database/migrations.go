package database

import (
	"context"
	"database/sql"
	"fmt"
)

var conversationLogSchema = map[Dialect]string{
	Postgres: `
		CREATE TABLE IF NOT EXISTS conversation_log (
			id         SERIAL PRIMARY KEY,
			user_input TEXT NOT NULL,
			reply      TEXT NOT NULL,
			timestamp  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	SQLite: `
		CREATE TABLE IF NOT EXISTS conversation_log (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_input TEXT NOT NULL,
			reply      TEXT NOT NULL,
			timestamp  TEXT NOT NULL
		)`,
}

const profileSchema = `
	CREATE TABLE IF NOT EXISTS profile_fields (
		field TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`

// MigrateConversationLog ensures the conversation_log table exists
func MigrateConversationLog(ctx context.Context, db *sql.DB, dialect Dialect) error {
	schema, ok := conversationLogSchema[dialect]
	if !ok {
		return fmt.Errorf("unsupported dialect: %s", dialect)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create conversation_log: %w", err)
	}
	return nil
}

// MigrateProfile ensures the profile_fields table exists
func MigrateProfile(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, profileSchema); err != nil {
		return fmt.Errorf("failed to create profile_fields: %w", err)
	}
	return nil
}
