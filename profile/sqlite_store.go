package profile

import (
	"context"
	"database/sql"
	"fmt"

	"fitness-ai-assistant/database"
	"fitness-ai-assistant/models"
)

// SQLiteStore keeps one row per profile field
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore migrates the profile_fields table on db
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if err := database.MigrateProfile(ctx, db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context) (models.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT field, value FROM profile_fields`)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	defer rows.Close()

	p := models.Profile{}
	for rows.Next() {
		var field, value string
		if err := rows.Scan(&field, &value); err != nil {
			return nil, err
		}
		p[field] = value
	}
	return p, rows.Err()
}

func (s *SQLiteStore) Update(ctx context.Context, fields map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for field, value := range fields {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO profile_fields (field, value) VALUES (?, ?)
			ON CONFLICT(field) DO UPDATE SET value = excluded.value
		`, field, value)
		if err != nil {
			return fmt.Errorf("failed to save %s: %w", field, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM profile_fields`); err != nil {
		return fmt.Errorf("failed to reset profile: %w", err)
	}
	return nil
}
