package chatlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fitness-ai-assistant/database"
	"fitness-ai-assistant/models"
)

// SQLRecorder stores exchanges in the conversation_log table
type SQLRecorder struct {
	db      *sql.DB
	dialect database.Dialect
	now     func() time.Time
}

// NewSQLRecorder migrates the conversation_log table and returns a recorder over db
func NewSQLRecorder(ctx context.Context, db *sql.DB, dialect database.Dialect) (*SQLRecorder, error) {
	if err := database.MigrateConversationLog(ctx, db, dialect); err != nil {
		return nil, err
	}
	return &SQLRecorder{db: db, dialect: dialect, now: time.Now}, nil
}

func (r *SQLRecorder) Record(ctx context.Context, userInput, reply string) error {
	query := fmt.Sprintf(`INSERT INTO conversation_log (user_input, reply, timestamp) VALUES (%s, %s, %s)`,
		r.dialect.Placeholder(1), r.dialect.Placeholder(2), r.dialect.Placeholder(3))

	if _, err := r.db.ExecContext(ctx, query, userInput, reply, r.timestamp()); err != nil {
		return fmt.Errorf("failed to insert conversation log: %w", err)
	}
	return nil
}

// Recent returns up to limit exchanges, newest first
func (r *SQLRecorder) Recent(ctx context.Context, limit int) ([]models.ConversationLog, error) {
	query := fmt.Sprintf(`
		SELECT id, user_input, reply, timestamp
		FROM conversation_log
		ORDER BY id DESC
		LIMIT %s`, r.dialect.Placeholder(1))

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.ConversationLog
	for rows.Next() {
		var l models.ConversationLog
		var ts string
		if err := rows.Scan(&l.ID, &l.UserInput, &l.Reply, &ts); err != nil {
			return nil, err
		}
		if l.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("bad timestamp %q: %w", ts, err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (r *SQLRecorder) timestamp() any {
	now := r.now().UTC()
	if r.dialect == database.Postgres {
		return now
	}
	return now.Format(time.RFC3339Nano)
}
