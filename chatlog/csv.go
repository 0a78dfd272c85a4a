package chatlog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fitness-ai-assistant/models"
)

var csvHeader = []string{"Timestamp", "User Input", "AI Response"}

// CSVRecorder appends exchanges to a CSV file, writing the header when the
// file is new or empty.
type CSVRecorder struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

// NewCSVRecorder creates the parent directory of path if needed
func NewCSVRecorder(path string) (*CSVRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return &CSVRecorder{path: path, now: time.Now}, nil
}

func (r *CSVRecorder) Record(ctx context.Context, userInput, reply string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open chat log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat chat log: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			return err
		}
	}
	if err := w.Write([]string{r.now().Format(time.RFC3339Nano), userInput, reply}); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write chat log: %w", err)
	}
	return nil
}

// Recent returns up to limit exchanges, newest first. IDs are row numbers
// below the header.
func (r *CSVRecorder) Recent(ctx context.Context, limit int) ([]models.ConversationLog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.Open(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open chat log: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read chat log: %w", err)
	}
	if len(rows) > 0 {
		rows = rows[1:]
	}

	var logs []models.ConversationLog
	for i := len(rows) - 1; i >= 0 && len(logs) < limit; i-- {
		row := rows[i]
		if len(row) != len(csvHeader) {
			return nil, fmt.Errorf("chat log row %d has %d fields", i+1, len(row))
		}
		ts, err := time.Parse(time.RFC3339Nano, row[0])
		if err != nil {
			return nil, fmt.Errorf("bad timestamp %q: %w", row[0], err)
		}
		logs = append(logs, models.ConversationLog{ID: i + 1, UserInput: row[1], Reply: row[2], Timestamp: ts})
	}
	return logs, nil
}
