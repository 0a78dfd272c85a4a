// Package chatlog persists every exchange the assistant handles.
package chatlog

import (
	"context"
	"errors"

	"fitness-ai-assistant/models"
)

// Recorder appends one exchange to a durable log
type Recorder interface {
	Record(ctx context.Context, userInput, reply string) error
}

// Reader lists recorded exchanges
type Reader interface {
	Recent(ctx context.Context, limit int) ([]models.ConversationLog, error)
}

// Multi writes to every recorder and joins their errors. One failing
// recorder does not stop the others.
type Multi []Recorder

func (m Multi) Record(ctx context.Context, userInput, reply string) error {
	var errs []error
	for _, r := range m {
		if err := r.Record(ctx, userInput, reply); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops every exchange
type Discard struct{}

func (Discard) Record(context.Context, string, string) error { return nil }
