package repository

import (
	"context"

	"github.com/osse101/seedling/internal/domain"
)

// Message defines data access for the message board
type Message interface {
	// ListMessages returns every message ordered by time ascending
	ListMessages(ctx context.Context) ([]domain.Message, error)
	// InsertMessage stores msg and sets msg.ID
	InsertMessage(ctx context.Context, msg *domain.Message) error
	// DeleteMessage removes a message. A missing id is not an error.
	DeleteMessage(ctx context.Context, id int64) error
	DeleteAllMessages(ctx context.Context) error
}
