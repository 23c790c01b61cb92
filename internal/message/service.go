package message

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/osse101/seedling/internal/admin"
	"github.com/osse101/seedling/internal/clock"
	"github.com/osse101/seedling/internal/domain"
	"github.com/osse101/seedling/internal/logger"
	"github.com/osse101/seedling/internal/metrics"
	"github.com/osse101/seedling/internal/repository"
)

// Service defines the message board
type Service interface {
	List(ctx context.Context) ([]domain.Message, error)
	Post(ctx context.Context, name, text string) (*domain.Message, error)
	Delete(ctx context.Context, credential string, id int64) error
	DeleteAll(ctx context.Context, credential string) error
}

type service struct {
	repo    repository.Message
	clock   clock.Clock
	secret  admin.Secret
	timeout time.Duration
}

// NewService creates a new message board service
func NewService(repo repository.Message, clk clock.Clock, secret admin.Secret, storageTimeout time.Duration) Service {
	return &service{
		repo:    repo,
		clock:   clk,
		secret:  secret,
		timeout: storageTimeout,
	}
}

func (s *service) List(ctx context.Context) ([]domain.Message, error) {
	var msgs []domain.Message
	err := s.call(ctx, "list_messages", func(ctx context.Context) error {
		var err error
		msgs, err = s.repo.ListMessages(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// Post stores a new note. Text is trimmed and NFC normalised; empty text is rejected before any write.
func (s *service) Post(ctx context.Context, name, text string) (*domain.Message, error) {
	text = Normalize(text)
	name = Normalize(name)

	if text == "" {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, domain.ErrEmptyText)
	}
	if utf8.RuneCountInString(text) > domain.MaxMessageTextRunes {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, domain.ErrMsgTextTooLong)
	}
	if utf8.RuneCountInString(name) > domain.MaxMessageNameRunes {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, domain.ErrMsgNameTooLong)
	}

	msg := &domain.Message{
		Name: name,
		Text: text,
		Time: s.clock.Now().UnixMilli(),
	}

	if err := s.call(ctx, "insert_message", func(ctx context.Context) error {
		return s.repo.InsertMessage(ctx, msg)
	}); err != nil {
		return nil, err
	}

	metrics.MessagesPosted.Inc()
	logger.FromContext(ctx).Info("Message posted", "message_id", msg.ID, "length", utf8.RuneCountInString(text))
	return msg, nil
}

// Delete removes one message. Deleting an id that does not exist still succeeds.
func (s *service) Delete(ctx context.Context, credential string, id int64) error {
	if err := s.secret.Check(credential); err != nil {
		return err
	}

	if err := s.call(ctx, "delete_message", func(ctx context.Context) error {
		return s.repo.DeleteMessage(ctx, id)
	}); err != nil {
		return err
	}

	metrics.MessagesDeleted.WithLabelValues("one").Inc()
	logger.FromContext(ctx).Info("Message deleted", "message_id", id)
	return nil
}

func (s *service) DeleteAll(ctx context.Context, credential string) error {
	if err := s.secret.Check(credential); err != nil {
		return err
	}

	if err := s.call(ctx, "delete_all_messages", s.repo.DeleteAllMessages); err != nil {
		return err
	}

	metrics.MessagesDeleted.WithLabelValues("all").Inc()
	logger.FromContext(ctx).Info("All messages deleted")
	return nil
}

func (s *service) call(ctx context.Context, op string, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		metrics.StorageErrors.WithLabelValues(op).Inc()
		return fmt.Errorf("%w: %s: %w", domain.ErrStorage, op, err)
	}
	return nil
}

// Normalize trims surrounding whitespace and applies Unicode NFC
func Normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
