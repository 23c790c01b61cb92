package message

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/seedling/internal/admin"
	"github.com/osse101/seedling/internal/clock"
	"github.com/osse101/seedling/internal/domain"
	"github.com/osse101/seedling/mocks"
)

const testSecret = "971314"

var now = time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)

func newTestService(t *testing.T) (Service, *mocks.MockRepositoryMessage) {
	repo := mocks.NewMockRepositoryMessage(t)
	return NewService(repo, clock.NewSimulatedClock(now), admin.NewSecret(testSecret), time.Second), repo
}

func TestPost(t *testing.T) {
	tests := []struct {
		name     string
		inName   string
		inText   string
		wantName string
		wantText string
		wantErr  error
	}{
		{"trims text", "ann", "  hello  ", "ann", "hello", nil},
		{"name optional", "", "hi", "", "hi", nil},
		{"nfc normalises", "", "cafe\u0301", "", "caf\u00e9", nil},
		{"empty text", "ann", "", "", "", domain.ErrEmptyText},
		{"whitespace text", "ann", " \t\n ", "", "", domain.ErrEmptyText},
		{"text too long", "", strings.Repeat("a", domain.MaxMessageTextRunes+1), "", "", domain.ErrInvalidInput},
		{"name too long", strings.Repeat("n", domain.MaxMessageNameRunes+1), "hi", "", "", domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService(t)
			if tt.wantErr == nil {
				repo.On("InsertMessage", mock.Anything, mock.AnythingOfType("*domain.Message")).
					Run(func(args mock.Arguments) { args.Get(1).(*domain.Message).ID = 7 }).
					Return(nil).Once()
			}

			msg, err := svc.Post(context.Background(), tt.inName, tt.inText)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				assert.Nil(t, msg)
				repo.AssertNotCalled(t, "InsertMessage", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.Message{ID: 7, Name: tt.wantName, Text: tt.wantText, Time: now.UnixMilli()}, *msg)
		})
	}
}

func TestPost_StorageError(t *testing.T) {
	svc, repo := newTestService(t)
	repo.On("InsertMessage", mock.Anything, mock.Anything).Return(errors.New("locked")).Once()

	_, err := svc.Post(context.Background(), "", "hi")
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestList(t *testing.T) {
	svc, repo := newTestService(t)
	want := []domain.Message{{ID: 1, Text: "a", Time: 1}, {ID: 2, Text: "b", Time: 2}}
	repo.On("ListMessages", mock.Anything).Return(want, nil).Once()

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDelete(t *testing.T) {
	t.Run("wrong credential never reaches storage", func(t *testing.T) {
		svc, repo := newTestService(t)

		assert.ErrorIs(t, svc.Delete(context.Background(), "nope", 1), domain.ErrUnauthorized)
		assert.ErrorIs(t, svc.DeleteAll(context.Background(), ""), domain.ErrUnauthorized)
		repo.AssertNotCalled(t, "DeleteMessage", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "DeleteAllMessages", mock.Anything)
	})

	t.Run("deletes one", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.On("DeleteMessage", mock.Anything, int64(42)).Return(nil).Once()

		assert.NoError(t, svc.Delete(context.Background(), testSecret, 42))
	})

	t.Run("deletes all", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.On("DeleteAllMessages", mock.Anything).Return(nil).Once()

		assert.NoError(t, svc.DeleteAll(context.Background(), testSecret))
	})

	t.Run("storage failure", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.On("DeleteAllMessages", mock.Anything).Return(errors.New("gone")).Once()

		assert.ErrorIs(t, svc.DeleteAll(context.Background(), testSecret), domain.ErrStorage)
	})
}
