package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/seedling/internal/domain"
)

// MockRepositoryMessage is a mock implementation of repository.Message
type MockRepositoryMessage struct {
	mock.Mock
}

// NewMockRepositoryMessage creates a mock that asserts its expectations at test cleanup
func NewMockRepositoryMessage(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRepositoryMessage {
	m := &MockRepositoryMessage{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRepositoryMessage) ListMessages(ctx context.Context) ([]domain.Message, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *MockRepositoryMessage) InsertMessage(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockRepositoryMessage) DeleteMessage(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepositoryMessage) DeleteAllMessages(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
