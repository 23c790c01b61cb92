package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/seedling/internal/domain"
)

// MockMessageService is a mock implementation of message.Service
type MockMessageService struct {
	mock.Mock
}

// NewMockMessageService creates a mock that asserts its expectations at test cleanup
func NewMockMessageService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMessageService {
	m := &MockMessageService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockMessageService) List(ctx context.Context) ([]domain.Message, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *MockMessageService) Post(ctx context.Context, name, text string) (*domain.Message, error) {
	args := m.Called(ctx, name, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *MockMessageService) Delete(ctx context.Context, credential string, id int64) error {
	args := m.Called(ctx, credential, id)
	return args.Error(0)
}

func (m *MockMessageService) DeleteAll(ctx context.Context, credential string) error {
	args := m.Called(ctx, credential)
	return args.Error(0)
}
