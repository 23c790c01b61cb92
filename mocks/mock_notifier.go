package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/seedling/internal/domain"
)

// MockNotifier is a mock implementation of tree.Notifier
type MockNotifier struct {
	mock.Mock
}

// NewMockNotifier creates a mock that asserts its expectations at test cleanup
func NewMockNotifier(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockNotifier {
	m := &MockNotifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockNotifier) SeedlingRipe(ctx context.Context, state domain.TreeState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *MockNotifier) SeedlingHarvested(ctx context.Context, state domain.TreeState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}
