package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/seedling/internal/domain"
)

// MockRepositoryTree is a mock implementation of repository.Tree
type MockRepositoryTree struct {
	mock.Mock
}

// NewMockRepositoryTree creates a mock that asserts its expectations at test cleanup
func NewMockRepositoryTree(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRepositoryTree {
	m := &MockRepositoryTree{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRepositoryTree) EnsureTreeState(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRepositoryTree) GetTreeState(ctx context.Context) (*domain.TreeState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TreeState), args.Error(1)
}

func (m *MockRepositoryTree) RecordWatering(ctx context.Context, wateredCount int, day domain.Day, ready bool) error {
	args := m.Called(ctx, wateredCount, day, ready)
	return args.Error(0)
}

func (m *MockRepositoryTree) RecordHarvest(ctx context.Context, harvestCount int) error {
	args := m.Called(ctx, harvestCount)
	return args.Error(0)
}

func (m *MockRepositoryTree) ResetTreeState(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
