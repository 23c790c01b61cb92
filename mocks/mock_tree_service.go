package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/seedling/internal/domain"
)

// MockTreeService is a mock implementation of tree.Service
type MockTreeService struct {
	mock.Mock
}

// NewMockTreeService creates a mock that asserts its expectations at test cleanup
func NewMockTreeService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTreeService {
	m := &MockTreeService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTreeService) GetState(ctx context.Context) (*domain.TreeState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TreeState), args.Error(1)
}

func (m *MockTreeService) Water(ctx context.Context) (*domain.WaterResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WaterResult), args.Error(1)
}

func (m *MockTreeService) Harvest(ctx context.Context, credential string) (*domain.HarvestResult, error) {
	args := m.Called(ctx, credential)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HarvestResult), args.Error(1)
}

func (m *MockTreeService) Reset(ctx context.Context, credential string) (*domain.TreeState, error) {
	args := m.Called(ctx, credential)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TreeState), args.Error(1)
}

func (m *MockTreeService) Shutdown(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
