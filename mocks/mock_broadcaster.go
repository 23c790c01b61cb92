package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockBroadcaster is a mock implementation of tree.Broadcaster
type MockBroadcaster struct {
	mock.Mock
}

// NewMockBroadcaster creates a mock that asserts its expectations at test cleanup
func NewMockBroadcaster(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockBroadcaster {
	m := &MockBroadcaster{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBroadcaster) Broadcast(eventType string, payload interface{}) {
	m.Called(eventType, payload)
}
