package mocks

import (
	"context"
	"sync"

	"github.com/example/pocket-shop/internal/domain/cart"
)

type PublishCall struct {
	Key   string
	Event cart.Event
}

// MockPublisher records published cart events
type MockPublisher struct {
	mu           sync.Mutex
	PublishCalls []PublishCall
	PublishErr   error
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, key string, event any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := event.(cart.Event); ok {
		m.PublishCalls = append(m.PublishCalls, PublishCall{Key: key, Event: e})
	}
	return m.PublishErr
}

// EventTypes lists the recorded event types in publish order.
func (m *MockPublisher) EventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, 0, len(m.PublishCalls))
	for _, c := range m.PublishCalls {
		types = append(types, c.Event.EventType)
	}
	return types
}
