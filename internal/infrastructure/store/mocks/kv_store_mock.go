package mocks

import (
	"context"
	"sync"
)

// MockKeyValueStore is an in-memory KeyValueStore for tests
type MockKeyValueStore struct {
	mu      sync.RWMutex
	records map[string][]byte

	// For tracking calls in tests
	GetCalls []string
	SetCalls []SetCall
	GetErr   error
	SetErr   error
}

// SetCall records parameters passed to Set
type SetCall struct {
	Key   string
	Value []byte
}

// NewMockKeyValueStore creates a new MockKeyValueStore
func NewMockKeyValueStore() *MockKeyValueStore {
	return &MockKeyValueStore{records: make(map[string][]byte)}
}

func (m *MockKeyValueStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCalls = append(m.GetCalls, key)
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	v, ok := m.records[key]
	return v, ok, nil
}

func (m *MockKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetCalls = append(m.SetCalls, SetCall{Key: key, Value: value})
	if m.SetErr != nil {
		return m.SetErr
	}
	m.records[key] = value
	return nil
}

// SetData stores a record directly, bypassing call tracking
func (m *MockKeyValueStore) SetData(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = value
}

// Data returns the raw stored record
func (m *MockKeyValueStore) Data(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.records[key]
	return v, ok
}
