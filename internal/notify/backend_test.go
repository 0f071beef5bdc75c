package notify

import (
	"context"
	"sync"
)

// mockBackend is a mock implementation of Backend for testing.
type mockBackend struct {
	mu       sync.Mutex
	sendFunc func(ctx context.Context, n Notification) Response
	calls    []Notification
}

// Name implements Backend.
func (m *mockBackend) Name() string {
	return "mock"
}

// Send implements Backend.
func (m *mockBackend) Send(ctx context.Context, n Notification) Response {
	m.mu.Lock()
	m.calls = append(m.calls, n)
	fn := m.sendFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, n)
	}
	return Success(nil)
}

func (m *mockBackend) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
