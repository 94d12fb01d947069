package audio

import (
	"sync"
	"time"
)

// MockDispatcher records dispatched timestamps for tests.
type MockDispatcher struct {
	mu         sync.Mutex
	timestamps []time.Time
	closed     bool
}

// NewMockDispatcher creates a new MockDispatcher.
func NewMockDispatcher() *MockDispatcher {
	return &MockDispatcher{}
}

// Dispatch records the timestamp.
func (m *MockDispatcher) Dispatch(ts time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timestamps = append(m.timestamps, ts)
}

// Close marks the dispatcher closed.
func (m *MockDispatcher) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Timestamps returns a copy of the recorded dispatch times.
func (m *MockDispatcher) Timestamps() []time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]time.Time, len(m.timestamps))
	copy(out, m.timestamps)
	return out
}

// Closed reports whether Close has been called.
func (m *MockDispatcher) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
