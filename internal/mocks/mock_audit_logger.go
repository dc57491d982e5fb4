package mocks

import (
	"context"
	"sync"

	"github.com/PraMishra-s/E-Health-Backend-sub001/domain"
)

// MockAuditLogger implements domain.AuditLogger and records every event
type MockAuditLogger struct {
	LogFunc func(ctx context.Context, event domain.AuditEvent)

	mu     sync.Mutex
	Events []domain.AuditEvent
}

// NewMockAuditLogger creates a new MockAuditLogger
func NewMockAuditLogger() *MockAuditLogger {
	return &MockAuditLogger{}
}

// Log records the event
func (m *MockAuditLogger) Log(ctx context.Context, event domain.AuditEvent) {
	if m.LogFunc != nil {
		m.LogFunc(ctx, event)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
}

// HasEvent reports whether an event of the given type was recorded
func (m *MockAuditLogger) HasEvent(eventType domain.AuditEventType) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Events {
		if e.EventType == eventType {
			return true
		}
	}
	return false
}

// Compile-time interface compliance verification
var _ domain.AuditLogger = (*MockAuditLogger)(nil)
