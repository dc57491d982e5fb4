package mocks

import (
	"context"
	"time"

	"github.com/PraMishra-s/E-Health-Backend-sub001/domain"
)

// MockSessionRepository implements domain.SessionRepository interface for testing
type MockSessionRepository struct {
	CreateFunc          func(ctx context.Context, session *domain.Session) error
	FindByIDFunc        func(ctx context.Context, sessionID string) (*domain.Session, error)
	FindByAccountFunc   func(ctx context.Context, accountID uint) ([]domain.Session, error)
	ExtendExpiryFunc    func(ctx context.Context, sessionID string, expiresAt time.Time) error
	DeleteFunc          func(ctx context.Context, sessionID string) error
	DeleteByAccountFunc func(ctx context.Context, accountID uint) ([]string, error)
	DeleteExpiredFunc   func(ctx context.Context) (int64, error)
}

// NewMockSessionRepository creates a new MockSessionRepository with default behaviors
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{}
}

// Create persists a new session row
func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	// Default behavior: success
	return nil
}

// FindByID finds a live session by ID
func (m *MockSessionRepository) FindByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, sessionID)
	}
	// Default behavior: not found
	return nil, domain.ErrSessionNotFound
}

// FindByAccount lists an account's live sessions
func (m *MockSessionRepository) FindByAccount(ctx context.Context, accountID uint) ([]domain.Session, error) {
	if m.FindByAccountFunc != nil {
		return m.FindByAccountFunc(ctx, accountID)
	}
	// Default behavior: no sessions
	return nil, nil
}

// ExtendExpiry pushes a session's expiry forward
func (m *MockSessionRepository) ExtendExpiry(ctx context.Context, sessionID string, expiresAt time.Time) error {
	if m.ExtendExpiryFunc != nil {
		return m.ExtendExpiryFunc(ctx, sessionID, expiresAt)
	}
	// Default behavior: success
	return nil
}

// Delete removes a session row
func (m *MockSessionRepository) Delete(ctx context.Context, sessionID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, sessionID)
	}
	// Default behavior: success
	return nil
}

// DeleteByAccount removes every session row for an account
func (m *MockSessionRepository) DeleteByAccount(ctx context.Context, accountID uint) ([]string, error) {
	if m.DeleteByAccountFunc != nil {
		return m.DeleteByAccountFunc(ctx, accountID)
	}
	// Default behavior: nothing deleted
	return nil, nil
}

// DeleteExpired removes expired session rows
func (m *MockSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx)
	}
	// Default behavior: nothing deleted
	return 0, nil
}

// Compile-time interface compliance verification
var _ domain.SessionRepository = (*MockSessionRepository)(nil)
