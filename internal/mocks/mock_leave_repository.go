package mocks

import (
	"context"
	"time"

	"github.com/PraMishra-s/E-Health-Backend-sub001/domain"
)

// MockLeaveRepository implements domain.LeaveRepository interface for testing
type MockLeaveRepository struct {
	FindStartingFunc func(ctx context.Context, now time.Time) ([]domain.LeavePeriod, error)
	FindEndingFunc   func(ctx context.Context, now time.Time) ([]domain.LeavePeriod, error)
	StartLeaveFunc   func(ctx context.Context, period *domain.LeavePeriod) error
	EndLeaveFunc     func(ctx context.Context, period *domain.LeavePeriod) error
}

// NewMockLeaveRepository creates a new MockLeaveRepository with default behaviors
func NewMockLeaveRepository() *MockLeaveRepository {
	return &MockLeaveRepository{}
}

// FindStarting lists unprocessed leaves that have begun
func (m *MockLeaveRepository) FindStarting(ctx context.Context, now time.Time) ([]domain.LeavePeriod, error) {
	if m.FindStartingFunc != nil {
		return m.FindStartingFunc(ctx, now)
	}
	// Default behavior: none
	return nil, nil
}

// FindEnding lists leaves whose window has closed
func (m *MockLeaveRepository) FindEnding(ctx context.Context, now time.Time) ([]domain.LeavePeriod, error) {
	if m.FindEndingFunc != nil {
		return m.FindEndingFunc(ctx, now)
	}
	// Default behavior: none
	return nil, nil
}

// StartLeave flips the availability record into leave
func (m *MockLeaveRepository) StartLeave(ctx context.Context, period *domain.LeavePeriod) error {
	if m.StartLeaveFunc != nil {
		return m.StartLeaveFunc(ctx, period)
	}
	// Default behavior: success
	return nil
}

// EndLeave restores the availability record after leave
func (m *MockLeaveRepository) EndLeave(ctx context.Context, period *domain.LeavePeriod) error {
	if m.EndLeaveFunc != nil {
		return m.EndLeaveFunc(ctx, period)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.LeaveRepository = (*MockLeaveRepository)(nil)
