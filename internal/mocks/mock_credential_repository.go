package mocks

import (
	"context"

	"github.com/PraMishra-s/E-Health-Backend-sub001/domain"
)

// MockCredentialRepository implements domain.CredentialRepository interface for testing
type MockCredentialRepository struct {
	FindByEmailFunc        func(ctx context.Context, email string) (*domain.Credential, error)
	FindByAccountIDFunc    func(ctx context.Context, accountID uint) (*domain.Credential, error)
	SetVerifiedFunc        func(ctx context.Context, accountID uint) error
	SetMFARequiredFunc     func(ctx context.Context, accountID uint, required bool) error
	UpdatePasswordHashFunc func(ctx context.Context, accountID uint, hash string) error
}

// NewMockCredentialRepository creates a new MockCredentialRepository with default behaviors
func NewMockCredentialRepository() *MockCredentialRepository {
	return &MockCredentialRepository{}
}

// FindByEmail finds a credential by email
func (m *MockCredentialRepository) FindByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrCredentialNotFound
}

// FindByAccountID finds a credential by account ID
func (m *MockCredentialRepository) FindByAccountID(ctx context.Context, accountID uint) (*domain.Credential, error) {
	if m.FindByAccountIDFunc != nil {
		return m.FindByAccountIDFunc(ctx, accountID)
	}
	// Default behavior: not found
	return nil, domain.ErrCredentialNotFound
}

// SetVerified marks a credential's email as verified
func (m *MockCredentialRepository) SetVerified(ctx context.Context, accountID uint) error {
	if m.SetVerifiedFunc != nil {
		return m.SetVerifiedFunc(ctx, accountID)
	}
	// Default behavior: success
	return nil
}

// SetMFARequired flips a credential's second-factor flag
func (m *MockCredentialRepository) SetMFARequired(ctx context.Context, accountID uint, required bool) error {
	if m.SetMFARequiredFunc != nil {
		return m.SetMFARequiredFunc(ctx, accountID, required)
	}
	// Default behavior: success
	return nil
}

// UpdatePasswordHash replaces a credential's password hash
func (m *MockCredentialRepository) UpdatePasswordHash(ctx context.Context, accountID uint, hash string) error {
	if m.UpdatePasswordHashFunc != nil {
		return m.UpdatePasswordHashFunc(ctx, accountID, hash)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.CredentialRepository = (*MockCredentialRepository)(nil)
