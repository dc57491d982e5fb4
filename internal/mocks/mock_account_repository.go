package mocks

import (
	"context"

	"github.com/PraMishra-s/E-Health-Backend-sub001/domain"
)

// MockAccountRepository implements domain.AccountRepository interface for testing
type MockAccountRepository struct {
	CreateWithCredentialFunc  func(ctx context.Context, account *domain.Account, cred *domain.Credential) error
	FindByIDFunc              func(ctx context.Context, id uint) (*domain.Account, error)
	AvailabilityByAccountFunc func(ctx context.Context, accountID uint) (*domain.AvailabilityRecord, error)
}

// NewMockAccountRepository creates a new MockAccountRepository with default behaviors
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{}
}

// CreateWithCredential creates an account with its credential
func (m *MockAccountRepository) CreateWithCredential(ctx context.Context, account *domain.Account, cred *domain.Credential) error {
	if m.CreateWithCredentialFunc != nil {
		return m.CreateWithCredentialFunc(ctx, account, cred)
	}
	// Default behavior: success, assign ids
	account.ID = 1
	cred.AccountID = account.ID
	return nil
}

// FindByID finds an account by ID
func (m *MockAccountRepository) FindByID(ctx context.Context, id uint) (*domain.Account, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrAccountNotFound
}

// AvailabilityByAccount returns the availability record for an account
func (m *MockAccountRepository) AvailabilityByAccount(ctx context.Context, accountID uint) (*domain.AvailabilityRecord, error) {
	if m.AvailabilityByAccountFunc != nil {
		return m.AvailabilityByAccountFunc(ctx, accountID)
	}
	// Default behavior: not found
	return nil, domain.ErrAccountNotFound
}

// Compile-time interface compliance verification
var _ domain.AccountRepository = (*MockAccountRepository)(nil)
