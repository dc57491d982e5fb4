package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/PraMishra-s/E-Health-Backend-sub001/domain"
)

// CredentialRepositoryImpl implements domain.CredentialRepository using GORM
type CredentialRepositoryImpl struct {
	db *gorm.DB
}

// NewCredentialRepository creates a new credential repository
func NewCredentialRepository(db *gorm.DB) domain.CredentialRepository {
	return &CredentialRepositoryImpl{db: db}
}

// FindByEmail implements domain.CredentialRepository
func (r *CredentialRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	var dbCred DBCredential
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbCred).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCredentialNotFound
		}
		return nil, err
	}
	return credentialToDomain(&dbCred), nil
}

// FindByAccountID implements domain.CredentialRepository
func (r *CredentialRepositoryImpl) FindByAccountID(ctx context.Context, accountID uint) (*domain.Credential, error) {
	var dbCred DBCredential
	err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&dbCred).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCredentialNotFound
		}
		return nil, err
	}
	return credentialToDomain(&dbCred), nil
}

// SetVerified implements domain.CredentialRepository
func (r *CredentialRepositoryImpl) SetVerified(ctx context.Context, accountID uint) error {
	return r.db.WithContext(ctx).Model(&DBCredential{}).
		Where("account_id = ?", accountID).
		Update("verified", true).Error
}

// SetMFARequired implements domain.CredentialRepository
func (r *CredentialRepositoryImpl) SetMFARequired(ctx context.Context, accountID uint, required bool) error {
	return r.db.WithContext(ctx).Model(&DBCredential{}).
		Where("account_id = ?", accountID).
		Update("mfa_required", required).Error
}

// UpdatePasswordHash implements domain.CredentialRepository
func (r *CredentialRepositoryImpl) UpdatePasswordHash(ctx context.Context, accountID uint, hash string) error {
	return r.db.WithContext(ctx).Model(&DBCredential{}).
		Where("account_id = ?", accountID).
		Update("password", hash).Error
}

func credentialToDB(cred *domain.Credential) *DBCredential {
	return &DBCredential{
		ID:           cred.ID,
		AccountID:    cred.AccountID,
		Email:        cred.Email,
		PasswordHash: cred.PasswordHash,
		Role:         cred.Role,
		Verified:     cred.Verified,
		MFARequired:  cred.MFARequired,
	}
}

func credentialToDomain(dbCred *DBCredential) *domain.Credential {
	return &domain.Credential{
		ID:           dbCred.ID,
		AccountID:    dbCred.AccountID,
		Email:        dbCred.Email,
		PasswordHash: dbCred.PasswordHash,
		Role:         dbCred.Role,
		Verified:     dbCred.Verified,
		MFARequired:  dbCred.MFARequired,
		CreatedAt:    dbCred.CreatedAt,
		UpdatedAt:    dbCred.UpdatedAt,
	}
}
