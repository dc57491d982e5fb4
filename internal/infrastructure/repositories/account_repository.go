package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/PraMishra-s/E-Health-Backend-sub001/domain"
)

// DBAccount represents the database model for Account
type DBAccount struct {
	ID          uint   `gorm:"primaryKey"`
	FirstName   string `gorm:"size:128"`
	LastName    string `gorm:"size:128"`
	Phone       string `gorm:"index;size:32"`
	Gender      string `gorm:"size:16"`
	DateOfBirth string `gorm:"size:16"`
	AccountType string `gorm:"index;size:32"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (DBAccount) TableName() string { return "accounts" }

// DBCredential represents the database model for Credential
type DBCredential struct {
	ID           uint   `gorm:"primaryKey"`
	AccountID    uint   `gorm:"uniqueIndex"`
	Email        string `gorm:"uniqueIndex;size:255"`
	PasswordHash string `gorm:"column:password"`
	Role         string `gorm:"index;size:64"`
	Verified     bool   `gorm:"index"`
	MFARequired  bool   `gorm:"column:mfa_required"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (DBCredential) TableName() string { return "credentials" }

// DBAvailabilityRecord represents the availability flags for a
// health-assistant account
type DBAvailabilityRecord struct {
	AccountID   uint `gorm:"primaryKey"`
	IsAvailable bool
	IsOnLeave   bool
	UpdatedAt   time.Time
}

func (DBAvailabilityRecord) TableName() string { return "availability_records" }

// AccountRepositoryImpl implements domain.AccountRepository using GORM
type AccountRepositoryImpl struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) domain.AccountRepository {
	return &AccountRepositoryImpl{db: db}
}

// CreateWithCredential implements domain.AccountRepository. The account,
// its credential, and the availability record for health assistants are
// written in one transaction so a failed later write rolls back the earlier
// ones.
func (r *AccountRepositoryImpl) CreateWithCredential(ctx context.Context, account *domain.Account, cred *domain.Credential) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbAccount := accountToDB(account)
		if err := tx.Create(dbAccount).Error; err != nil {
			return err
		}
		account.ID = dbAccount.ID

		dbCred := credentialToDB(cred)
		dbCred.AccountID = dbAccount.ID
		if err := tx.Create(dbCred).Error; err != nil {
			// Two registrations racing past the FindByEmail pre-check land
			// here; the loser's unique-index violation is still "email taken".
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrEmailTaken
			}
			return err
		}
		cred.ID = dbCred.ID
		cred.AccountID = dbAccount.ID

		if cred.Role == domain.RoleHealthAssistant {
			record := &DBAvailabilityRecord{
				AccountID:   dbAccount.ID,
				IsAvailable: true,
				IsOnLeave:   false,
			}
			if err := tx.Create(record).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID implements domain.AccountRepository
func (r *AccountRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Account, error) {
	var dbAccount DBAccount
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbAccount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return accountToDomain(&dbAccount), nil
}

// AvailabilityByAccount implements domain.AccountRepository
func (r *AccountRepositoryImpl) AvailabilityByAccount(ctx context.Context, accountID uint) (*domain.AvailabilityRecord, error) {
	var record DBAvailabilityRecord
	err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &domain.AvailabilityRecord{
		AccountID:   record.AccountID,
		IsAvailable: record.IsAvailable,
		IsOnLeave:   record.IsOnLeave,
		UpdatedAt:   record.UpdatedAt,
	}, nil
}

func accountToDB(account *domain.Account) *DBAccount {
	return &DBAccount{
		ID:          account.ID,
		FirstName:   account.FirstName,
		LastName:    account.LastName,
		Phone:       account.Phone,
		Gender:      account.Gender,
		DateOfBirth: account.DateOfBirth,
		AccountType: account.AccountType,
	}
}

func accountToDomain(dbAccount *DBAccount) *domain.Account {
	return &domain.Account{
		ID:          dbAccount.ID,
		FirstName:   dbAccount.FirstName,
		LastName:    dbAccount.LastName,
		Phone:       dbAccount.Phone,
		Gender:      dbAccount.Gender,
		DateOfBirth: dbAccount.DateOfBirth,
		AccountType: dbAccount.AccountType,
		CreatedAt:   dbAccount.CreatedAt,
		UpdatedAt:   dbAccount.UpdatedAt,
	}
}
