package services

import (
	"testing"
	"time"

	"github.com/PraMishra-s/E-Health-Backend-sub001/domain"
	"github.com/PraMishra-s/E-Health-Backend-sub001/internal/mocks"
)

// testAuthConfig returns the timing knobs used across the service tests.
func testAuthConfig() AuthConfig {
	return AuthConfig{
		AccessTTL:       15 * time.Minute,
		RefreshTTL:      7 * 24 * time.Hour,
		VerificationTTL: 45 * time.Minute,
		ResetTTL:        240 * time.Second,
		OTPTTL:          300 * time.Second,
		OTPLength:       6,
		RateLimitWindow: 180 * time.Second,
		RateLimitMax:    2,
	}
}

// createAuthServiceForTest creates an AuthService with mock dependencies.
// Nil arguments get fresh default mocks.
func createAuthServiceForTest(t *testing.T,
	accountRepo domain.AccountRepository,
	credRepo domain.CredentialRepository,
	sessionRepo domain.SessionRepository,
	cache domain.CacheStore,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	notifySvc domain.NotificationService,
	audit domain.AuditLogger) domain.AuthService {
	t.Helper()

	if accountRepo == nil {
		accountRepo = mocks.NewMockAccountRepository()
	}
	if credRepo == nil {
		credRepo = mocks.NewMockCredentialRepository()
	}
	if sessionRepo == nil {
		sessionRepo = mocks.NewMockSessionRepository()
	}
	if cache == nil {
		cache = mocks.NewMockCacheStore()
	}
	if passwordSvc == nil {
		passwordSvc = mocks.NewMockPasswordService()
	}
	if tokenSvc == nil {
		tokenSvc = mocks.NewMockTokenService()
	}
	if notifySvc == nil {
		notifySvc = mocks.NewMockNotificationService()
	}
	if audit == nil {
		audit = mocks.NewMockAuditLogger()
	}

	return NewAuthService(accountRepo, credRepo, sessionRepo, cache, passwordSvc, tokenSvc, notifySvc, audit, testAuthConfig())
}

// createAccount creates a valid patient account entity for testing
func createAccount(t *testing.T) *domain.Account {
	t.Helper()

	return &domain.Account{
		ID:          1,
		FirstName:   "Asha",
		LastName:    "Rai",
		Phone:       "+9779801234567",
		AccountType: domain.AccountTypePatient,
		CreatedAt:   time.Now().Add(-24 * time.Hour),
	}
}

// createVerifiedCredential creates a verified patient credential for testing
func createVerifiedCredential(t *testing.T) *domain.Credential {
	t.Helper()

	return &domain.Credential{
		ID:           1,
		AccountID:    1,
		Email:        "asha@example.com",
		PasswordHash: "hashed_password123",
		Role:         domain.RolePatient,
		Verified:     true,
	}
}

// createHealthAssistant returns the account and credential pair for a
// verified health assistant.
func createHealthAssistant(t *testing.T) (*domain.Account, *domain.Credential) {
	t.Helper()

	account := createAccount(t)
	account.ID = 2
	account.AccountType = domain.AccountTypeHealthAssistant

	cred := createVerifiedCredential(t)
	cred.ID = 2
	cred.AccountID = 2
	cred.Email = "ha@example.com"
	cred.Role = domain.RoleHealthAssistant
	return account, cred
}
