package mocks

import (
	"context"

	"github.com/PraMishra-s/E-Health-Backend-sub001/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc           func(ctx context.Context, input domain.RegisterInput) (*domain.UserView, error)
	LoginFunc              func(ctx context.Context, email, password, userAgent string) (*domain.AuthResult, error)
	VerifyEmailFunc        func(ctx context.Context, code string) error
	ResendVerificationFunc func(ctx context.Context, email string) error
	ForgotPasswordFunc     func(ctx context.Context, email string) error
	ResetPasswordFunc      func(ctx context.Context, code, newPassword string) error
	RefreshTokenFunc       func(ctx context.Context, refreshToken string) (*domain.RefreshResult, error)
	LogoutFunc             func(ctx context.Context, sessionID string) error
	CurrentUserFunc        func(ctx context.Context, sessionID string) (*domain.UserView, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Register(ctx context.Context, input domain.RegisterInput) (*domain.UserView, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, input)
	}
	return &domain.UserView{AccountID: 1, Email: input.Email, Role: domain.RoleForAccountType(input.AccountType)}, nil
}

func (m *MockAuthService) Login(ctx context.Context, email, password, userAgent string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password, userAgent)
	}
	return &domain.AuthResult{
		User:         &domain.UserView{AccountID: 1, Email: email, Role: domain.RolePatient, Verified: true},
		AccessToken:  "access_token",
		RefreshToken: "refresh_token",
		SessionID:    "mock_session_id",
		ExpiresIn:    900,
	}, nil
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, code string) error {
	if m.VerifyEmailFunc != nil {
		return m.VerifyEmailFunc(ctx, code)
	}
	return nil
}

func (m *MockAuthService) ResendVerification(ctx context.Context, email string) error {
	if m.ResendVerificationFunc != nil {
		return m.ResendVerificationFunc(ctx, email)
	}
	return nil
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email)
	}
	return nil
}

func (m *MockAuthService) ResetPassword(ctx context.Context, code, newPassword string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, code, newPassword)
	}
	return nil
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.RefreshResult, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, refreshToken)
	}
	return &domain.RefreshResult{AccessToken: "access_token", SessionID: "mock_session_id", ExpiresIn: 900}, nil
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockAuthService) CurrentUser(ctx context.Context, sessionID string) (*domain.UserView, error) {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx, sessionID)
	}
	return &domain.UserView{AccountID: 1, Email: "mock@example.com", Role: domain.RolePatient, Verified: true}, nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)

// MockMFAService implements domain.MFAService interface for testing
type MockMFAService struct {
	InvokeFunc func(ctx context.Context, accountID uint) error
	VerifyFunc func(ctx context.Context, code, email, userAgent string) (*domain.AuthResult, error)
	RevokeFunc func(ctx context.Context, accountID uint) error
}

// NewMockMFAService creates a new MockMFAService with default behaviors
func NewMockMFAService() *MockMFAService {
	return &MockMFAService{}
}

func (m *MockMFAService) Invoke(ctx context.Context, accountID uint) error {
	if m.InvokeFunc != nil {
		return m.InvokeFunc(ctx, accountID)
	}
	return nil
}

func (m *MockMFAService) Verify(ctx context.Context, code, email, userAgent string) (*domain.AuthResult, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, code, email, userAgent)
	}
	return &domain.AuthResult{
		User:         &domain.UserView{AccountID: 1, Email: email, Role: domain.RolePatient, Verified: true, MFARequired: true},
		AccessToken:  "access_token",
		RefreshToken: "refresh_token",
		SessionID:    "mock_session_id",
		ExpiresIn:    900,
	}, nil
}

func (m *MockMFAService) Revoke(ctx context.Context, accountID uint) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, accountID)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.MFAService = (*MockMFAService)(nil)
