package mocks

import (
	"fmt"
	"time"

	"github.com/PraMishra-s/E-Health-Backend-sub001/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateAccessTokenFunc  func(accountID uint, role, sessionID string) (string, error)
	GenerateRefreshTokenFunc func(sessionID string) (string, error)
	ValidateAccessTokenFunc  func(token string) (*domain.TokenClaims, error)
	ValidateRefreshTokenFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GenerateAccessToken generates an access token for the account
func (m *MockTokenService) GenerateAccessToken(accountID uint, role, sessionID string) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(accountID, role, sessionID)
	}
	// Default behavior: return a mock access token
	return fmt.Sprintf("access_token_%d_%s_%s", accountID, role, sessionID), nil
}

// GenerateRefreshToken generates a refresh token bound to the session
func (m *MockTokenService) GenerateRefreshToken(sessionID string) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(sessionID)
	}
	// Default behavior: return a mock refresh token
	return "refresh_token_" + sessionID, nil
}

// ValidateAccessToken validates an access token and returns claims
func (m *MockTokenService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}
	now := time.Now().Unix()
	return &domain.TokenClaims{
		AccountID: 1,
		Role:      domain.RolePatient,
		SessionID: "mock_session_id",
		TokenType: domain.TokenTypeAccess,
		IssuedAt:  now,
		ExpiresAt: now + 900,
	}, nil
}

// ValidateRefreshToken validates a refresh token and returns claims
func (m *MockTokenService) ValidateRefreshToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateRefreshTokenFunc != nil {
		return m.ValidateRefreshTokenFunc(token)
	}
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}
	now := time.Now().Unix()
	return &domain.TokenClaims{
		SessionID: "mock_session_id",
		TokenType: domain.TokenTypeRefresh,
		IssuedAt:  now,
		ExpiresAt: now + 604800,
	}, nil
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
