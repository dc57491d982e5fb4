package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/PraMishra-s/E-Health-Backend-sub001/domain"
)

func newTestJWTService(accessTTL, refreshTTL time.Duration) domain.TokenService {
	return NewJWTService("test-secret-key-for-tests-only", "ehealth-test", accessTTL, refreshTTL)
}

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 7*24*time.Hour)

	token, err := svc.GenerateAccessToken(42, domain.RoleHealthAssistant, "session-1")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.AccountID != 42 {
		t.Errorf("expected account 42, got %d", claims.AccountID)
	}
	if claims.Role != domain.RoleHealthAssistant {
		t.Errorf("expected health_assistant role, got %s", claims.Role)
	}
	if claims.SessionID != "session-1" {
		t.Errorf("expected session-1, got %s", claims.SessionID)
	}
	if claims.TokenType != domain.TokenTypeAccess {
		t.Errorf("expected access type, got %s", claims.TokenType)
	}
}

func TestJWTService_RefreshTokenRoundTrip(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 7*24*time.Hour)

	token, err := svc.GenerateRefreshToken("session-1")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := svc.ValidateRefreshToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.SessionID != "session-1" {
		t.Errorf("expected session-1, got %s", claims.SessionID)
	}
	// Refresh claims carry no identity.
	if claims.AccountID != 0 || claims.Role != "" {
		t.Errorf("refresh claims must not carry identity, got %+v", claims)
	}
}

func TestJWTService_TypeConfusionRejected(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 7*24*time.Hour)

	access, _ := svc.GenerateAccessToken(1, domain.RolePatient, "s1")
	refresh, _ := svc.GenerateRefreshToken("s1")

	if _, err := svc.ValidateRefreshToken(access); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("access token accepted as refresh: %v", err)
	}
	if _, err := svc.ValidateAccessToken(refresh); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("refresh token accepted as access: %v", err)
	}
}

func TestJWTService_TamperedTokenRejected(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 7*24*time.Hour)

	token, _ := svc.GenerateAccessToken(1, domain.RolePatient, "s1")
	tampered := token[:len(token)-2] + "xx"

	if _, err := svc.ValidateAccessToken(tampered); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for tampered token, got %v", err)
	}
}

func TestJWTService_WrongKeyRejected(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 7*24*time.Hour)
	other := NewJWTService("a-different-secret", "ehealth-test", 15*time.Minute, 7*24*time.Hour)

	token, _ := svc.GenerateAccessToken(1, domain.RolePatient, "s1")
	if _, err := other.ValidateAccessToken(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid under a different key, got %v", err)
	}
}

func TestJWTService_ExpiredTokenRejected(t *testing.T) {
	svc := newTestJWTService(-time.Minute, -time.Minute)

	token, _ := svc.GenerateAccessToken(1, domain.RolePatient, "s1")
	if _, err := svc.ValidateAccessToken(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestJWTService_GarbageRejected(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 7*24*time.Hour)
	if _, err := svc.ValidateAccessToken("not.a.token"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}
