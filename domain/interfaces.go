package domain

import (
	"context"
	"time"
)

// AccountRepository defines account data access operations. CreateWithCredential
// writes the account row, its credential, and (for health assistants) the
// availability record as one unit: a failure on any write leaves none applied.
type AccountRepository interface {
	CreateWithCredential(ctx context.Context, account *Account, cred *Credential) error
	FindByID(ctx context.Context, id uint) (*Account, error)
	AvailabilityByAccount(ctx context.Context, accountID uint) (*AvailabilityRecord, error)
}

// CredentialRepository defines credential data access operations.
type CredentialRepository interface {
	FindByEmail(ctx context.Context, email string) (*Credential, error)
	FindByAccountID(ctx context.Context, accountID uint) (*Credential, error)
	SetVerified(ctx context.Context, accountID uint) error
	SetMFARequired(ctx context.Context, accountID uint, required bool) error
	UpdatePasswordHash(ctx context.Context, accountID uint, hash string) error
}

// SessionRepository defines durable session data access operations.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	FindByAccount(ctx context.Context, accountID uint) ([]Session, error)
	ExtendExpiry(ctx context.Context, sessionID string, expiresAt time.Time) error
	Delete(ctx context.Context, sessionID string) error
	DeleteByAccount(ctx context.Context, accountID uint) ([]string, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

// LeaveRepository defines leave-period access for the synchronizer.
// StartLeave and EndLeave flip the availability record and mark the period
// processed (EndLeave) as one unit.
type LeaveRepository interface {
	FindStarting(ctx context.Context, now time.Time) ([]LeavePeriod, error)
	FindEnding(ctx context.Context, now time.Time) ([]LeavePeriod, error)
	StartLeave(ctx context.Context, period *LeavePeriod) error
	EndLeave(ctx context.Context, period *LeavePeriod) error
}

// CacheStore is the ephemeral key/value store contract. Values are opaque
// strings; callers own encode/decode. No durability across restarts, no
// cross-key atomicity. Get on a missing or expired key returns ErrCacheMiss.
type CacheStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// AuthService defines the authentication orchestrator.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*UserView, error)
	Login(ctx context.Context, email, password, userAgent string) (*AuthResult, error)
	VerifyEmail(ctx context.Context, code string) error
	ResendVerification(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, code, newPassword string) error
	RefreshToken(ctx context.Context, refreshToken string) (*RefreshResult, error)
	Logout(ctx context.Context, sessionID string) error
	CurrentUser(ctx context.Context, sessionID string) (*UserView, error)
}

// MFAService defines the second-factor challenge manager.
type MFAService interface {
	Invoke(ctx context.Context, accountID uint) error
	Verify(ctx context.Context, code, email, userAgent string) (*AuthResult, error)
	Revoke(ctx context.Context, accountID uint) error
}

// PasswordService defines the opaque one-way hash collaborator.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines bearer token operations. Verification is pure and
// side-effect-free.
type TokenService interface {
	GenerateAccessToken(accountID uint, role, sessionID string) (string, error)
	GenerateRefreshToken(sessionID string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// NotificationService defines outbound message dispatch.
type NotificationService interface {
	SendSMS(to, message string) error
	SendEmail(to, subject, text, html string) error
}

// PolicyService defines authorization policy operations.
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// CasbinEnforcer is the subset of the casbin enforcer the policy service uses.
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}

// AuditLogger records auth events. Implementations must never fail the
// operation being audited.
type AuditLogger interface {
	Log(ctx context.Context, event AuditEvent)
}
