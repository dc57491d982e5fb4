package domain

import "time"

// Account types accepted at registration. A guardian registers on behalf of
// a patient and is issued a patient credential.
const (
	AccountTypePatient         = "patient"
	AccountTypeGuardian        = "guardian"
	AccountTypeHealthAssistant = "health_assistant"
)

// Credential roles.
const (
	RolePatient         = "patient"
	RoleHealthAssistant = "health_assistant"
	RoleAdmin           = "admin"
)

// Account represents a profile record the system authenticates
type Account struct {
	ID          uint
	FirstName   string
	LastName    string
	Phone       string
	Gender      string
	DateOfBirth string
	AccountType string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Credential is the email/password/role record controlling login for an
// Account. Exactly one Credential exists per Account that has one; email is
// globally unique. PasswordHash may be empty for account types that
// authenticate otherwise.
type Credential struct {
	ID           uint
	AccountID    uint
	Email        string
	PasswordHash string
	Role         string
	Verified     bool
	MFARequired  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is a durable, time-boxed authorization grant created at successful
// login or MFA completion.
type Session struct {
	ID        string
	AccountID uint
	UserAgent string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// SessionSnapshot is the denormalized copy of a Session cached under
// session:{id}. It carries the fields the request path reads without
// touching the durable store. Patched in place (merge, not overwrite) when
// credential flags change underneath it.
type SessionSnapshot struct {
	ID          string `json:"id"`
	AccountID   uint   `json:"account_id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Role        string `json:"role"`
	UserAgent   string `json:"user_agent"`
	Verified    bool   `json:"verified"`
	MFARequired bool   `json:"mfa_required"`
	ExpiresAt   int64  `json:"expires_at"`
}

// AvailabilityMirror is the JSON value cached under ha:leave. Pointer fields
// make merges explicit: a writer patches only the flags it owns and leaves
// the rest untouched.
type AvailabilityMirror struct {
	IsAvailable *bool `json:"is_available,omitempty"`
	IsOnLeave   *bool `json:"is_on_leave,omitempty"`
}

// AvailabilityRecord holds the health-assistant duty flags. Durable source
// of truth; the ha:available / ha:leave cache keys mirror it best-effort.
type AvailabilityRecord struct {
	AccountID   uint
	IsAvailable bool
	IsOnLeave   bool
	UpdatedAt   time.Time
}

// LeavePeriod is a scheduled absence for a health assistant. Created by an
// external workflow; consumed exactly once by the leave synchronizer, which
// uses Processed to make repeated ticks no-ops.
type LeavePeriod struct {
	ID        uint
	AccountID uint
	StartDate time.Time
	EndDate   time.Time
	Processed bool
	CreatedAt time.Time
}

// RegisterInput carries registration attributes into the orchestrator.
type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Gender      string
	DateOfBirth string
	Password    string
	AccountType string
}

// UserView is the sanitized account view returned to callers. Never carries
// the password hash.
type UserView struct {
	AccountID   uint   `json:"account_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Verified    bool   `json:"verified"`
	MFARequired bool   `json:"mfa_required"`
	IsAvailable *bool  `json:"is_available,omitempty"`
	IsOnLeave   *bool  `json:"is_on_leave,omitempty"`
}

// AuthResult represents authentication outcome. When MFARequired is true the
// login stopped at the challenge: no tokens and no session were issued.
type AuthResult struct {
	User         *UserView
	AccessToken  string
	RefreshToken string
	SessionID    string
	ExpiresIn    int64
	MFARequired  bool
}

// RefreshResult carries the token rotation outcome. RefreshToken is empty
// unless the session was close enough to expiry to be extended.
type RefreshResult struct {
	AccessToken  string
	RefreshToken string
	SessionID    string
	ExpiresIn    int64
}

// Token types carried in the typ claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenClaims represents verified JWT claims.
type TokenClaims struct {
	AccountID uint   `json:"account_id"`
	Role      string `json:"role,omitempty"`
	SessionID string `json:"session_id"`
	TokenType string `json:"typ"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// RoleForAccountType maps a registration account type to the primary
// credential role. Guardians act for patients and get a patient credential.
func RoleForAccountType(accountType string) string {
	switch accountType {
	case AccountTypeGuardian:
		return RolePatient
	case AccountTypeHealthAssistant:
		return RoleHealthAssistant
	default:
		return RolePatient
	}
}
