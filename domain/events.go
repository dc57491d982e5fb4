package domain

import "time"

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Registration and verification events
	AccountRegisteredEvent  AuditEventType = "ACCOUNT_REGISTERED"
	EmailVerifiedEvent      AuditEventType = "EMAIL_VERIFIED"
	VerificationResentEvent AuditEventType = "VERIFICATION_RESENT"

	// Authentication events
	LoginEvent          AuditEventType = "LOGIN"
	LoginFailedEvent    AuditEventType = "LOGIN_FAILED"
	LogoutEvent         AuditEventType = "LOGOUT"
	TokenRefreshedEvent AuditEventType = "TOKEN_REFRESHED"

	// MFA events
	MFAChallengedEvent AuditEventType = "MFA_CHALLENGED"
	MFAVerifiedEvent   AuditEventType = "MFA_VERIFIED"
	MFAEnabledEvent    AuditEventType = "MFA_ENABLED"
	MFADisabledEvent   AuditEventType = "MFA_DISABLED"

	// Recovery events
	PasswordResetRequestEvent AuditEventType = "PASSWORD_RESET_REQUESTED"
	PasswordResetEvent        AuditEventType = "PASSWORD_RESET"

	// Availability events
	LeaveStartedEvent AuditEventType = "LEAVE_STARTED"
	LeaveEndedEvent   AuditEventType = "LEAVE_ENDED"
)

// AuditEvent represents a business event that occurred in the system
type AuditEvent struct {
	EventType AuditEventType `json:"event_type"`
	AccountID uint           `json:"account_id,omitempty"`
	Email     string         `json:"email,omitempty"`
	SessionID string         `json:"session_id,omitempty"`
	UserAgent string         `json:"user_agent,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Success   bool           `json:"success"`
	ErrorMsg  string         `json:"error_msg,omitempty"`
}
