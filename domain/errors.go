package domain

import "errors"

// Account and credential errors
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrCredentialNotFound = errors.New("credential not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrAlreadyVerified    = errors.New("email already verified")
)

// One-time code and MFA errors
var (
	ErrCodeInvalid   = errors.New("code invalid or expired")
	ErrOTPInvalid    = errors.New("otp invalid or expired")
	ErrMFANotEnabled = errors.New("mfa not enabled for account")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// Rate limiting
var (
	ErrTooManyRequests = errors.New("too many requests")
)

// Infrastructure errors
var (
	ErrCacheMiss          = errors.New("cache key not found")
	ErrNotificationFailed = errors.New("notification dispatch failed")
)
