package domain

import "fmt"

// Cache key namespaces. Each purpose owns a disjoint prefix; correctness of
// the one-time codes and rate counters depends on TTL expiry on these keys.
const (
	// HAAvailableKey mirrors the coarse is_available flag for fast login reads.
	HAAvailableKey = "ha:available"
	// HALeaveKey holds the JSON availability snapshot the leave synchronizer
	// merges into.
	HALeaveKey = "ha:leave"
)

// SessionKey returns the cache key for a session snapshot.
func SessionKey(sessionID string) string {
	return "session:" + sessionID
}

// VerificationCodeKey returns the cache key holding an email verification code.
func VerificationCodeKey(code string) string {
	return "verification:code:" + code
}

// VerificationAccountKey returns the reverse-index key mapping an account to
// its active verification code, so a resend can invalidate the prior code.
func VerificationAccountKey(accountID uint) string {
	return fmt.Sprintf("verification:account:%d", accountID)
}

// ResetCodeKey returns the cache key holding a password reset code.
func ResetCodeKey(code string) string {
	return "password-reset:code:" + code
}

// ResetAccountKey returns the reverse-index key for an account's active
// reset code.
func ResetAccountKey(accountID uint) string {
	return fmt.Sprintf("password-reset:account:%d", accountID)
}

// ResetRateLimitKey returns the fixed-window counter key for password reset
// requests.
func ResetRateLimitKey(accountID uint) string {
	return fmt.Sprintf("password-reset:rate-limit:%d", accountID)
}

// MFAOTPKey returns the cache key holding the active one-time code for a
// login challenge. One active code per account; overwritten on each attempt.
func MFAOTPKey(email string) string {
	return "mfa:otp:" + email
}
