package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/PraMishra-s/E-Health-Backend-sub001/domain"
)

// generateSecureToken returns a random 32-character hex token for
// verification and reset codes.
func generateSecureToken() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// generateNumericCode returns a cryptographically random code of length
// digits, used for the MFA challenge.
func generateNumericCode(length int) (string, error) {
	digits := make([]byte, length)
	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}
	return string(digits), nil
}

// issueCode stores a single-use code for an account and keeps a reverse
// index under accountKey so a later issue can invalidate this one. Any prior
// code for the account is deleted first, leaving exactly one live code.
func issueCode(ctx context.Context, cache domain.CacheStore, code string, codeKeyFn func(string) string, accountKey string, accountID uint, ttl time.Duration) error {
	if prior, err := cache.Get(ctx, accountKey); err == nil && prior != code {
		if err := cache.Del(ctx, codeKeyFn(prior)); err != nil {
			return fmt.Errorf("failed to invalidate prior code: %w", err)
		}
	}

	if err := cache.Set(ctx, codeKeyFn(code), strconv.FormatUint(uint64(accountID), 10), ttl); err != nil {
		return fmt.Errorf("failed to store code: %w", err)
	}
	if err := cache.Set(ctx, accountKey, code, ttl); err != nil {
		return fmt.Errorf("failed to store code index: %w", err)
	}
	return nil
}

// consumeCode resolves a code to its account id and deletes it so a second
// attempt with the same value fails. Returns domain.ErrCacheMiss when the
// code is absent or expired.
func consumeCode(ctx context.Context, cache domain.CacheStore, codeKey string, accountKeyFor func(uint) string) (uint, error) {
	val, err := cache.Get(ctx, codeKey)
	if err != nil {
		return 0, err
	}

	accountID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt code entry: %w", err)
	}

	keys := []string{codeKey}
	if accountKeyFor != nil {
		keys = append(keys, accountKeyFor(uint(accountID)))
	}
	if err := cache.Del(ctx, keys...); err != nil {
		return 0, fmt.Errorf("failed to consume code: %w", err)
	}

	return uint(accountID), nil
}
