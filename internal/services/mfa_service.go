package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PraMishra-s/E-Health-Backend-sub001/domain"
)

// MFAServiceImpl implements domain.MFAService
type MFAServiceImpl struct {
	sessionIssuer

	accountRepo domain.AccountRepository
	credRepo    domain.CredentialRepository
	audit       domain.AuditLogger
}

// NewMFAService creates a new MFA challenge manager
func NewMFAService(
	accountRepo domain.AccountRepository,
	credRepo domain.CredentialRepository,
	sessionRepo domain.SessionRepository,
	cache domain.CacheStore,
	tokenSvc domain.TokenService,
	audit domain.AuditLogger,
	accessTTL, sessionTTL time.Duration,
) domain.MFAService {
	return &MFAServiceImpl{
		sessionIssuer: sessionIssuer{
			sessionRepo: sessionRepo,
			cache:       cache,
			tokenSvc:    tokenSvc,
			accessTTL:   accessTTL,
			sessionTTL:  sessionTTL,
		},
		accountRepo: accountRepo,
		credRepo:    credRepo,
		audit:       audit,
	}
}

// Invoke implements domain.MFAService. The durable flag flips first; every
// live session snapshot is then patched in place so a cached
// mfa_required=false is never served afterwards.
func (m *MFAServiceImpl) Invoke(ctx context.Context, accountID uint) error {
	if err := m.credRepo.SetMFARequired(ctx, accountID, true); err != nil {
		return fmt.Errorf("failed to enable mfa: %w", err)
	}
	m.patchSessions(ctx, accountID, true)

	m.audit.Log(ctx, domain.AuditEvent{
		EventType: domain.MFAEnabledEvent,
		AccountID: accountID,
		Success:   true,
	})
	return nil
}

// Verify implements domain.MFAService. The stored code is single-use and
// compared after string normalization; success runs the same session path
// as password login.
func (m *MFAServiceImpl) Verify(ctx context.Context, code, email, userAgent string) (*domain.AuthResult, error) {
	cred, err := m.credRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !cred.MFARequired {
		return nil, domain.ErrMFANotEnabled
	}

	stored, err := m.cache.Get(ctx, domain.MFAOTPKey(email))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.ErrOTPInvalid
		}
		return nil, fmt.Errorf("failed to load otp: %w", err)
	}

	if !strings.EqualFold(strings.TrimSpace(code), strings.TrimSpace(stored)) {
		return nil, domain.ErrOTPInvalid
	}

	if err := m.cache.Del(ctx, domain.MFAOTPKey(email)); err != nil {
		return nil, fmt.Errorf("failed to consume otp: %w", err)
	}

	account, err := m.accountRepo.FindByID(ctx, cred.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	var availability *domain.AvailabilityRecord
	if cred.Role == domain.RoleHealthAssistant {
		availability, err = availabilityStatus(ctx, m.cache, m.accountRepo, cred.AccountID)
		if err != nil {
			return nil, err
		}
	}

	result, err := m.establish(ctx, cred, buildUserView(account, cred, availability), userAgent)
	if err != nil {
		return nil, err
	}

	m.audit.Log(ctx, domain.AuditEvent{
		EventType: domain.MFAVerifiedEvent,
		AccountID: cred.AccountID,
		Email:     email,
		SessionID: result.SessionID,
		UserAgent: userAgent,
		Success:   true,
	})
	return result, nil
}

// Revoke implements domain.MFAService
func (m *MFAServiceImpl) Revoke(ctx context.Context, accountID uint) error {
	if err := m.credRepo.SetMFARequired(ctx, accountID, false); err != nil {
		return fmt.Errorf("failed to disable mfa: %w", err)
	}
	m.patchSessions(ctx, accountID, false)

	m.audit.Log(ctx, domain.AuditEvent{
		EventType: domain.MFADisabledEvent,
		AccountID: accountID,
		Success:   true,
	})
	return nil
}

// patchSessions merges the new mfa flag into each live snapshot. Failures
// are logged, not returned: the durable credential already carries the
// truth and a dropped snapshot just falls back to the store.
func (m *MFAServiceImpl) patchSessions(ctx context.Context, accountID uint, required bool) {
	sessions, err := m.sessionRepo.FindByAccount(ctx, accountID)
	if err != nil {
		log.Printf("session lookup for snapshot patch failed for account %d: %v", accountID, err)
		return
	}
	for _, session := range sessions {
		if err := patchSnapshot(ctx, m.cache, session.ID, func(snap *domain.SessionSnapshot) {
			snap.MFARequired = required
		}); err != nil {
			log.Printf("session snapshot patch failed for %s: %v", session.ID, err)
		}
	}
}
