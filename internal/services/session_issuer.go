package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/PraMishra-s/E-Health-Backend-sub001/domain"
)

// sessionIssuer performs the post-authentication session path shared by
// password login and MFA completion: durable session row first, then the
// cache snapshot, then the token pair.
type sessionIssuer struct {
	sessionRepo domain.SessionRepository
	cache       domain.CacheStore
	tokenSvc    domain.TokenService
	accessTTL   time.Duration
	sessionTTL  time.Duration
}

func (si *sessionIssuer) establish(ctx context.Context, cred *domain.Credential, view *domain.UserView, userAgent string) (*domain.AuthResult, error) {
	now := time.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		AccountID: cred.AccountID,
		UserAgent: userAgent,
		CreatedAt: now,
		ExpiresAt: now.Add(si.sessionTTL),
	}

	if err := si.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	snap := &domain.SessionSnapshot{
		ID:          session.ID,
		AccountID:   cred.AccountID,
		Email:       cred.Email,
		FirstName:   view.FirstName,
		LastName:    view.LastName,
		Role:        cred.Role,
		UserAgent:   userAgent,
		Verified:    cred.Verified,
		MFARequired: cred.MFARequired,
		ExpiresAt:   session.ExpiresAt.Unix(),
	}
	if err := writeSnapshot(ctx, si.cache, snap); err != nil {
		// The durable row is authoritative; a failed snapshot write only
		// costs the fast path.
		log.Printf("session snapshot write failed for %s: %v", session.ID, err)
	}

	accessToken, err := si.tokenSvc.GenerateAccessToken(cred.AccountID, cred.Role, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := si.tokenSvc.GenerateRefreshToken(session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &domain.AuthResult{
		User:         view,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    session.ID,
		ExpiresIn:    int64(si.accessTTL.Seconds()),
	}, nil
}
