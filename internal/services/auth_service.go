package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/PraMishra-s/E-Health-Backend-sub001/domain"
)

// rotationThreshold bounds refresh-token lifetime creep: a refresh exchange
// only extends the session and mints a new refresh token when the session is
// within this window of expiry.
const rotationThreshold = 24 * time.Hour

// availabilityMirrorTTL bounds how long a re-mirrored ha:available value can
// outlive the durable record it was copied from. It matches the leave
// synchronizer's cadence: the leave-end task only deletes ha:leave, so a
// value mirrored during leave has to age out on its own within one sync
// window.
const availabilityMirrorTTL = time.Minute

// AuthConfig carries the orchestrator's timing and limit knobs.
type AuthConfig struct {
	AccessTTL       time.Duration
	RefreshTTL      time.Duration
	VerificationTTL time.Duration
	ResetTTL        time.Duration
	OTPTTL          time.Duration
	OTPLength       int
	RateLimitWindow time.Duration
	RateLimitMax    int
}

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	sessionIssuer

	accountRepo domain.AccountRepository
	credRepo    domain.CredentialRepository
	passwordSvc domain.PasswordService
	notifySvc   domain.NotificationService
	limiter     *RateLimiter
	audit       domain.AuditLogger
	config      AuthConfig
}

// NewAuthService creates a new auth service
func NewAuthService(
	accountRepo domain.AccountRepository,
	credRepo domain.CredentialRepository,
	sessionRepo domain.SessionRepository,
	cache domain.CacheStore,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	notifySvc domain.NotificationService,
	audit domain.AuditLogger,
	config AuthConfig,
) domain.AuthService {
	return &AuthServiceImpl{
		sessionIssuer: sessionIssuer{
			sessionRepo: sessionRepo,
			cache:       cache,
			tokenSvc:    tokenSvc,
			accessTTL:   config.AccessTTL,
			sessionTTL:  config.RefreshTTL,
		},
		accountRepo: accountRepo,
		credRepo:    credRepo,
		passwordSvc: passwordSvc,
		notifySvc:   notifySvc,
		limiter:     NewRateLimiter(cache),
		audit:       audit,
		config:      config,
	}
}

// Register implements domain.AuthService. The account, credential, and (for
// health assistants) availability rows commit as one unit; the verification
// code and email are best-effort afterwards and a dispatch failure is
// reported without undoing the rows.
func (s *AuthServiceImpl) Register(ctx context.Context, input domain.RegisterInput) (*domain.UserView, error) {
	existing, err := s.credRepo.FindByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, domain.ErrCredentialNotFound) {
		return nil, fmt.Errorf("failed to check existing credential: %w", err)
	}

	var passwordHash string
	if input.Password != "" {
		passwordHash, err = s.passwordSvc.Hash(input.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	account := &domain.Account{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Phone:       input.Phone,
		Gender:      input.Gender,
		DateOfBirth: input.DateOfBirth,
		AccountType: input.AccountType,
	}
	cred := &domain.Credential{
		Email:        input.Email,
		PasswordHash: passwordHash,
		Role:         domain.RoleForAccountType(input.AccountType),
	}

	if err := s.accountRepo.CreateWithCredential(ctx, account, cred); err != nil {
		// A concurrent registration can win between the pre-check and the
		// insert; the store reports that as ErrEmailTaken.
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.audit.Log(ctx, domain.AuditEvent{
		EventType: domain.AccountRegisteredEvent,
		AccountID: account.ID,
		Email:     cred.Email,
		Success:   true,
	})

	view := buildUserView(account, cred, nil)

	if err := s.issueVerification(ctx, account.ID, cred.Email); err != nil {
		log.Printf("verification dispatch failed for account %d: %v", account.ID, err)
		return view, domain.ErrNotificationFailed
	}

	return view, nil
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, email, password, userAgent string) (*domain.AuthResult, error) {
	cred, err := s.credRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrCredentialNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load credential: %w", err)
	}

	if !cred.Verified {
		return nil, domain.ErrEmailNotVerified
	}

	if cred.PasswordHash == "" || !s.passwordSvc.Verify(cred.PasswordHash, password) {
		s.audit.Log(ctx, domain.AuditEvent{
			EventType: domain.LoginFailedEvent,
			AccountID: cred.AccountID,
			Email:     email,
			UserAgent: userAgent,
		})
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.accountRepo.FindByID(ctx, cred.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	if cred.MFARequired {
		if err := s.challengeMFA(ctx, cred, account); err != nil {
			return nil, err
		}
		return &domain.AuthResult{MFARequired: true}, nil
	}

	var availability *domain.AvailabilityRecord
	if cred.Role == domain.RoleHealthAssistant {
		availability, err = availabilityStatus(ctx, s.cache, s.accountRepo, cred.AccountID)
		if err != nil {
			return nil, err
		}
	}

	result, err := s.establish(ctx, cred, buildUserView(account, cred, availability), userAgent)
	if err != nil {
		return nil, err
	}

	s.audit.Log(ctx, domain.AuditEvent{
		EventType: domain.LoginEvent,
		AccountID: cred.AccountID,
		Email:     email,
		SessionID: result.SessionID,
		UserAgent: userAgent,
		Success:   true,
	})
	return result, nil
}

// VerifyEmail implements domain.AuthService. The code is single-use: it is
// consumed before the credential flips so a concurrent second attempt sees
// it gone.
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, code string) error {
	accountID, err := consumeCode(ctx, s.cache, domain.VerificationCodeKey(code), domain.VerificationAccountKey)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return domain.ErrCodeInvalid
		}
		return fmt.Errorf("failed to consume verification code: %w", err)
	}

	if err := s.credRepo.SetVerified(ctx, accountID); err != nil {
		return fmt.Errorf("failed to mark credential verified: %w", err)
	}

	s.audit.Log(ctx, domain.AuditEvent{
		EventType: domain.EmailVerifiedEvent,
		AccountID: accountID,
		Success:   true,
	})
	return nil
}

// ResendVerification implements domain.AuthService. Any prior code for the
// account is invalidated before the new one is issued.
func (s *AuthServiceImpl) ResendVerification(ctx context.Context, email string) error {
	cred, err := s.credRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if cred.Verified {
		return domain.ErrAlreadyVerified
	}

	if err := s.issueVerification(ctx, cred.AccountID, cred.Email); err != nil {
		return domain.ErrNotificationFailed
	}

	s.audit.Log(ctx, domain.AuditEvent{
		EventType: domain.VerificationResentEvent,
		AccountID: cred.AccountID,
		Email:     email,
		Success:   true,
	})
	return nil
}

// ForgotPassword implements domain.AuthService. Requests are capped per
// account by a fixed-window counter regardless of whether a code was issued.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	cred, err := s.credRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	count, err := s.limiter.Hit(ctx, domain.ResetRateLimitKey(cred.AccountID), s.config.RateLimitWindow)
	if err != nil {
		return err
	}
	if count > int64(s.config.RateLimitMax) {
		return domain.ErrTooManyRequests
	}

	code, err := generateSecureToken()
	if err != nil {
		return err
	}
	if err := issueCode(ctx, s.cache, code, domain.ResetCodeKey, domain.ResetAccountKey(cred.AccountID), cred.AccountID, s.config.ResetTTL); err != nil {
		return err
	}

	s.audit.Log(ctx, domain.AuditEvent{
		EventType: domain.PasswordResetRequestEvent,
		AccountID: cred.AccountID,
		Email:     email,
		Success:   true,
	})

	text := fmt.Sprintf("Use this code to reset your password: %s. It expires in %d minutes.",
		code, int(s.config.ResetTTL.Minutes()))
	html := fmt.Sprintf("<p>Use this code to reset your password: <b>%s</b></p>", code)
	if err := s.notifySvc.SendEmail(cred.Email, "Reset your password", text, html); err != nil {
		return domain.ErrNotificationFailed
	}
	return nil
}

// ResetPassword implements domain.AuthService. Every session for the account
// is destroyed, rows and snapshots both, before this returns: a refresh
// token issued under the old password must already be dead when the caller
// sees success.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, code, newPassword string) error {
	accountID, err := consumeCode(ctx, s.cache, domain.ResetCodeKey(code), domain.ResetAccountKey)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return domain.ErrCodeInvalid
		}
		return fmt.Errorf("failed to consume reset code: %w", err)
	}

	hash, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.credRepo.UpdatePasswordHash(ctx, accountID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	sessionIDs, err := s.sessionRepo.DeleteByAccount(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	if len(sessionIDs) > 0 {
		keys := make([]string, 0, len(sessionIDs))
		for _, id := range sessionIDs {
			keys = append(keys, domain.SessionKey(id))
		}
		if err := s.cache.Del(ctx, keys...); err != nil {
			return fmt.Errorf("failed to drop session snapshots: %w", err)
		}
	}

	s.audit.Log(ctx, domain.AuditEvent{
		EventType: domain.PasswordResetEvent,
		AccountID: accountID,
		Success:   true,
	})
	return nil
}

// RefreshToken implements domain.AuthService. Rotation policy: when the
// session is within rotationThreshold of expiry, the expiry is extended and
// a fresh refresh token is minted for the same session id; otherwise only a
// new access token is returned.
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*domain.RefreshResult, error) {
	claims, err := s.tokenSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.FindByID(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}

	cred, err := s.credRepo.FindByAccountID(ctx, session.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load credential: %w", err)
	}

	result := &domain.RefreshResult{
		SessionID: session.ID,
		ExpiresIn: int64(s.config.AccessTTL.Seconds()),
	}

	if time.Until(session.ExpiresAt) < rotationThreshold {
		newExpiry := time.Now().Add(s.config.RefreshTTL)
		if err := s.sessionRepo.ExtendExpiry(ctx, session.ID, newExpiry); err != nil {
			return nil, fmt.Errorf("failed to extend session: %w", err)
		}
		if err := patchSnapshot(ctx, s.cache, session.ID, func(snap *domain.SessionSnapshot) {
			snap.ExpiresAt = newExpiry.Unix()
		}); err != nil {
			log.Printf("session snapshot patch failed for %s: %v", session.ID, err)
		}

		rotated, err := s.tokenSvc.GenerateRefreshToken(session.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to generate refresh token: %w", err)
		}
		result.RefreshToken = rotated
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(session.AccountID, cred.Role, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	result.AccessToken = accessToken

	s.audit.Log(ctx, domain.AuditEvent{
		EventType: domain.TokenRefreshedEvent,
		AccountID: session.AccountID,
		SessionID: session.ID,
		Success:   true,
	})
	return result, nil
}

// Logout implements domain.AuthService
func (s *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if err := s.cache.Del(ctx, domain.SessionKey(sessionID)); err != nil {
		return fmt.Errorf("failed to drop session snapshot: %w", err)
	}

	s.audit.Log(ctx, domain.AuditEvent{
		EventType: domain.LogoutEvent,
		SessionID: sessionID,
		Success:   true,
	})
	return nil
}

// CurrentUser implements domain.AuthService: cache-first, store-fallback.
// On a cache miss the snapshot is rebuilt from the durable rows.
func (s *AuthServiceImpl) CurrentUser(ctx context.Context, sessionID string) (*domain.UserView, error) {
	if snap, err := readSnapshot(ctx, s.cache, sessionID); err == nil {
		return &domain.UserView{
			AccountID:   snap.AccountID,
			FirstName:   snap.FirstName,
			LastName:    snap.LastName,
			Email:       snap.Email,
			Role:        snap.Role,
			Verified:    snap.Verified,
			MFARequired: snap.MFARequired,
		}, nil
	}

	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cred, err := s.credRepo.FindByAccountID(ctx, session.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load credential: %w", err)
	}
	account, err := s.accountRepo.FindByID(ctx, session.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	snap := &domain.SessionSnapshot{
		ID:          session.ID,
		AccountID:   session.AccountID,
		Email:       cred.Email,
		FirstName:   account.FirstName,
		LastName:    account.LastName,
		Role:        cred.Role,
		UserAgent:   session.UserAgent,
		Verified:    cred.Verified,
		MFARequired: cred.MFARequired,
		ExpiresAt:   session.ExpiresAt.Unix(),
	}
	if err := writeSnapshot(ctx, s.cache, snap); err != nil {
		log.Printf("session snapshot rebuild failed for %s: %v", sessionID, err)
	}

	return buildUserView(account, cred, nil), nil
}

// issueVerification issues a fresh single-use verification code and emails
// it. Called from registration and resend.
func (s *AuthServiceImpl) issueVerification(ctx context.Context, accountID uint, email string) error {
	code, err := generateSecureToken()
	if err != nil {
		return err
	}
	if err := issueCode(ctx, s.cache, code, domain.VerificationCodeKey, domain.VerificationAccountKey(accountID), accountID, s.config.VerificationTTL); err != nil {
		return err
	}

	text := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.",
		code, int(s.config.VerificationTTL.Minutes()))
	html := fmt.Sprintf("<p>Your verification code is <b>%s</b></p>", code)
	return s.notifySvc.SendEmail(email, "Verify your email", text, html)
}

// challengeMFA issues the login one-time code over SMS. One active code per
// account: each attempt overwrites the previous value.
func (s *AuthServiceImpl) challengeMFA(ctx context.Context, cred *domain.Credential, account *domain.Account) error {
	code, err := generateNumericCode(s.config.OTPLength)
	if err != nil {
		return err
	}
	if err := s.cache.Set(ctx, domain.MFAOTPKey(cred.Email), code, s.config.OTPTTL); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	message := fmt.Sprintf("Your login code is %s. Valid for %d minutes.",
		code, int(s.config.OTPTTL.Minutes()))
	if err := s.notifySvc.SendSMS(account.Phone, message); err != nil {
		return domain.ErrNotificationFailed
	}

	s.audit.Log(ctx, domain.AuditEvent{
		EventType: domain.MFAChallengedEvent,
		AccountID: cred.AccountID,
		Email:     cred.Email,
		Success:   true,
	})
	return nil
}

// availabilityStatus reads the duty flags cache-first. The coarse
// ha:available mirror answers the fast path; the ha:leave snapshot supplies
// the on-leave flag when present. Only on a mirror miss does the durable
// record get read, and the mirror is refreshed from it. The reverse order
// would be wrong: a stale durable read after the synchronizer invalidated
// the mirror must not win over the mirror's absence.
func availabilityStatus(ctx context.Context, cache domain.CacheStore, accountRepo domain.AccountRepository, accountID uint) (*domain.AvailabilityRecord, error) {
	if val, err := cache.Get(ctx, domain.HAAvailableKey); err == nil {
		record := &domain.AvailabilityRecord{
			AccountID:   accountID,
			IsAvailable: val == "true",
		}
		if data, err := cache.Get(ctx, domain.HALeaveKey); err == nil {
			var mirror domain.AvailabilityMirror
			if err := json.Unmarshal([]byte(data), &mirror); err == nil && mirror.IsOnLeave != nil {
				record.IsOnLeave = *mirror.IsOnLeave
			}
		}
		return record, nil
	}

	record, err := accountRepo.AvailabilityByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}

	mirrored := "false"
	if record.IsAvailable {
		mirrored = "true"
	}
	if err := cache.Set(ctx, domain.HAAvailableKey, mirrored, availabilityMirrorTTL); err != nil {
		log.Printf("availability mirror refresh failed: %v", err)
	}

	return record, nil
}

func buildUserView(account *domain.Account, cred *domain.Credential, availability *domain.AvailabilityRecord) *domain.UserView {
	view := &domain.UserView{
		AccountID:   account.ID,
		FirstName:   account.FirstName,
		LastName:    account.LastName,
		Email:       cred.Email,
		Role:        cred.Role,
		Verified:    cred.Verified,
		MFARequired: cred.MFARequired,
	}
	if availability != nil {
		isAvailable := availability.IsAvailable
		isOnLeave := availability.IsOnLeave
		view.IsAvailable = &isAvailable
		view.IsOnLeave = &isOnLeave
	}
	return view
}
