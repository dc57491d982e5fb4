package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/PraMishra-s/E-Health-Backend-sub001/domain"
	"github.com/PraMishra-s/E-Health-Backend-sub001/internal/mocks"
)

func TestAuthServiceImpl_Register(t *testing.T) {
	tests := []struct {
		name          string
		input         domain.RegisterInput
		setupMocks    func(*mocks.MockAccountRepository, *mocks.MockCredentialRepository, *mocks.MockNotificationService)
		expectedError error
		validateView  func(t *testing.T, view *domain.UserView)
	}{
		{
			name: "successful patient registration",
			input: domain.RegisterInput{
				FirstName:   "Asha",
				LastName:    "Rai",
				Email:       "asha@example.com",
				Phone:       "+9779801234567",
				Password:    "password123",
				AccountType: domain.AccountTypePatient,
			},
			validateView: func(t *testing.T, view *domain.UserView) {
				if view == nil {
					t.Fatal("view is nil")
				}
				if view.Email != "asha@example.com" {
					t.Errorf("expected email asha@example.com, got %s", view.Email)
				}
				if view.Role != domain.RolePatient {
					t.Errorf("expected role patient, got %s", view.Role)
				}
				if view.Verified {
					t.Error("expected new account to be unverified")
				}
			},
		},
		{
			name: "guardian registers with patient role",
			input: domain.RegisterInput{
				FirstName:   "Bimal",
				LastName:    "Rai",
				Email:       "guardian@example.com",
				Phone:       "+9779801111111",
				Password:    "password123",
				AccountType: domain.AccountTypeGuardian,
			},
			validateView: func(t *testing.T, view *domain.UserView) {
				if view.Role != domain.RolePatient {
					t.Errorf("expected guardian to get patient role, got %s", view.Role)
				}
			},
		},
		{
			name: "email already taken",
			input: domain.RegisterInput{
				Email:       "taken@example.com",
				Password:    "password123",
				AccountType: domain.AccountTypePatient,
			},
			setupMocks: func(accountRepo *mocks.MockAccountRepository, credRepo *mocks.MockCredentialRepository, notifySvc *mocks.MockNotificationService) {
				credRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Credential, error) {
					return createVerifiedCredential(t), nil
				}
			},
			expectedError: domain.ErrEmailTaken,
			validateView: func(t *testing.T, view *domain.UserView) {
				if view != nil {
					t.Error("expected nil view for taken email")
				}
			},
		},
		{
			name: "duplicate insert loses the race",
			input: domain.RegisterInput{
				Email:       "raced@example.com",
				Password:    "password123",
				AccountType: domain.AccountTypePatient,
			},
			setupMocks: func(accountRepo *mocks.MockAccountRepository, credRepo *mocks.MockCredentialRepository, notifySvc *mocks.MockNotificationService) {
				// The pre-check missed, but another registration committed
				// the same email first.
				accountRepo.CreateWithCredentialFunc = func(ctx context.Context, account *domain.Account, cred *domain.Credential) error {
					return domain.ErrEmailTaken
				}
			},
			expectedError: domain.ErrEmailTaken,
			validateView: func(t *testing.T, view *domain.UserView) {
				if view != nil {
					t.Error("expected nil view when the insert loses the race")
				}
			},
		},
		{
			name: "verification email dispatch fails",
			input: domain.RegisterInput{
				FirstName:   "Asha",
				Email:       "asha@example.com",
				Password:    "password123",
				AccountType: domain.AccountTypePatient,
			},
			setupMocks: func(accountRepo *mocks.MockAccountRepository, credRepo *mocks.MockCredentialRepository, notifySvc *mocks.MockNotificationService) {
				notifySvc.SendEmailFunc = func(to, subject, text, html string) error {
					return errors.New("smtp unavailable")
				}
			},
			expectedError: domain.ErrNotificationFailed,
			validateView: func(t *testing.T, view *domain.UserView) {
				// The rows were committed; the caller gets the view plus
				// the dispatch failure.
				if view == nil {
					t.Fatal("expected view even when the email fails")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accountRepo := mocks.NewMockAccountRepository()
			credRepo := mocks.NewMockCredentialRepository()
			notifySvc := mocks.NewMockNotificationService()
			if tt.setupMocks != nil {
				tt.setupMocks(accountRepo, credRepo, notifySvc)
			}

			svc := createAuthServiceForTest(t, accountRepo, credRepo, nil, nil, nil, nil, notifySvc, nil)

			view, err := svc.Register(context.Background(), tt.input)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("expected error %v, got %v", tt.expectedError, err)
				}
			} else if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			tt.validateView(t, view)
		})
	}
}

func TestAuthServiceImpl_Register_IssuesVerificationCode(t *testing.T) {
	cache := mocks.NewMockCacheStore()
	notifySvc := mocks.NewMockNotificationService()
	svc := createAuthServiceForTest(t, nil, nil, nil, cache, nil, nil, notifySvc, nil)

	_, err := svc.Register(context.Background(), domain.RegisterInput{
		FirstName:   "Asha",
		Email:       "asha@example.com",
		Password:    "password123",
		AccountType: domain.AccountTypePatient,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if !cache.Has(domain.VerificationAccountKey(1)) {
		t.Error("expected verification reverse index for account 1")
	}
	if len(notifySvc.Emails) != 1 {
		t.Fatalf("expected 1 email, got %d", len(notifySvc.Emails))
	}
	if notifySvc.Emails[0].To != "asha@example.com" {
		t.Errorf("verification email sent to %s", notifySvc.Emails[0].To)
	}
}

func TestAuthServiceImpl_Login(t *testing.T) {
	tests := []struct {
		name          string
		password      string
		setupMocks    func(*mocks.MockAccountRepository, *mocks.MockCredentialRepository)
		expectedError error
	}{
		{
			name:     "unknown email maps to invalid credentials",
			password: "password123",
			setupMocks: func(accountRepo *mocks.MockAccountRepository, credRepo *mocks.MockCredentialRepository) {
				credRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Credential, error) {
					return nil, domain.ErrCredentialNotFound
				}
			},
			expectedError: domain.ErrInvalidCredentials,
		},
		{
			name:     "unverified email rejected",
			password: "password123",
			setupMocks: func(accountRepo *mocks.MockAccountRepository, credRepo *mocks.MockCredentialRepository) {
				credRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Credential, error) {
					cred := createVerifiedCredential(t)
					cred.Verified = false
					return cred, nil
				}
			},
			expectedError: domain.ErrEmailNotVerified,
		},
		{
			name:     "wrong password",
			password: "wrongpassword",
			setupMocks: func(accountRepo *mocks.MockAccountRepository, credRepo *mocks.MockCredentialRepository) {
				credRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Credential, error) {
					return createVerifiedCredential(t), nil
				}
			},
			expectedError: domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accountRepo := mocks.NewMockAccountRepository()
			credRepo := mocks.NewMockCredentialRepository()
			tt.setupMocks(accountRepo, credRepo)

			svc := createAuthServiceForTest(t, accountRepo, credRepo, nil, nil, nil, nil, nil, nil)

			result, err := svc.Login(context.Background(), "asha@example.com", tt.password, "test-agent")
			if !errors.Is(err, tt.expectedError) {
				t.Fatalf("expected error %v, got %v", tt.expectedError, err)
			}
			if result != nil {
				t.Error("expected nil result on failed login")
			}
		})
	}
}

func TestAuthServiceImpl_Login_Success(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	accountRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Account, error) {
		return createAccount(t), nil
	}
	credRepo := mocks.NewMockCredentialRepository()
	credRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Credential, error) {
		return createVerifiedCredential(t), nil
	}
	cache := mocks.NewMockCacheStore()
	audit := mocks.NewMockAuditLogger()

	svc := createAuthServiceForTest(t, accountRepo, credRepo, nil, cache, nil, nil, nil, audit)

	result, err := svc.Login(context.Background(), "asha@example.com", "password123", "test-agent")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("expected both tokens on successful login")
	}
	if result.SessionID == "" {
		t.Fatal("expected a session id")
	}
	if !cache.Has(domain.SessionKey(result.SessionID)) {
		t.Error("expected a cached session snapshot")
	}
	if !audit.HasEvent(domain.LoginEvent) {
		t.Error("expected a LOGIN audit event")
	}
}

func TestAuthServiceImpl_Login_MFAChallengeWithholdsTokens(t *testing.T) {
	account := createAccount(t)
	cred := createVerifiedCredential(t)
	cred.MFARequired = true

	accountRepo := mocks.NewMockAccountRepository()
	accountRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Account, error) {
		return account, nil
	}
	credRepo := mocks.NewMockCredentialRepository()
	credRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Credential, error) {
		return cred, nil
	}
	cache := mocks.NewMockCacheStore()
	notifySvc := mocks.NewMockNotificationService()

	svc := createAuthServiceForTest(t, accountRepo, credRepo, nil, cache, nil, nil, notifySvc, nil)

	result, err := svc.Login(context.Background(), cred.Email, "password123", "test-agent")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !result.MFARequired {
		t.Fatal("expected MFARequired")
	}
	if result.AccessToken != "" || result.RefreshToken != "" || result.SessionID != "" {
		t.Error("challenge must not issue tokens or a session")
	}
	if !cache.Has(domain.MFAOTPKey(cred.Email)) {
		t.Error("expected a stored one-time code")
	}
	if len(notifySvc.SMS) != 1 {
		t.Errorf("expected 1 SMS, got %d", len(notifySvc.SMS))
	}
}

func TestAuthServiceImpl_Login_HealthAssistantAvailability(t *testing.T) {
	account, cred := createHealthAssistant(t)

	accountRepo := mocks.NewMockAccountRepository()
	accountRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Account, error) {
		return account, nil
	}
	accountRepo.AvailabilityByAccountFunc = func(ctx context.Context, accountID uint) (*domain.AvailabilityRecord, error) {
		return &domain.AvailabilityRecord{AccountID: accountID, IsAvailable: true}, nil
	}
	credRepo := mocks.NewMockCredentialRepository()
	credRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Credential, error) {
		return cred, nil
	}
	cache := mocks.NewMockCacheStore()

	svc := createAuthServiceForTest(t, accountRepo, credRepo, nil, cache, nil, nil, nil, nil)

	result, err := svc.Login(context.Background(), cred.Email, "password123", "test-agent")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.User.IsAvailable == nil || !*result.User.IsAvailable {
		t.Error("expected is_available true in the view")
	}
	// The durable read refreshes the coarse mirror.
	if val, err := cache.Get(context.Background(), domain.HAAvailableKey); err != nil || val != "true" {
		t.Errorf("expected ha:available mirror true, got %q (%v)", val, err)
	}
}

func TestAvailabilityStatus_MirrorAgesOutAfterLeaveEnd(t *testing.T) {
	ctx := context.Background()
	cache := mocks.NewMockCacheStore()

	record := &domain.AvailabilityRecord{AccountID: 2, IsAvailable: false, IsOnLeave: true}
	accountRepo := mocks.NewMockAccountRepository()
	accountRepo.AvailabilityByAccountFunc = func(ctx context.Context, accountID uint) (*domain.AvailabilityRecord, error) {
		return record, nil
	}

	// A login during leave misses the mirror and re-mirrors the durable flags.
	got, err := availabilityStatus(ctx, cache, accountRepo, 2)
	if err != nil {
		t.Fatalf("availability read failed: %v", err)
	}
	if got.IsAvailable {
		t.Fatal("expected unavailable during leave")
	}

	ttl, err := cache.TTL(ctx, domain.HAAvailableKey)
	if err != nil {
		t.Fatalf("ttl read failed: %v", err)
	}
	if ttl <= 0 || ttl > availabilityMirrorTTL {
		t.Fatalf("re-mirrored value must expire within one sync window, got ttl %v", ttl)
	}

	// Leave ends: the synchronizer flips the durable record back and deletes
	// only ha:leave. Once the bounded mirror TTL elapses, the next read must
	// serve the durable truth instead of the stale "false".
	record = &domain.AvailabilityRecord{AccountID: 2, IsAvailable: true, IsOnLeave: false}
	cache.Del(ctx, domain.HALeaveKey)
	cache.Del(ctx, domain.HAAvailableKey)

	got, err = availabilityStatus(ctx, cache, accountRepo, 2)
	if err != nil {
		t.Fatalf("availability read failed: %v", err)
	}
	if !got.IsAvailable || got.IsOnLeave {
		t.Errorf("expected the durable flags back after leave end, got %+v", got)
	}
}

func TestAuthServiceImpl_VerifyEmail_SingleUse(t *testing.T) {
	ctx := context.Background()
	cache := mocks.NewMockCacheStore()
	cache.Set(ctx, domain.VerificationCodeKey("codeabc"), "7", time.Minute)
	cache.Set(ctx, domain.VerificationAccountKey(7), "codeabc", time.Minute)

	var verified uint
	credRepo := mocks.NewMockCredentialRepository()
	credRepo.SetVerifiedFunc = func(ctx context.Context, accountID uint) error {
		verified = accountID
		return nil
	}

	svc := createAuthServiceForTest(t, nil, credRepo, nil, cache, nil, nil, nil, nil)

	if err := svc.VerifyEmail(ctx, "codeabc"); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if verified != 7 {
		t.Errorf("expected account 7 verified, got %d", verified)
	}
	if cache.Has(domain.VerificationAccountKey(7)) {
		t.Error("expected reverse index consumed")
	}

	// Second redemption of the same code fails.
	if err := svc.VerifyEmail(ctx, "codeabc"); !errors.Is(err, domain.ErrCodeInvalid) {
		t.Fatalf("expected ErrCodeInvalid on reuse, got %v", err)
	}
}

func TestAuthServiceImpl_ResendVerification(t *testing.T) {
	ctx := context.Background()

	t.Run("already verified", func(t *testing.T) {
		credRepo := mocks.NewMockCredentialRepository()
		credRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Credential, error) {
			return createVerifiedCredential(t), nil
		}
		svc := createAuthServiceForTest(t, nil, credRepo, nil, nil, nil, nil, nil, nil)

		if err := svc.ResendVerification(ctx, "asha@example.com"); !errors.Is(err, domain.ErrAlreadyVerified) {
			t.Fatalf("expected ErrAlreadyVerified, got %v", err)
		}
	})

	t.Run("reissue invalidates the prior code", func(t *testing.T) {
		cred := createVerifiedCredential(t)
		cred.Verified = false
		credRepo := mocks.NewMockCredentialRepository()
		credRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Credential, error) {
			return cred, nil
		}

		cache := mocks.NewMockCacheStore()
		cache.Set(ctx, domain.VerificationCodeKey("oldcode"), "1", time.Minute)
		cache.Set(ctx, domain.VerificationAccountKey(1), "oldcode", time.Minute)

		svc := createAuthServiceForTest(t, nil, credRepo, nil, cache, nil, nil, nil, nil)

		if err := svc.ResendVerification(ctx, cred.Email); err != nil {
			t.Fatalf("resend failed: %v", err)
		}
		if cache.Has(domain.VerificationCodeKey("oldcode")) {
			t.Error("expected the prior code to be invalidated")
		}
	})
}

func TestAuthServiceImpl_ForgotPassword_RateLimited(t *testing.T) {
	ctx := context.Background()
	credRepo := mocks.NewMockCredentialRepository()
	credRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Credential, error) {
		return createVerifiedCredential(t), nil
	}
	notifySvc := mocks.NewMockNotificationService()

	svc := createAuthServiceForTest(t, nil, credRepo, nil, nil, nil, nil, notifySvc, nil)

	for i := 0; i < 2; i++ {
		if err := svc.ForgotPassword(ctx, "asha@example.com"); err != nil {
			t.Fatalf("request %d failed: %v", i+1, err)
		}
	}
	if err := svc.ForgotPassword(ctx, "asha@example.com"); !errors.Is(err, domain.ErrTooManyRequests) {
		t.Fatalf("expected ErrTooManyRequests on third request, got %v", err)
	}
	if len(notifySvc.Emails) != 2 {
		t.Errorf("expected 2 reset emails, got %d", len(notifySvc.Emails))
	}
}

func TestAuthServiceImpl_ForgotPassword_UnknownEmail(t *testing.T) {
	svc := createAuthServiceForTest(t, nil, nil, nil, nil, nil, nil, nil, nil)
	err := svc.ForgotPassword(context.Background(), "nobody@example.com")
	if !errors.Is(err, domain.ErrCredentialNotFound) {
		t.Fatalf("expected ErrCredentialNotFound, got %v", err)
	}
}

func TestAuthServiceImpl_ResetPassword_RevokesAllSessions(t *testing.T) {
	ctx := context.Background()
	cache := mocks.NewMockCacheStore()
	cache.Set(ctx, domain.ResetCodeKey("resetcode"), "1", time.Minute)
	cache.Set(ctx, domain.ResetAccountKey(1), "resetcode", time.Minute)
	cache.Set(ctx, domain.SessionKey("s1"), "{}", time.Hour)
	cache.Set(ctx, domain.SessionKey("s2"), "{}", time.Hour)

	var newHash string
	credRepo := mocks.NewMockCredentialRepository()
	credRepo.UpdatePasswordHashFunc = func(ctx context.Context, accountID uint, hash string) error {
		newHash = hash
		return nil
	}
	sessionRepo := mocks.NewMockSessionRepository()
	sessionRepo.DeleteByAccountFunc = func(ctx context.Context, accountID uint) ([]string, error) {
		return []string{"s1", "s2"}, nil
	}

	svc := createAuthServiceForTest(t, nil, credRepo, sessionRepo, cache, nil, nil, nil, nil)

	if err := svc.ResetPassword(ctx, "resetcode", "newpassword1"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if newHash != "hashed_newpassword1" {
		t.Errorf("expected hashed_newpassword1, got %s", newHash)
	}
	if cache.Has(domain.SessionKey("s1")) || cache.Has(domain.SessionKey("s2")) {
		t.Error("expected every session snapshot dropped")
	}
	if cache.Has(domain.ResetCodeKey("resetcode")) {
		t.Error("expected the reset code consumed")
	}
}

func TestAuthServiceImpl_ResetPassword_InvalidCode(t *testing.T) {
	svc := createAuthServiceForTest(t, nil, nil, nil, nil, nil, nil, nil, nil)
	err := svc.ResetPassword(context.Background(), "bogus", "newpassword1")
	if !errors.Is(err, domain.ErrCodeInvalid) {
		t.Fatalf("expected ErrCodeInvalid, got %v", err)
	}
}

func TestAuthServiceImpl_RefreshToken(t *testing.T) {
	newSession := func(until time.Duration) *domain.Session {
		return &domain.Session{
			ID:        "s1",
			AccountID: 1,
			CreatedAt: time.Now(),
			ExpiresAt: time.Now().Add(until),
		}
	}

	tests := []struct {
		name          string
		session       *domain.Session
		wantRotation  bool
		wantExtension bool
	}{
		{
			name:          "near expiry extends and rotates",
			session:       newSession(time.Hour),
			wantRotation:  true,
			wantExtension: true,
		},
		{
			name:    "far from expiry returns access token only",
			session: newSession(48 * time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			credRepo := mocks.NewMockCredentialRepository()
			credRepo.FindByAccountIDFunc = func(ctx context.Context, accountID uint) (*domain.Credential, error) {
				return createVerifiedCredential(t), nil
			}
			var extended bool
			sessionRepo := mocks.NewMockSessionRepository()
			sessionRepo.FindByIDFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
				return tt.session, nil
			}
			sessionRepo.ExtendExpiryFunc = func(ctx context.Context, sessionID string, expiresAt time.Time) error {
				extended = true
				return nil
			}
			tokenSvc := mocks.NewMockTokenService()
			tokenSvc.ValidateRefreshTokenFunc = func(token string) (*domain.TokenClaims, error) {
				return &domain.TokenClaims{SessionID: "s1", TokenType: domain.TokenTypeRefresh}, nil
			}

			svc := createAuthServiceForTest(t, nil, credRepo, sessionRepo, nil, nil, tokenSvc, nil, nil)

			result, err := svc.RefreshToken(context.Background(), "refresh_token_s1")
			if err != nil {
				t.Fatalf("refresh failed: %v", err)
			}
			if result.AccessToken == "" {
				t.Error("expected a new access token")
			}
			if tt.wantRotation != (result.RefreshToken != "") {
				t.Errorf("rotation = %v, want %v", result.RefreshToken != "", tt.wantRotation)
			}
			if extended != tt.wantExtension {
				t.Errorf("extension = %v, want %v", extended, tt.wantExtension)
			}
		})
	}
}

func TestAuthServiceImpl_RefreshToken_DeadSession(t *testing.T) {
	tokenSvc := mocks.NewMockTokenService()
	tokenSvc.ValidateRefreshTokenFunc = func(token string) (*domain.TokenClaims, error) {
		return &domain.TokenClaims{SessionID: "gone", TokenType: domain.TokenTypeRefresh}, nil
	}

	svc := createAuthServiceForTest(t, nil, nil, nil, nil, nil, tokenSvc, nil, nil)

	_, err := svc.RefreshToken(context.Background(), "refresh_token_gone")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestAuthServiceImpl_Logout(t *testing.T) {
	ctx := context.Background()
	cache := mocks.NewMockCacheStore()
	cache.Set(ctx, domain.SessionKey("s1"), "{}", time.Hour)

	var deleted string
	sessionRepo := mocks.NewMockSessionRepository()
	sessionRepo.DeleteFunc = func(ctx context.Context, sessionID string) error {
		deleted = sessionID
		return nil
	}

	svc := createAuthServiceForTest(t, nil, nil, sessionRepo, cache, nil, nil, nil, nil)

	if err := svc.Logout(ctx, "s1"); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if deleted != "s1" {
		t.Errorf("expected durable delete of s1, got %q", deleted)
	}
	if cache.Has(domain.SessionKey("s1")) {
		t.Error("expected the snapshot dropped")
	}
}

func TestAuthServiceImpl_CurrentUser(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit serves the snapshot", func(t *testing.T) {
		cache := mocks.NewMockCacheStore()
		snap := &domain.SessionSnapshot{
			ID:        "s1",
			AccountID: 1,
			Email:     "asha@example.com",
			FirstName: "Asha",
			Role:      domain.RolePatient,
			Verified:  true,
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		}
		if err := writeSnapshot(ctx, cache, snap); err != nil {
			t.Fatalf("seed snapshot: %v", err)
		}

		// Store lookups must not be reached.
		sessionRepo := mocks.NewMockSessionRepository()
		sessionRepo.FindByIDFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
			t.Error("unexpected durable lookup on cache hit")
			return nil, domain.ErrSessionNotFound
		}

		svc := createAuthServiceForTest(t, nil, nil, sessionRepo, cache, nil, nil, nil, nil)

		view, err := svc.CurrentUser(ctx, "s1")
		if err != nil {
			t.Fatalf("current user failed: %v", err)
		}
		if view.Email != "asha@example.com" || view.FirstName != "Asha" {
			t.Errorf("unexpected view %+v", view)
		}
	})

	t.Run("cache miss rebuilds from the store", func(t *testing.T) {
		cache := mocks.NewMockCacheStore()
		accountRepo := mocks.NewMockAccountRepository()
		accountRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Account, error) {
			return createAccount(t), nil
		}
		credRepo := mocks.NewMockCredentialRepository()
		credRepo.FindByAccountIDFunc = func(ctx context.Context, accountID uint) (*domain.Credential, error) {
			return createVerifiedCredential(t), nil
		}
		sessionRepo := mocks.NewMockSessionRepository()
		sessionRepo.FindByIDFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
			return &domain.Session{
				ID:        sessionID,
				AccountID: 1,
				ExpiresAt: time.Now().Add(time.Hour),
			}, nil
		}

		svc := createAuthServiceForTest(t, accountRepo, credRepo, sessionRepo, cache, nil, nil, nil, nil)

		view, err := svc.CurrentUser(ctx, "s2")
		if err != nil {
			t.Fatalf("current user failed: %v", err)
		}
		if view.Email != "asha@example.com" {
			t.Errorf("unexpected view %+v", view)
		}
		if !cache.Has(domain.SessionKey("s2")) {
			t.Error("expected the snapshot rebuilt after the fallback")
		}
	})

	t.Run("dead session", func(t *testing.T) {
		svc := createAuthServiceForTest(t, nil, nil, nil, nil, nil, nil, nil, nil)
		_, err := svc.CurrentUser(ctx, "missing")
		if !errors.Is(err, domain.ErrSessionNotFound) {
			t.Fatalf("expected ErrSessionNotFound, got %v", err)
		}
	})
}
