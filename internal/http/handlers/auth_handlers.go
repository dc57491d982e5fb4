package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PraMishra-s/E-Health-Backend-sub001/domain"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
	mfaSvc  domain.MFAService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, mfaSvc domain.MFAService) *AuthHandlers {
	return &AuthHandlers{
		authSvc: authSvc,
		mfaSvc:  mfaSvc,
	}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required"`
	Gender      string `json:"gender,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Password    string `json:"password" binding:"required,min=8"`
	AccountType string `json:"account_type,omitempty"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// VerifyEmailRequest represents email verification request
type VerifyEmailRequest struct {
	Code string `json:"code" binding:"required"`
}

// EmailRequest carries a bare email for resend and forgot-password
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest represents password reset completion
type ResetPasswordRequest struct {
	Code     string `json:"code" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// RefreshRequest represents token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// MFAVerifyRequest represents the login second-factor verification
type MFAVerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

// Register handles account registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accountType := req.AccountType
	if accountType == "" {
		accountType = domain.AccountTypePatient
	}

	user, err := h.authSvc.Register(c.Request.Context(), domain.RegisterInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
		Password:    req.Password,
		AccountType: accountType,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		case errors.Is(err, domain.ErrNotificationFailed):
			// The account exists; the verification email did not go out.
			c.JSON(http.StatusCreated, gin.H{
				"data": gin.H{
					"user":    user,
					"warning": "Verification email could not be sent. Use resend-verification.",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register account"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"message": "Account registered. Please verify your email.",
			"user":    user,
		},
	})
}

// Login handles password login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password, c.Request.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		case errors.Is(err, domain.ErrEmailNotVerified):
			c.JSON(http.StatusForbidden, gin.H{"error": "Email not verified"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	if result.MFARequired {
		c.JSON(http.StatusOK, gin.H{
			"data": gin.H{
				"mfa_required": true,
				"message":      "A one-time code has been sent.",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"access_token":  result.AccessToken,
			"refresh_token": result.RefreshToken,
			"token_type":    "Bearer",
			"expires_in":    result.ExpiresIn,
			"user":          result.User,
		},
	})
}

// VerifyEmail handles single-use verification code redemption
func (h *AuthHandlers) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.VerifyEmail(c.Request.Context(), req.Code); err != nil {
		if errors.Is(err, domain.ErrCodeInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Code invalid or expired"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Email verified"}})
}

// ResendVerification issues a fresh verification code
func (h *AuthHandlers) ResendVerification(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.ResendVerification(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, domain.ErrCredentialNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No such account"})
		case errors.Is(err, domain.ErrAlreadyVerified):
			c.JSON(http.StatusConflict, gin.H{"error": "Email already verified"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resend verification"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Verification code sent"}})
}

// ForgotPassword starts the recovery flow
func (h *AuthHandlers) ForgotPassword(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, domain.ErrCredentialNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No such account"})
		case errors.Is(err, domain.ErrTooManyRequests):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many reset requests; try again later"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start password reset"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Reset code sent"}})
}

// ResetPassword completes the recovery flow and revokes every session
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.ResetPassword(c.Request.Context(), req.Code, req.Password); err != nil {
		if errors.Is(err, domain.ErrCodeInvalid) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Code invalid or expired"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Password reset; all sessions revoked"}})
}

// Refresh exchanges a refresh token for a new access token
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenExpired),
			errors.Is(err, domain.ErrTokenInvalid),
			errors.Is(err, domain.ErrTokenMalformed),
			errors.Is(err, domain.ErrSessionNotFound),
			errors.Is(err, domain.ErrSessionExpired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Refresh failed"})
		}
		return
	}

	data := gin.H{
		"access_token": result.AccessToken,
		"token_type":   "Bearer",
		"expires_in":   result.ExpiresIn,
	}
	if result.RefreshToken != "" {
		data["refresh_token"] = result.RefreshToken
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// VerifyMFA completes a login gated by the second factor
func (h *AuthHandlers) VerifyMFA(c *gin.Context) {
	var req MFAVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.mfaSvc.Verify(c.Request.Context(), req.Code, req.Email, c.Request.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCredentialNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No such account"})
		case errors.Is(err, domain.ErrMFANotEnabled):
			c.JSON(http.StatusBadRequest, gin.H{"error": "MFA is not enabled for this account"})
		case errors.Is(err, domain.ErrOTPInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Code invalid or expired"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "MFA verification failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"access_token":  result.AccessToken,
			"refresh_token": result.RefreshToken,
			"token_type":    "Bearer",
			"expires_in":    result.ExpiresIn,
			"user":          result.User,
		},
	})
}

// EnableMFA turns the second factor on for the authenticated account
func (h *AuthHandlers) EnableMFA(c *gin.Context) {
	accountID := c.GetUint("account_id")
	if err := h.mfaSvc.Invoke(c.Request.Context(), accountID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enable MFA"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"mfa_required": true}})
}

// DisableMFA turns the second factor off for the authenticated account
func (h *AuthHandlers) DisableMFA(c *gin.Context) {
	accountID := c.GetUint("account_id")
	if err := h.mfaSvc.Revoke(c.Request.Context(), accountID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to disable MFA"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"mfa_required": false}})
}

// Me returns the current session user, cache-first
func (h *AuthHandlers) Me(c *gin.Context) {
	sessionID := c.GetString("session_id")
	user, err := h.authSvc.CurrentUser(c.Request.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrSessionExpired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session invalid or expired"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"user": user}})
}

// Logout deletes the current session
func (h *AuthHandlers) Logout(c *gin.Context) {
	sessionID := c.GetString("session_id")
	if err := h.authSvc.Logout(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Logged out"}})
}
