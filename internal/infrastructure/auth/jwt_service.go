package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/PraMishra-s/E-Health-Backend-sub001/domain"
)

// JWTServiceImpl implements domain.TokenService. Verification is pure: it
// never touches the store or cache.
type JWTServiceImpl struct {
	secretKey       []byte
	issuer          string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewJWTService creates a new JWT service
func NewJWTService(secretKey string, issuer string, accessTTL, refreshTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		secretKey:       []byte(secretKey),
		issuer:          issuer,
		accessTokenTTL:  accessTTL,
		refreshTokenTTL: refreshTTL,
	}
}

// generateJTI creates a unique JWT ID
func (j *JWTServiceImpl) generateJTI() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// GenerateAccessToken implements domain.TokenService. Access claims carry
// the account id, role, and session id with a short validity.
func (j *JWTServiceImpl) GenerateAccessToken(accountID uint, role, sessionID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"account_id": accountID,
		"role":       role,
		"session_id": sessionID,
		"typ":        domain.TokenTypeAccess,
		"iss":        j.issuer,
		"iat":        now.Unix(),
		"exp":        now.Add(j.accessTokenTTL).Unix(),
		"jti":        j.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// GenerateRefreshToken implements domain.TokenService. Refresh claims carry
// only the session id with a long validity.
func (j *JWTServiceImpl) GenerateRefreshToken(sessionID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"session_id": sessionID,
		"typ":        domain.TokenTypeRefresh,
		"iss":        j.issuer,
		"iat":        now.Unix(),
		"exp":        now.Add(j.refreshTokenTTL).Unix(),
		"jti":        j.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// ValidateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateAccessToken(tokenString string) (*domain.TokenClaims, error) {
	return j.validateToken(tokenString, domain.TokenTypeAccess)
}

// ValidateRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateRefreshToken(tokenString string) (*domain.TokenClaims, error) {
	return j.validateToken(tokenString, domain.TokenTypeRefresh)
}

// validateToken verifies the signature and shape of a token and returns its
// claims. A token of the wrong kind fails as invalid so an access token can
// never be exchanged as a refresh token.
func (j *JWTServiceImpl) validateToken(tokenString, wantType string) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return j.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	tokenType, ok := claims["typ"].(string)
	if !ok || tokenType != wantType {
		return nil, domain.ErrTokenInvalid
	}

	sessionID, ok := claims["session_id"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, domain.ErrTokenExpired
	}

	tokenClaims := &domain.TokenClaims{
		SessionID: sessionID,
		TokenType: tokenType,
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}

	// Access tokens additionally carry the account id and role.
	if accountID, ok := claims["account_id"].(float64); ok {
		tokenClaims.AccountID = uint(accountID)
	}
	if role, ok := claims["role"].(string); ok {
		tokenClaims.Role = role
	}

	if wantType == domain.TokenTypeAccess && tokenClaims.AccountID == 0 {
		return nil, domain.ErrTokenMalformed
	}

	return tokenClaims, nil
}
