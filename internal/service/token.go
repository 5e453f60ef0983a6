package service

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenService issues and verifies the signed tokens the access guard runs
// on. Every issued token gets its own jti, which is what makes revocation
// selective: blocking one login session never touches the others.
type TokenService interface {
	IssueAccessToken(user *models.User, fresh bool) (string, error)
	IssueRefreshToken(user *models.User) (string, error)
	Verify(tokenString string) (*models.Claims, error)
}

type tokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        *zap.Logger
}

func NewTokenService(secret []byte, accessTTL, refreshTTL time.Duration, log *zap.Logger) TokenService {
	return &tokenService{
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		log:        log,
	}
}

func (s *tokenService) IssueAccessToken(user *models.User, fresh bool) (string, error) {
	claims := &models.Claims{
		UserID:    user.ID,
		Fresh:     fresh,
		IsAdmin:   user.IsAdmin(),
		TokenType: models.TokenTypeAccess,
	}
	return s.sign(claims, s.accessTTL)
}

// IssueRefreshToken mints the long-lived token. It carries no admin claim
// and is never fresh; it can only be exchanged for non-fresh access tokens.
func (s *tokenService) IssueRefreshToken(user *models.User) (string, error) {
	claims := &models.Claims{
		UserID:    user.ID,
		TokenType: models.TokenTypeRefresh,
	}
	return s.sign(claims, s.refreshTTL)
}

func (s *tokenService) sign(claims *models.Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   fmt.Sprintf("%d", claims.UserID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err))
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify validates the signature and expiry and returns the decoded claims.
// Claims are never trusted before the signature checks out.
func (s *tokenService) Verify(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is what we expect
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}
	if !token.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
