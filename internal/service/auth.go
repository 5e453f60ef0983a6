package service

import (
	"errors"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repository"

	"go.uber.org/zap"
)

// TokenPair is what a successful login returns.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthService interface {
	Register(username, password string) (*models.User, error)
	Login(username, password string) (*TokenPair, error)
	Refresh(userID int64) (string, error)
	Logout(jti string)
}

type authService struct {
	repo      repository.UserRepository
	tokens    TokenService
	blocklist *Blocklist
	log       *zap.Logger
}

func NewAuthService(repo repository.UserRepository, tokens TokenService, blocklist *Blocklist, log *zap.Logger) AuthService {
	return &authService{
		repo:      repo,
		tokens:    tokens,
		blocklist: blocklist,
		log:       log,
	}
}

func (s *authService) Register(username, password string) (*models.User, error) {
	if _, err := s.repo.GetByUsername(username); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.log.Error("Failed to look up username", zap.Error(err))
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
	}

	if err := s.repo.Create(user); err != nil {
		// The unique constraint can still fire when two registrations race
		// past the lookup above.
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUserExists
		}
		s.log.Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info("User registered", zap.String("username", user.Username), zap.Int64("user_id", user.ID))
	return user, nil
}

// Login verifies the credentials and issues a fresh access token plus a
// refresh token. The admin claim is snapshotted here; it will not track
// later role changes until the user logs in again.
func (s *authService) Login(username, password string) (*TokenPair, error) {
	user, err := s.repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.log.Error("Failed to get user by username", zap.Error(err))
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if !verifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.IssueAccessToken(user, true)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in", zap.String("username", user.Username))
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh exchanges a verified refresh token's subject for a new non-fresh
// access token.
func (s *authService) Refresh(userID int64) (string, error) {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		s.log.Error("Failed to get user by id", zap.Error(err))
		return "", fmt.Errorf("failed to retrieve user: %w", err)
	}
	return s.tokens.IssueAccessToken(user, false)
}

func (s *authService) Logout(jti string) {
	s.blocklist.Revoke(jti)
	s.log.Info("Token revoked", zap.String("jti", jti))
}
