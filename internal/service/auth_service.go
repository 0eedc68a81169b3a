package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/workshop-service/internal/auth"
	"github.com/spec-kit/workshop-service/internal/config"
	"github.com/spec-kit/workshop-service/internal/domain"
	"github.com/spec-kit/workshop-service/internal/repository"
	"github.com/spec-kit/workshop-service/internal/schema"
	apperrors "github.com/spec-kit/workshop-service/pkg/util/errorutil"
)

// AuthService coordinates user registration and login.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost: cfg.BcryptCost,
		logger:     logger,
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Register stores a regular, non-admin user with a hashed password.
// Usernames are not checked for uniqueness here; a store with a unique
// constraint reports a conflict.
func (s *AuthService) Register(ctx context.Context, creds schema.Credentials) (*domain.User, error) {
	return s.createUser(ctx, creds, false)
}

func (s *AuthService) createUser(ctx context.Context, creds schema.Credentials, admin bool) (*domain.User, error) {
	hash, err := auth.HashPassword(creds.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	user, err := s.users.CreateUser(ctx, domain.User{Username: creds.Username, Password: hash, Admin: admin})
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, apperrors.NewDomainError("CONFLICT", "username already exists", http.StatusConflict, nil)
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, creds schema.Credentials) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetUserByUsername(ctx, creds.Username)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	if user == nil || auth.ComparePassword(user.Password, creds.Password) != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(*user)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, exp, nil
}

// BootstrapAdmin creates the configured admin account on first start. It
// is a no-op without credentials or when the username already exists; an
// existing non-admin account with that name is left unprivileged.
func (s *AuthService) BootstrapAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	existing, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		if !existing.Admin {
			s.logger.Warn("admin username belongs to a non-admin account", zap.String("username", username))
		}
		return nil
	}
	user, err := s.createUser(ctx, schema.Credentials{Username: username, Password: password}, true)
	if err != nil {
		return err
	}
	s.logger.Info("admin user created", zap.Int("user_id", user.ID), zap.String("username", user.Username))
	return nil
}
