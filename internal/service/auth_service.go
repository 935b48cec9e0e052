package service

import (
	"context"
	"fmt"
	"time"

	"tron-wallet-service/internal/core/domain"
	"tron-wallet-service/internal/core/ports"
	"tron-wallet-service/pkg/apperror"

	"github.com/rs/zerolog"
)

// AuthServiceImpl implements ports.AuthService.
type AuthServiceImpl struct {
	users    ports.UserRepository
	profiles ports.ProfileRepository
	hashSvc  ports.HashService
	tokenSvc ports.TokenService
	log      zerolog.Logger
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(
	users ports.UserRepository,
	profiles ports.ProfileRepository,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
	log zerolog.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		users:    users,
		profiles: profiles,
		hashSvc:  hashSvc,
		tokenSvc: tokenSvc,
		log:      log,
	}
}

// Register creates a new account with 2FA disabled.
func (s *AuthServiceImpl) Register(ctx context.Context, username, password string) error {
	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("check username: %w", err))
	}
	if existing != nil {
		return apperror.ErrUsernameExists()
	}

	passwordHash, err := s.hashSvc.Hash(password)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("hash password: %w", err))
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return apperror.InternalError(fmt.Errorf("create user: %w", err))
	}

	// Security profile starts disabled; enrollment is a separate flow.
	if err := s.profiles.Put(ctx, username, domain.SecurityProfile{}); err != nil {
		return apperror.InternalError(fmt.Errorf("init profile: %w", err))
	}

	s.log.Info().Str("user", username).Msg("user registered")
	return nil
}

// Login verifies credentials and issues a session token.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("fetch user: %w", err))
	}
	if user == nil {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	match, err := s.hashSvc.Verify(password, user.PasswordHash)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !match {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	token, expiry, err := s.tokenSvc.Generate(username)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	return token, expiry, nil
}
