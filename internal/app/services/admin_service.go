package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/tharun/campusvote/internal/pkg/apperrors"
	"github.com/tharun/campusvote/internal/pkg/auth"
)

// adminAuthService implements AdminAuthService. The deployment has a single
// administrator whose credentials come from configuration; the password is
// hashed once at startup so only the bcrypt comparison runs per login.
type adminAuthService struct {
	username     string
	passwordHash string
	jwtService   *auth.JWTService
	logger       zerolog.Logger
}

// NewAdminAuthService creates a new AdminAuthService
func NewAdminAuthService(username, password string, jwtService *auth.JWTService, logger zerolog.Logger) (AdminAuthService, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &adminAuthService{
		username:     username,
		passwordHash: hash,
		jwtService:   jwtService,
		logger:       logger,
	}, nil
}

// Login checks the admin credentials and issues an access token.
func (s *adminAuthService) Login(ctx context.Context, username, password string) (string, int, error) {
	if username != s.username || !auth.CheckPassword(s.passwordHash, password) {
		s.logger.Warn().Str("username", username).Msg("Failed admin login attempt")
		return "", 0, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(username)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to issue admin token")
		return "", 0, err
	}

	s.logger.Info().Str("username", username).Msg("Admin logged in")
	return token, expiresIn, nil
}
