package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tharun/campusvote/internal/pkg/apperrors"
	"github.com/tharun/campusvote/internal/pkg/auth"
)

func newAdminFixture(t *testing.T) (AdminAuthService, *auth.JWTService) {
	t.Helper()

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "campusvote.test",
	})
	svc, err := NewAdminAuthService("admin", "s3cret", jwtService, zerolog.Nop())
	require.NoError(t, err)
	return svc, jwtService
}

func TestAdminLogin(t *testing.T) {
	svc, jwtService := newAdminFixture(t)

	token, expiresIn, err := svc.Login(context.Background(), "admin", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, int(time.Hour.Seconds()), expiresIn)

	claims, err := jwtService.ValidateAndExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, auth.RoleAdmin, claims.Role)
}

func TestAdminLoginWrongPassword(t *testing.T) {
	svc, _ := newAdminFixture(t)

	_, _, err := svc.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAdminLoginWrongUsername(t *testing.T) {
	svc, _ := newAdminFixture(t)

	_, _, err := svc.Login(context.Background(), "root", "s3cret")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
