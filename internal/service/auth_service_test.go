package service_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mparker/character-vault/internal/config"
	"github.com/mparker/character-vault/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthService_ValidateToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret"}
	svc := service.NewAuthService(cfg)
	userID := uuid.New()

	token := signToken(t, "secret", jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	got, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestAuthService_ValidateToken_Rejections(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret"}
	svc := service.NewAuthService(cfg)
	userID := uuid.New()
	exp := time.Now().Add(time.Hour).Unix()

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, "other-secret", jwt.MapClaims{"sub": userID.String(), "exp": exp})
		_, err := svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		token := signToken(t, "secret", jwt.MapClaims{
			"sub": userID.String(),
			"exp": time.Now().Add(-time.Hour).Unix(),
		})
		_, err := svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("missing sub", func(t *testing.T) {
		token := signToken(t, "secret", jwt.MapClaims{"exp": exp})
		_, err := svc.ValidateToken(token)
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("sub is not a uuid", func(t *testing.T) {
		token := signToken(t, "secret", jwt.MapClaims{"sub": "user-42", "exp": exp})
		_, err := svc.ValidateToken(token)
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.jwt")
		assert.Error(t, err)
	})
}
