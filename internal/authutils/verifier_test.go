package authutils

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rickhouse-server/internal/models"
)

const testSecret = "test-secret-key"

func signToken(t *testing.T, userID uuid.UUID, secret string, expiresIn time.Duration) string {
	t.Helper()
	claims := &models.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestNewJWTVerifierRequiresSecret(t *testing.T) {
	_, err := NewJWTVerifier("", nil)
	assert.Error(t, err)

	v, err := NewJWTVerifier(testSecret, nil)
	require.NoError(t, err)
	assert.NotNil(t, v)
}

func TestVerifyToken(t *testing.T) {
	verifier, err := NewJWTVerifier(testSecret, nil)
	require.NoError(t, err)
	ctx := context.Background()
	userID := uuid.New()

	t.Run("valid token", func(t *testing.T) {
		claims, err := verifier.VerifyToken(ctx, signToken(t, userID, testSecret, time.Hour))
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
	})

	t.Run("expired token", func(t *testing.T) {
		_, err := verifier.VerifyToken(ctx, signToken(t, userID, testSecret, -time.Hour))
		assert.ErrorIs(t, err, models.ErrTokenExpired)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := verifier.VerifyToken(ctx, signToken(t, userID, "other-secret", time.Hour))
		assert.ErrorIs(t, err, models.ErrTokenInvalid)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := verifier.VerifyToken(ctx, "not.a.jwt")
		assert.ErrorIs(t, err, models.ErrTokenMalformed)
	})

	t.Run("missing user ID", func(t *testing.T) {
		_, err := verifier.VerifyToken(ctx, signToken(t, uuid.Nil, testSecret, time.Hour))
		assert.ErrorIs(t, err, models.ErrTokenInvalid)
	})
}
