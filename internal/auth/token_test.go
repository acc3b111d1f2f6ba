package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	userID := uuid.New()
	secret := "test-secret"

	token, err := GenerateToken(userID, "alice", secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "auctionhouse", claims.Issuer)
}

func TestValidateTokenFailures(t *testing.T) {
	userID := uuid.New()
	secret := "test-secret"

	t.Run("wrong secret", func(t *testing.T) {
		token, err := GenerateToken(userID, "alice", secret, time.Hour)
		require.NoError(t, err)

		_, err = ValidateToken(token, "other-secret")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := GenerateToken(userID, "alice", secret, -time.Minute)
		require.NoError(t, err)

		_, err = ValidateToken(token, secret)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := ValidateToken("not.a.token", secret)
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}
