package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$"), "hash should be PHC-formatted")
	assert.NotContains(t, hash, "correct horse")

	// Fresh salt per call, so the same password hashes differently.
	again, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("opensesame")
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		match, err := VerifyPassword("opensesame", hash)
		require.NoError(t, err)
		assert.True(t, match)
	})

	t.Run("wrong password", func(t *testing.T) {
		match, err := VerifyPassword("letmein", hash)
		require.NoError(t, err)
		assert.False(t, match)
	})

	t.Run("malformed hash", func(t *testing.T) {
		tests := []struct {
			name    string
			encoded string
		}{
			{"empty", ""},
			{"not a hash", "plaintext"},
			{"wrong algorithm", "$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA"},
			{"bad version", "$argon2id$v=12$m=65536,t=3,p=2$c2FsdA$aGFzaA"},
			{"bad salt encoding", "$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaA"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := VerifyPassword("opensesame", tt.encoded)
				require.Error(t, err)
			})
		}
	})
}
