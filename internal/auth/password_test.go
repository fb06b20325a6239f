package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventflow/eventflow-api/internal/auth"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := auth.HashPassword("password123", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotContains(t, hash, "password123")

	assert.True(t, auth.VerifyPassword(hash, "password123"))
	assert.False(t, auth.VerifyPassword(hash, "password124"))
	assert.False(t, auth.VerifyPassword(hash, ""))
	assert.False(t, auth.VerifyPassword(hash, "Password123"))
}

func TestVerifyPassword_GarbageHash(t *testing.T) {
	t.Parallel()

	assert.False(t, auth.VerifyPassword("not-a-bcrypt-hash", "password123"))
	assert.False(t, auth.VerifyPassword("", "password123"))
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	t.Parallel()

	h1, err := auth.HashPassword("password123", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := auth.HashPassword("password123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2, "each hash must carry its own salt")
}
