package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret-password")

	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "secret-password", hash)
}

func TestHashPassword_DifferentSalts(t *testing.T) {
	hash1, err := HashPassword("secret-password")
	require.NoError(t, err)

	hash2, err := HashPassword("secret-password")
	require.NoError(t, err)

	// bcrypt генерирует соль на каждый вызов
	assert.NotEqual(t, hash1, hash2)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret-password")
	require.NoError(t, err)

	assert.True(t, CheckPassword("secret-password", hash))
	assert.False(t, CheckPassword("wrong-password", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestCheckPassword_InvalidHash(t *testing.T) {
	assert.False(t, CheckPassword("secret-password", "not-a-bcrypt-hash"))
}
