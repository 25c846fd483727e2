package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_Argon2id(t *testing.T) {
	hasher := NewPasswordHasher(testHashParams)

	hash, err := hasher.Hash("correct horse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	match, err := hasher.Compare("correct horse", hash)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = hasher.Compare("wrong horse", hash)
	require.NoError(t, err)
	assert.False(t, match)
}

func TestPasswordHasher_SaltsEveryHash(t *testing.T) {
	hasher := NewPasswordHasher(testHashParams)

	first, err := hasher.Hash("password")
	require.NoError(t, err)
	second, err := hasher.Hash("password")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestPasswordHasher_LegacyBcrypt(t *testing.T) {
	hasher := NewPasswordHasher(testHashParams)

	legacy, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	require.NoError(t, err)

	match, err := hasher.Compare("password1", string(legacy))
	require.NoError(t, err)
	assert.True(t, match)

	match, err = hasher.Compare("password2", string(legacy))
	require.NoError(t, err)
	assert.False(t, match)
}

func TestPasswordHasher_InvalidHash(t *testing.T) {
	hasher := NewPasswordHasher(testHashParams)

	_, err := hasher.Compare("password", "not-a-hash")
	assert.Error(t, err)
}
