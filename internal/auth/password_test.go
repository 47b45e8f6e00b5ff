package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse battery", hash)
	assert.True(t, CheckPassword(hash, "correct horse battery"))
	assert.False(t, CheckPassword(hash, "wrong password"))
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	assert.False(t, CheckPassword("not-a-bcrypt-hash", "anything"))
}

func TestCheckPasswordRejectsOverlongInput(t *testing.T) {
	password := strings.Repeat("a", MaxPasswordBytes)

	hash, err := HashPassword(password)
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, password))
	assert.False(t, CheckPassword(hash, password+"WRONG-SUFFIX"))
	assert.False(t, CheckPassword(hash, password+"a"))
}
