package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("gulab-jamun-42")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "gulab-jamun-42", hash)

	assert.True(t, VerifyPassword("gulab-jamun-42", hash))
	assert.False(t, VerifyPassword("gulab-jamun-43", hash))
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("same-password")
	require.NoError(t, err)
	second, err := HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPasswordMalformedDigest(t *testing.T) {
	assert.False(t, VerifyPassword("anything", ""))
	assert.False(t, VerifyPassword("anything", "not-a-bcrypt-hash"))
}
