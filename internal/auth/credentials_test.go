package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSalt(t *testing.T) {
	first, err := GenerateSalt()
	require.NoError(t, err)
	assert.Len(t, first, saltLength)

	second, err := GenerateSalt()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestHashPasswordDeterministic(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)

	assert.Equal(t, HashPassword("secret", salt), HashPassword("secret", salt))
	assert.NotEqual(t, HashPassword("secret", salt), HashPassword("other", salt))

	otherSalt, err := GenerateSalt()
	require.NoError(t, err)
	assert.NotEqual(t, HashPassword("secret", salt), HashPassword("secret", otherSalt))
}

func TestVerify(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)
	hash := HashPassword("secret", salt)

	assert.True(t, Verify("secret", salt, hash))
	assert.False(t, Verify("wrong", salt, hash))
	assert.False(t, Verify("", salt, hash))
}
