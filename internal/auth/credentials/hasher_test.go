package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_SaltedPerCall(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("password1")
	require.NoError(t, err)

	second, err := HashPassword("password1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "two hashes of the same plaintext must differ")
}

func TestVerifyPassword_Match(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)

	ok, err := VerifyPassword(hash, "correct horse battery")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyPassword_Mismatch(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("password1")
	require.NoError(t, err)

	ok, err := VerifyPassword(hash, "password2")
	require.NoError(t, err, "a mismatch is not an error")
	assert.False(t, ok)
}

func TestVerifyPassword_MalformedDigest(t *testing.T) {
	t.Parallel()

	ok, err := VerifyPassword("not-a-bcrypt-digest", "password1")
	assert.False(t, ok)
	require.Error(t, err, "malformed digest must surface as an error, never a match")
}
