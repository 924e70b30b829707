package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Admin123!")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	require.NoError(t, VerifyPassword("Admin123!", hash))
	require.ErrorIs(t, VerifyPassword("wrong", hash), ErrHashMismatch)
}

func TestHashesAreSalted(t *testing.T) {
	t.Parallel()

	a, err := HashPassword("same-password")
	require.NoError(t, err)
	b, err := HashPassword("same-password")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	t.Parallel()

	for _, h := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=19456,t=2,p=1$abc$def",
		"$argon2id$v=18$m=19456,t=2,p=1$abc$def",
		"$argon2id$v=19$m=19456,t=2,p=1$!!!$def",
	} {
		err := VerifyPassword("x", h)
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrHashMismatch)
	}
}
