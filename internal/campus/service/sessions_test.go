package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/unidesk/campus/pkg/jwtx"
)

func newSessions(ttl time.Duration) *Sessions {
	return &Sessions{Signer: jwtx.NewSigner([]byte("test-secret"), "campus-api", ttl)}
}

func TestIssueThenVerify(t *testing.T) {
	t.Parallel()

	s := newSessions(time.Hour)

	token, err := s.Issue("s1")
	require.NoError(t, err)

	subject, err := s.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "s1", subject)
}

func TestIssueRequiresSubject(t *testing.T) {
	t.Parallel()

	s := newSessions(time.Hour)
	_, err := s.Issue("")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestVerifyExpiredIsTokenExpired(t *testing.T) {
	t.Parallel()

	issued := newSessions(-time.Minute)
	token, err := issued.Issue("s1")
	require.NoError(t, err)

	_, err = newSessions(time.Hour).Verify(token)
	require.ErrorIs(t, err, ErrTokenExpired)
	require.NotErrorIs(t, err, ErrUnauthorized)
}

func TestVerifyMalformedIsUnauthorized(t *testing.T) {
	t.Parallel()

	s := newSessions(time.Hour)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := s.Verify(raw)
		require.ErrorIs(t, err, ErrUnauthorized)
		require.NotErrorIs(t, err, ErrTokenExpired)
	}
}

func TestVerifyForeignSignatureIsUnauthorized(t *testing.T) {
	t.Parallel()

	foreign := &Sessions{Signer: jwtx.NewSigner([]byte("other-secret"), "campus-api", time.Hour)}
	token, err := foreign.Issue("s1")
	require.NoError(t, err)

	_, err = newSessions(time.Hour).Verify(token)
	require.ErrorIs(t, err, ErrUnauthorized)
	require.NotErrorIs(t, err, ErrTokenExpired)
}
