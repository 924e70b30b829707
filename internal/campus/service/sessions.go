package service

import (
	"errors"
	"time"

	"github.com/unidesk/campus/pkg/jwtx"
)

// Sessions issues and verifies bearer session tokens. It is a thin policy
// layer over pkg/jwtx that translates token errors into the service taxonomy.
type Sessions struct {
	Signer *jwtx.Signer
}

// TTL reports the session lifetime, used by the login handler for the cookie
// max-age.
func (s *Sessions) TTL() time.Duration { return s.Signer.TTL() }

// Issue mints a session token for the given subject identity. The caller is
// responsible for transport (cookie or header); Issue has no side effects.
func (s *Sessions) Issue(subjectID string) (string, error) {
	if subjectID == "" {
		return "", ErrInvalidInput
	}
	token, err := s.Signer.Sign(subjectID)
	if err != nil {
		return "", err
	}
	return token, nil
}

// Verify validates a presented token and returns the subject it was issued
// for. Expired tokens fail with ErrTokenExpired; every other failure
// (missing, malformed, signature-invalid) collapses to ErrUnauthorized.
func (s *Sessions) Verify(presented string) (string, error) {
	if presented == "" {
		return "", ErrUnauthorized
	}
	claims, err := s.Signer.Verify(presented)
	if err != nil {
		if errors.Is(err, jwtx.ErrExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrUnauthorized
	}
	return claims.Subject, nil
}
