package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/unidesk/campus/pkg/idx"
)

// DefaultSessionTTL is the default lifetime for session tokens. Sessions are
// deliberately short-lived; there is no refresh or revocation mechanism, a
// token simply ages out.
const DefaultSessionTTL = time.Hour

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
	ErrExpired    = errors.New("jwtx: token expired")
	ErrIssuer     = errors.New("jwtx: issuer mismatch")
	ErrSubject    = errors.New("jwtx: missing subject")
)

// Claims are the session-token claims. We only carry registered claims; the
// subject is the user identity the token was issued for.
type Claims struct {
	jwt.RegisteredClaims
}

// Signer issues and verifies HS256 session tokens under a single shared
// signing secret. The secret is loaded once at startup and never rotated;
// key rotation would invalidate every outstanding session, which is fine
// operationally but not something we do automatically.
type Signer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewSigner returns a Signer for the given secret. A zero ttl falls back to
// DefaultSessionTTL; a negative ttl is kept as-is and mints already-expired
// tokens, which tests rely on.
func NewSigner(secret []byte, issuer string, ttl time.Duration) *Signer {
	if ttl == 0 {
		ttl = DefaultSessionTTL
	}
	return &Signer{secret: secret, issuer: issuer, ttl: ttl}
}

// TTL reports the configured token lifetime.
func (s *Signer) TTL() time.Duration { return s.ttl }

// Sign mints a token for the given subject with exp = now + ttl.
func (s *Signer) Sign(subject string) (string, error) {
	if subject == "" {
		return "", ErrSubject
	}

	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        idx.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token, returning its claims.
//
// The error split matters to callers: ErrExpired is returned only when the
// signature checked out and the token has simply aged past exp. Every other
// failure (garbage input, wrong algorithm, bad signature) maps to ErrMalformed
// or ErrInvalidSig. Callers must not collapse ErrExpired into the rest.
func (s *Signer) Verify(raw string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		default:
			return Claims{}, ErrMalformed
		}
	}

	if s.issuer != "" && claims.Issuer != s.issuer {
		return Claims{}, ErrIssuer
	}
	if claims.Subject == "" {
		return Claims{}, ErrSubject
	}

	return claims, nil
}
