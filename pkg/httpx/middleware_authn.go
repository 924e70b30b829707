package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/unidesk/campus/pkg/jwtx"
	"github.com/unidesk/campus/pkg/slogx"
)

// SessionCookieName is the cookie the login endpoint sets and the session
// middleware reads.
const SessionCookieName = "token"

// TokenVerifier validates a session token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (jwtx.Claims, error)
}

// SessionMiddleware authenticates requests using the session token, read from
// the "token" cookie or, failing that, a bearer Authorization header.
//
// An expired token and an invalid/missing token are distinct outcomes: both
// are 401, but the response body differs so clients can prompt a re-login
// rather than treating the session as tampered with. Handlers behind this
// middleware can rely on SubjectFromContext returning a non-empty identity.
func SessionMiddleware(v TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := extractToken(r)
			if raw == "" {
				writeBearerError(w, "unauthorized", "missing session token")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				if errors.Is(err, jwtx.ErrExpired) {
					writeBearerError(w, "token_expired", "session token has expired")
					return
				}
				log.Warn("session verification failed", "err", err)
				writeBearerError(w, "unauthorized", "invalid session token")
				return
			}

			ctx = context.WithValue(ctx, CtxKeySubject, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
	}
	return ""
}

// RFC 6750-style error response for bearer auth, with a JSON body matching
// the service's error envelope.
func writeBearerError(w http.ResponseWriter, code, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"error":             code,
		"error_description": desc,
	})
}
