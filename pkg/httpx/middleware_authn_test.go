package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/unidesk/campus/pkg/jwtx"
)

func sessionTestHandler(t *testing.T, wantSubject string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, wantSubject, SubjectFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	})
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body["error"]
}

func TestSessionMiddlewareAcceptsCookie(t *testing.T) {
	t.Parallel()

	signer := jwtx.NewSigner([]byte("secret"), "campus-api", time.Hour)
	token, err := signer.Sign("s1")
	require.NoError(t, err)

	h := Chain(sessionTestHandler(t, "s1"), SessionMiddleware(signer))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionMiddlewareAcceptsBearerHeader(t *testing.T) {
	t.Parallel()

	signer := jwtx.NewSigner([]byte("secret"), "campus-api", time.Hour)
	token, err := signer.Sign("s2")
	require.NoError(t, err)

	h := Chain(sessionTestHandler(t, "s2"), SessionMiddleware(signer))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionMiddlewareMissingToken(t *testing.T) {
	t.Parallel()

	signer := jwtx.NewSigner([]byte("secret"), "campus-api", time.Hour)
	h := Chain(sessionTestHandler(t, ""), SessionMiddleware(signer))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "unauthorized", decodeError(t, rec))
}

func TestSessionMiddlewareExpiredToken(t *testing.T) {
	t.Parallel()

	expired := jwtx.NewSigner([]byte("secret"), "campus-api", -time.Minute)
	token, err := expired.Sign("s1")
	require.NoError(t, err)

	verifying := jwtx.NewSigner([]byte("secret"), "campus-api", time.Hour)
	h := Chain(sessionTestHandler(t, ""), SessionMiddleware(verifying))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "token_expired", decodeError(t, rec))
}

func TestSessionMiddlewareTamperedToken(t *testing.T) {
	t.Parallel()

	other := jwtx.NewSigner([]byte("other-secret"), "campus-api", time.Hour)
	token, err := other.Sign("s1")
	require.NoError(t, err)

	verifying := jwtx.NewSigner([]byte("secret"), "campus-api", time.Hour)
	h := Chain(sessionTestHandler(t, ""), SessionMiddleware(verifying))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "unauthorized", decodeError(t, rec))
}
