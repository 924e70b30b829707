package httpx

import (
	"context"
	"net/http"
	"time"
)

// TimeoutMiddleware bounds every request with a deadline. Downstream store
// calls inherit the deadline through the request context; on expiry they fail
// and the service reports the backend as unavailable rather than hanging.
func TimeoutMiddleware(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if d <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
