package httpx

import "context"

type ctxKey string

const (
	// CtxKeySubject carries the authenticated subject identity (uid).
	CtxKeySubject ctxKey = "subject"
)

// SubjectFromContext returns the authenticated subject identity, or "" when
// the request has not passed the session middleware.
func SubjectFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeySubject).(string); ok {
		return v
	}
	return ""
}
