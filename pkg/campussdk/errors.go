package campussdk

import (
	"fmt"
	"net/http"

	"github.com/unidesk/campus/pkg/httpx"
)

// Error codes shared between the server and SDK clients.
const (
	ErrorCodeUnauthorized   = "unauthorized"
	ErrorCodeTokenExpired   = "token_expired"
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeNotFound       = "not_found"
	ErrorCodeServerError    = "server_error"
	ErrorCodeUnavailable    = "unavailable"
	ErrorCodeRateLimited    = "rate_limited"
)

// APIError is the service's standard error response. It implements the error
// interface and is used both by the server (to write HTTP responses) and by
// the SDK client (to represent failures).
type APIError struct {
	// StatusCode is the HTTP status code for this error.
	StatusCode int `json:"-"`

	// Code is the machine-readable error code.
	Code string `json:"error"`

	// Description is a human-readable description of the error.
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

// WithDescription returns a copy of the error with a more specific
// description, keeping the code and status.
func (e *APIError) WithDescription(desc string) *APIError {
	return &APIError{StatusCode: e.StatusCode, Code: e.Code, Description: desc}
}

var (
	// ErrUnauthorized covers bad login credentials and invalid or missing
	// session tokens.
	ErrUnauthorized = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthorized,
		Description: "invalid credentials or session token",
	}

	// ErrTokenExpired is reported distinctly from ErrUnauthorized so clients
	// can prompt a re-login instead of treating the session as forged.
	ErrTokenExpired = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeTokenExpired,
		Description: "session token has expired",
	}

	// ErrInvalidRequest is malformed or missing caller-supplied data.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrNotFound is an absent entity.
	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "the requested entity does not exist",
	}

	// ErrServerError is an unexpected internal failure.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}

	// ErrUnavailable is a backing-store failure or timeout.
	ErrUnavailable = &APIError{
		StatusCode:  http.StatusServiceUnavailable,
		Code:        ErrorCodeUnavailable,
		Description: "the service is temporarily unavailable",
	}
)
