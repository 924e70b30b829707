package campussdk

// ErrorResponse is the JSON shape of every error the service returns.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// LoginRequest is the body of POST /v1/login. Credentials travel in the
// Authorization header, not the body.
type LoginRequest struct {
	UID string `json:"uid"`
}

// LoginResponse is returned on a successful login; the session token itself
// is delivered as a cookie.
type LoginResponse struct {
	Message string `json:"message"`
}

// SaveUserResult reports whether the profile already existed before the save.
type SaveUserResult struct {
	Existed bool `json:"existed"`
}

// UserProfile mirrors the stored profile record.
type UserProfile struct {
	UID   string         `json:"uid"`
	Role  string         `json:"role"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// Faculty is a top-level organizational unit.
type Faculty struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Item is a catalog document; the id is flattened in alongside the
// collection-specific fields.
type Item map[string]any

// VerifyUserRequest is the body of POST /v1/users/{uid}/verify.
type VerifyUserRequest struct {
	Email string `json:"email"`
}

// HealthChecks reports the status of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is returned by the livez and readyz endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
