package domain

import "time"

// DefaultRole is assigned to every profile on first creation.
const DefaultRole = "Student"

// UserProfile is keyed by an externally supplied identity. The uid is
// immutable once created; everything else changes only through allow-listed
// updates.
type UserProfile struct {
	UID       string         `json:"uid"`
	Role      string         `json:"role"`
	Attrs     map[string]any `json:"attrs,omitempty"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
}

// updatableFields is the closed set of profile fields a caller may set via
// update. Keys outside this set are silently dropped, not rejected.
var updatableFields = map[string]struct{}{
	"role":      {},
	"name":      {},
	"email":     {},
	"facultyId": {},
	"programId": {},
	"branchId":  {},
	"semester":  {},
}

// FilterProfileUpdates returns only the allow-listed entries of updates.
// The result is a fresh map; the input is never mutated.
func FilterProfileUpdates(updates map[string]any) map[string]any {
	filtered := make(map[string]any, len(updates))
	for k, v := range updates {
		if _, ok := updatableFields[k]; ok {
			filtered[k] = v
		}
	}
	return filtered
}
