package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/unidesk/campus/internal/campus/store"
)

// The closed error taxonomy every service operation resolves to. Handlers
// match on these with errors.Is and are the only layer that turns them into
// status codes; nothing below the handlers formats an HTTP response.
var (
	// ErrUnauthorized covers bad credentials and missing, malformed or
	// signature-invalid tokens.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTokenExpired is a structurally valid token past its expiry. Always
	// reported distinctly from ErrUnauthorized.
	ErrTokenExpired = errors.New("token_expired")

	// ErrNotFound is an absent entity.
	ErrNotFound = errors.New("not_found")

	// ErrInvalidInput is malformed caller-supplied data.
	ErrInvalidInput = errors.New("invalid_input")

	// ErrUnavailable is a timeout or backing-store failure. Store-specific
	// detail is wrapped, never surfaced to clients.
	ErrUnavailable = errors.New("unavailable")
)

// mapStoreErr folds a store error into the taxonomy.
func mapStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}
