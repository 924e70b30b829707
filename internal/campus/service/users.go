package service

import (
	"context"
	"fmt"
	"regexp"

	"github.com/unidesk/campus/internal/campus/domain"
	"github.com/unidesk/campus/internal/campus/store"
)

// emailPattern is the WHATWG HTML5 email input pattern. Verification only
// gates on well-formedness; deliverability is someone else's problem.
var emailPattern = regexp.MustCompile(
	`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`,
)

// Users owns the user-profile lifecycle. No other component mutates profiles.
type Users struct {
	Store store.Store
}

// SaveUser idempotently creates a profile for uid with the default role.
// Returns true when the profile already existed (in which case nothing was
// written). The answer is linearizable because creation rides on the store's
// conditional-create primitive rather than a check-then-write sequence.
func (s *Users) SaveUser(ctx context.Context, uid string) (existedAlready bool, err error) {
	if uid == "" {
		return false, fmt.Errorf("%w: missing uid", ErrInvalidInput)
	}

	created, err := s.Store.Users().CreateProfile(ctx, uid)
	if err != nil {
		return false, mapStoreErr(err)
	}
	return !created, nil
}

// GetUserByID returns the profile for uid; ErrNotFound when absent.
func (s *Users) GetUserByID(ctx context.Context, uid string) (domain.UserProfile, error) {
	if uid == "" {
		return domain.UserProfile{}, fmt.Errorf("%w: missing uid", ErrInvalidInput)
	}

	p, err := s.Store.Users().GetProfile(ctx, uid)
	if err != nil {
		return domain.UserProfile{}, mapStoreErr(err)
	}
	return p, nil
}

// UpdateUser partially merges updates into the profile. Keys outside the
// allow-list are silently dropped, not an error; the uid itself can never
// change. A role value must be a string; anything else is ErrInvalidInput.
// ErrNotFound when the profile does not exist.
func (s *Users) UpdateUser(ctx context.Context, uid string, updates map[string]any) error {
	if uid == "" {
		return fmt.Errorf("%w: missing uid", ErrInvalidInput)
	}

	filtered := domain.FilterProfileUpdates(updates)
	if role, ok := filtered["role"]; ok {
		if _, isString := role.(string); !isString {
			return fmt.Errorf("%w: role must be a string", ErrInvalidInput)
		}
	}
	if err := s.Store.Users().UpdateProfile(ctx, uid, filtered); err != nil {
		return mapStoreErr(err)
	}
	return nil
}

// DeleteUser permanently removes the profile. No soft-delete, no tombstone.
func (s *Users) DeleteUser(ctx context.Context, uid string) error {
	if uid == "" {
		return fmt.Errorf("%w: missing uid", ErrInvalidInput)
	}

	if err := s.Store.Users().DeleteProfile(ctx, uid); err != nil {
		return mapStoreErr(err)
	}
	return nil
}

// VerifyUser gates an email-verification request: the profile must exist and
// the address must be well-formed. Actually sending a verification message is
// an external collaborator.
func (s *Users) VerifyUser(ctx context.Context, uid, email string) error {
	if uid == "" {
		return fmt.Errorf("%w: missing uid", ErrInvalidInput)
	}

	if _, err := s.Store.Users().GetProfile(ctx, uid); err != nil {
		return mapStoreErr(err)
	}

	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: malformed email address", ErrInvalidInput)
	}
	return nil
}
