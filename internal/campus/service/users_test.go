package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unidesk/campus/internal/campus/store/drivers/sqlite"
)

func newUsers(t *testing.T) *Users {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	return &Users{Store: st}
}

func TestSaveUserIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := newUsers(t)

	existed, err := s.SaveUser(ctx, "u1")
	require.NoError(t, err)
	require.False(t, existed)

	p, err := s.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "Student", p.Role)

	existed, err = s.SaveUser(ctx, "u1")
	require.NoError(t, err)
	require.True(t, existed)

	// The second save did not reset anything.
	require.NoError(t, s.UpdateUser(ctx, "u1", map[string]any{"role": "Admin"}))
	existed, err = s.SaveUser(ctx, "u1")
	require.NoError(t, err)
	require.True(t, existed)

	p, err = s.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "Admin", p.Role)
}

func TestSaveUserRequiresUID(t *testing.T) {
	t.Parallel()

	s := newUsers(t)
	_, err := s.SaveUser(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetUserByIDNotFound(t *testing.T) {
	t.Parallel()

	s := newUsers(t)
	_, err := s.GetUserByID(context.Background(), "nobody")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateUserDropsUnknownFields(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := newUsers(t)
	_, err := s.SaveUser(ctx, "u1")
	require.NoError(t, err)

	err = s.UpdateUser(ctx, "u1", map[string]any{
		"role":            "Admin",
		"notAllowedField": "x",
		"uid":             "u2",
	})
	require.NoError(t, err)

	p, err := s.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "Admin", p.Role)
	require.Equal(t, "u1", p.UID)
	require.NotContains(t, p.Attrs, "notAllowedField")
	require.NotContains(t, p.Attrs, "uid")
}

func TestUpdateUserRejectsNonStringRole(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := newUsers(t)
	_, err := s.SaveUser(ctx, "u1")
	require.NoError(t, err)

	for _, bad := range []any{42, true, []string{"Admin"}, map[string]any{"x": 1}} {
		err := s.UpdateUser(ctx, "u1", map[string]any{"role": bad})
		require.ErrorIs(t, err, ErrInvalidInput)
	}

	// The rejected updates left the profile untouched.
	p, err := s.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "Student", p.Role)
}

func TestUpdateUserNotFound(t *testing.T) {
	t.Parallel()

	s := newUsers(t)
	err := s.UpdateUser(context.Background(), "nobody", map[string]any{"role": "Admin"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := newUsers(t)
	_, err := s.SaveUser(ctx, "u1")
	require.NoError(t, err)

	require.NoError(t, s.DeleteUser(ctx, "u1"))
	require.ErrorIs(t, s.DeleteUser(ctx, "u1"), ErrNotFound)
}

func TestVerifyUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := newUsers(t)
	_, err := s.SaveUser(ctx, "u1")
	require.NoError(t, err)

	require.NoError(t, s.VerifyUser(ctx, "u1", "student@example.edu"))

	require.ErrorIs(t, s.VerifyUser(ctx, "nobody", "student@example.edu"), ErrNotFound)

	for _, bad := range []string{"", "not-an-email", "a@", "@example.edu", "a b@example.edu"} {
		require.ErrorIs(t, s.VerifyUser(ctx, "u1", bad), ErrInvalidInput)
	}
}
