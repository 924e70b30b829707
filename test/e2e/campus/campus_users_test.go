package campus_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unidesk/campus/pkg/campussdk"
)

func TestUserProfileFlow(t *testing.T) {
	baseURL, cleanup := setupCampusContainer(t, nil)
	defer cleanup()

	client := loginClient(t, baseURL, "staff-042")
	ctx := t.Context()

	t.Run("save then save again", func(t *testing.T) {
		res, err := client.SaveUser(ctx, "u-100")
		require.NoError(t, err)
		require.False(t, res.Existed)

		res, err = client.SaveUser(ctx, "u-100")
		require.NoError(t, err)
		require.True(t, res.Existed)
	})

	t.Run("new profiles default to Student", func(t *testing.T) {
		profile, err := client.GetUser(ctx, "u-100")
		require.NoError(t, err)
		require.Equal(t, "u-100", profile.UID)
		require.Equal(t, "Student", profile.Role)
	})

	t.Run("update keeps only known fields", func(t *testing.T) {
		err := client.UpdateUser(ctx, "u-100", map[string]any{
			"role":     "Lecturer",
			"semester": 4,
			"isAdmin":  true,
		})
		require.NoError(t, err)

		profile, err := client.GetUser(ctx, "u-100")
		require.NoError(t, err)
		require.Equal(t, "Lecturer", profile.Role)
		require.EqualValues(t, 4, profile.Attrs["semester"])
		require.NotContains(t, profile.Attrs, "isAdmin")
	})

	t.Run("update unknown user", func(t *testing.T) {
		err := client.UpdateUser(ctx, "ghost", map[string]any{"role": "Lecturer"})
		requireAPIError(t, err, campussdk.ErrorCodeNotFound)
	})

	t.Run("verify validates the address", func(t *testing.T) {
		err := client.VerifyUser(ctx, "u-100", "not an email")
		requireAPIError(t, err, campussdk.ErrorCodeInvalidRequest)

		err = client.VerifyUser(ctx, "u-100", "u100@example.edu")
		require.NoError(t, err)
	})

	t.Run("delete removes the profile", func(t *testing.T) {
		require.NoError(t, client.DeleteUser(ctx, "u-100"))

		_, err := client.GetUser(ctx, "u-100")
		requireAPIError(t, err, campussdk.ErrorCodeNotFound)

		err = client.DeleteUser(ctx, "u-100")
		requireAPIError(t, err, campussdk.ErrorCodeNotFound)
	})
}
