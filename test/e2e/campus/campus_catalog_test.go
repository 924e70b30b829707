package campus_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unidesk/campus/pkg/campussdk"
)

func TestCatalogFlow(t *testing.T) {
	baseURL, cleanup := setupCampusContainer(t, nil)
	defer cleanup()

	client := loginClient(t, baseURL, "staff-042")
	ctx := t.Context()

	seed := []struct {
		id     string
		fields map[string]any
	}{
		{"cs101", map[string]any{"name": "Intro to CS", "programId": 1, "semester": 1}},
		{"cs201", map[string]any{"name": "Algorithms", "programId": 1, "semester": 2}},
		{"ma101", map[string]any{"name": "Calculus", "programId": 2, "semester": 1}},
	}
	for _, s := range seed {
		require.NoError(t, client.PutItem(ctx, "fst", "courses", s.id, s.fields))
	}

	t.Run("list collection", func(t *testing.T) {
		items, err := client.ListCollection(ctx, "fst", "courses")
		require.NoError(t, err)
		require.Len(t, items, 3)
	})

	t.Run("collections are faculty scoped", func(t *testing.T) {
		items, err := client.ListCollection(ctx, "fhum", "courses")
		require.NoError(t, err)
		require.Empty(t, items)
	})

	t.Run("filter by numeric field", func(t *testing.T) {
		items, err := client.ListCollectionByField(ctx, "fst", "courses", "semester", 1)
		require.NoError(t, err)
		require.Len(t, items, 2)
	})

	t.Run("unknown filter field is ignored", func(t *testing.T) {
		items, err := client.ListCollectionByField(ctx, "fst", "courses", "teacherId", 1)
		require.NoError(t, err)
		require.Len(t, items, 3)
	})

	t.Run("get item", func(t *testing.T) {
		item, err := client.GetItem(ctx, "fst", "courses", "cs201")
		require.NoError(t, err)
		require.Equal(t, "cs201", item["id"])
		require.Equal(t, "Algorithms", item["name"])
	})

	t.Run("get unknown item", func(t *testing.T) {
		_, err := client.GetItem(ctx, "fst", "courses", "missing")
		requireAPIError(t, err, campussdk.ErrorCodeNotFound)
	})

	t.Run("unknown collection", func(t *testing.T) {
		_, err := client.ListCollection(ctx, "fst", "rooms")
		requireAPIError(t, err, campussdk.ErrorCodeInvalidRequest)
	})

	t.Run("put replaces an item", func(t *testing.T) {
		require.NoError(t, client.PutItem(ctx, "fst", "courses", "cs101",
			map[string]any{"name": "Introduction to Computer Science", "programId": 1, "semester": 1}))

		item, err := client.GetItem(ctx, "fst", "courses", "cs101")
		require.NoError(t, err)
		require.Equal(t, "Introduction to Computer Science", item["name"])
	})
}
