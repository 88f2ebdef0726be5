package roadmap_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnanasetu/platform/core/roadmap"
	inmemdb "github.com/jnanasetu/platform/storage/database/inmem"
)

func newSvc() *roadmap.Service {
	return roadmap.NewService(inmemdb.NewRoadmapRepository(inmemdb.Open()))
}

func TestService_Create(t *testing.T) {
	svc := newSvc()
	ctx := context.Background()

	r, err := svc.Create(ctx, "owner-1", roadmap.NewRoadmap{Title: "Learn Go", Content: "step 1"})
	require.NoError(t, err)

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "owner-1", r.UserID)
	assert.Equal(t, "Learn Go", r.Title)
	assert.Equal(t, "step 1", r.Content)
	assert.False(t, r.CreatedAt.IsZero())
	assert.Equal(t, r.CreatedAt, r.UpdatedAt)
}

func TestService_Update(t *testing.T) {
	svc := newSvc()
	ctx := context.Background()

	r, err := svc.Create(ctx, "owner-1", roadmap.NewRoadmap{Title: "Draft", Content: "wip"})
	require.NoError(t, err)

	time.Sleep(time.Millisecond)
	updated, err := svc.Update(ctx, "owner-1", r.ID, roadmap.UpdateRoadmap{Title: "Final", Content: "done"})
	require.NoError(t, err)

	assert.Equal(t, r.ID, updated.ID)
	assert.Equal(t, "Final", updated.Title)
	assert.Equal(t, "done", updated.Content)
	assert.True(t, updated.UpdatedAt.After(r.UpdatedAt))
	// creation time survives the update
	assert.Equal(t, r.CreatedAt, updated.CreatedAt)

	t.Run("wrong owner", func(t *testing.T) {
		_, err := svc.Update(ctx, "owner-2", r.ID, roadmap.UpdateRoadmap{Title: "Hijack", Content: "x"})
		assert.Equal(t, roadmap.ErrNotFound, err)

		// the record is untouched
		got, err := svc.Get(ctx, "owner-1", r.ID)
		require.NoError(t, err)
		assert.Equal(t, "Final", got.Title)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Update(ctx, "owner-1", "unknown", roadmap.UpdateRoadmap{Title: "x", Content: "y"})
		assert.Equal(t, roadmap.ErrNotFound, err)
	})
}

func TestService_QueryNewestFirst(t *testing.T) {
	svc := newSvc()
	ctx := context.Background()

	first, err := svc.Create(ctx, "owner-1", roadmap.NewRoadmap{Title: "First", Content: "a"})
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	second, err := svc.Create(ctx, "owner-1", roadmap.NewRoadmap{Title: "Second", Content: "b"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "owner-2", roadmap.NewRoadmap{Title: "Other", Content: "z"})
	require.NoError(t, err)

	res, err := svc.Query(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, second.ID, res[0].ID)
	assert.Equal(t, first.ID, res[1].ID)
}
