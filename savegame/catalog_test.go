package savegame

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := OpenCatalog(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return c
}

func TestCatalogAddList(t *testing.T) {
	ctx := context.Background()
	c := openCatalog(t)

	a, err := c.Add(ctx, "quick", "a.twk", 3)
	require.NoError(t, err)
	b, err := c.Add(ctx, "quick", "b.twk", 5)
	require.NoError(t, err)
	_, err = c.Add(ctx, "chapter1", "c.twk", 9)
	require.NoError(t, err)

	id, err := uuid.Parse(a.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())

	slots, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, "c.twk", slots[0].Path, "newest first")

	latest, err := c.Latest(ctx, "quick")
	require.NoError(t, err)
	assert.Equal(t, b.ID, latest.ID)
	assert.Equal(t, 5, latest.Nodes)
	assert.True(t, latest.Created.Equal(b.Created))

	got, err := c.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Path, got.Path)
	assert.Equal(t, a.Name, got.Name)
	assert.True(t, a.Created.Equal(got.Created))
}

func TestCatalogDelete(t *testing.T) {
	ctx := context.Background()
	c := openCatalog(t)
	s, err := c.Add(ctx, "quick", "a.twk", 1)
	require.NoError(t, err)

	require.NoError(t, c.Delete(ctx, s.ID))
	assert.ErrorIs(t, c.Delete(ctx, s.ID), ErrNoSlot)

	_, err = c.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNoSlot)
	_, err = c.Latest(ctx, "quick")
	assert.ErrorIs(t, err, ErrNoSlot)
}
