package sessionstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ventuslabs/siteflow/workflow"
)

func TestMemoryStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	state := workflow.NewState("sess-1", "site_selection", 7)
	state.MarkCompleted("site_selection")
	require.NoError(t, store.Save(ctx, state))

	loaded, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, state, loaded)
}

func TestMemoryStore_LoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	state := workflow.NewState("sess-1", "site_selection", 7)
	require.NoError(t, store.Save(ctx, state))

	// Mutations of the original after Save must not be visible.
	state.MarkCompleted("site_selection")

	loaded, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, loaded.CompletedSteps)

	// Mutations of a loaded copy must not be visible either.
	loaded.MarkCompleted("terrain_analysis")
	again, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, again.CompletedSteps)
}

func TestMemoryStore_NotFound(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Load(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_InvalidID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Load(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidID)
	assert.ErrorIs(t, store.Save(ctx, nil), ErrInvalidID)
	assert.ErrorIs(t, store.Save(ctx, &workflow.State{}), ErrInvalidID)
	assert.ErrorIs(t, store.Delete(ctx, ""), ErrInvalidID)
}

func TestMemoryStore_DeleteAndList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Save(ctx, workflow.NewState("b", "x", 1)))
	require.NoError(t, store.Save(ctx, workflow.NewState("a", "x", 1)))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	require.NoError(t, store.Delete(ctx, "a"))
	require.NoError(t, store.Delete(ctx, "a"), "deleting twice is not an error")

	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids)
}
