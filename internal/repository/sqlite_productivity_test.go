package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/renovo/internal/domain"
	"github.com/alexanderramin/renovo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductivityRepo_UpsertAndGet(t *testing.T) {
	repo := NewSQLiteProductivityRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	m := domain.ProductivityMultiplier{
		City: "Paris", Task: "tiling_floor", Multiplier: 1.06, Samples: 1, LastRatio: 1.2, UpdatedAt: testutil.FixedNow,
	}
	require.NoError(t, repo.Upsert(ctx, m))

	got, err := repo.Get(ctx, domain.NewProductivityKey(" PARIS", "tiling_floor"))
	require.NoError(t, err)
	assert.Equal(t, "paris", got.City, "city is stored normalized")
	assert.InDelta(t, 1.06, got.Multiplier, 1e-9)
	assert.InDelta(t, 1.2, got.LastRatio, 1e-9)
	assert.True(t, testutil.FixedNow.Equal(got.UpdatedAt))

	m.Multiplier, m.Samples = 1.10, 2
	require.NoError(t, repo.Upsert(ctx, m))
	got, err = repo.Get(ctx, m.Key())
	require.NoError(t, err)
	assert.InDelta(t, 1.10, got.Multiplier, 1e-9)
	assert.Equal(t, 2, got.Samples)
}

func TestProductivityRepo_GetNotFound(t *testing.T) {
	repo := NewSQLiteProductivityRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background(), domain.NewProductivityKey("lyon", "toilet_replace"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductivityRepo_RejectsOutOfBounds(t *testing.T) {
	repo := NewSQLiteProductivityRepo(testutil.NewTestDB(t))

	err := repo.Upsert(context.Background(), domain.ProductivityMultiplier{
		City: "lyon", Task: "toilet_replace", Multiplier: 1.5, UpdatedAt: testutil.FixedNow,
	})
	assert.Error(t, err)
}

func TestProductivityRepo_ListOrdered(t *testing.T) {
	repo := NewSQLiteProductivityRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	for _, m := range []domain.ProductivityMultiplier{
		{City: "paris", Task: "toilet_replace", Multiplier: 1, UpdatedAt: testutil.FixedNow},
		{City: "lyon", Task: "tiling_floor", Multiplier: 0.9, UpdatedAt: testutil.FixedNow},
		{City: "paris", Task: "painting_walls", Multiplier: 1.1, UpdatedAt: testutil.FixedNow},
	} {
		require.NoError(t, repo.Upsert(ctx, m))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "lyon", list[0].City)
	assert.Equal(t, domain.TaskID("painting_walls"), list[1].Task)
	assert.Equal(t, domain.TaskID("toilet_replace"), list[2].Task)

	require.NoError(t, repo.DeleteAll(ctx))
	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
