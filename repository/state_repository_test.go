package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"finlear/domain"
)

func TestCacheStateStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewCacheStateStore(NewMemoryCache())

	_, ok, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	require.False(t, ok)

	state := domain.LearningState{
		Modules: []domain.Module{{ID: "budgeting-basics"}},
		Answers: map[string]string{"goal": "Build a budget"},
		Progress: domain.UserProgress{
			CompletedChapters: []string{"what-is-a-budget"},
			ModuleProgress:    map[string]int{"budgeting-basics": 50},
			GlobalProgress:    14,
			Level:             "Beginner",
		},
	}
	require.NoError(t, store.Save(ctx, "u1", state))

	got, ok, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, LearningStateVersion, got.Version)
	require.Equal(t, state.Progress, got.Progress)
	require.Equal(t, "budgeting-basics", got.Modules[0].ID)

	_, ok, err = store.Load(ctx, "u2")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Delete(ctx, "u1"))
	_, ok, err = store.Load(ctx, "u1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCacheStateStoreMigratesUnversioned(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	require.NoError(t, cache.Set(ctx, stateKey("u1"), `{"modules":[{"id":"budgeting-basics"}]}`, 0))

	got, ok, err := NewCacheStateStore(cache).Load(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, got.Version)
	require.NotNil(t, got.Answers)
	require.NotNil(t, got.Progress.ModuleProgress)
	require.Equal(t, []string{}, got.Progress.CompletedChapters)
	require.Equal(t, "Not Started", got.Progress.Level)
}

func TestCacheStateStoreRejectsNewerVersion(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	require.NoError(t, cache.Set(ctx, stateKey("u1"), `{"version":99}`, 0))

	_, _, err := NewCacheStateStore(cache).Load(ctx, "u1")
	require.Error(t, err)
}

func TestCacheStateStoreCorruptDocument(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	require.NoError(t, cache.Set(ctx, stateKey("u1"), `{not json`, 0))

	_, _, err := NewCacheStateStore(cache).Load(ctx, "u1")
	require.Error(t, err)
}
