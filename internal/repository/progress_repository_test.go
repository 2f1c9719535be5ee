package repository

import (
	"testing"
	"time"

	"vibewiki_backend/internal/model"
	"vibewiki_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProgressRepo(t *testing.T) *ProgressRepository {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return NewProgressRepository(store, "vibewiki-progress")
}

func TestFileStoreRoundtrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("k", []byte(`{"a":1}`)))
	data, err := store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), data)

	require.NoError(t, store.Delete("k"))
	_, err = store.Get("k")
	assert.ErrorIs(t, err, util.ErrBlobNotFound)

	// Deleting a missing key is a no-op.
	assert.NoError(t, store.Delete("k"))
}

func TestProgressLoadMissingKeyReturnsZeroValue(t *testing.T) {
	repo := newTestProgressRepo(t)

	progress, err := repo.Load()
	require.NoError(t, err)
	assert.Zero(t, progress.TotalPoints)
	assert.Empty(t, progress.CompletedArticles)
}

func TestProgressSaveLoadRoundtrip(t *testing.T) {
	repo := newTestProgressRepo(t)

	saved := model.UserProgress{
		CompletedArticles:  []string{"intro", "agents"},
		CompletedTutorials: []string{"t1"},
		TutorialProgress:   map[string][]string{"t2": {"s1"}},
		TotalPoints:        350,
		Streak:             4,
		LastActivity:       time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Save(saved))

	loaded, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, saved.CompletedArticles, loaded.CompletedArticles)
	assert.Equal(t, saved.TutorialProgress, loaded.TutorialProgress)
	assert.Equal(t, saved.TotalPoints, loaded.TotalPoints)
	assert.Equal(t, saved.Streak, loaded.Streak)
	assert.True(t, saved.LastActivity.Equal(loaded.LastActivity))
}

func TestProgressReset(t *testing.T) {
	repo := newTestProgressRepo(t)

	require.NoError(t, repo.Save(model.UserProgress{TotalPoints: 100}))
	require.NoError(t, repo.Reset())

	progress, err := repo.Load()
	require.NoError(t, err)
	assert.Zero(t, progress.TotalPoints)
}

func TestProgressLoadCorruptDataFails(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	repo := NewProgressRepository(store, "vibewiki-progress")

	require.NoError(t, store.Set(repo.Key, []byte("{corrupt")))
	_, err = repo.Load()
	assert.Error(t, err)
}
