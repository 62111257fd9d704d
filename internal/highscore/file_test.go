package highscore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	player := uuid.NewString()

	first, err := NewFileStore(dir, 0, zerolog.Nop())
	require.NoError(t, err)
	_, err = first.Save(ctx, player, 12)
	require.NoError(t, err)

	second, err := NewFileStore(dir, 0, zerolog.Nop())
	require.NoError(t, err)
	got, err := second.Load(ctx, player)
	require.NoError(t, err)
	assert.Equal(t, 12, got)
}

func TestFileStoreExpiredRecord(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	player := uuid.NewString()

	store, err := NewFileStore(dir, time.Hour, zerolog.Nop())
	require.NoError(t, err)
	_, err = store.Save(ctx, player, 4)
	require.NoError(t, err)

	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(store.path(player), old, old))

	got, err := store.Load(ctx, player)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
	assert.NoFileExists(t, store.path(player))
}

func TestFileStoreCorruptedRecord(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	player := uuid.NewString()

	store, err := NewFileStore(dir, 0, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.path(player), []byte("{not json"), 0o644))

	got, err := store.Load(ctx, player)
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	best, err := store.Save(ctx, player, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, best)
}

func TestFileStoreCleanup(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewFileStore(dir, 0, zerolog.Nop())
	require.NoError(t, err)

	stale, fresh := uuid.NewString(), uuid.NewString()
	for _, p := range []string{stale, fresh} {
		_, err := store.Save(ctx, p, 1)
		require.NoError(t, err)
	}
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(store.path(stale), old, old))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep"), 0o644))

	removed, err := store.Cleanup(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.NoFileExists(t, store.path(stale))
	assert.FileExists(t, store.path(fresh))
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}
