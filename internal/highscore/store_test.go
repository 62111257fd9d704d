package highscore

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAll(t *testing.T) map[string]Store {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	file, err := NewFileStore(filepath.Join(dir, "scores"), 0, zerolog.Nop())
	require.NoError(t, err)
	db, err := OpenSQLite(ctx, filepath.Join(dir, "scores.db"), zerolog.Nop())
	require.NoError(t, err)

	stores := map[string]Store{
		BackendMemory: NewMemoryStore(),
		BackendFile:   file,
		BackendSQLite: db,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func TestStoreKeepsMaximum(t *testing.T) {
	ctx := context.Background()
	for name, store := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			player := uuid.NewString()

			got, err := store.Load(ctx, player)
			require.NoError(t, err)
			assert.Equal(t, 0, got)

			best, err := store.Save(ctx, player, 5)
			require.NoError(t, err)
			assert.Equal(t, 5, best)

			best, err = store.Save(ctx, player, 3)
			require.NoError(t, err)
			assert.Equal(t, 5, best)

			best, err = store.Save(ctx, player, 9)
			require.NoError(t, err)
			assert.Equal(t, 9, best)

			got, err = store.Load(ctx, player)
			require.NoError(t, err)
			assert.Equal(t, 9, got)
		})
	}
}

func TestStoreSavesZero(t *testing.T) {
	ctx := context.Background()
	for name, store := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			best, err := store.Save(ctx, uuid.NewString(), 0)
			require.NoError(t, err)
			assert.Equal(t, 0, best)
		})
	}
}

func TestStoreRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	for name, store := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Save(ctx, uuid.NewString(), -1)
			assert.ErrorIs(t, err, ErrNegativeScore)

			_, err = store.Save(ctx, "not-a-uuid", 1)
			assert.ErrorIs(t, err, ErrInvalidPlayer)

			_, err = store.Load(ctx, "../../etc/passwd")
			assert.ErrorIs(t, err, ErrInvalidPlayer)
		})
	}
}

func TestStoreIsolatesPlayers(t *testing.T) {
	ctx := context.Background()
	for name, store := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			a, b := uuid.NewString(), uuid.NewString()
			_, err := store.Save(ctx, a, 7)
			require.NoError(t, err)

			got, err := store.Load(ctx, b)
			require.NoError(t, err)
			assert.Equal(t, 0, got)
		})
	}
}

func TestStoreConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	for name, store := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			player := uuid.NewString()
			var wg sync.WaitGroup
			for i := 1; i <= 20; i++ {
				wg.Add(1)
				go func(score int) {
					defer wg.Done()
					_, err := store.Save(ctx, player, score)
					assert.NoError(t, err)
				}(i)
			}
			wg.Wait()

			got, err := store.Load(ctx, player)
			require.NoError(t, err)
			assert.Equal(t, 20, got)
		})
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, opts := range []Options{
		{Backend: ""},
		{Backend: BackendMemory},
		{Backend: BackendFile, Dir: filepath.Join(dir, "files")},
		{Backend: BackendSQLite, DSN: filepath.Join(dir, "db", "hs.db")},
	} {
		store, err := Open(ctx, opts, zerolog.Nop())
		require.NoError(t, err, opts.Backend)
		require.NoError(t, store.Close())
	}

	_, err := Open(ctx, Options{Backend: "redis"}, zerolog.Nop())
	assert.Error(t, err)
}
