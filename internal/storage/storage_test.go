package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"codeberg.org/mutker/bodymind/internal/errors"
	"codeberg.org/mutker/bodymind/internal/logger"
	"codeberg.org/mutker/bodymind/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openBackend(t *testing.T, backend storage.Backend) storage.Storage {
	t.Helper()
	dir := t.TempDir()

	cfg := storage.Config{Backend: backend}
	switch backend {
	case storage.BackendSQLite:
		cfg.Path = filepath.Join(dir, "bodymind.db")
	case storage.BackendFile:
		cfg.Path = filepath.Join(dir, "bodymind.json")
	}

	s, err := storage.Open(cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBackendsBehaveLikeLocalStorage(t *testing.T) {
	ctx := context.Background()

	for _, backend := range []storage.Backend{storage.BackendMemory, storage.BackendFile, storage.BackendSQLite} {
		t.Run(string(backend), func(t *testing.T) {
			s := openBackend(t, backend)

			_, ok, err := s.GetItem(ctx, storage.KeyMetrics)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.SetItem(ctx, storage.KeyMetrics, `{"a":1}`))
			v, ok, err := s.GetItem(ctx, storage.KeyMetrics)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `{"a":1}`, v)

			require.NoError(t, s.SetItem(ctx, storage.KeyMetrics, `{"a":2}`))
			v, _, err = s.GetItem(ctx, storage.KeyMetrics)
			require.NoError(t, err)
			assert.Equal(t, `{"a":2}`, v)

			require.NoError(t, s.SetItem(ctx, storage.KeyProfiles, `[]`))
			require.NoError(t, s.RemoveItem(ctx, storage.KeyMetrics))
			_, ok, err = s.GetItem(ctx, storage.KeyMetrics)
			require.NoError(t, err)
			assert.False(t, ok)

			v, ok, err = s.GetItem(ctx, storage.KeyProfiles)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `[]`, v)

			require.NoError(t, s.RemoveItem(ctx, "never-set"))
		})
	}
}

func TestUnavailableDropsWrites(t *testing.T) {
	ctx := context.Background()
	s := openBackend(t, storage.BackendNone)

	require.NoError(t, s.SetItem(ctx, storage.KeyMetrics, "{}"))
	_, ok, err := s.GetItem(ctx, storage.KeyMetrics)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConfigValidate(t *testing.T) {
	err := storage.Config{Backend: storage.BackendSQLite}.Validate()
	assert.True(t, errors.HasCode(err, storage.ErrInvalidPath))

	err = storage.Config{Backend: storage.BackendFile}.Validate()
	assert.True(t, errors.HasCode(err, storage.ErrInvalidPath))

	err = storage.Config{Backend: "redis"}.Validate()
	assert.True(t, errors.HasCode(err, storage.ErrInvalidBackend))

	assert.NoError(t, storage.Config{Backend: storage.BackendMemory}.Validate())
	assert.NoError(t, storage.Config{Backend: storage.BackendNone}.Validate())

	_, err = storage.Open(storage.Config{Backend: "redis"}, logger.Nop())
	assert.Error(t, err)
}

func TestPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()

	for _, backend := range []storage.Backend{storage.BackendFile, storage.BackendSQLite} {
		t.Run(string(backend), func(t *testing.T) {
			cfg := storage.Config{Backend: backend, Path: filepath.Join(t.TempDir(), "data", "store")}

			s, err := storage.Open(cfg, logger.Nop())
			require.NoError(t, err)
			require.NoError(t, s.SetItem(ctx, storage.KeyMetrics, `{"sri":{}}`))
			require.NoError(t, s.Close())

			s, err = storage.Open(cfg, logger.Nop())
			require.NoError(t, err)
			defer s.Close()

			v, ok, err := s.GetItem(ctx, storage.KeyMetrics)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `{"sri":{}}`, v)
		})
	}
}

func TestClosedStorageRejectsAccess(t *testing.T) {
	ctx := context.Background()

	for _, backend := range []storage.Backend{storage.BackendFile, storage.BackendSQLite} {
		t.Run(string(backend), func(t *testing.T) {
			s := openBackend(t, backend)
			require.NoError(t, s.Close())
			require.NoError(t, s.Close(), "second close is a no-op")

			_, _, err := s.GetItem(ctx, storage.KeyMetrics)
			assert.True(t, errors.HasCode(err, storage.ErrClosed))
			err = s.SetItem(ctx, storage.KeyMetrics, "{}")
			assert.True(t, errors.HasCode(err, storage.ErrClosed))
			err = s.RemoveItem(ctx, storage.KeyMetrics)
			assert.True(t, errors.HasCode(err, storage.ErrClosed))
		})
	}
}
