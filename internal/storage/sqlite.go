package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"codeberg.org/mutker/bodymind/internal/errors"
	"codeberg.org/mutker/bodymind/internal/logger"
	_ "github.com/mattn/go-sqlite3"
)

type sqliteStorage struct {
	db     *sql.DB
	logger logger.Logger
	path   string
	mu     sync.Mutex
	closed bool
}

// NewSQLite opens (creating if needed) the kv database at cfg.Path.
func NewSQLite(cfg Config, log logger.Logger) (Storage, error) {
	errFactory := errors.New()

	if cfg.Path == "" {
		return nil, errFactory.New(ErrInvalidPath)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), defaultDirPerm); err != nil {
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Path  string
			Error string
		}{
			Phase: "create_directory",
			Path:  cfg.Path,
			Error: err.Error(),
		})
	}

	dsn := cfg.Path + "?_journal=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Error string
		}{
			Phase: "open_database",
			Error: err.Error(),
		})
	}

	if err := ValidateAndUpdateSchema(db, cfg.backupDir(), log); err != nil {
		db.Close()
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Error string
		}{
			Phase: "schema_version",
			Error: err.Error(),
		})
	}

	log.Info().
		Str("path", cfg.Path).
		Int("schema_version", SchemaVersion).
		Msg("Storage opened")

	return newSQLiteStorage(db, cfg.Path, log), nil
}

func newSQLiteStorage(db *sql.DB, path string, log logger.Logger) *sqliteStorage {
	return &sqliteStorage{
		db:     db,
		logger: log,
		path:   path,
	}
}

func (s *sqliteStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", false, errors.New().New(ErrClosed)
	}

	var value string
	err := s.db.QueryRowContext(ctx, selectItemSQL, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.New().WithData(ErrRead, struct {
			Key   string
			Error string
		}{
			Key:   key,
			Error: err.Error(),
		})
	}
	return value, true, nil
}

func (s *sqliteStorage) SetItem(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.New().New(ErrClosed)
	}

	updatedAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.db.ExecContext(ctx, upsertItemSQL, key, value, updatedAt); err != nil {
		s.logger.Debug().Err(err).Str("key", key).Msg("Failed to write item")
		return errors.New().WithData(ErrWrite, struct {
			Key   string
			Error string
		}{
			Key:   key,
			Error: err.Error(),
		})
	}
	return nil
}

func (s *sqliteStorage) RemoveItem(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.New().New(ErrClosed)
	}

	if _, err := s.db.ExecContext(ctx, deleteItemSQL, key); err != nil {
		return errors.New().WithData(ErrWrite, struct {
			Key   string
			Error string
		}{
			Key:   key,
			Error: err.Error(),
		})
	}
	return nil
}

func (s *sqliteStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	// Checkpoint WAL and cleanup on close
	if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		s.db.Close()
		return errors.New().WithData(ErrStorageClose, struct {
			Phase string
			Error string
		}{
			Phase: "checkpoint_wal",
			Error: err.Error(),
		})
	}

	if err := s.db.Close(); err != nil {
		return errors.New().WithData(ErrStorageClose, struct {
			Phase string
			Error string
		}{
			Phase: "close_database",
			Error: err.Error(),
		})
	}

	s.logger.Info().Str("path", s.path).Msg("Storage closed")

	return nil
}
