// Package storage is a small string-keyed persistence layer with the
// semantics of browser local storage, plus typed JSON helpers on top.
package storage

import (
	"context"
	"path/filepath"

	"codeberg.org/mutker/bodymind/internal/errors"
	"codeberg.org/mutker/bodymind/internal/logger"
)

// Well-known keys.
const (
	KeyMetrics  = "metrics"
	KeyProfiles = "profiles"
)

const (
	defaultDirPerm  = 0o755
	defaultFilePerm = 0o644
)

// Storage holds raw text values under string keys.
type Storage interface {
	// GetItem returns the value and whether the key was present.
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	Close() error
}

// Backend names a Storage implementation.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
	BackendNone   Backend = "none"
)

type Config struct {
	Backend Backend
	// Path is the database or JSON file. Unused by memory and none.
	Path string
	// BackupDir receives SQLite backups taken before a schema rebuild.
	// Defaults to a "backups" directory next to Path.
	BackupDir string
}

func (c Config) Validate() error {
	errFactory := errors.New()

	switch c.Backend {
	case BackendSQLite, BackendFile:
		if c.Path == "" {
			return errFactory.New(ErrInvalidPath)
		}
	case BackendMemory, BackendNone:
	default:
		return errFactory.WithData(ErrInvalidBackend, c.Backend)
	}
	return nil
}

func (c Config) backupDir() string {
	if c.BackupDir != "" {
		return c.BackupDir
	}
	return filepath.Join(filepath.Dir(c.Path), "backups")
}

// Open builds the configured backend.
func Open(cfg Config, log logger.Logger) (Storage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case BackendSQLite:
		return NewSQLite(cfg, log)
	case BackendFile:
		return NewFile(cfg, log)
	case BackendMemory:
		return NewMemory(), nil
	default:
		log.Debug().Msg("Storage disabled, reads miss and writes are dropped")
		return Unavailable(), nil
	}
}
