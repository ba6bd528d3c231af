package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"codeberg.org/mutker/bodymind/internal/errors"
	"codeberg.org/mutker/bodymind/internal/logger"
)

// fileStorage keeps every item in one JSON object on disk, rewritten
// atomically on each change.
type fileStorage struct {
	path   string
	logger logger.Logger
	mu     sync.Mutex
	items  map[string]string
}

// NewFile opens the JSON item file at cfg.Path. A missing file starts
// empty; an unreadable one is moved aside and also starts empty.
func NewFile(cfg Config, log logger.Logger) (Storage, error) {
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

	s := &fileStorage{
		path:   cfg.Path,
		logger: log,
		items:  map[string]string{},
	}

	raw, err := os.ReadFile(cfg.Path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Path  string
			Error string
		}{
			Phase: "read_file",
			Path:  cfg.Path,
			Error: err.Error(),
		})
	}

	if len(raw) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s.items); err != nil || s.items == nil {
		aside := cfg.Path + ".corrupt-" + time.Now().UTC().Format("20060102T150405Z")
		log.Warn().
			Err(err).
			Str("path", cfg.Path).
			Str("moved_to", aside).
			Msg("Storage file is malformed, starting empty")
		if renameErr := os.Rename(cfg.Path, aside); renameErr != nil {
			log.Debug().Err(renameErr).Msg("Failed to move malformed storage file")
		}
		s.items = map[string]string{}
	}

	return s, nil
}

func (s *fileStorage) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.items == nil {
		return "", false, errors.New().New(ErrClosed)
	}
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *fileStorage) SetItem(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.items == nil {
		return errors.New().New(ErrClosed)
	}

	prev, had := s.items[key]
	s.items[key] = value
	if err := s.flush(); err != nil {
		if had {
			s.items[key] = prev
		} else {
			delete(s.items, key)
		}
		return err
	}
	return nil
}

func (s *fileStorage) RemoveItem(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.items == nil {
		return errors.New().New(ErrClosed)
	}

	prev, had := s.items[key]
	if !had {
		return nil
	}
	delete(s.items, key)
	if err := s.flush(); err != nil {
		s.items[key] = prev
		return err
	}
	return nil
}

func (s *fileStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	return nil
}

func (s *fileStorage) flush() error {
	errFactory := errors.New()

	tmp := s.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, defaultFilePerm)
	if err != nil {
		return errFactory.WithData(ErrWrite, struct {
			Phase string
			Error string
		}{
			Phase: "create_temp",
			Error: err.Error(),
		})
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.items); err != nil {
		f.Close()
		os.Remove(tmp)
		return errFactory.WithData(ErrWrite, struct {
			Phase string
			Error string
		}{
			Phase: "encode",
			Error: err.Error(),
		})
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errFactory.WithData(ErrWrite, struct {
			Phase string
			Error string
		}{
			Phase: "close_temp",
			Error: err.Error(),
		})
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errFactory.WithData(ErrWrite, struct {
			Phase string
			Error string
		}{
			Phase: "rename",
			Error: err.Error(),
		})
	}

	s.logger.Debug().Int("items", len(s.items)).Str("path", s.path).Msg("Flushed storage file")
	return nil
}
