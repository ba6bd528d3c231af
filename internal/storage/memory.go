package storage

import (
	"context"
	"sync"
)

type memoryStorage struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemory returns a Storage that lives only as long as the process.
func NewMemory() Storage {
	return &memoryStorage{items: map[string]string{}}
}

func (s *memoryStorage) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[key]
	return v, ok, nil
}

func (s *memoryStorage) SetItem(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = value
	return nil
}

func (s *memoryStorage) RemoveItem(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
	return nil
}

func (*memoryStorage) Close() error {
	return nil
}

type unavailableStorage struct{}

// Unavailable returns a Storage for environments without persistence:
// every read misses and every write is silently dropped.
func Unavailable() Storage {
	return unavailableStorage{}
}

func (unavailableStorage) GetItem(context.Context, string) (string, bool, error) {
	return "", false, nil
}

func (unavailableStorage) SetItem(context.Context, string, string) error {
	return nil
}

func (unavailableStorage) RemoveItem(context.Context, string) error {
	return nil
}

func (unavailableStorage) Close() error {
	return nil
}
