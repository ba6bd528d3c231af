package storage_test

import (
	"context"
	stderrors "errors"
	"testing"

	"codeberg.org/mutker/bodymind/internal/errors"
	"codeberg.org/mutker/bodymind/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStorage struct {
	readErr  error
	writeErr error
}

func (b brokenStorage) GetItem(context.Context, string) (string, bool, error) {
	return "", false, b.readErr
}

func (b brokenStorage) SetItem(context.Context, string, string) error {
	return b.writeErr
}

func (brokenStorage) RemoveItem(context.Context, string) error { return nil }

func (brokenStorage) Close() error { return nil }

type sample struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

func TestLoadReturnsFallbackWhenAbsent(t *testing.T) {
	s := storage.NewMemory()
	fallback := sample{Name: "fallback"}

	got := storage.Load(context.Background(), s, "missing", fallback)
	assert.Equal(t, fallback, got)
}

func TestLoadReturnsFallbackWhenMalformed(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemory()
	require.NoError(t, s.SetItem(ctx, storage.KeyMetrics, "{not json"))

	got := storage.Load(ctx, s, storage.KeyMetrics, map[string]int{"x": 1})
	assert.Equal(t, map[string]int{"x": 1}, got)

	require.NoError(t, s.SetItem(ctx, storage.KeyMetrics, `"a string, not an object"`))
	got = storage.Load(ctx, s, storage.KeyMetrics, map[string]int{"x": 1})
	assert.Equal(t, map[string]int{"x": 1}, got)
}

func TestLoadReturnsFallbackOnReadFailure(t *testing.T) {
	s := brokenStorage{readErr: stderrors.New("storage disabled")}

	got := storage.Load(context.Background(), s, storage.KeyProfiles, []string{"default"})
	assert.Equal(t, []string{"default"}, got)
}

func TestSaveThenLoad(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemory()

	in := sample{Name: "sleep", Score: 85.5}
	require.NoError(t, storage.Save(ctx, s, "sample", in))

	raw, ok, err := s.GetItem(ctx, "sample")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"name":"sleep","score":85.5}`, raw)

	assert.Equal(t, in, storage.Load(ctx, s, "sample", sample{}))
}

func TestSaveWrapsWriteFailures(t *testing.T) {
	cause := stderrors.New("quota exceeded")
	err := storage.Save(context.Background(), brokenStorage{writeErr: cause}, storage.KeyMetrics, sample{})

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, storage.ErrWrite))
	assert.True(t, errors.Is(err, cause))
}

func TestSaveRejectsUnencodableValues(t *testing.T) {
	err := storage.Save(context.Background(), storage.NewMemory(), "bad", map[string]any{"ch": make(chan int)})

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, storage.ErrEncode))
}
