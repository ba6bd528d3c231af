package storage

import (
	"context"
	"encoding/json"

	"codeberg.org/mutker/bodymind/internal/errors"
	"codeberg.org/mutker/bodymind/internal/logger"
)

// Load decodes the JSON value stored under key. A missing key, a backend
// failure or unparsable content all yield fallback; Load never fails.
func Load[T any](ctx context.Context, s Storage, key string, fallback T) T {
	raw, ok, err := s.GetItem(ctx, key)
	if err != nil {
		logger.Debug().Err(err).Str("key", key).Msg("Storage read failed, using fallback")
		return fallback
	}
	if !ok || raw == "" {
		return fallback
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		logger.Debug().Err(err).Str("key", key).Msg("Stored value is malformed, using fallback")
		return fallback
	}
	return v
}

// Save encodes v as JSON and writes it under key. Write failures are
// returned as ErrWrite and are never retried.
func Save[T any](ctx context.Context, s Storage, key string, v T) error {
	errFactory := errors.New()

	raw, err := json.Marshal(v)
	if err != nil {
		return errFactory.WithData(ErrEncode, struct {
			Key   string
			Error string
		}{
			Key:   key,
			Error: err.Error(),
		})
	}

	if err := s.SetItem(ctx, key, string(raw)); err != nil {
		if errors.HasCode(err, ErrWrite) {
			return err
		}
		return errFactory.Wrap(ErrWrite, err)
	}
	return nil
}
