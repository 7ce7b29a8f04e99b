package store

import (
	"context"
	"errors"
)

var ErrEmptyKey = errors.New("key is required")

// KeyValueStore persists opaque records by key.
// Get reports found=false with a nil error when the key is absent.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}
