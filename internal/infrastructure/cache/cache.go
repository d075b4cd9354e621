// Package cache provides the dashboard's local key/value store: the offline
// fallback holding the serialized loan collection plus a single preference
// flag. Values are opaque blobs overwritten wholesale.
package cache

import (
	"context"
	"errors"
)

const (
	// KeyLoans holds the entire serialized loan collection.
	KeyLoans = "lendwise_loans"
	// KeyDarkMode holds the dashboard color preference ("true"/"false").
	KeyDarkMode = "dark_mode"
)

var ErrMiss = errors.New("cache: key not found")

type Store interface {
	// Get returns ErrMiss when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
