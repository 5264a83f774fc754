package providers

import (
	"context"
	"errors"
)

// ErrCacheMiss is returned by Get when the key is absent
var ErrCacheMiss = errors.New("cache miss")

// CacheProvider is the keyed byte store behind the Redis session store.
// Expirations are expressed in seconds; zero means no expiry.
type CacheProvider interface {
	// Get retrieves a value, or ErrCacheMiss when the key is absent
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with an expiration
	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error

	// Delete removes a value
	Delete(ctx context.Context, key string) error

	// Exists checks whether a key is present
	Exists(ctx context.Context, key string) (bool, error)
}
