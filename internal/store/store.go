package store

import (
	"context"
	"errors"
)

// Store is the key/value persistence port consumed by the wallet and the
// purchase history log. Consumers define this interface, not the backends.
type Store interface {
	// Load returns the value saved under key, or ErrKeyNotFound.
	Load(ctx context.Context, key string) (string, error)
	// Save overwrites the value under key.
	Save(ctx context.Context, key, value string) error
	Close() error
}

var ErrKeyNotFound = errors.New("key not found")
