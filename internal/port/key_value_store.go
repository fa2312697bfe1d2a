package port

import "context"

type KeyValueStore interface {
	// Get returns the stored value and whether the key exists
	Get(ctx context.Context, key string) (string, bool, error)

	// Set overwrites the value stored under key, failures wrap domain.ErrStorageUnavailable
	Set(ctx context.Context, key, value string) error
}
