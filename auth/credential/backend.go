package credential

import "context"

// Backend is an opaque secret key-value store.
type Backend interface {
	// Get returns the stored value; absence is reported by ok=false, never by an error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// GetAll reads keys from one consistent snapshot; absent keys are left out of the result.
	GetAll(ctx context.Context, keys ...string) (map[string]string, error)
	// Put writes all entries; readers never observe a subset of them.
	Put(ctx context.Context, entries map[string]string) error
	// Delete removes keys; deleting absent keys is not an error.
	Delete(ctx context.Context, keys ...string) error
}
