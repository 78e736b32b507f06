package credential

import (
	"context"
	"sync"

	gocache "github.com/patrickmn/go-cache"
)

type memoryBackend struct {
	// mu spans several cache calls so multi-key reads and writes are atomic
	mu    sync.RWMutex
	cache *gocache.Cache
}

func (m *memoryBackend) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.cache.Get(key)
	if !ok {
		return "", false, nil
	}
	text, _ := value.(string)
	return text, true, nil
}

func (m *memoryBackend) GetAll(_ context.Context, keys ...string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ret := make(map[string]string, len(keys))
	for _, k := range keys {
		if value, ok := m.cache.Get(k); ok {
			ret[k], _ = value.(string)
		}
	}
	return ret, nil
}

func (m *memoryBackend) Put(_ context.Context, entries map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range entries {
		m.cache.Set(k, v, gocache.NoExpiration)
	}
	return nil
}

func (m *memoryBackend) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		m.cache.Delete(k)
	}
	return nil
}

// NewMemoryBackend creates an in-process backend; entries never expire
func NewMemoryBackend() Backend {
	return &memoryBackend{cache: gocache.New(gocache.NoExpiration, 0)}
}

// NewMemoryStore creates a store over a fresh memory backend
func NewMemoryStore() *Store {
	return NewStore(NewMemoryBackend())
}
