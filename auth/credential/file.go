package credential

import (
	"context"
	"fmt"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/scy"
)

// DefaultEncryptionKey uses the blowfish kms; the importing binary has to link github.com/viant/scy/kms/blowfish
const DefaultEncryptionKey = "blowfish://default"

// vault is the encrypted document holding every entry of a file backend
type vault struct {
	Entries map[string]string `json:"entries"`
}

// fileBackend keeps all entries in one encrypted secret document.
// Each Put rewrites the whole document, so a reader never sees half a pair.
type fileBackend struct {
	mu      sync.Mutex
	URL     string
	key     string
	fs      afs.Service
	secrets *scy.Service
	entries map[string]string
	loaded  bool
}

func (f *fileBackend) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ensureLoaded(ctx); err != nil {
		return "", false, err
	}
	value, ok := f.entries[key]
	return value, ok, nil
}

func (f *fileBackend) GetAll(ctx context.Context, keys ...string) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	ret := make(map[string]string, len(keys))
	for _, k := range keys {
		if value, ok := f.entries[k]; ok {
			ret[k] = value
		}
	}
	return ret, nil
}

func (f *fileBackend) Put(ctx context.Context, entries map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ensureLoaded(ctx); err != nil {
		return err
	}
	next := make(map[string]string, len(f.entries)+len(entries))
	for k, v := range f.entries {
		next[k] = v
	}
	for k, v := range entries {
		next[k] = v
	}
	if err := f.store(ctx, next); err != nil {
		return err
	}
	f.entries = next
	return nil
}

func (f *fileBackend) Delete(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ensureLoaded(ctx); err != nil {
		return err
	}
	next := make(map[string]string, len(f.entries))
	for k, v := range f.entries {
		next[k] = v
	}
	for _, k := range keys {
		delete(next, k)
	}
	if len(next) == len(f.entries) {
		return nil
	}
	if len(next) == 0 {
		if err := f.fs.Delete(ctx, f.URL); err != nil {
			if ok, _ := f.fs.Exists(ctx, f.URL); ok {
				return fmt.Errorf("failed to delete %v: %w", f.URL, err)
			}
		}
		f.entries = next
		return nil
	}
	if err := f.store(ctx, next); err != nil {
		return err
	}
	f.entries = next
	return nil
}

func (f *fileBackend) ensureLoaded(ctx context.Context) error {
	if f.loaded {
		return nil
	}
	f.entries = map[string]string{}
	ok, err := f.fs.Exists(ctx, f.URL)
	if err != nil {
		return fmt.Errorf("failed to check %v: %w", f.URL, err)
	}
	if ok {
		resource := scy.NewResource(&vault{}, f.URL, f.key)
		secret, err := f.secrets.Load(ctx, resource)
		if err != nil {
			return fmt.Errorf("failed to load credentials from %v: %w", f.URL, err)
		}
		if doc, ok := secret.Target.(*vault); ok && doc.Entries != nil {
			f.entries = doc.Entries
		}
	}
	f.loaded = true
	return nil
}

func (f *fileBackend) store(ctx context.Context, entries map[string]string) error {
	resource := scy.NewResource(&vault{}, f.URL, f.key)
	secret := scy.NewSecret(&vault{Entries: entries}, resource)
	if err := f.secrets.Store(ctx, secret); err != nil {
		return fmt.Errorf("failed to store credentials at %v: %w", f.URL, err)
	}
	return nil
}

// NewFileBackend creates an encrypted backend persisted at URL; key defaults to DefaultEncryptionKey
func NewFileBackend(URL, key string) Backend {
	if key == "" {
		key = DefaultEncryptionKey
	}
	return &fileBackend{
		URL:     URL,
		key:     key,
		fs:      afs.New(),
		secrets: scy.New(),
	}
}

// NewFileStore creates a store persisted at URL
func NewFileStore(URL, key string) *Store {
	return NewStore(NewFileBackend(URL, key))
}
