package credential

import (
	"context"
	"errors"
	"fmt"
)

const (
	AccessTokenKey  = "accessToken"
	RefreshTokenKey = "refreshToken"
)

// ErrEmptyCredential is returned when saving a pair with a blank member
var ErrEmptyCredential = errors.New("access and refresh credentials are both required")

// Pair represents access and refresh credentials
type Pair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Store persists a credential pair
type Store struct {
	backend Backend
}

// Save persists both credentials with a single backend write, replacing any previous pair
func (s *Store) Save(ctx context.Context, access, refresh string) error {
	if access == "" || refresh == "" {
		return ErrEmptyCredential
	}
	if err := s.backend.Put(ctx, map[string]string{AccessTokenKey: access, RefreshTokenKey: refresh}); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	return nil
}

// Access returns the stored access credential
func (s *Store) Access(ctx context.Context) (string, bool, error) {
	return s.get(ctx, AccessTokenKey)
}

// Refresh returns the stored refresh credential
func (s *Store) Refresh(ctx context.Context) (string, bool, error) {
	return s.get(ctx, RefreshTokenKey)
}

// Pair returns stored pair or nil if none; both members come from the same write
func (s *Store) Pair(ctx context.Context) (*Pair, error) {
	entries, err := s.backend.GetAll(ctx, AccessTokenKey, RefreshTokenKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}
	access, refresh := entries[AccessTokenKey], entries[RefreshTokenKey]
	if access == "" || refresh == "" {
		return nil, nil
	}
	return &Pair{AccessToken: access, RefreshToken: refresh}, nil
}

// Clear removes both credentials; clearing an empty store is a no-op
func (s *Store) Clear(ctx context.Context) error {
	if err := s.backend.Delete(ctx, AccessTokenKey, RefreshTokenKey); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

// HasCredentials returns true if an access credential is present; validity and expiry are not checked
func (s *Store) HasCredentials(ctx context.Context) bool {
	_, ok, err := s.Access(ctx)
	return err == nil && ok
}

func (s *Store) get(ctx context.Context, key string) (string, bool, error) {
	value, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok || value == "" {
		return "", false, nil
	}
	return value, true, nil
}

// NewStore creates a store over the supplied backend
func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}
