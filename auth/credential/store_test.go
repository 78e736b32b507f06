package credential

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveAndRead(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	assert.False(t, store.HasCredentials(ctx))
	access, ok, err := store.Access(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, access)

	require.NoError(t, store.Save(ctx, "A1", "R1"))
	assert.True(t, store.HasCredentials(ctx))
	pair, err := store.Pair(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, &Pair{AccessToken: "A1", RefreshToken: "R1"}, pair)

	require.NoError(t, store.Save(ctx, "A2", "R2"))
	refresh, ok, err := store.Refresh(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "R2", refresh)
}

func TestStore_SaveRejectsPartialPair(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	assert.ErrorIs(t, store.Save(ctx, "A1", ""), ErrEmptyCredential)
	assert.ErrorIs(t, store.Save(ctx, "", "R1"), ErrEmptyCredential)
	assert.False(t, store.HasCredentials(ctx))
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Clear(ctx))
	assert.False(t, store.HasCredentials(ctx))

	require.NoError(t, store.Save(ctx, "A1", "R1"))
	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))
	assert.False(t, store.HasCredentials(ctx))
	pair, err := store.Pair(ctx)
	require.NoError(t, err)
	assert.Nil(t, pair)
}

// assertWholePairs alternates saves of two sessions while reading pairs, every read must hold one session
func assertWholePairs(t *testing.T, store *Store, iterations int) {
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "A0", "R0"))

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		defer close(done)
		for i := 0; i < iterations; i++ {
			if i%2 == 0 {
				assert.NoError(t, store.Save(ctx, "A1", "R1"))
			} else {
				assert.NoError(t, store.Save(ctx, "A2", "R2"))
			}
		}
	}()
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			pair, err := store.Pair(ctx)
			if !assert.NoError(t, err) || !assert.NotNil(t, pair) {
				return
			}
			if !assert.Equal(t, pair.AccessToken[1:], pair.RefreshToken[1:], "mixed pair %v/%v", pair.AccessToken, pair.RefreshToken) {
				return
			}
		}
	}()
	wg.Wait()
}

func TestStore_ConcurrentReadersSeeWholePairs(t *testing.T) {
	assertWholePairs(t, NewMemoryStore(), 2000)
}

func TestStore_TokenSource(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	_, err := store.TokenSource(ctx).Token()
	assert.ErrorIs(t, err, ErrNoCredentials)

	require.NoError(t, store.Save(ctx, "A1", "R1"))
	token, err := store.TokenSource(ctx).Token()
	require.NoError(t, err)
	assert.Equal(t, "A1", token.AccessToken)
	assert.Equal(t, "R1", token.RefreshToken)
	assert.Equal(t, "Bearer", token.Type())
}

func TestNew(t *testing.T) {
	ctx := context.Background()
	store, err := New(ctx, &Config{})
	require.NoError(t, err)
	assert.NotNil(t, store)

	_, err = New(ctx, &Config{Driver: DriverFile})
	assert.Error(t, err)

	_, err = New(ctx, &Config{Driver: "etcd"})
	assert.Error(t, err)
}
