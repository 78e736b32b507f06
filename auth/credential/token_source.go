package credential

import (
	"context"
	"errors"

	"golang.org/x/oauth2"
)

// ErrNoCredentials is returned when no session is stored
var ErrNoCredentials = errors.New("no credentials stored")

// Token returns the stored pair as an oauth2 bearer token
func (s *Store) Token(ctx context.Context) (*oauth2.Token, error) {
	pair, err := s.Pair(ctx)
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, ErrNoCredentials
	}
	return pair.Token(), nil
}

// TokenSource exposes the store to oauth2 aware http clients
func (s *Store) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &tokenSource{ctx: ctx, store: s}
}

type tokenSource struct {
	ctx   context.Context
	store *Store
}

func (t *tokenSource) Token() (*oauth2.Token, error) {
	return t.store.Token(t.ctx)
}

// Token converts pair to a bearer token
func (p *Pair) Token() *oauth2.Token {
	return &oauth2.Token{TokenType: "Bearer", AccessToken: p.AccessToken, RefreshToken: p.RefreshToken}
}
