package service

import (
	"context"

	"github.com/viant/tripclient/gateway"
)

// Account covers the signed-in user's profile
type Account struct {
	gateway *gateway.Gateway
}

func (a *Account) Me(ctx context.Context) (*User, error) {
	return gateway.Get[User](ctx, a.gateway, "/account/me", gateway.WithFallback("Failed to fetch user profile"))
}

func (a *Account) UpdateProfile(ctx context.Context, update *ProfileUpdate) (*User, error) {
	return gateway.Put[User](ctx, a.gateway, "/account/me", update, gateway.WithFallback("Failed to update profile"))
}

func (a *Account) Delete(ctx context.Context) (bool, error) {
	return truth(gateway.Delete[bool](ctx, a.gateway, "/account/me", gateway.WithFallback("Failed to delete account")))
}

func NewAccount(g *gateway.Gateway) *Account {
	return &Account{gateway: g}
}
