package service

import (
	"context"
	"net/http"

	"github.com/viant/tripclient/auth/credential"
	"github.com/viant/tripclient/gateway"
	"github.com/viant/tripclient/logger"
	"go.uber.org/zap"
)

// Auth covers registration, login and session endpoints
type Auth struct {
	gateway *gateway.Gateway
	store   *credential.Store
	logger  *zap.Logger
}

func (a *Auth) Register(ctx context.Context, request *RegisterRequest) (*User, error) {
	return gateway.Post[User](ctx, a.gateway, "/auth/register", request, gateway.WithFallback("Registration failed"))
}

// VerifyOTP confirms the email address and returns the server message
func (a *Auth) VerifyOTP(ctx context.Context, request *VerifyOTPRequest) (string, error) {
	return gateway.Message(ctx, a.gateway, http.MethodPost, "/auth/verify-otp", request, gateway.WithFallback("OTP verification failed"))
}

// Login authenticates and stores the issued credential pair
func (a *Auth) Login(ctx context.Context, request *LoginRequest) (*AuthTokens, error) {
	tokens, err := gateway.Post[AuthTokens](ctx, a.gateway, "/auth/login", request, gateway.WithFallback("Login failed"))
	if err != nil {
		return nil, err
	}
	if err = a.store.Save(ctx, tokens.AccessToken, tokens.RefreshToken); err != nil {
		return nil, err
	}
	logger.From(ctx, a.logger).Info("signed in", logger.Op("login"))
	return tokens, nil
}

// Logout notifies the API and always clears local credentials; API failures are only logged
func (a *Auth) Logout(ctx context.Context) error {
	log := logger.From(ctx, a.logger).With(logger.Op("logout"))
	if _, err := gateway.Post[bool](ctx, a.gateway, "/auth/logout", nil, gateway.WithFallback("Logout failed")); err != nil {
		log.Warn("logout call failed", zap.Error(err))
	}
	return a.store.Clear(ctx)
}

func (a *Auth) CurrentUser(ctx context.Context) (*User, error) {
	return gateway.Get[User](ctx, a.gateway, "/auth/me", gateway.WithFallback("Failed to get user"))
}

// IsAuthenticated reports whether a credential is stored; it is not validated
func (a *Auth) IsAuthenticated(ctx context.Context) bool {
	return a.store.HasCredentials(ctx)
}

func (a *Auth) ResendOTP(ctx context.Context, email string) (string, error) {
	return gateway.Message(ctx, a.gateway, http.MethodPost, "/auth/resend-otp", map[string]string{"email": email}, gateway.WithFallback("Failed to resend OTP"))
}

func NewAuth(g *gateway.Gateway, store *credential.Store, logger *zap.Logger) *Auth {
	return &Auth{gateway: g, store: store, logger: logger}
}
