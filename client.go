package tripclient

import (
	"context"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/viant/tripclient/auth/credential"
	"github.com/viant/tripclient/auth/transport"
	"github.com/viant/tripclient/config"
	"github.com/viant/tripclient/gateway"
	"github.com/viant/tripclient/logger"
	"github.com/viant/tripclient/metrics"
	"github.com/viant/tripclient/service"
	"go.uber.org/zap"
)

// Client groups API services sharing one authenticated session
type Client struct {
	Auth        *service.Auth
	Account     *service.Account
	Groups      *service.Groups
	Members     *service.Members
	Friendships *service.Friendships

	Store   *credential.Store
	Gateway *gateway.Gateway
	Metrics *metrics.Metrics
}

type options struct {
	store      *credential.Store
	transport  http.RoundTripper
	logger     *zap.Logger
	registerer prometheus.Registerer
}

// Option configures client assembly
type Option func(o *options)

// WithStore overrides the configured credential store
func WithStore(store *credential.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithHTTPTransport sets the inner transport that carries API and refresh calls
func WithHTTPTransport(transport http.RoundTripper) Option {
	return func(o *options) {
		o.transport = transport
	}
}

// WithLogger sets logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRegisterer registers client metrics with registerer
func WithRegisterer(registerer prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = registerer
	}
}

// New creates a client for cfg
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config was nil")
	}
	o := &options{transport: http.DefaultTransport}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logger.Named("tripclient")
	}
	store := o.store
	if store == nil {
		var err error
		if store, err = credential.New(ctx, &cfg.Store); err != nil {
			return nil, err
		}
	}
	baseURL := cfg.BaseURL()
	aMetrics := metrics.New(o.registerer)
	rt, err := transport.New(
		transport.WithStore(store),
		transport.WithTransport(o.transport),
		transport.WithRefreshURL(baseURL+cfg.API.RefreshPath),
		transport.WithRefreshTimeout(cfg.RefreshTimeout()),
		transport.WithLogger(o.logger.Named("transport")),
		transport.WithMetrics(aMetrics),
	)
	if err != nil {
		return nil, err
	}
	g := gateway.New(baseURL,
		gateway.WithClient(&http.Client{Transport: rt}),
		gateway.WithDefaultTimeout(cfg.Timeout()),
		gateway.WithLogger(o.logger.Named("gateway")),
	)
	o.logger.Debug("client created", zap.String("baseURL", baseURL), zap.String("store", cfg.Store.Driver))
	return &Client{
		Auth:        service.NewAuth(g, store, o.logger.Named("auth")),
		Account:     service.NewAccount(g),
		Groups:      service.NewGroups(g),
		Members:     service.NewMembers(g),
		Friendships: service.NewFriendships(g),
		Store:       store,
		Gateway:     g,
		Metrics:     aMetrics,
	}, nil
}
