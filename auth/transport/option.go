package transport

import (
	"net/http"
	"time"

	"github.com/viant/tripclient/auth/credential"
	"github.com/viant/tripclient/metrics"
	"go.uber.org/zap"
)

type Option func(*RoundTripper)

// WithStore sets credential store
func WithStore(store *credential.Store) Option {
	return func(t *RoundTripper) {
		t.store = store
	}
}

// WithTransport sets the inner transport used for API and refresh calls
func WithTransport(transport http.RoundTripper) Option {
	return func(t *RoundTripper) {
		t.transport = transport
	}
}

// WithRefresher sets a custom refresher
func WithRefresher(refresher Refresher) Option {
	return func(t *RoundTripper) {
		t.refresher = refresher
	}
}

// WithRefreshURL sets refresh endpoint used by the default http refresher
func WithRefreshURL(URL string) Option {
	return func(t *RoundTripper) {
		t.refreshURL = URL
	}
}

// WithRefreshTimeout bounds a single refresh call
func WithRefreshTimeout(timeout time.Duration) Option {
	return func(t *RoundTripper) {
		t.refreshTimeout = timeout
	}
}

// WithLogger sets logger
func WithLogger(logger *zap.Logger) Option {
	return func(t *RoundTripper) {
		t.logger = logger
	}
}

// WithMetrics sets metrics
func WithMetrics(metrics *metrics.Metrics) Option {
	return func(t *RoundTripper) {
		t.metrics = metrics
	}
}
