package gateway

import (
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// Option configures a Gateway
type Option func(g *Gateway)

// WithClient sets the http client; its transport normally is an auth/transport.RoundTripper
func WithClient(client *http.Client) Option {
	return func(g *Gateway) {
		g.client = client
	}
}

// WithDefaultTimeout sets the per-call timeout used when a call does not set its own
func WithDefaultTimeout(timeout time.Duration) Option {
	return func(g *Gateway) {
		g.timeout = timeout
	}
}

// WithLogger sets logger
func WithLogger(logger *zap.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

type call struct {
	header   http.Header
	query    url.Values
	timeout  time.Duration
	fallback string
}

// CallOption configures a single call
type CallOption func(c *call)

// WithHeader adds a request header
func WithHeader(key, value string) CallOption {
	return func(c *call) {
		c.header.Add(key, value)
	}
}

// WithQuery sets query parameters; empty values are skipped
func WithQuery(query url.Values) CallOption {
	return func(c *call) {
		for key, values := range query {
			for _, value := range values {
				if value != "" {
					c.query.Add(key, value)
				}
			}
		}
	}
}

// WithTimeout overrides the gateway timeout for one call
func WithTimeout(timeout time.Duration) CallOption {
	return func(c *call) {
		c.timeout = timeout
	}
}

// WithFallback sets the error message used when a failed response carries none
func WithFallback(message string) CallOption {
	return func(c *call) {
		c.fallback = message
	}
}

func newCall(options []CallOption) *call {
	ret := &call{header: http.Header{}, query: url.Values{}}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
