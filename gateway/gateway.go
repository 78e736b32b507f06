// Package gateway issues typed calls against the TripTogether API.
//
// Every call returns the unwrapped envelope data or an error:
//   - *transport.RefreshError when the credential could not be renewed
//   - *StatusError for a non-2xx response
//   - *envelope.Error for a 2xx response with isSuccess=false
//   - a network or context error otherwise
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/viant/tripclient/auth/transport"
	"github.com/viant/tripclient/envelope"
	"github.com/viant/tripclient/logger"
	"go.uber.org/zap"
)

const DefaultTimeout = 30 * time.Second

// Gateway represents an API endpoint reached through an authenticating client
type Gateway struct {
	mux     sync.RWMutex
	baseURL string
	client  *http.Client
	timeout time.Duration
	logger  *zap.Logger
}

// BaseURL returns the API base address
func (g *Gateway) BaseURL() string {
	g.mux.RLock()
	defer g.mux.RUnlock()
	return g.baseURL
}

// SetBaseURL changes the API base address for subsequent calls
func (g *Gateway) SetBaseURL(URL string) {
	g.mux.Lock()
	defer g.mux.Unlock()
	g.baseURL = strings.TrimRight(URL, "/")
}

// Do sends a request and returns the raw response; the caller closes its body
func (g *Gateway) Do(ctx context.Context, method, path string, body interface{}, options ...CallOption) (*http.Response, error) {
	aCall := newCall(options)
	ctx, cancel := context.WithTimeout(ctx, g.callTimeout(aCall))
	resp, err := g.do(ctx, method, path, body, aCall)
	if err != nil {
		cancel()
		return nil, err
	}
	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

func (g *Gateway) do(ctx context.Context, method, path string, body interface{}, aCall *call) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %v %v request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}
	URL := g.BaseURL() + path
	if len(aCall.query) > 0 {
		URL += "?" + aCall.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, URL, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range aCall.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	started := time.Now()
	resp, err := g.client.Do(req)
	log := logger.From(ctx, g.logger).With(logger.Method(method), logger.Path(path), logger.Duration(time.Since(started)))
	if err != nil {
		err = unwrapTransport(err)
		log.Debug("call failed", zap.Error(err))
		return nil, err
	}
	log.Debug("call completed", logger.Status(resp.StatusCode))
	return resp, nil
}

// exchange sends the call and returns the body of a 2xx response
func (g *Gateway) exchange(ctx context.Context, method, path string, body interface{}, aCall *call) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, g.callTimeout(aCall))
	defer cancel()
	resp, err := g.do(ctx, method, path, body, aCall)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v %v response: %w", method, path, err)
	}
	if resp.StatusCode/100 != 2 {
		return nil, newStatusError(resp.StatusCode, data, aCall.fallback)
	}
	return data, nil
}

func (g *Gateway) callTimeout(aCall *call) time.Duration {
	if aCall.timeout > 0 {
		return aCall.timeout
	}
	return g.timeout
}

// Call sends body and returns value.data of the response envelope
func Call[T any](ctx context.Context, g *Gateway, method, path string, body interface{}, options ...CallOption) (*T, error) {
	aCall := newCall(options)
	data, err := g.exchange(ctx, method, path, body, aCall)
	if err != nil {
		return nil, err
	}
	anEnvelope, err := envelope.Decode[T](bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return anEnvelope.UnwrapOr(aCall.fallback)
}

// Get returns value.data of a GET call
func Get[T any](ctx context.Context, g *Gateway, path string, options ...CallOption) (*T, error) {
	return Call[T](ctx, g, http.MethodGet, path, nil, options...)
}

// Post returns value.data of a POST call
func Post[T any](ctx context.Context, g *Gateway, path string, body interface{}, options ...CallOption) (*T, error) {
	return Call[T](ctx, g, http.MethodPost, path, body, options...)
}

// Put returns value.data of a PUT call
func Put[T any](ctx context.Context, g *Gateway, path string, body interface{}, options ...CallOption) (*T, error) {
	return Call[T](ctx, g, http.MethodPut, path, body, options...)
}

// Patch returns value.data of a PATCH call
func Patch[T any](ctx context.Context, g *Gateway, path string, body interface{}, options ...CallOption) (*T, error) {
	return Call[T](ctx, g, http.MethodPatch, path, body, options...)
}

// Delete returns value.data of a DELETE call
func Delete[T any](ctx context.Context, g *Gateway, path string, options ...CallOption) (*T, error) {
	return Call[T](ctx, g, http.MethodDelete, path, nil, options...)
}

// Message returns value.message for endpoints that answer without data
func Message(ctx context.Context, g *Gateway, method, path string, body interface{}, options ...CallOption) (string, error) {
	aCall := newCall(options)
	data, err := g.exchange(ctx, method, path, body, aCall)
	if err != nil {
		return "", err
	}
	anEnvelope, err := envelope.Decode[json.RawMessage](bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	return anEnvelope.Message(aCall.fallback)
}

func newStatusError(code int, data []byte, fallback string) *StatusError {
	ret := &StatusError{StatusCode: code}
	aProblem := &problem{}
	if len(data) > 0 && json.Unmarshal(data, aProblem) == nil {
		ret.Message = aProblem.message()
		ret.Errors = aProblem.Errors
	}
	if ret.Message == "" {
		ret.Message = fallback
	}
	if ret.Message == "" {
		ret.Message = fmt.Sprintf("request failed with status %d: %s", code, http.StatusText(code))
	}
	return ret
}

// unwrapTransport strips the *url.Error added by http.Client so that a refresh failure keeps its own message
func unwrapTransport(err error) error {
	var refreshErr *transport.RefreshError
	if errors.As(err, &refreshErr) {
		return refreshErr
	}
	return err
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	defer c.cancel()
	return c.ReadCloser.Close()
}

// New creates a gateway for baseURL
func New(baseURL string, options ...Option) *Gateway {
	ret := &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  http.DefaultClient,
		timeout: DefaultTimeout,
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.logger == nil {
		ret.logger = logger.Named("gateway")
	}
	return ret
}
