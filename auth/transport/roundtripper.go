package transport

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/viant/tripclient/auth/credential"
	"github.com/viant/tripclient/logger"
	"github.com/viant/tripclient/metrics"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

// RequestIDHeader correlates an original request with its replay
const RequestIDHeader = "X-Request-ID"

const (
	refreshKey            = "refresh"
	defaultRefreshTimeout = 30 * time.Second
)

type RoundTripper struct {
	store          *credential.Store
	refresher      Refresher
	refreshURL     string
	refreshTimeout time.Duration
	transport      http.RoundTripper
	logger         *zap.Logger
	metrics        *metrics.Metrics
	// refreshes holds at most one in-flight refresh; callers joining it are the waiters
	refreshes singleflight.Group
}

func New(options ...Option) (*RoundTripper, error) {
	ret := &RoundTripper{
		transport:      http.DefaultTransport,
		store:          credential.NewMemoryStore(),
		refreshTimeout: defaultRefreshTimeout,
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.refresher == nil {
		if ret.refreshURL == "" {
			return nil, errors.New("refresh url or refresher is required")
		}
		ret.refresher = NewHTTPRefresher(ret.refreshURL, ret.transport)
	}
	if ret.logger == nil {
		ret.logger = logger.Named("transport")
	}
	if ret.refreshTimeout <= 0 {
		ret.refreshTimeout = defaultRefreshTimeout
	}
	return ret, nil
}

func (r *RoundTripper) Store() *credential.Store {
	return r.store
}

func (r *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	body, err := readBody(req)
	if err != nil {
		return nil, err
	}
	requestID := req.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	log := logger.From(ctx, r.logger).With(logger.RequestID(requestID), logger.Method(req.Method), logger.Path(req.URL.Path))

	// 1) Send with whatever credential is stored.
	access, _, err := r.store.Access(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := r.send(req, body, requestID, access)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}
	discard(resp)

	// 2) Renew the credential, sharing an in-flight refresh if there is one.
	renewed, err := r.renew(ctx, access, log)
	if err != nil {
		return nil, err
	}

	// 3) Replay once; a second 401 goes back to the caller.
	resp, err = r.send(req, body, requestID, renewed)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		r.invalidate(ctx, renewed, log)
	}
	return resp, nil
}

func (r *RoundTripper) send(req *http.Request, body []byte, requestID, access string) (*http.Response, error) {
	attempt := newAttempt(req, body)
	attempt.Header.Set(RequestIDHeader, requestID)
	if access != "" {
		(&oauth2.Token{AccessToken: access}).SetAuthHeader(attempt)
	}
	started := time.Now()
	resp, err := r.transport.RoundTrip(attempt)
	code := 0
	if resp != nil {
		code = resp.StatusCode
	}
	r.metrics.ObserveRequest(req.Method, code, time.Since(started))
	return resp, err
}

// renew returns an access credential newer than rejected
func (r *RoundTripper) renew(ctx context.Context, rejected string, log *zap.Logger) (string, error) {
	current, ok, err := r.store.Access(ctx)
	if err != nil {
		return "", err
	}
	if ok && current != rejected {
		// a refresh settled between our send and the 401
		log.Debug("credential already renewed")
		return current, nil
	}
	owner := false
	results := r.refreshes.DoChan(refreshKey, func() (interface{}, error) {
		owner = true
		if current, ok, _ := r.store.Access(ctx); ok && current != rejected {
			return current, nil
		}
		return r.refresh(ctx, log)
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case result := <-results:
		if !owner {
			r.metrics.ObserveWaiter()
			log.Debug("released by shared refresh", zap.Bool("refreshed", result.Err == nil))
		}
		if result.Err != nil {
			return "", result.Err
		}
		return result.Val.(string), nil
	}
}

// refresh runs detached from the owner's cancellation so that waiters are not failed by an abandoned owner
func (r *RoundTripper) refresh(parent context.Context, log *zap.Logger) (string, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), r.refreshTimeout)
	defer cancel()
	started := time.Now()
	pair, err := r.exchange(ctx)
	r.metrics.ObserveRefresh(err)
	if err != nil {
		if cErr := r.store.Clear(ctx); cErr != nil {
			log.Error("failed to clear credentials", zap.Error(cErr))
		}
		log.Warn("credential refresh failed, session cleared", zap.Error(err), logger.Duration(time.Since(started)))
		return "", &RefreshError{Err: err}
	}
	log.Info("credential refreshed", logger.Duration(time.Since(started)))
	return pair.AccessToken, nil
}

func (r *RoundTripper) exchange(ctx context.Context) (*credential.Pair, error) {
	refreshToken, ok, err := r.store.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoRefreshToken
	}
	pair, err := r.refresher.Refresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if err = r.store.Save(ctx, pair.AccessToken, pair.RefreshToken); err != nil {
		return nil, err
	}
	return pair, nil
}

// invalidate clears the session when the server rejects a credential it has just issued,
// unless another refresh has replaced it in the meantime
func (r *RoundTripper) invalidate(ctx context.Context, rejected string, log *zap.Logger) {
	current, ok, err := r.store.Access(ctx)
	if err != nil || !ok || current != rejected {
		return
	}
	if err := r.store.Clear(ctx); err != nil {
		log.Error("failed to clear credentials", zap.Error(err))
		return
	}
	log.Warn("renewed credential rejected, session cleared")
}
