package mock

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"time"

	"github.com/viant/tripclient/auth/credential"
)

// User is the profile returned by /auth/me and /account/me
type User struct {
	ID              string  `json:"id"`
	Username        string  `json:"username"`
	Email           string  `json:"email"`
	AvatarURL       *string `json:"avatarUrl"`
	Gender          bool    `json:"gender"`
	IsEmailVerified bool    `json:"isEmailVerified"`
	CreatedAt       string  `json:"createdAt"`
}

// ProtectedHandler serves a route that requires a valid access credential
type ProtectedHandler func(w http.ResponseWriter, r *http.Request, subject string)

// Service simulates the TripTogether API
type Service struct {
	Secret    []byte
	Issuer    string
	AccessTTL time.Duration
	Email     string
	Password  string
	User      User

	// RefreshDelay holds each refresh call open before answering
	RefreshDelay time.Duration
	// RefreshFailure, when set, makes refresh calls fail with this message
	RefreshFailure string
	// RejectAll makes protected routes reject every credential, including freshly refreshed ones
	RejectAll bool

	LoginHandler   http.HandlerFunc
	RefreshHandler http.HandlerFunc

	mu            sync.RWMutex
	generation    int64
	refreshTokens map[string]string
	routes        map[string]ProtectedHandler
	lastToken     string

	refreshCalls   atomic.Int64
	protectedCalls atomic.Int64
	unauthorized   atomic.Int64
}

type Option func(*Service)

// WithUser sets accepted login and profile
func WithUser(email, password string, user User) Option {
	return func(s *Service) {
		s.Email = email
		s.Password = password
		s.User = user
	}
}

// WithRefreshDelay sets refresh delay
func WithRefreshDelay(delay time.Duration) Option {
	return func(s *Service) {
		s.RefreshDelay = delay
	}
}

// NewService creates a mock API
func NewService(opts ...Option) (*Service, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate secret: %v", err)
	}
	ret := &Service{
		Secret:        secret,
		Issuer:        "trip-together-mock",
		AccessTTL:     time.Hour,
		Email:         "traveler@example.com",
		Password:      "Passw0rd!",
		User:          User{ID: "42", Username: "traveler", Email: "traveler@example.com", IsEmailVerified: true, CreatedAt: "2024-01-01T00:00:00Z"},
		refreshTokens: map[string]string{},
		routes:        map[string]ProtectedHandler{},
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret, nil
}

// Handle registers a protected route, e.g. Handle(http.MethodGet, "/groups/my-groups", fn)
func (s *Service) Handle(method, path string, handler ProtectedHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[method+" "+path] = handler
}

func (s *Service) route(method, path string) (ProtectedHandler, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	handler, ok := s.routes[method+" "+path]
	return handler, ok
}

// Expire invalidates every access credential issued so far
func (s *Service) Expire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
}

// IssuePair issues a valid credential pair for the configured user
func (s *Service) IssuePair() (*credential.Pair, error) {
	return s.issuePair(s.User.ID)
}

// RevokeRefreshTokens invalidates every outstanding refresh credential
func (s *Service) RevokeRefreshTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshTokens = map[string]string{}
}

// RefreshCalls returns number of refresh endpoint calls
func (s *Service) RefreshCalls() int {
	return int(s.refreshCalls.Load())
}

// ProtectedCalls returns number of calls that reached a protected handler
func (s *Service) ProtectedCalls() int {
	return int(s.protectedCalls.Load())
}

// UnauthorizedCalls returns number of 401 responses
func (s *Service) UnauthorizedCalls() int {
	return int(s.unauthorized.Load())
}

// LastToken returns the last access credential accepted by a protected route
func (s *Service) LastToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastToken
}

// Handler returns an http.Handler serving the API under /api
func (s *Service) Handler() http.Handler {
	return http.StripPrefix(APIPrefix, &Handler{Service: s})
}

// HTTPTestServer is a running mock API
type HTTPTestServer struct {
	*Service
	Server  *httptest.Server
	BaseURL string
}

// Close shuts the server down
func (h *HTTPTestServer) Close() {
	h.Server.Close()
}

// NewHTTPTestServer starts a mock API; BaseURL ends with /api
func NewHTTPTestServer(opts ...Option) (*HTTPTestServer, error) {
	service, err := NewService(opts...)
	if err != nil {
		return nil, err
	}
	server := httptest.NewServer(service.Handler())
	return &HTTPTestServer{Service: service, Server: server, BaseURL: server.URL + APIPrefix}, nil
}
