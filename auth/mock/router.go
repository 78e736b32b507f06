package mock

import (
	"net/http"
	"strings"
)

// APIPrefix is the path prefix of every API route
const APIPrefix = "/api"

// Handler routes HTTP requests to the mock API endpoints.
type Handler struct {
	Service *Service
}

// ServeHTTP dispatches incoming HTTP requests based on method and URL path.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s := h.Service
	switch r.Method + " " + r.URL.Path {
	case "POST /auth/login":
		if s.LoginHandler != nil {
			s.LoginHandler(w, r)
		} else {
			s.defaultLoginHandler(w, r)
		}
	case "POST /auth/refresh-token":
		s.refreshCalls.Add(1)
		if s.RefreshHandler != nil {
			s.RefreshHandler(w, r)
		} else {
			s.defaultRefreshHandler(w, r)
		}
	case "POST /auth/register":
		s.defaultRegisterHandler(w, r)
	case "POST /auth/verify-otp":
		WriteMessage(w, "Email verified successfully")
	case "POST /auth/resend-otp":
		WriteMessage(w, "OTP sent")
	case "POST /auth/logout":
		s.protect(w, r, s.defaultLogoutHandler)
	case "GET /auth/me", "GET /account/me":
		s.protect(w, r, s.defaultMeHandler)
	default:
		if handler, ok := s.route(r.Method, r.URL.Path); ok {
			s.protect(w, r, handler)
			return
		}
		WriteFailure(w, http.StatusNotFound, "Resource not found")
	}
}

// protect authenticates the bearer credential before calling handler
func (s *Service) protect(w http.ResponseWriter, r *http.Request, handler ProtectedHandler) {
	authHeader := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || token == "" {
		s.unauthorized.Add(1)
		w.Header().Set("WWW-Authenticate", `Bearer realm="`+s.Issuer+`"`)
		WriteFailure(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	subject, err := s.verifyAccess(token)
	if err != nil || s.RejectAll {
		s.unauthorized.Add(1)
		w.Header().Set("WWW-Authenticate", `Bearer realm="`+s.Issuer+`", error="invalid_token"`)
		WriteFailure(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	s.protectedCalls.Add(1)
	s.mu.Lock()
	s.lastToken = token
	s.mu.Unlock()
	handler(w, r, subject)
}
