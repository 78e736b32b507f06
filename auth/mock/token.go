package mock

import (
	"encoding/json"
	"net/http"
	"time"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	Gender   bool   `json:"gender"`
}

// defaultLoginHandler handles /auth/login requests
func (s *Service) defaultLoginHandler(w http.ResponseWriter, r *http.Request) {
	var request loginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		WriteFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if request.Email != s.Email || request.Password != s.Password {
		WriteFailure(w, http.StatusBadRequest, "Invalid email or password")
		return
	}
	pair, err := s.issuePair(s.User.ID)
	if err != nil {
		WriteFailure(w, http.StatusInternalServerError, "Server error")
		return
	}
	WriteData(w, pair)
}

// defaultRefreshHandler handles /auth/refresh-token requests
func (s *Service) defaultRefreshHandler(w http.ResponseWriter, r *http.Request) {
	if s.RefreshDelay > 0 {
		select {
		case <-time.After(s.RefreshDelay):
		case <-r.Context().Done():
			return
		}
	}
	if s.RefreshFailure != "" {
		WriteFailure(w, http.StatusBadRequest, s.RefreshFailure)
		return
	}
	var request refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.RefreshToken == "" {
		WriteFailure(w, http.StatusBadRequest, "Refresh token is required")
		return
	}
	pair, err := s.rotate(request.RefreshToken)
	if err != nil {
		WriteFailure(w, http.StatusBadRequest, "Invalid refresh token")
		return
	}
	WriteData(w, pair)
}

// defaultRegisterHandler handles /auth/register requests
func (s *Service) defaultRegisterHandler(w http.ResponseWriter, r *http.Request) {
	var request registerRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		WriteFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if request.Email == s.Email {
		WriteFailure(w, http.StatusOK, "Email is already registered")
		return
	}
	WriteData(w, &User{ID: "43", Username: request.Username, Email: request.Email, Gender: request.Gender, CreatedAt: time.Now().UTC().Format(time.RFC3339)})
}

// defaultLogoutHandler revokes the caller's refresh credentials
func (s *Service) defaultLogoutHandler(w http.ResponseWriter, _ *http.Request, subject string) {
	s.mu.Lock()
	for token, owner := range s.refreshTokens {
		if owner == subject {
			delete(s.refreshTokens, token)
		}
	}
	s.mu.Unlock()
	ok := true
	WriteData(w, &ok)
}
