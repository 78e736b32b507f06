package mock

import (
	"encoding/json"
	"net/http"

	"github.com/viant/tripclient/envelope"
)

// defaultMeHandler returns the authenticated user
func (s *Service) defaultMeHandler(w http.ResponseWriter, _ *http.Request, _ string) {
	user := s.User
	WriteData(w, &user)
}

// WriteData writes a successful envelope carrying data
func WriteData[T any](w http.ResponseWriter, data *T) {
	writeJSON(w, http.StatusOK, envelope.New(data, ""))
}

// WriteMessage writes a successful envelope carrying only a message
func WriteMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, envelope.New[struct{}](nil, message))
}

// WriteFailure writes a failed envelope with status
func WriteFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope.Failure(message))
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
