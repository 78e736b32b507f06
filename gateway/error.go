package gateway

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthorized matches a *StatusError with 401, i.e. a request that still failed after a refresh
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound matches a *StatusError with 404
	ErrNotFound = errors.New("not found")
)

// StatusError represents a non-2xx response
type StatusError struct {
	StatusCode int
	Message    string
	// Errors holds field validation errors when the API returns them
	Errors map[string][]string
}

func (e *StatusError) Error() string {
	return e.Message
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// problem is the error body shape of a non-2xx response
type problem struct {
	Error   string              `json:"error"`
	Title   string              `json:"title"`
	Message string              `json:"message"`
	Value   *problemValue       `json:"value"`
	Errors  map[string][]string `json:"errors"`
}

type problemValue struct {
	Message string `json:"message"`
}

func (p *problem) message() string {
	switch {
	case p.Error != "":
		return p.Error
	case p.Value != nil && p.Value.Message != "":
		return p.Value.Message
	case p.Message != "":
		return p.Message
	}
	return p.Title
}
