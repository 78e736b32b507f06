// Package envelope decodes the two-level response wrapper returned by every
// TripTogether API endpoint:
//
//	{ "isSuccess": bool, "value": { "code": "", "message": "", "data": T }, "error": "" }
//
// A transport-level success (HTTP 200) carrying isSuccess=false is a domain
// failure and is surfaced as *Error.
package envelope

import (
	"encoding/json"
	"fmt"
	"io"
)

// Envelope represents outer response wrapper
type Envelope[T any] struct {
	IsSuccess bool      `json:"isSuccess"`
	Value     *Value[T] `json:"value,omitempty"`
	Error     *string   `json:"error,omitempty"`
}

// Value represents inner response value
type Value[T any] struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    *T     `json:"data,omitempty"`
}

// Decode decodes an envelope from r
func Decode[T any](r io.Reader) (*Envelope[T], error) {
	ret := &Envelope[T]{}
	if err := json.NewDecoder(r).Decode(ret); err != nil {
		return nil, fmt.Errorf("failed to decode response envelope: %w", err)
	}
	return ret, nil
}

// Unwrap returns value.data or a domain error
func (e *Envelope[T]) Unwrap() (*T, error) {
	return e.UnwrapOr("")
}

// UnwrapOr returns value.data or a domain error using fallback when the envelope carries no message
func (e *Envelope[T]) UnwrapOr(fallback string) (*T, error) {
	if !e.IsSuccess {
		return nil, e.failure(fallback)
	}
	if e.Value == nil || e.Value.Data == nil {
		if fallback == "" {
			fallback = "response is missing data"
		}
		return nil, e.failure(fallback)
	}
	return e.Value.Data, nil
}

// Message returns value.message for endpoints that do not carry data
func (e *Envelope[T]) Message(fallback string) (string, error) {
	if !e.IsSuccess || e.Value == nil {
		return "", e.failure(fallback)
	}
	return e.Value.Message, nil
}

// ErrorMessage returns the most specific failure message the envelope carries
func (e *Envelope[T]) ErrorMessage() string {
	if e.Error != nil && *e.Error != "" {
		return *e.Error
	}
	if e.Value != nil && !e.IsSuccess {
		return e.Value.Message
	}
	return ""
}

func (e *Envelope[T]) failure(fallback string) *Error {
	ret := &Error{Message: e.ErrorMessage()}
	if e.Value != nil {
		ret.Code = e.Value.Code
	}
	if ret.Message == "" {
		ret.Message = fallback
	}
	if ret.Message == "" {
		ret.Message = "request was not successful"
	}
	return ret
}

// New creates a successful envelope
func New[T any](data *T, message string) *Envelope[T] {
	return &Envelope[T]{IsSuccess: true, Value: &Value[T]{Code: "OK", Message: message, Data: data}}
}

// Failure creates a failed envelope
func Failure(message string) *Envelope[json.RawMessage] {
	return &Envelope[json.RawMessage]{Error: &message}
}
