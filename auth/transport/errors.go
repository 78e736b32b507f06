package transport

import "errors"

// ErrNoRefreshToken is returned when a refresh is needed but no refresh credential is stored
var ErrNoRefreshToken = errors.New("no refresh token available")

// RefreshError is returned to every request that depended on a failed refresh
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string {
	return e.Err.Error()
}

func (e *RefreshError) Unwrap() error {
	return e.Err
}
