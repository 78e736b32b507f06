package envelope

import "errors"

// Error represents a domain failure reported inside a response envelope
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// IsDomain returns true if err is (or wraps) a domain failure
func IsDomain(err error) bool {
	var target *Error
	return errors.As(err, &target)
}
