package store

import (
	"errors"
	"fmt"
)

// Error carries the status code a caller should surface.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func errorf(code int, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// StatusCode returns the status code attached to err, or 500 when none is.
func StatusCode(err error) int {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return 500
}
