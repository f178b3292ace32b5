// Package apierr carries transport-level failures (malformed ids, bodies,
// query strings) that never reach an aggregate.
package apierr

import (
	"fmt"
	"net/http"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// BadRequest tags err as an invalid_argument 400.
func BadRequest(format string, args ...any) *Error {
	return New(http.StatusBadRequest, "invalid_argument", fmt.Errorf(format, args...))
}
