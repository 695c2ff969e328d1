package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func NotFound(what string) error {
	return &ErrorWithStatusCode{Message: what + " not found", StatusCode: http.StatusNotFound}
}

func Unprocessable(format string, args ...any) error {
	return &ErrorWithStatusCode{Message: fmt.Sprintf(format, args...), StatusCode: http.StatusUnprocessableEntity}
}

func BadRequest(format string, args ...any) error {
	return &ErrorWithStatusCode{Message: fmt.Sprintf(format, args...), StatusCode: http.StatusBadRequest}
}

// DataInconsistency means the archive broke one of its own guarantees:
// a referenced row is missing or a stored payload is malformed.
// It is never a caller mistake and always ends the request with 500.
type DataInconsistency struct {
	What string
}

func (e *DataInconsistency) Error() string {
	return "archive inconsistency: " + e.What
}

func Inconsistent(format string, args ...any) error {
	return &DataInconsistency{What: fmt.Sprintf(format, args...)}
}

// StatusCode returns the http status an error should be answered with.
func StatusCode(err error) int {
	var withCode *ErrorWithStatusCode
	if errors.As(err, &withCode) {
		return withCode.StatusCode
	}
	return http.StatusInternalServerError
}

// Check if err is instance of T for custom error types
func Is[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}
