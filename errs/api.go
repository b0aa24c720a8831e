package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Every ApiErr wraps exactly one of these so callers can branch
// with errors.Is regardless of the user-facing message.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("resource conflict")
	ErrForbidden       = errors.New("operation not allowed")
	ErrNotFound        = errors.New("not found")
	ErrUnexpected      = errors.New("unexpected failure")
)

type ApiErr struct {
	StatusCode int
	Message    string // user-facing message, written as {"message": ...}
	err        error
	Cause      error // The underlying cause of the error
}

func NewApiErr(statusCode int, kind error, message string) *ApiErr {
	return &ApiErr{
		StatusCode: statusCode,
		Message:    message,
		err:        kind,
	}
}

// implements error interface. this allows us to pass an instance of ApiErr as an argument of type `error`
func (e *ApiErr) Error() string {
	return e.Message
}

// GetFullError returns a recursive error message including all causes
func (e *ApiErr) GetFullError() string {
	msg := e.Error()
	if e.Cause != nil {
		var apiErr *ApiErr
		if errors.As(e.Cause, &apiErr) {
			msg = fmt.Sprintf("%s -> %s", msg, apiErr.GetFullError())
		} else {
			msg = fmt.Sprintf("%s -> %s", msg, e.Cause.Error())
		}
	}
	return msg
}

// this function allows us to do the following:
// err := errs.NotFound("...")
// errors.Is(err, errs.ErrNotFound) ==> evaluates to true
func (e *ApiErr) Unwrap() error {
	return e.err
}

// Unauthenticated is returned when no caller identity could be resolved.
func Unauthenticated(message string) *ApiErr {
	return NewApiErr(http.StatusUnauthorized, ErrUnauthenticated, message)
}

func InvalidArgument(message string) *ApiErr {
	return NewApiErr(http.StatusBadRequest, ErrInvalidArgument, message)
}

// Conflict is reported as 400 rather than 409: clients of this API treat a
// duplicate tag name or a taken idea as a rejected request.
func Conflict(message string) *ApiErr {
	return NewApiErr(http.StatusBadRequest, ErrConflict, message)
}

func Forbidden(message string) *ApiErr {
	return NewApiErr(http.StatusForbidden, ErrForbidden, message)
}

func NotFound(message string) *ApiErr {
	return NewApiErr(http.StatusNotFound, ErrNotFound, message)
}

// Unexpected wraps an infrastructure failure. The cause's message is passed
// through to the client.
func Unexpected(cause error) *ApiErr {
	msg := ErrUnexpected.Error()
	if cause != nil {
		msg = cause.Error()
	}
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		Message:    msg,
		err:        ErrUnexpected,
		Cause:      cause,
	}
}

func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}

func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsUnexpected(err error) bool {
	return errors.Is(err, ErrUnexpected)
}

// StatusCode returns the HTTP status for err, defaulting to 500 for anything
// that is not an ApiErr.
func StatusCode(err error) int {
	var apiErr *ApiErr
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return http.StatusInternalServerError
}
