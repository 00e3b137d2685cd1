package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Codes reported to clients in error responses.
const (
	CodeNotFound      = "NOT_FOUND"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeValidation    = "VALIDATION_ERROR"
	CodeConflict      = "CONFLICT"
	CodePaymentFailed = "PAYMENT_FAILED"
	CodeUnavailable   = "SERVICE_UNAVAILABLE"
	CodeInternal      = "INTERNAL_ERROR"
)

// Sentinel errors. Every AppError unwraps to one of them, so callers can
// test the category with errors.Is.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrConflict       = errors.New("conflict")
	ErrServiceUnavail = errors.New("service unavailable")
	ErrPaymentFailed  = errors.New("payment failed")
)

type category struct {
	sentinel error
	code     string
	status   int
}

var categories = []category{
	{ErrNotFound, CodeNotFound, http.StatusNotFound},
	{ErrInvalidInput, CodeInvalidInput, http.StatusBadRequest},
	{ErrConflict, CodeConflict, http.StatusConflict},
	{ErrPaymentFailed, CodePaymentFailed, http.StatusUnprocessableEntity},
	{ErrServiceUnavail, CodeUnavailable, http.StatusServiceUnavailable},
}

// AppError represents a structured application error with HTTP status mapping.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newError(sentinel error, message string) *AppError {
	for _, c := range categories {
		if c.sentinel == sentinel {
			return &AppError{Code: c.code, Message: message, Status: c.status, Err: sentinel}
		}
	}
	return &AppError{Code: CodeInternal, Message: message, Status: http.StatusInternalServerError, Err: sentinel}
}

// NotFound creates a 404 error.
func NotFound(resource, id string) *AppError {
	return newError(ErrNotFound, fmt.Sprintf("%s with id %s not found", resource, id))
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return newError(ErrInvalidInput, message)
}

// Conflict creates a 409 error for a request that clashes with work in progress.
func Conflict(message string) *AppError {
	return newError(ErrConflict, message)
}

// PaymentFailed creates a 422 error for a rejected order submission.
func PaymentFailed(message string) *AppError {
	return newError(ErrPaymentFailed, message)
}

// Unavailable creates a 503 error for a backing dependency that cannot serve.
func Unavailable(dependency string, err error) *AppError {
	e := newError(ErrServiceUnavail, dependency+" is unavailable")
	e.Err = fmt.Errorf("%w: %v", ErrServiceUnavail, err)
	return e
}

// Internal creates a 500 error. The cause is kept for logs only.
func Internal(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// Classify returns the client-facing code and HTTP status of err. Errors
// outside every category are internal.
func Classify(err error) (code string, status int) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, appErr.Status
	}
	for _, c := range categories {
		if errors.Is(err, c.sentinel) {
			return c.code, c.status
		}
	}
	return CodeInternal, http.StatusInternalServerError
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	_, status := Classify(err)
	return status
}
