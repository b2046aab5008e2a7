package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard sentinel errors for common cases.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInternal           = errors.New("internal error")
	ErrServiceUnavail     = errors.New("service unavailable")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrNoCarrierAvailable = errors.New("no carrier available")
	ErrDecode             = errors.New("malformed token")
)

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

// NotFound creates a 404 error.
func NotFound(message string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: message,
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// NotAuthenticated creates a 401 error.
func NotAuthenticated(message string) *AppError {
	return &AppError{
		Code:    "NOT_AUTHENTICATED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     ErrNotAuthenticated,
	}
}

// Conflict creates a 409 error.
func Conflict(message string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Message: message,
		Status:  http.StatusConflict,
		Err:     ErrConflict,
	}
}

// Forbidden creates a 403 error.
func Forbidden(message string) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
		Status:  http.StatusForbidden,
		Err:     ErrForbidden,
	}
}

// Internal creates a 500 error.
func Internal(message string, err error) *AppError {
	if err == nil {
		err = ErrInternal
	}
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// EmptyCart creates a 400 error for checkout attempts on an empty cart.
func EmptyCart() *AppError {
	return &AppError{
		Code:    "EMPTY_CART",
		Message: "carrinho vazio",
		Status:  http.StatusBadRequest,
		Err:     ErrEmptyCart,
	}
}

// NoCarrierAvailable creates a 404 error for shipping quotes where every
// candidate carrier reported a failure.
func NoCarrierAvailable() *AppError {
	return &AppError{
		Code:    "NO_CARRIER_AVAILABLE",
		Message: "nenhuma transportadora disponível para o CEP informado",
		Status:  http.StatusNotFound,
		Err:     ErrNoCarrierAvailable,
	}
}

// Remote creates an error for a non-2xx response from an external service.
// The upstream status code is preserved so proxy surfaces can forward it.
func Remote(service string, status int, message string) *AppError {
	err := &AppError{
		Code:    "REMOTE_ERROR",
		Message: fmt.Sprintf("%s: %s", service, message),
		Status:  status,
	}

	switch status {
	case http.StatusUnauthorized:
		err.Err = ErrNotAuthenticated
	case http.StatusNotFound:
		err.Err = ErrNotFound
	case http.StatusBadRequest:
		err.Err = ErrInvalidInput
	case http.StatusConflict:
		err.Err = ErrConflict
	case http.StatusServiceUnavailable:
		err.Err = ErrServiceUnavail
	default:
		err.Err = ErrInternal
	}

	return err
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoCarrierAvailable):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrEmptyCart), errors.Is(err, ErrDecode):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrServiceUnavail):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
