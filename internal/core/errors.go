// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors used by repositories and services. Handlers never
// inspect error text; everything routes through Kind.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
)

// Kind classifies an error for HTTP status mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	KindRateLimited
	KindBadRequest
)

var statusByKind = map[Kind]int{
	KindInternal:        http.StatusInternalServerError,
	KindValidation:      http.StatusUnprocessableEntity,
	KindUnauthenticated: http.StatusUnauthorized,
	KindForbidden:       http.StatusForbidden,
	KindNotFound:        http.StatusNotFound,
	KindConflict:        http.StatusConflict,
	KindRateLimited:     http.StatusTooManyRequests,
	KindBadRequest:      http.StatusBadRequest,
}

// HTTPStatus returns the response status for this kind.
func (k Kind) HTTPStatus() int {
	if status, ok := statusByKind[k]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// FieldError is a single validation issue.
type FieldError struct {
	Location string `json:"location"`
	Field    string `json:"field"`
	Message  string `json:"message"`
}

// AppError is the error type handlers translate into a response.
type AppError struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func ValidationError(fields []FieldError) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Message: "validation failed",
		Fields:  fields,
	}
}

func UnauthenticatedError(message string) *AppError {
	if message == "" {
		message = "authentication required"
	}
	return &AppError{Kind: KindUnauthenticated, Message: message}
}

func ForbiddenError(message string) *AppError {
	if message == "" {
		message = "insufficient permissions"
	}
	return &AppError{Kind: KindForbidden, Message: message}
}

func NotFoundError(entity string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", entity),
	}
}

func ConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func BadRequestError(message string) *AppError {
	return &AppError{Kind: KindBadRequest, Message: message}
}

func InternalError(err error) *AppError {
	return &AppError{
		Kind:    KindInternal,
		Message: "internal server error",
		Err:     err,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// FromError resolves any error to an AppError, mapping the sentinel
// errors carried up from repositories and services.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return NotFoundError("resource")
	case errors.Is(err, ErrConflict):
		return ConflictError("resource already exists")
	case errors.Is(err, ErrInvalidCredentials):
		return UnauthenticatedError("invalid email or password")
	case errors.Is(err, ErrUnauthenticated):
		return UnauthenticatedError("")
	case errors.Is(err, ErrForbidden):
		return ForbiddenError("")
	case errors.Is(err, ErrInvalidInput):
		return BadRequestError("invalid input")
	default:
		return InternalError(err)
	}
}
