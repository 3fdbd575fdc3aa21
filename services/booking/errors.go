package booking

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain error kinds. The boundary layer maps kind to an HTTP status
// and never exposes internal detail beyond the message.
const (
	KindValidation    = "validation"
	KindNotFound      = "not_found"
	KindAuthorization = "authorization"
	KindConflict      = "conflict"
)

// DomainError carries a stable kind and a human-readable message.
type DomainError struct {
	Kind    string
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewValidationError(msg string) error {
	return &DomainError{Kind: KindValidation, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &DomainError{Kind: KindNotFound, Message: msg}
}

func NewAuthorizationError(msg string) error {
	return &DomainError{Kind: KindAuthorization, Message: msg}
}

func NewConflictError(msg string) error {
	return &DomainError{Kind: KindConflict, Message: msg}
}

// ErrKind returns the domain kind of err, or "" for unexpected errors.
func ErrKind(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// PublicMessage returns the user-facing message for err. Unexpected
// errors get a generic message so internal detail never leaks.
func PublicMessage(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return "Internal server error"
}

// HTTPStatus maps a domain error to its response status. Unexpected
// errors map to 500.
func HTTPStatus(err error) int {
	switch ErrKind(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthorization:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
