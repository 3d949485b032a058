// Package apperror defines the error categories the API surfaces and their
// HTTP status mapping. Handlers translate any *AppError into a structured
// {"error": message} body; everything else is treated as an internal failure.
package apperror

import "net/http"

// Kind is the category of an application error.
type Kind int

const (
	// Validation covers malformed or missing fields, duplicate usernames
	// and invalid order references.
	Validation Kind = iota
	// Unauthorized covers missing/invalid tokens and insufficient roles.
	Unauthorized
	// NotFound means a well-formed id with no matching record.
	NotFound
	// Conflict covers illegal state transitions.
	Conflict
	// Internal covers unexpected store failures.
	Internal
)

// AppError carries a category, a client-safe message, and an optional
// underlying cause that is never serialized.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status for the error's kind.
func (e *AppError) StatusCode() int {
	switch e.Kind {
	case Validation:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func NewValidation(message string, err error) *AppError {
	return New(Validation, message, err)
}

func NewUnauthorized(message string, err error) *AppError {
	return New(Unauthorized, message, err)
}

func NewNotFound(message string, err error) *AppError {
	return New(NotFound, message, err)
}

func NewConflict(message string, err error) *AppError {
	return New(Conflict, message, err)
}

func NewInternal(message string, err error) *AppError {
	return New(Internal, message, err)
}
