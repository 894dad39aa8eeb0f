// Package apperr defines the error taxonomy shared by services and the HTTP
// layer.
//
// Services return one of the typed errors below for conditions the caller can
// act on; anything else is treated as an unexpected failure. The API layer maps
// each type to a status code:
//
//   - ValidationError: 400 with a per-field message list
//   - NotFoundError: 404
//   - AuthError: 401
//   - ForbiddenError: 403
//   - ConflictError: 400, a mutation blocked by dependent rows
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Re-exported so callers can import a single errors package.
var (
	Is  = errors.Is
	As  = errors.As
	New = errors.New
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"path"`
	Message string `json:"msg"`
	Value   any    `json:"value,omitempty"`
}

// ValidationError reports malformed input.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

// NewValidationError creates a ValidationError with the given summary.
func NewValidationError(message string, fields ...FieldError) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

// FieldInvalid is a shortcut for a single-field validation failure.
func FieldInvalid(field, message string) *ValidationError {
	return NewValidationError(InvalidInputMessage, FieldError{Field: field, Message: message})
}

// InvalidInputMessage is the summary attached to field-level failures.
const InvalidInputMessage = "Datos de entrada inválidos"

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation error: " + e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("validation error: %s [%s]", e.Message, strings.Join(parts, "; "))
}

// Is matches any *ValidationError.
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// NotFoundError reports a missing entity, either the one addressed by the
// request or one it references.
type NotFoundError struct {
	Resource string
	ID       string
	Message  string
}

// NewNotFoundError creates a NotFoundError for resource with the given id.
func NewNotFoundError(resource string, id any) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: fmt.Sprint(id), Message: notFoundMessages[resource]}
}

// WithMessage overrides the user-facing message.
func (e *NotFoundError) WithMessage(msg string) *NotFoundError {
	e.Message = msg
	return e
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Resource, e.ID)
}

// UserMessage is the text returned to API callers.
func (e *NotFoundError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return "Recurso no encontrado"
}

// Is matches any *NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

var notFoundMessages = map[string]string{
	"task":     "Tarea no encontrada",
	"user":     "Usuario no encontrado",
	"sector":   "Sector no encontrado",
	"meeting":  "Reunión no encontrada",
	"resource": "Recurso no encontrado",
	"creator":  "Creador de la reunión no encontrado",
}

// AuthError reports missing or rejected credentials. The message never says
// which part of the credentials was wrong.
type AuthError struct {
	Message string
	cause   error
}

// NewAuthError creates an AuthError, optionally wrapping the cause for logs.
func NewAuthError(message string, cause error) *AuthError {
	return &AuthError{Message: message, cause: cause}
}

func (e *AuthError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("auth error: %s: %v", e.Message, e.cause)
	}
	return "auth error: " + e.Message
}

func (e *AuthError) Unwrap() error { return e.cause }

// Is matches any *AuthError.
func (e *AuthError) Is(target error) bool {
	_, ok := target.(*AuthError)
	return ok
}

// ForbiddenError reports an authenticated caller without the required role.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string { return "forbidden: " + e.Message }

// Is matches any *ForbiddenError.
func (e *ForbiddenError) Is(target error) bool {
	_, ok := target.(*ForbiddenError)
	return ok
}

// ConflictError reports a mutation refused because other rows depend on the
// target.
type ConflictError struct {
	Message string
}

// NewConflictError creates a ConflictError.
func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func (e *ConflictError) Error() string { return "conflict: " + e.Message }

// Is matches any *ConflictError.
func (e *ConflictError) Is(target error) bool {
	_, ok := target.(*ConflictError)
	return ok
}

// IsExpected reports whether err belongs to the taxonomy, i.e. is not an
// unexpected store or runtime failure.
func IsExpected(err error) bool {
	var (
		validation *ValidationError
		notFound   *NotFoundError
		auth       *AuthError
		forbidden  *ForbiddenError
		conflict   *ConflictError
	)
	return errors.As(err, &validation) || errors.As(err, &notFound) ||
		errors.As(err, &auth) || errors.As(err, &forbidden) || errors.As(err, &conflict)
}
