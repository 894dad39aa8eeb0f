package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	qt "github.com/frankban/quicktest"

	"universo/internal/apperr"
)

func TestNotFoundError(t *testing.T) {
	c := qt.New(t)

	err := apperr.NewNotFoundError("task", 42)
	c.Assert(err.Error(), qt.Equals, "task '42' not found")
	c.Assert(err.UserMessage(), qt.Equals, "Tarea no encontrada")

	wrapped := fmt.Errorf("get task: %w", err)
	c.Assert(errors.Is(wrapped, &apperr.NotFoundError{}), qt.IsTrue)

	var nf *apperr.NotFoundError
	c.Assert(errors.As(wrapped, &nf), qt.IsTrue)
	c.Assert(nf.Resource, qt.Equals, "task")
}

func TestNotFoundErrorFallbackMessage(t *testing.T) {
	c := qt.New(t)

	err := apperr.NewNotFoundError("widget", "x")
	c.Assert(err.UserMessage(), qt.Equals, "Recurso no encontrado")
	c.Assert(err.WithMessage("Tarea o Usuario no encontrado").UserMessage(), qt.Equals, "Tarea o Usuario no encontrado")
}

func TestValidationErrorMessage(t *testing.T) {
	c := qt.New(t)

	err := apperr.NewValidationError(apperr.InvalidInputMessage,
		apperr.FieldError{Field: "title", Message: "El título es obligatorio"},
		apperr.FieldError{Field: "priority", Message: "Prioridad inválida"},
	)
	c.Assert(err.Error(), qt.Equals,
		"validation error: Datos de entrada inválidos [title: El título es obligatorio; priority: Prioridad inválida]")
	c.Assert(errors.Is(err, &apperr.ValidationError{}), qt.IsTrue)
	c.Assert(errors.Is(err, &apperr.NotFoundError{}), qt.IsFalse)
}

func TestAuthErrorUnwrap(t *testing.T) {
	c := qt.New(t)

	cause := errors.New("signature is invalid")
	err := apperr.NewAuthError("No autorizado", cause)
	c.Assert(errors.Is(err, cause), qt.IsTrue)
	c.Assert(errors.Is(err, &apperr.AuthError{}), qt.IsTrue)
}

func TestIsExpected(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "validation", err: apperr.FieldInvalid("name", "El nombre es obligatorio"), want: true},
		{name: "not found", err: apperr.NewNotFoundError("user", 1), want: true},
		{name: "auth", err: apperr.NewAuthError("Credenciales inválidas", nil), want: true},
		{name: "forbidden", err: &apperr.ForbiddenError{Message: "x"}, want: true},
		{name: "conflict wrapped", err: fmt.Errorf("delete: %w", apperr.NewConflictError("x")), want: true},
		{name: "store failure", err: errors.New("database is locked"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qt.New(t).Assert(apperr.IsExpected(tt.err), qt.Equals, tt.want)
		})
	}
}
