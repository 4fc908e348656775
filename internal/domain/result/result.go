// Package result carries the outcome of a use case to the transport layer
// without panics or sentinel checks leaking across that boundary.
package result

import (
	"errors"
	"net/http"

	"github.com/guttosm/portfoli/internal/domain/models"
)

// Category tells the transport layer how to present an Error.
type Category string

const (
	Validation   Category = "validation"
	Unauthorized Category = "unauthorized"
	NotFound     Category = "not_found"
	Conflict     Category = "conflict"
	Unexpected   Category = "unexpected"
)

// Error is a categorised failure. FieldErrors is only set for Validation.
type Error struct {
	Message     string
	Category    Category
	FieldErrors map[string][]string
	cause       error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// HTTPStatus maps the category onto a response status.
func (e *Error) HTTPStatus() int {
	switch e.Category {
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

func NewError(message string) *Error {
	return &Error{Message: message, Category: Validation}
}

func NewValidationError(fields map[string][]string) *Error {
	return &Error{Message: "one or more validation errors occurred", Category: Validation, FieldErrors: fields}
}

func NewFieldError(field, message string) *Error {
	return NewValidationError(map[string][]string{field: {message}})
}

func NewUnauthorizedError(message string) *Error {
	return &Error{Message: message, Category: Unauthorized}
}

func NewNotFoundError(message string) *Error {
	return &Error{Message: message, Category: NotFound}
}

func NewUnexpectedError(err error) *Error {
	return &Error{Message: "an unexpected error occurred", Category: Unexpected, cause: err}
}

// FromError classifies err. Invariant violations keep their message so the
// caller sees exactly which rule was broken.
func FromError(err error) *Error {
	var re *Error
	var verrs models.ValidationErrors
	switch {
	case err == nil:
		return nil
	case errors.As(err, &re):
		return re
	case errors.As(err, &verrs):
		e := NewValidationError(verrs)
		e.cause = err
		return e
	case errors.Is(err, models.ErrInvalidOperation):
		return &Error{Message: err.Error(), Category: Validation, cause: err}
	case errors.Is(err, models.ErrNotFound):
		return &Error{Message: err.Error(), Category: NotFound, cause: err}
	case errors.Is(err, models.ErrConflict):
		return &Error{Message: err.Error(), Category: Conflict, cause: err}
	default:
		return NewUnexpectedError(err)
	}
}

// Result holds either a value or an Error.
type Result[T any] struct {
	value T
	err   *Error
}

// Empty is the value of results that only signal success.
type Empty = struct{}

func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

func Fail[T any](err *Error) Result[T] {
	if err == nil {
		err = NewUnexpectedError(errors.New("failure without error"))
	}
	return Result[T]{err: err}
}

// FailWith is Fail(FromError(err)).
func FailWith[T any](err error) Result[T] {
	return Fail[T](FromError(err))
}

func (r Result[T]) IsSuccess() bool { return r.err == nil }
func (r Result[T]) IsError() bool { return r.err != nil }
func (r Result[T]) Value() T { return r.value }
func (r Result[T]) Err() *Error { return r.err }

// Unwrap returns the value and error as a conventional Go pair.
func (r Result[T]) Unwrap() (T, error) {
	if r.err != nil {
		var zero T
		return zero, r.err
	}
	return r.value, nil
}

// Match calls exactly one of the two functions.
func Match[T, R any](r Result[T], onSuccess func(T) R, onError func(*Error) R) R {
	if r.err != nil {
		return onError(r.err)
	}
	return onSuccess(r.value)
}
