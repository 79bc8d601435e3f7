package apperr

import (
	"github.com/DjordjeVuckovic/infix-calc/internal/domain"
)

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// ExpressionError is an expression the calculator rejected. It wraps the
// tokenizer or evaluator error.
type ExpressionError struct {
	Failure domain.Failure
	Err     error
}

func (e *ExpressionError) Error() string {
	return e.Failure.Message
}

func (e *ExpressionError) Unwrap() error {
	return e.Err
}

func NewExpression(failure domain.Failure, err error) *ExpressionError {
	return &ExpressionError{Failure: failure, Err: err}
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " " + e.ID + " not found"
}

func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}
