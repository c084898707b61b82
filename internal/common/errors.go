// Package common defines shared constants and sentinel errors used across
// the todo server and its command-line client. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors. The message of ErrorTodoNotFound is part of the
	// public API contract and is returned to clients verbatim.
	ErrorTodoNotFound = errors.New("Todo item with the specified ID not found") //nolint:staticcheck
	ErrorInternal     = errors.New("internal error")

	// Request payload errors.
	ErrorValidation = errors.New("validation error")
	ErrorInvalidID  = errors.New("invalid id")
)
