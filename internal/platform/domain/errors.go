package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a DomainError for transport mapping.
type ErrorCode string

const (
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeValidation   ErrorCode = "VALIDATION"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeConflict     ErrorCode = "CONFLICT"
	CodeInvalidState ErrorCode = "INVALID_STATE"
	CodeUnknownState ErrorCode = "UNKNOWN_STATE"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
)

// DomainError is a typed business error carrying a message safe to return to callers.
type DomainError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped cause, if any.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewNotFoundError reports an unknown entity id.
func NewNotFoundError(entity, id string) *DomainError {
	return &DomainError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with id %s not found", entity, id),
	}
}

// NewValidationError reports malformed input.
func NewValidationError(message string) *DomainError {
	return &DomainError{Code: CodeValidation, Message: message}
}

// NewForbiddenError reports an actor that may not perform the action.
func NewForbiddenError(message string) *DomainError {
	return &DomainError{Code: CodeForbidden, Message: message}
}

// NewConflictError reports a request that contradicts current state.
func NewConflictError(message string) *DomainError {
	return &DomainError{Code: CodeConflict, Message: message}
}

// NewInvalidStateError reports a forbidden status transition.
func NewInvalidStateError(from, to string) *DomainError {
	return &DomainError{
		Code:    CodeInvalidState,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
	}
}

// NewUnknownStateError reports an unrecognized state filter token.
func NewUnknownStateError(state string) *DomainError {
	return &DomainError{
		Code:    CodeUnknownState,
		Message: fmt.Sprintf("Unknown state: %s", state),
	}
}

// NewUnauthorizedError reports a missing or invalid identity.
func NewUnauthorizedError(message string) *DomainError {
	return &DomainError{Code: CodeUnauthorized, Message: message}
}

// CodeOf returns the code of the first DomainError in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code, true
	}
	return "", false
}

// IsNotFound reports whether err is a not-found DomainError.
func IsNotFound(err error) bool {
	code, ok := CodeOf(err)
	return ok && code == CodeNotFound
}

// IsConflict reports whether err is a conflict DomainError.
func IsConflict(err error) bool {
	code, ok := CodeOf(err)
	return ok && code == CodeConflict
}
