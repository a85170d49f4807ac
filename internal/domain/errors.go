package domain

import "fmt"

// ValidationError indicates caller input violated a precondition.
// It maps to a client-side failure and is never retried.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError creates a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ExternalServiceError indicates a collaborator (model provider, sentiment
// sidecar) failed, is unreachable, or is misconfigured.
type ExternalServiceError struct {
	Msg string
	Err error
}

func (e *ExternalServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// NewExternalServiceError creates an ExternalServiceError with a formatted message.
func NewExternalServiceError(format string, args ...any) *ExternalServiceError {
	return &ExternalServiceError{Msg: fmt.Sprintf(format, args...)}
}

// WrapExternalServiceError wraps a cause with a service error message.
func WrapExternalServiceError(err error, format string, args ...any) *ExternalServiceError {
	return &ExternalServiceError{Msg: fmt.Sprintf(format, args...), Err: err}
}

// NotFoundError indicates the identified entity does not exist.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// NewNotFoundError creates a NotFoundError with a formatted message.
func NewNotFoundError(format string, args ...any) *NotFoundError {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// RepositoryError indicates persistence failed for reasons other than not-found.
type RepositoryError struct {
	Msg string
	Err error
}

func (e *RepositoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *RepositoryError) Unwrap() error { return e.Err }

// WrapRepositoryError wraps a cause with a repository error message.
func WrapRepositoryError(err error, format string, args ...any) *RepositoryError {
	return &RepositoryError{Msg: fmt.Sprintf(format, args...), Err: err}
}
