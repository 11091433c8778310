// File: internal/services/errors.go
package services

import "fmt"

type ErrorType string

const (
	ErrTypeValidation    ErrorType = "VALIDATION"
	ErrTypeNotFound      ErrorType = "NOT_FOUND"
	ErrTypeEmptyResponse ErrorType = "EMPTY_RESPONSE"
	ErrTypeStore         ErrorType = "STORE"
	ErrTypeUpstream      ErrorType = "UPSTREAM"
)

// ServiceError is the workflow-level failure handed to HTTP handlers, which
// map the Type onto a response status.
type ServiceError struct {
	Type      ErrorType
	Operation string
	Message   string
	Cause     error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Cause }

func NewValidationError(operation, msg string) *ServiceError {
	return &ServiceError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

func NewNotFoundError(operation, msg string) *ServiceError {
	return &ServiceError{Type: ErrTypeNotFound, Operation: operation, Message: msg}
}

func NewEmptyResponseError(operation string) *ServiceError {
	return &ServiceError{Type: ErrTypeEmptyResponse, Operation: operation, Message: "AI returned an empty response"}
}

func NewStoreError(operation string, cause error) *ServiceError {
	return &ServiceError{Type: ErrTypeStore, Operation: operation, Message: "store operation failed", Cause: cause}
}

func NewUpstreamError(operation string, cause error) *ServiceError {
	return &ServiceError{Type: ErrTypeUpstream, Operation: operation, Message: "upstream call failed", Cause: cause}
}
