// File: internal/services/gemini/errors.go
package gemini

import "fmt"

type ErrorType string

const (
	ErrTypeConfig         ErrorType = "CONFIG"
	ErrTypeValidation     ErrorType = "VALIDATION"
	ErrTypeNetwork        ErrorType = "NETWORK"
	ErrTypeAPI            ErrorType = "API"
	ErrTypeParse          ErrorType = "PARSE"
	ErrTypeRetryExhausted ErrorType = "RETRY_EXHAUSTED"
)

// GeminiError is the typed failure for every remote call. Retryable is set
// once by the client from the upstream signal (HTTP 503 or an UNAVAILABLE
// status marker) so callers never inspect message strings.
type GeminiError struct {
	Type      ErrorType
	Code      int    // HTTP status for API errors
	Status    string // provider status marker, e.g. "UNAVAILABLE"
	Operation string
	Message   string
	Retryable bool
	Cause     error
}

func (e *GeminiError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Gemini %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("Gemini %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *GeminiError) Unwrap() error { return e.Cause }

func NewValidationError(operation, msg string) *GeminiError {
	return &GeminiError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

func NewNetworkError(operation, msg string, cause error) *GeminiError {
	return &GeminiError{Type: ErrTypeNetwork, Operation: operation, Message: msg, Cause: cause}
}

func NewAPIError(operation string, code int, status, msg string) *GeminiError {
	return &GeminiError{
		Type:      ErrTypeAPI,
		Operation: operation,
		Code:      code,
		Status:    status,
		Message:   msg,
		Retryable: code == 503 || status == "UNAVAILABLE",
	}
}

func NewParseError(operation, msg string, cause error) *GeminiError {
	return &GeminiError{Type: ErrTypeParse, Operation: operation, Message: msg, Cause: cause}
}

func NewRetryExhaustedError(operation string, attempts int, cause error) *GeminiError {
	return &GeminiError{
		Type:      ErrTypeRetryExhausted,
		Operation: operation,
		Message:   fmt.Sprintf("call failed after %d attempts", attempts),
		Cause:     cause,
	}
}
