package errors

import "fmt"

// ErrorCode represents a Tally error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// TallyError represents a structured error with code, status, and details.
type TallyError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *TallyError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *TallyError {
	return &TallyError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing entry or file.
func NewNotFound(identifier string) *TallyError {
	return &TallyError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *TallyError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &TallyError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a TallyError with the given code.
func Is(err error, code ErrorCode) bool {
	if tErr, ok := err.(*TallyError); ok {
		return tErr.Code == code
	}
	return false
}
