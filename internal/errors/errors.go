package errors

import "fmt"

// ErrorCode classifies a history browser error.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrOutOfRange     ErrorCode = "OUT_OF_RANGE"
	ErrInternal       ErrorCode = "INTERNAL"
)

// HistoryError is a structured error with a code and optional details.
type HistoryError struct {
	Code    ErrorCode
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *HistoryError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates an error for invalid command arguments.
func NewInvalidRequest(msg string) *HistoryError {
	return &HistoryError{
		Code:    ErrInvalidRequest,
		Message: msg,
	}
}

// NewSessionNotFound creates an error for an unknown session ID.
func NewSessionNotFound(id string) *HistoryError {
	return &HistoryError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("session ID %q not found", id),
		Details: map[string]any{"session_id": id},
	}
}

// NewOutOfRange creates an error for a session number outside 1..total.
func NewOutOfRange(number, total int) *HistoryError {
	return &HistoryError{
		Code:    ErrOutOfRange,
		Message: fmt.Sprintf("session number %d out of range (1-%d)", number, total),
		Details: map[string]any{"number": number, "total": total},
	}
}

// NewInternal wraps an unexpected internal error.
func NewInternal(err error) *HistoryError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &HistoryError{
		Code:    ErrInternal,
		Message: msg,
	}
}

// Is checks if an error is a HistoryError with the given code.
func Is(err error, code ErrorCode) bool {
	if hErr, ok := err.(*HistoryError); ok {
		return hErr.Code == code
	}
	return false
}
