package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestHistoryError_Error(t *testing.T) {
	err := NewInvalidRequest("query is required")
	if got := err.Error(); got != "INVALID_REQUEST: query is required" {
		t.Errorf("Error() = %q, want %q", got, "INVALID_REQUEST: query is required")
	}
}

func TestNewSessionNotFound(t *testing.T) {
	err := NewSessionNotFound("abc-123")
	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if !strings.Contains(err.Message, "abc-123") {
		t.Errorf("Message = %q, want it to contain the session ID", err.Message)
	}
	if err.Details["session_id"] != "abc-123" {
		t.Errorf("Details[session_id] = %v, want abc-123", err.Details["session_id"])
	}
}

func TestNewOutOfRange(t *testing.T) {
	err := NewOutOfRange(7, 3)
	if err.Code != ErrOutOfRange {
		t.Errorf("Code = %q, want %q", err.Code, ErrOutOfRange)
	}
	if !strings.Contains(err.Message, "(1-3)") {
		t.Errorf("Message = %q, want it to name the valid range", err.Message)
	}
}

func TestNewInternal_NilError(t *testing.T) {
	err := NewInternal(nil)
	if err.Message != "internal error" {
		t.Errorf("Message = %q, want %q", err.Message, "internal error")
	}
}

func TestIs(t *testing.T) {
	if !Is(NewInvalidRequest("x"), ErrInvalidRequest) {
		t.Error("Is() = false for matching code, want true")
	}
	if Is(NewInvalidRequest("x"), ErrNotFound) {
		t.Error("Is() = true for mismatched code, want false")
	}
	if Is(errors.New("plain"), ErrInternal) {
		t.Error("Is() = true for non-HistoryError, want false")
	}
}
