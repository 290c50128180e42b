package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestDegreeError(t *testing.T) {
	err := NewDegreeError(1)

	expectedMsg := "b-tree degree must be at least 2, got 1"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrInvalidDegree) {
		t.Error("Expected error to match ErrInvalidDegree sentinel")
	}
	if errors.Is(err, ErrInvalidInput) {
		t.Error("Error should not match ErrInvalidInput")
	}
}

func TestDocumentNotFoundError(t *testing.T) {
	err := NewDocumentNotFoundError("doc1.txt")

	expectedMsg := "document with ID 'doc1.txt' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrDocumentNotFound) {
		t.Error("Expected error to match ErrDocumentNotFound sentinel")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("documentID", "cannot be empty")

	expectedMsg := "validation error for field 'documentID': cannot be empty"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	err2 := NewValidationError("", "cannot be empty")
	expectedMsg2 := "validation error: cannot be empty"
	if err2.Error() != expectedMsg2 {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg2, err2.Error())
	}

	if !errors.Is(err, ErrInvalidInput) || !errors.Is(err2, ErrInvalidInput) {
		t.Error("Expected validation errors to match ErrInvalidInput sentinel")
	}
}

func TestSettingsError(t *testing.T) {
	single := NewSettingsError([]string{"degree must be at least 2"})
	if single.Error() != "invalid settings: degree must be at least 2" {
		t.Errorf("unexpected message %q", single.Error())
	}

	multi := NewSettingsError([]string{"a", "b"})
	if multi.Error() != "invalid settings (2 problems): [a b]" {
		t.Errorf("unexpected message %q", multi.Error())
	}

	if !errors.Is(multi, ErrInvalidSettings) {
		t.Error("Expected error to match ErrInvalidSettings sentinel")
	}
}

func TestErrorChaining(t *testing.T) {
	wrappedErr := fmt.Errorf("failed to build engine: %w", NewDegreeError(0))

	if !errors.Is(wrappedErr, ErrInvalidDegree) {
		t.Error("Expected wrapped error to still match ErrInvalidDegree sentinel")
	}

	var degreeErr *DegreeError
	if !errors.As(wrappedErr, &degreeErr) {
		t.Fatal("Expected to be able to unwrap to DegreeError")
	}
	if degreeErr.Degree != 0 {
		t.Errorf("Expected degree 0, got %d", degreeErr.Degree)
	}
}
