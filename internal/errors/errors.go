package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrInvalidDegree is returned when a B-tree is configured with a branching parameter below 2
	ErrInvalidDegree = errors.New("invalid b-tree degree")

	// ErrDocumentNotFound is returned when a document is not found
	ErrDocumentNotFound = errors.New("document not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidSettings is returned when configuration validation fails
	ErrInvalidSettings = errors.New("invalid settings")
)

// DegreeError represents a B-tree construction with an unusable branching parameter
type DegreeError struct {
	Degree int
}

func (e *DegreeError) Error() string {
	return fmt.Sprintf("b-tree degree must be at least 2, got %d", e.Degree)
}

func (e *DegreeError) Is(target error) bool {
	return target == ErrInvalidDegree
}

// NewDegreeError creates a new DegreeError
func NewDegreeError(degree int) *DegreeError {
	return &DegreeError{Degree: degree}
}

// DocumentNotFoundError represents a document not found error with context
type DocumentNotFoundError struct {
	DocumentID string
}

func (e *DocumentNotFoundError) Error() string {
	return fmt.Sprintf("document with ID '%s' not found", e.DocumentID)
}

func (e *DocumentNotFoundError) Is(target error) bool {
	return target == ErrDocumentNotFound
}

// NewDocumentNotFoundError creates a new DocumentNotFoundError
func NewDocumentNotFoundError(documentID string) *DocumentNotFoundError {
	return &DocumentNotFoundError{DocumentID: documentID}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// SettingsError collects every problem found while validating settings
type SettingsError struct {
	Problems []string
}

func (e *SettingsError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid settings: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid settings (%d problems): %v", len(e.Problems), e.Problems)
}

func (e *SettingsError) Is(target error) bool {
	return target == ErrInvalidSettings
}

// NewSettingsError creates a new SettingsError
func NewSettingsError(problems []string) *SettingsError {
	return &SettingsError{Problems: problems}
}
