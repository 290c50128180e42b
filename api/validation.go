// Package api provides the HTTP front end and its request validation.
package api

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// MaxQueryLength bounds the q parameter in runes.
	MaxQueryLength = 256

	DefaultSuggestLimit = 5
	MaxSuggestLimit     = 50
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateQuery validates the raw search term. Blank queries are valid and
// answered with an empty result.
func ValidateQuery(query string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if !utf8.ValidString(query) {
		result.AddError("q", "Query must be valid UTF-8")
		return result
	}
	if n := utf8.RuneCountInString(query); n > MaxQueryLength {
		result.AddError("q", fmt.Sprintf("Query is %d characters long; the maximum is %d", n, MaxQueryLength))
	}
	return result
}

// ValidateDocumentID validates a document ID
func ValidateDocumentID(documentID string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if documentID == "" {
		result.AddError("filename", "Document ID is required")
		return result
	}

	if strings.TrimSpace(documentID) != documentID {
		result.AddError("filename", "Document ID cannot have leading or trailing whitespace")
		return result
	}

	return result
}

// ValidateLimit parses a suggestion limit between 1 and MaxSuggestLimit.
func ValidateLimit(raw string) (int, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	limit, err := strconv.Atoi(raw)
	if err != nil {
		result.AddError("limit", "Limit must be an integer")
		return 0, result
	}
	if limit < 1 || limit > MaxSuggestLimit {
		result.AddError("limit", fmt.Sprintf("Limit must be between 1 and %d", MaxSuggestLimit))
		return 0, result
	}
	return limit, result
}
