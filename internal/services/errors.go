package services

import (
	"fmt"
	"sort"
	"strings"

	"toko/internal/repositories"
)

// ErrProductNotFound is returned (wrapped) when an operation addresses an unknown product.
var ErrProductNotFound = repositories.ErrProductNotFound

// ValidationError carries per-field messages for rejected input.
type ValidationError struct {
	Fields map[string][]string `json:"errors"`
}

// NewValidationError returns an empty ValidationError.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add records a message for field. Repeated messages are kept once.
func (e *ValidationError) Add(field, message string) {
	for _, m := range e.Fields[field] {
		if m == message {
			return
		}
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// HasErrors reports whether any field message was recorded.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e.Fields[f], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
