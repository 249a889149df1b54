package model

import (
	"errors"
	"fmt"
)

// Validation no-op conditions. Callers may treat these as silent refusals.
var (
	// ErrLastItem is returned when removing the sole remaining line item.
	ErrLastItem = errors.New("cannot remove last remaining item")
	// ErrItemNotFound is returned when no item matches the given identifier.
	ErrItemNotFound = errors.New("item not found")
	// ErrDuplicateEntry is returned when a registry entry already exists.
	ErrDuplicateEntry = errors.New("entry already saved")
	// ErrEmptyEntry is returned when saving a blank registry entry.
	ErrEmptyEntry = errors.New("entry is empty")
	// ErrExportBusy is returned when an export is already in progress.
	ErrExportBusy = errors.New("export already in progress")
)

// ValidationError represents an invariant violation on an invoice field.
type ValidationError struct {
	Field   string
	Value   interface{}
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation failed on %s: %s (value=%v, rule=%s)", e.Field, e.Message, e.Value, e.Rule)
	}
	return fmt.Sprintf("validation failed on %s: %s (rule=%s)", e.Field, e.Message, e.Rule)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, rule, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	}
}

// ExportError represents a failure inside one export operation. A failed
// export never corrupts the editing session; the error carries the format
// and pipeline stage for diagnosis.
type ExportError struct {
	Format string
	Stage  string
	Cause  error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export failed [%s/%s]: %v", e.Format, e.Stage, e.Cause)
	}
	return fmt.Sprintf("export failed [%s/%s]", e.Format, e.Stage)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}

// NewExportError creates a new export error
func NewExportError(format, stage string, cause error) *ExportError {
	return &ExportError{
		Format: format,
		Stage:  stage,
		Cause:  cause,
	}
}
