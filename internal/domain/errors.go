package domain

import (
	"errors"
	"fmt"
)

// NotFoundError reports a drug or enzyme id that is absent from the graph.
// Query operations return it instead of fabricating a stub record.
type NotFoundError struct {
	Kind string // "drug" or "enzyme"
	ID   string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Kind, e.ID, ErrNotFound)
}

// Unwrap allows errors.Is(err, ErrNotFound) checks.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewDrugNotFoundError creates a NotFoundError for a drug id.
func NewDrugNotFoundError(id string) *NotFoundError {
	return &NotFoundError{Kind: "drug", ID: id}
}

// DataIntegrityError reports a build-time reference to an unknown node.
// It is always fatal to graph construction, never swallowed.
type DataIntegrityError struct {
	Detail string
}

// Error implements the error interface
func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("data integrity violation: %s", e.Detail)
}

// NewDataIntegrityError creates a DataIntegrityError with a formatted detail.
func NewDataIntegrityError(format string, args ...any) *DataIntegrityError {
	return &DataIntegrityError{Detail: fmt.Sprintf(format, args...)}
}

// InvalidInputError reports a malformed caller request, such as a risk check
// over fewer than two drugs or a duplicated drug in the same request.
type InvalidInputError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input for %q: %s", e.Field, e.Message)
}

// NewInvalidInputError creates a new InvalidInputError.
func NewInvalidInputError(field, message string) *InvalidInputError {
	return &InvalidInputError{Field: field, Message: message}
}

// IsNotFound reports whether err is (or wraps) an entity-absent error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
