package field

import (
	"errors"
	"fmt"
)

// Sentinel errors - use with errors.Is() for matching
var (
	// ErrInvalidFieldName is returned when a field name is empty or malformed
	ErrInvalidFieldName = errors.New("invalid field name")

	// ErrFieldNotAllowed is returned when a field is not in the AllowedFields whitelist
	ErrFieldNotAllowed = errors.New("field not allowed")

	// ErrFieldNotFound is returned when an item has no field with the given name
	ErrFieldNotFound = errors.New("field not found")

	// ErrInvalidOperator is returned for operators outside the known set or
	// given a value of the wrong shape
	ErrInvalidOperator = errors.New("invalid operator")

	// ErrRegexNotSupported is returned when REGEX operator is used but disabled
	ErrRegexNotSupported = errors.New("regex operator not supported")
)

// FieldError wraps an error with field name information
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field '%s': %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// NewFieldError creates a new FieldError
func NewFieldError(field string, err error) error {
	return &FieldError{
		Field: field,
		Err:   err,
	}
}
