package query

import (
	"errors"
	"fmt"
)

// Sentinel errors - use with errors.Is() for matching
var (
	// ErrDuplicateOperator is returned when an exactly-once operator (SELECT, FROM,
	// GROUPBY, ORDERBY, EXECUTE) is used a second time on the same query
	ErrDuplicateOperator = errors.New("duplicate operator")

	// ErrNilFunction is returned when a nil selector, predicate or comparator is configured
	ErrNilFunction = errors.New("nil function")

	// ErrInvalidGroupKey is returned when a group-by selector yields a key that cannot be compared
	ErrInvalidGroupKey = errors.New("invalid group key")

	// ErrInvalidCursor is returned when a page cursor cannot be decoded
	ErrInvalidCursor = errors.New("invalid cursor")

	// ErrInvalidQuery is returned when the query is executed through the wrong handle
	ErrInvalidQuery = errors.New("invalid query")
)

// OperatorError wraps an error with the operator that raised it
type OperatorError struct {
	Operator Operator
	Err      error
}

func (e *OperatorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Operator, e.Err)
}

func (e *OperatorError) Unwrap() error {
	return e.Err
}

// NewOperatorError creates a new OperatorError
func NewOperatorError(op Operator, err error) error {
	if err == nil {
		return nil
	}
	return &OperatorError{
		Operator: op,
		Err:      err,
	}
}

// DuplicateOperatorError creates an error for a second use of an exactly-once operator
func DuplicateOperatorError(op Operator) error {
	return NewOperatorError(op, ErrDuplicateOperator)
}
