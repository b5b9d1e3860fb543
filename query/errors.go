package query

import (
	"errors"
	"fmt"
)

// ErrEmptyResult is returned when a single-record lookup comes back empty
var ErrEmptyResult = errors.New("no record returned")

// Error types for query operations
type (
	// ValidationError indicates a malformed filter argument
	ValidationError struct {
		Argument string
		Value    string
		Reason   string
		Err      error
	}

	// DataError indicates a record lacking a field a filter needs
	DataError struct {
		Field  string
		Index  int
		Reason string
	}

	// EvaluationError indicates a where expression failed against a record
	EvaluationError struct {
		Expression string
		Index      int
		Err        error
	}
)

func (e *ValidationError) Error() string {
	return fmt.Sprintf("incorrect %s '%s': %s", e.Argument, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func (e *DataError) Error() string {
	return fmt.Sprintf("record %d: field '%s': %s", e.Index, e.Field, e.Reason)
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("record %d: evaluating '%s': %v", e.Index, e.Expression, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
