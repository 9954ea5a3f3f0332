package errors

import (
	"errors"
	"fmt"
)

// InvalidParameterError reports a caller-supplied parameter outside its valid
// domain. The computation that received it is aborted; the caller can correct
// the parameter and retry.
type InvalidParameterError struct {
	Param  string
	Value  interface{}
	Reason string
}

// Error implements the error interface.
func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Param, e.Value, e.Reason)
}

// NewInvalidParameter creates an InvalidParameterError for the named parameter.
func NewInvalidParameter(param string, value interface{}, reason string) *InvalidParameterError {
	return &InvalidParameterError{Param: param, Value: value, Reason: reason}
}

// IsInvalidParameter reports whether err is (or wraps) an InvalidParameterError.
func IsInvalidParameter(err error) bool {
	var target *InvalidParameterError
	return errors.As(err, &target)
}

// InsufficientDataError reports that a series is too short for the requested
// computation. No partial result is produced.
type InsufficientDataError struct {
	What     string
	Required int
	Got      int
}

// Error implements the error interface.
func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for %s: need at least %d observations, got %d", e.What, e.Required, e.Got)
}

// NewInsufficientData creates an InsufficientDataError for the named computation.
func NewInsufficientData(what string, required, got int) *InsufficientDataError {
	return &InsufficientDataError{What: what, Required: required, Got: got}
}

// IsInsufficientData reports whether err is (or wraps) an InsufficientDataError.
func IsInsufficientData(err error) bool {
	var target *InsufficientDataError
	return errors.As(err, &target)
}

// InvalidInputError reports malformed input from a data collaborator, such as
// a price series with non-increasing timestamps. The input is never repaired
// by fabricating data; the error is propagated to the caller.
type InvalidInputError struct {
	Field  string
	Index  int
	Reason string
}

// Error implements the error interface.
func (e *InvalidInputError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("invalid input %s at index %d: %s", e.Field, e.Index, e.Reason)
	}
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
}

// NewInvalidInput creates an InvalidInputError for the named field and index.
// Pass index -1 when no position applies.
func NewInvalidInput(field string, index int, reason string) *InvalidInputError {
	return &InvalidInputError{Field: field, Index: index, Reason: reason}
}

// IsInvalidInput reports whether err is (or wraps) an InvalidInputError.
func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}
