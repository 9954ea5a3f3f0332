package errors

import "fmt"

// ErrorCategory labels where in the pipeline an error originated.
type ErrorCategory string

const (
	ErrorCategoryProvider  ErrorCategory = "PROVIDER"
	ErrorCategoryAnalysis  ErrorCategory = "ANALYSIS"
	ErrorCategoryReport    ErrorCategory = "REPORT"
	ErrorCategoryNarrative ErrorCategory = "NARRATIVE"
	ErrorCategoryConfig    ErrorCategory = "CONFIG"
)

// AgentError wraps an error with the component and operation it came from so
// the CLI can report actionable context.
type AgentError struct {
	Category   ErrorCategory
	Component  string
	Operation  string
	Underlying error
}

// Error implements the error interface.
func (e *AgentError) Error() string {
	return fmt.Sprintf("[%s:%s] %s: %v", e.Category, e.Component, e.Operation, e.Underlying)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *AgentError) Unwrap() error {
	return e.Underlying
}

// Wrap annotates err with pipeline context. Returns nil when err is nil.
func Wrap(err error, category ErrorCategory, component, operation string) *AgentError {
	if err == nil {
		return nil
	}
	return &AgentError{
		Category:   category,
		Component:  component,
		Operation:  operation,
		Underlying: err,
	}
}
