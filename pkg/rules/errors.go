package rules

import "fmt"

// UnknownRuleError is returned when a definition references a rule name that
// has no registry entry.
type UnknownRuleError struct {
	// Name is the rule name that could not be resolved.
	Name string
}

// Error implements the error interface.
func (e *UnknownRuleError) Error() string {
	return fmt.Sprintf("unknown rule %q: no rule type is registered under that name", e.Name)
}

// ConstructionError is returned when a resolved rule type rejects the
// parameters supplied by a rule record.
type ConstructionError struct {
	// RuleName is the registered name of the rule type that failed.
	RuleName string

	// Cause is the error raised by the rule factory.
	Cause error
}

// Error implements the error interface.
func (e *ConstructionError) Error() string {
	return fmt.Sprintf("failed to construct rule %q: %v", e.RuleName, e.Cause)
}

// Unwrap implements the errors.Unwrap interface for error chain support.
func (e *ConstructionError) Unwrap() error {
	return e.Cause
}
