package sim

import "fmt"

// ValidationError rejects simulator input that would corrupt simulation state.
// Index is the offending passenger record, or -1 when the error concerns configuration.
type ValidationError struct {
	Field  string
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid passenger record %d: %s %s", e.Index, e.Field, e.Reason)
}

func newConfigError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Index: -1, Reason: reason}
}

// InvariantViolation reports a broken causal model inside the engine.
// It is always raised with panic: there is no meaningful way to continue a
// simulation whose clock or accounting has become inconsistent.
type InvariantViolation struct {
	Op     string
	Detail string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation in %s: %s", e.Op, e.Detail)
}

func violate(op, format string, args ...any) {
	panic(&InvariantViolation{Op: op, Detail: fmt.Sprintf(format, args...)})
}
