// Package errs names the error kinds used across the engine.
//
// These are sentinels, not a hierarchy: callers match with errors.Is
// against the exported sentinel values after wrapping a concrete error with
// fmt.Errorf("...: %w", kind).
package errs

import (
	"errors"
	"fmt"
)

var (
	// InputFormat marks a malformed serialized automaton or formula.
	InputFormat = errors.New("input format error")

	// Unsupported marks a feature that is intentionally not implemented,
	// e.g. ZETA boundary combined with a negated quantifier.
	Unsupported = errors.New("unsupported")

	// ResourceExhaustion marks a soft failure from a resource cap, e.g.
	// determinization exceeding a configured state limit.
	ResourceExhaustion = errors.New("resource exhaustion")
)

// Precondition panics with a diagnostic. Precondition violations
// (mismatched alphabets, out-of-range indices, operating on a
// half-built automaton) are programmer errors, not recoverable
// conditions, so they never return through an error value.
func Precondition(format string, args ...any) {
	panic(&preconditionError{msg: fmt.Sprintf(format, args...)})
}

type preconditionError struct{ msg string }

func (e *preconditionError) Error() string { return "precondition violated: " + e.msg }
