package problemgen

import (
	"fmt"

	"github.com/abhisek/mathsheet/internal/difficulty"
)

// Validator checks a built problem before it is returned.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator (for error messages
	// and logging), e.g. "structural", "solution-check".
	Name() string

	// Validate returns nil if the problem passes. The ranges are the ones
	// the problem was sampled from.
	Validate(p *Problem, r difficulty.Ranges) *ValidationError
}

// ValidationError describes why a problem failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether re-sampling is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
