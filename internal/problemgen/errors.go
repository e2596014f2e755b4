package problemgen

import (
	"errors"
	"fmt"

	"github.com/abhisek/mathsheet/internal/difficulty"
	"github.com/abhisek/mathsheet/internal/symbolic"
)

// DegenerateError reports a sampled instance that collapses the problem
// class (zero leading coefficient, repeated roots, trivial answer).
type DegenerateError struct {
	Family Family
	Reason string
}

func (e *DegenerateError) Error() string {
	return fmt.Sprintf("degenerate %s instance: %s", e.Family, e.Reason)
}

// GenerationExhaustedError is returned when no valid instance was found
// within the attempt budget. Callers should pick a different family or
// tier rather than retry.
type GenerationExhaustedError struct {
	Family   Family
	Tier     difficulty.Tier
	Attempts int
	Last     error
}

func (e *GenerationExhaustedError) Error() string {
	return fmt.Sprintf("generation exhausted for %s tier %d after %d attempts: %v",
		e.Family, int(e.Tier), e.Attempts, e.Last)
}

func (e *GenerationExhaustedError) Unwrap() error { return e.Last }

// retryable reports whether err should trigger a re-sample.
func retryable(err error) bool {
	var de *symbolic.DomainError
	if errors.As(err, &de) {
		return true
	}
	var dg *DegenerateError
	if errors.As(err, &dg) {
		return true
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Retryable
	}
	return false
}

func degenerate(f Family, format string, args ...any) error {
	return &DegenerateError{Family: f, Reason: fmt.Sprintf(format, args...)}
}
