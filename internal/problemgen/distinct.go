package problemgen

import (
	"fmt"

	"github.com/abhisek/mathsheet/internal/difficulty"
	"github.com/abhisek/mathsheet/internal/symbolic"
)

// DistinctSolutionsValidator rejects repeated roots when the tier expects
// distinct ones, and duplicate entries in any solution set.
type DistinctSolutionsValidator struct{}

func (v *DistinctSolutionsValidator) Name() string { return "distinct-solutions" }

func (v *DistinctSolutionsValidator) Validate(p *Problem, r difficulty.Ranges) *ValidationError {
	for i := 0; i < len(p.Solutions); i++ {
		for j := i + 1; j < len(p.Solutions); j++ {
			if symbolic.Equal(p.Solutions[i], p.Solutions[j], symbolic.NumericWithinTolerance) {
				return &ValidationError{
					Validator: v.Name(),
					Message:   fmt.Sprintf("solutions %d and %d coincide", i, j),
					Retryable: true,
				}
			}
		}
	}
	if r.DistinctRoots && r.Degree > 1 && len(p.Solutions) < r.Degree {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expected %d distinct roots, got %d", r.Degree, len(p.Solutions)),
			Retryable: true,
		}
	}
	return nil
}
