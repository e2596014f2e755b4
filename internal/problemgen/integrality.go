package problemgen

import (
	"fmt"

	"github.com/abhisek/mathsheet/internal/difficulty"
	"github.com/abhisek/mathsheet/internal/symbolic"
)

// IntegralityValidator rejects non-integer answers for tiers that require
// "nice" integer results.
type IntegralityValidator struct{}

func (v *IntegralityValidator) Name() string { return "integrality" }

func (v *IntegralityValidator) Validate(p *Problem, r difficulty.Ranges) *ValidationError {
	if !r.IntegerAnswers {
		return nil
	}
	for _, s := range p.Solutions {
		n, ok := s.(symbolic.Num)
		if !ok || !n.IsInt() {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("answer %s is not an integer", s),
				Retryable: true,
			}
		}
	}
	return nil
}
