package problemgen

import (
	"github.com/abhisek/mathsheet/internal/difficulty"
)

// StructuralValidator checks that required fields are present and
// consistent. Failures indicate a generator bug and are not retried.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(p *Problem, _ difficulty.Ranges) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg}
	}
	if p.Statement == "" {
		return fail("statement is empty")
	}
	if len(p.Prompt) == 0 && p.Spec.Family != FamilyWordProblem {
		return fail("prompt is empty")
	}
	if len(p.Prompt) > 2 {
		return fail("prompt has more than two sides")
	}
	if p.IsEquation() && p.Variable == "" {
		return fail("equation has no variable")
	}
	if len(p.Solutions) == 0 {
		return fail("no solutions")
	}
	if len(p.Steps) == 0 {
		return fail("step trace is empty")
	}
	if p.AnswerMode != AnswerNumeric && p.AnswerMode != AnswerExactForm {
		return fail("answer mode must be \"numeric\" or \"exact-form\"")
	}
	for _, e := range p.Prompt {
		if e == nil {
			return fail("nil prompt expression")
		}
	}
	for _, e := range p.Solutions {
		if e == nil {
			return fail("nil solution")
		}
	}
	return nil
}
