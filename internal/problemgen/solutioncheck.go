package problemgen

import (
	"errors"
	"fmt"
	"math"

	"github.com/abhisek/mathsheet/internal/difficulty"
	"github.com/abhisek/mathsheet/internal/symbolic"
)

var checkTolerance = symbolic.Tolerance{Rel: 1e-6, Abs: 1e-6}

// SolutionCheckValidator independently re-checks the derived answers:
// equation roots are substituted back, simplification answers are compared
// numerically with the prompt, derivatives against a central difference and
// integrals against Simpson's rule. Solutions without free symbols must
// evaluate to a number; a domain error there is retried. Solutions in the
// problem's variables are only compared with the prompt. Mismatches are
// generator bugs and are not retried.
type SolutionCheckValidator struct{}

func (v *SolutionCheckValidator) Name() string { return "solution-check" }

func (v *SolutionCheckValidator) Validate(p *Problem, _ difficulty.Ranges) *ValidationError {
	for _, s := range p.Solutions {
		if len(symbolic.FreeSymbols(s)) > 0 {
			continue
		}
		if _, err := symbolic.EvaluateNumeric(s, nil, 0); err != nil {
			return v.fromErr(fmt.Sprintf("solution %s", s), err)
		}
	}

	switch {
	case p.IsEquation():
		return v.checkRoots(p)
	case p.Spec.Family == FamilyDerivativeEvaluation:
		return v.checkDerivative(p)
	case p.Spec.Family == FamilyDefiniteIntegral:
		return v.checkIntegral(p)
	case p.AnswerMode == AnswerExactForm && len(p.Prompt) == 1:
		for _, s := range p.Solutions {
			if !symbolic.Equal(p.Prompt[0], s, symbolic.NumericWithinTolerance) {
				return v.mismatch(fmt.Sprintf("%s is not equivalent to %s", s, p.Prompt[0]))
			}
		}
	}
	return nil
}

func (v *SolutionCheckValidator) checkRoots(p *Problem) *ValidationError {
	residual := symbolic.Minus(p.Prompt[0], p.Prompt[1])
	for _, s := range p.Solutions {
		r := symbolic.Expand(symbolic.Substitute(residual, p.Variable, s))
		if n, ok := r.(symbolic.Num); ok && n.Sign() == 0 {
			continue
		}
		val, err := symbolic.EvaluateNumeric(r, nil, 0)
		if err != nil {
			return v.fromErr(fmt.Sprintf("residual at %s", s), err)
		}
		if math.Abs(val) > 1e-9 {
			return v.mismatch(fmt.Sprintf("%s = %s leaves residual %g", p.Variable, s, val))
		}
	}
	return nil
}

func (v *SolutionCheckValidator) checkDerivative(p *Problem) *ValidationError {
	x0, ok := p.Spec.Params["x0"]
	if !ok || len(p.Prompt) != 1 || len(p.Solutions) != 1 {
		return v.mismatch("derivative problem is missing x0 or its prompt")
	}
	f := p.Prompt[0]
	at := func(x float64) (float64, error) {
		return symbolic.EvaluateNumeric(f, map[string]float64{p.Variable: x}, 0)
	}
	const h = 1e-4
	hi, err := at(float64(x0) + h)
	if err != nil {
		return v.fromErr("f(x0+h)", err)
	}
	lo, err := at(float64(x0) - h)
	if err != nil {
		return v.fromErr("f(x0-h)", err)
	}
	approx := (hi - lo) / (2 * h)
	got, _ := symbolic.EvaluateNumeric(p.Solutions[0], nil, 0)
	if !symbolic.Close(approx, got, checkTolerance) {
		return v.mismatch(fmt.Sprintf("derivative %g differs from central difference %g", got, approx))
	}
	return nil
}

func (v *SolutionCheckValidator) checkIntegral(p *Problem) *ValidationError {
	lo, okLo := p.Spec.Params["lo"]
	hi, okHi := p.Spec.Params["hi"]
	if !okLo || !okHi || len(p.Prompt) != 1 || len(p.Solutions) != 1 {
		return v.mismatch("integral problem is missing bounds or its prompt")
	}
	f := p.Prompt[0]
	var fx [3]float64
	for i, x := range []float64{float64(lo), float64(lo+hi) / 2, float64(hi)} {
		val, err := symbolic.EvaluateNumeric(f, map[string]float64{p.Variable: x}, 0)
		if err != nil {
			return v.fromErr("integrand", err)
		}
		fx[i] = val
	}
	// Simpson's rule is exact for cubics.
	simpson := float64(hi-lo) / 6 * (fx[0] + 4*fx[1] + fx[2])
	got, _ := symbolic.EvaluateNumeric(p.Solutions[0], nil, 0)
	if !symbolic.Close(simpson, got, checkTolerance) {
		return v.mismatch(fmt.Sprintf("integral %g differs from Simpson estimate %g", got, simpson))
	}
	return nil
}

func (v *SolutionCheckValidator) mismatch(msg string) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: msg}
}

func (v *SolutionCheckValidator) fromErr(what string, err error) *ValidationError {
	var de *symbolic.DomainError
	return &ValidationError{
		Validator: v.Name(),
		Message:   fmt.Sprintf("%s: %v", what, err),
		Retryable: errors.As(err, &de),
	}
}
