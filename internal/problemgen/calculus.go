package problemgen

import (
	"fmt"
	"math/rand"

	"github.com/abhisek/mathsheet/internal/difficulty"
	"github.com/abhisek/mathsheet/internal/random"
	"github.com/abhisek/mathsheet/internal/symbolic"
)

// derivativeEvaluation asks for f'(x0). Polynomial forms store c0..c<deg>;
// the chain-rule form stores a, b and n for (a·x + b)^n.
type derivativeEvaluation struct{}

func (derivativeEvaluation) Family() Family { return FamilyDerivativeEvaluation }

func (derivativeEvaluation) Sample(rng *rand.Rand, r difficulty.Ranges) (map[string]int64, error) {
	out := map[string]int64{"x0": random.Between(rng, r.RootMin, r.RootMax)}
	if r.Steps >= 2 {
		out["form"] = 2
		out["a"] = coeff(rng, r)
		out["b"] = coeff(rng, r)
		out["n"] = int64(max(r.Degree, 2))
		return out, nil
	}
	out["form"] = 1
	polyParams(rng, r, max(r.Degree, 1), out)
	return out, nil
}

func (derivativeEvaluation) Build(spec ProblemSpec) (*Problem, error) {
	x0p, err := params(spec, "x0")
	if err != nil {
		return nil, err
	}
	x0 := x0p[0]

	var f symbolic.Expr
	switch spec.Params["form"] {
	case 1:
		if f, err = polyFromParams(spec); err != nil {
			return nil, err
		}
	case 2:
		p, err := params(spec, "a", "b", "n")
		if err != nil {
			return nil, err
		}
		f = symbolic.Power(binomial(p[0], varX, p[1]), num(p[2]))
	default:
		return nil, fmt.Errorf("%s: unknown form %d", spec.Family, spec.Params["form"])
	}
	f = symbolic.Simplify(f)

	fp := symbolic.Differentiate(f, varX)
	at := symbolic.Substitute(fp, varX, num(x0))
	value := symbolic.Reduce(at)
	if _, ok := value.(symbolic.Num); !ok {
		return nil, degenerate(spec.Family, "f'(%d) did not reduce to a number: %s", x0, value)
	}

	return &Problem{
		Spec:      spec,
		Variable:  varX,
		Prompt:    []symbolic.Expr{f},
		Statement: fmt.Sprintf("Let f(x) = %s. Find f'(%d).", f, x0),
		Solutions: []symbolic.Expr{value},
		Steps: []Step{
			{Description: "Differentiate f(x)", Expr: fp},
			stepEq(fmt.Sprintf("Substitute x = %d", x0), at, value),
		},
		AnswerMode: AnswerNumeric,
	}, nil
}

// definiteIntegral asks for the integral of a polynomial over [lo, hi].
type definiteIntegral struct{}

func (definiteIntegral) Family() Family { return FamilyDefiniteIntegral }

func (definiteIntegral) Sample(rng *rand.Rand, r difficulty.Ranges) (map[string]int64, error) {
	lo := random.Between(rng, r.RootMin, r.RootMax)
	hi := random.Between(rng, r.RootMin, r.RootMax)
	if lo == hi {
		return nil, degenerate(FamilyDefiniteIntegral, "empty interval [%d, %d]", lo, hi)
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	out := map[string]int64{"lo": lo, "hi": hi}
	polyParams(rng, r, max(r.Degree, 0), out)
	return out, nil
}

func (definiteIntegral) Build(spec ProblemSpec) (*Problem, error) {
	b, err := params(spec, "lo", "hi")
	if err != nil {
		return nil, err
	}
	lo, hi := b[0], b[1]
	if lo >= hi {
		return nil, degenerate(spec.Family, "bounds out of order [%d, %d]", lo, hi)
	}
	f, err := polyFromParams(spec)
	if err != nil {
		return nil, err
	}
	F, err := symbolic.Antiderivative(f, varX)
	if err != nil {
		return nil, err
	}
	value, err := symbolic.DefiniteIntegral(f, varX, num(lo), num(hi))
	if err != nil {
		return nil, err
	}
	diff := symbolic.Minus(symbolic.Substitute(F, varX, num(hi)), symbolic.Substitute(F, varX, num(lo)))

	return &Problem{
		Spec:      spec,
		Variable:  varX,
		Prompt:    []symbolic.Expr{f},
		Statement: fmt.Sprintf("Evaluate the integral of %s with respect to x from %d to %d.", f, lo, hi),
		Solutions: []symbolic.Expr{value},
		Steps: []Step{
			{Description: "Find an antiderivative F(x)", Expr: F},
			stepEq(fmt.Sprintf("Evaluate F(%d) - F(%d)", hi, lo), diff, value),
		},
		AnswerMode: AnswerNumeric,
	}, nil
}
