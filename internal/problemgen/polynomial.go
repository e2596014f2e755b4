package problemgen

import (
	"fmt"
	"math/rand"

	"github.com/abhisek/mathsheet/internal/difficulty"
	"github.com/abhisek/mathsheet/internal/symbolic"
)

// polynomialSimplification asks the learner to expand and collect a sum of
// products. The expected answer is the fully expanded polynomial.
type polynomialSimplification struct{}

func (polynomialSimplification) Family() Family { return FamilyPolynomialSimplification }

var polyParamNames = map[int][]string{
	1: {"k1", "m1", "k2", "m2"},
	2: {"a", "b", "c", "d", "k", "m"},
	3: {"a", "b", "c", "d", "k", "m"},
}

func (polynomialSimplification) Sample(rng *rand.Rand, r difficulty.Ranges) (map[string]int64, error) {
	deg := min(max(r.Degree, 1), 3)
	out := map[string]int64{"deg": int64(deg)}
	for _, n := range polyParamNames[deg] {
		out[n] = coeff(rng, r)
	}
	return out, nil
}

func (g polynomialSimplification) Build(spec ProblemSpec) (*Problem, error) {
	terms, deg, err := g.terms(spec)
	if err != nil {
		return nil, err
	}
	raw := symbolic.Sum(terms...)
	prompt := symbolic.Simplify(raw)
	answer := symbolic.Expand(raw)

	coeffs, err := symbolic.PolyCoeffs(answer, varX)
	if err != nil {
		return nil, err
	}
	if got := symbolic.Degree(coeffs); got < deg {
		return nil, degenerate(spec.Family, "degree dropped from %d to %d", deg, got)
	}
	if symbolic.Identical(prompt, answer) {
		return nil, degenerate(spec.Family, "prompt is already simplified")
	}

	expanded := make([]symbolic.Expr, len(terms))
	for i, t := range terms {
		expanded[i] = symbolic.Expand(t)
	}

	return &Problem{
		Spec:      spec,
		Variable:  varX,
		Prompt:    []symbolic.Expr{prompt},
		Statement: "Expand and simplify.",
		Solutions: []symbolic.Expr{answer},
		Steps: []Step{
			{Description: "Expand each product", Expr: symbolic.Simplify(symbolic.Sum(expanded...))},
			{Description: "Collect like terms", Expr: answer},
		},
		AnswerMode: AnswerExactForm,
	}, nil
}

func (polynomialSimplification) terms(spec ProblemSpec) ([]symbolic.Expr, int, error) {
	d, err := params(spec, "deg")
	if err != nil {
		return nil, 0, err
	}
	deg := int(d[0])
	names, ok := polyParamNames[deg]
	if !ok {
		return nil, 0, fmt.Errorf("%s: unsupported degree %d", spec.Family, deg)
	}
	p, err := params(spec, names...)
	if err != nil {
		return nil, 0, err
	}
	x := symbolic.Symbol(varX)
	shift := func(m int64) symbolic.Expr { return symbolic.Sum(x, num(m)) }

	switch deg {
	case 1:
		// k1(x + m1) + k2(x + m2)
		return []symbolic.Expr{
			symbolic.Product(num(p[0]), shift(p[1])),
			symbolic.Product(num(p[2]), shift(p[3])),
		}, deg, nil
	case 2:
		// (a·x + b)(c·x + d) + k(x + m)
		return []symbolic.Expr{
			symbolic.Product(binomial(p[0], varX, p[1]), binomial(p[2], varX, p[3])),
			symbolic.Product(num(p[4]), shift(p[5])),
		}, deg, nil
	default:
		// (a·x + b)(x + c)(x + d) + k(x + m)^2
		return []symbolic.Expr{
			symbolic.Product(binomial(p[0], varX, p[1]), shift(p[2]), shift(p[3])),
			symbolic.Product(num(p[4]), symbolic.Power(shift(p[5]), num(2))),
		}, deg, nil
	}
}
