package problemgen

import (
	"fmt"
	"math/rand"

	"github.com/abhisek/mathsheet/internal/difficulty"
	"github.com/abhisek/mathsheet/internal/random"
	"github.com/abhisek/mathsheet/internal/symbolic"
)

// quadraticEquation generates a·x^2 + b·x + c = 0. Easy tiers are built
// from integer roots, medium tiers from two linear factors with rational
// roots, and hard tiers from raw coefficients whose roots may be surds.
type quadraticEquation struct{}

func (quadraticEquation) Family() Family { return FamilyQuadraticEquation }

func (quadraticEquation) Sample(rng *rand.Rand, r difficulty.Ranges) (map[string]int64, error) {
	var a, b, c int64
	switch {
	case r.AllowIrrational:
		a = coeff(rng, r)
		b = random.Between(rng, r.CoeffMin, r.CoeffMax)
		c = random.Between(rng, r.CoeffMin, r.CoeffMax)
		d := b*b - 4*a*c
		if d < 0 {
			return nil, degenerate(FamilyQuadraticEquation, "no real roots (D = %d)", d)
		}
	case r.IntegerAnswers:
		a = coeff(rng, r)
		r1 := random.Between(rng, r.RootMin, r.RootMax)
		r2 := random.Between(rng, r.RootMin, r.RootMax)
		if r1 == r2 && r.DistinctRoots {
			return nil, degenerate(FamilyQuadraticEquation, "repeated root %d", r1)
		}
		b, c = -a*(r1+r2), a*r1*r2
	default:
		// (p·x - q)(s·x - t)
		p := coeff(rng, r)
		s := coeff(rng, r)
		q := random.Between(rng, r.RootMin, r.RootMax)
		t := random.Between(rng, r.RootMin, r.RootMax)
		if q*s == t*p && r.DistinctRoots {
			return nil, degenerate(FamilyQuadraticEquation, "repeated root %d/%d", q, p)
		}
		a, b, c = p*s, -(p*t + q*s), q*t
	}
	if d := b*b - 4*a*c; d == 0 && r.DistinctRoots {
		return nil, degenerate(FamilyQuadraticEquation, "zero discriminant")
	}
	return map[string]int64{"a": a, "b": b, "c": c}, nil
}

func (quadraticEquation) Build(spec ProblemSpec) (*Problem, error) {
	p, err := params(spec, "a", "b", "c")
	if err != nil {
		return nil, err
	}
	a, b, c := p[0], p[1], p[2]
	if a == 0 {
		return nil, degenerate(spec.Family, "zero leading coefficient")
	}
	d := b*b - 4*a*c
	if d < 0 {
		return nil, &symbolic.DomainError{Expr: fmt.Sprintf("sqrt(%d)", d), Reason: "negative discriminant"}
	}

	formula := func(sign int64, radical symbolic.Expr) symbolic.Expr {
		return symbolic.Quo(
			symbolic.Sum(num(-b), symbolic.Product(num(sign), radical)),
			num(2*a),
		)
	}
	raw := symbolic.Sqrt(num(d))
	surd := symbolic.Reduce(raw)

	signs := []int64{-1, 1}
	if d == 0 {
		signs = signs[:1]
	}
	type root struct {
		sign  int64
		value symbolic.Expr
		f     float64
	}
	roots := make([]root, 0, len(signs))
	for _, s := range signs {
		v := symbolic.Expand(formula(s, surd))
		f, err := symbolic.EvaluateNumeric(v, nil, 0)
		if err != nil {
			return nil, err
		}
		roots = append(roots, root{sign: s, value: v, f: f})
	}
	if len(roots) == 2 && roots[0].f > roots[1].f {
		roots[0], roots[1] = roots[1], roots[0]
	}

	x := symbolic.Symbol(varX)
	steps := []Step{
		stepEq("Compute the discriminant D = b^2 - 4ac", symbolic.Symbol("D"), num(d)),
	}
	solutions := make([]symbolic.Expr, 0, len(roots))
	for _, r := range roots {
		op := "+"
		if r.sign < 0 {
			op = "-"
		}
		if d == 0 {
			op = "±"
		}
		steps = append(steps,
			stepEq(fmt.Sprintf("Apply x = (-b %s sqrt(D))/(2a)", op), x, symbolic.Simplify(formula(r.sign, raw))),
			stepEq("Simplify", x, r.value),
		)
		solutions = append(solutions, r.value)
	}

	return &Problem{
		Spec:       spec,
		Variable:   varX,
		Prompt:     []symbolic.Expr{symbolic.Polynomial(varX, a, b, c), num(0)},
		Statement:  "Solve for x. Give all real solutions.",
		Solutions:  solutions,
		Steps:      steps,
		AnswerMode: AnswerNumeric,
	}, nil
}
