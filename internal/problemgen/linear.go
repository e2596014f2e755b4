package problemgen

import (
	"fmt"
	"math/big"
	"math/rand"

	"github.com/abhisek/mathsheet/internal/difficulty"
	"github.com/abhisek/mathsheet/internal/random"
	"github.com/abhisek/mathsheet/internal/symbolic"
)

// linearEquation generates one-variable linear equations in three forms:
//
//	form 1: a·x + b = c            (params a, b, root)
//	form 2: a·x + b = c·x + d      (params a, b, c, root)
//	form 3: a(x + b) = c·x + d     (params a, b, c, d; rational root)
type linearEquation struct{}

func (linearEquation) Family() Family { return FamilyLinearEquation }

func (linearEquation) Sample(rng *rand.Rand, r difficulty.Ranges) (map[string]int64, error) {
	switch {
	case r.Steps <= 2:
		return map[string]int64{
			"form": 1,
			"a":    coeff(rng, r),
			"b":    coeff(rng, r),
			"root": random.Between(rng, r.RootMin, r.RootMax),
		}, nil
	case r.Steps == 3:
		a, c := coeff(rng, r), coeff(rng, r)
		if a == c {
			return nil, degenerate(FamilyLinearEquation, "x cancels: a = c = %d", a)
		}
		return map[string]int64{
			"form": 2,
			"a":    a,
			"b":    coeff(rng, r),
			"c":    c,
			"root": random.Between(rng, r.RootMin, r.RootMax),
		}, nil
	default:
		a, c := coeff(rng, r), coeff(rng, r)
		if a == c {
			return nil, degenerate(FamilyLinearEquation, "x cancels: a = c = %d", a)
		}
		return map[string]int64{
			"form": 3,
			"a":    a,
			"b":    coeff(rng, r),
			"c":    c,
			"d":    coeff(rng, r),
		}, nil
	}
}

func (g linearEquation) Build(spec ProblemSpec) (*Problem, error) {
	lhs, rhs, err := g.sides(spec)
	if err != nil {
		return nil, err
	}

	var steps []Step
	if spec.Params["form"] == 3 {
		steps = append(steps, stepEq("Expand the brackets", symbolic.Expand(lhs), rhs))
	}

	coeffs, err := symbolic.PolyCoeffs(symbolic.Minus(lhs, rhs), varX)
	if err != nil {
		return nil, err
	}
	k1, k0 := coeffs[1], coeffs[0]
	if k1 == nil || k1.Sign() == 0 {
		return nil, degenerate(spec.Family, "no x term after collecting")
	}
	if k0 == nil {
		k0 = new(big.Rat)
	}
	negK0 := new(big.Rat).Neg(k0)
	root := symbolic.NumFromRat(new(big.Rat).Quo(negK0, k1))

	x := symbolic.Symbol(varX)
	collected := symbolic.Reduce(symbolic.Product(symbolic.NumFromRat(k1), x))
	steps = append(steps,
		stepEq("Collect the x terms on the left and the constants on the right", collected, symbolic.NumFromRat(negK0)),
		stepEq(fmt.Sprintf("Divide both sides by %s", symbolic.NumFromRat(k1)), x, root),
	)

	return &Problem{
		Spec:       spec,
		Variable:   varX,
		Prompt:     []symbolic.Expr{lhs, rhs},
		Statement:  "Solve for x.",
		Solutions:  []symbolic.Expr{root},
		Steps:      steps,
		AnswerMode: AnswerNumeric,
	}, nil
}

func (linearEquation) sides(spec ProblemSpec) (lhs, rhs symbolic.Expr, err error) {
	switch spec.Params["form"] {
	case 1:
		p, err := params(spec, "a", "b", "root")
		if err != nil {
			return nil, nil, err
		}
		a, b, root := p[0], p[1], p[2]
		return binomial(a, varX, b), num(a*root + b), nil
	case 2:
		p, err := params(spec, "a", "b", "c", "root")
		if err != nil {
			return nil, nil, err
		}
		a, b, c, root := p[0], p[1], p[2], p[3]
		return binomial(a, varX, b), binomial(c, varX, (a-c)*root+b), nil
	case 3:
		p, err := params(spec, "a", "b", "c", "d")
		if err != nil {
			return nil, nil, err
		}
		a, b, c, d := p[0], p[1], p[2], p[3]
		lhs := symbolic.Simplify(symbolic.Product(num(a), symbolic.Sum(symbolic.Symbol(varX), num(b))))
		return lhs, binomial(c, varX, d), nil
	}
	return nil, nil, fmt.Errorf("%s: unknown form %d", spec.Family, spec.Params["form"])
}
