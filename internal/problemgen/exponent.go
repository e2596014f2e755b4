package problemgen

import (
	"fmt"
	"math/rand"

	"github.com/abhisek/mathsheet/internal/difficulty"
	"github.com/abhisek/mathsheet/internal/random"
	"github.com/abhisek/mathsheet/internal/symbolic"
)

// exponentReduction asks to reduce a monomial quotient such as
// 12w^5*x^3/(18w^2*x^7). Params: c1, c2 and exponents n<i>, d<i>.
type exponentReduction struct{}

func (exponentReduction) Family() Family { return FamilyExponentReduction }

func exponentVars(n int) []string {
	if n >= 3 {
		return []string{"w", "x", "y"}
	}
	return []string{"w", "x"}
}

func (exponentReduction) Sample(rng *rand.Rand, r difficulty.Ranges) (map[string]int64, error) {
	nv := min(max(r.Terms, 2), 3)
	top := int64(max(r.Degree, 2))
	out := map[string]int64{
		"vars": int64(nv),
		"c1":   random.Between(rng, r.CoeffMin, r.CoeffMax),
		"c2":   random.Between(rng, r.CoeffMin, r.CoeffMax),
	}
	for i := range nv {
		out[fmt.Sprintf("n%d", i)] = random.Between(rng, 2, top)
		out[fmt.Sprintf("d%d", i)] = random.Between(rng, 2, top)
	}
	return out, nil
}

func (exponentReduction) Build(spec ProblemSpec) (*Problem, error) {
	p, err := params(spec, "vars", "c1", "c2")
	if err != nil {
		return nil, err
	}
	nv, c1, c2 := int(p[0]), p[1], p[2]
	if nv < 2 || nv > 3 || c1 == 0 || c2 == 0 {
		return nil, fmt.Errorf("%s: invalid parameters vars=%d c1=%d c2=%d", spec.Family, nv, c1, c2)
	}
	names := exponentVars(nv)
	numer := []symbolic.Expr{num(c1)}
	denom := []symbolic.Expr{num(c2)}
	for i, v := range names {
		e, err := params(spec, fmt.Sprintf("n%d", i), fmt.Sprintf("d%d", i))
		if err != nil {
			return nil, err
		}
		numer = append(numer, symbolic.Power(symbolic.Symbol(v), num(e[0])))
		denom = append(denom, symbolic.Power(symbolic.Symbol(v), num(e[1])))
	}
	prompt := symbolic.Quo(symbolic.Product(numer...), symbolic.Product(denom...))
	answer := symbolic.Reduce(prompt)
	if len(symbolic.FreeSymbols(answer)) == 0 {
		return nil, degenerate(spec.Family, "every variable cancels")
	}

	return &Problem{
		Spec:      spec,
		Prompt:    []symbolic.Expr{prompt},
		Statement: "Simplify, writing the result with positive exponents.",
		Solutions: []symbolic.Expr{answer},
		Steps: []Step{
			{Description: fmt.Sprintf("Reduce the coefficient %d/%d", c1, c2), Expr: symbolic.Rat(c1, c2)},
			{Description: "Subtract the exponents of like bases", Expr: answer},
		},
		AnswerMode: AnswerExactForm,
	}, nil
}
