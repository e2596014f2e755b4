package problemgen

import (
	"fmt"
	"math/rand"

	"github.com/abhisek/mathsheet/internal/difficulty"
	"github.com/abhisek/mathsheet/internal/random"
	"github.com/abhisek/mathsheet/internal/symbolic"
)

const varX = "x"

// coeff samples a coefficient honoring ExcludeZero.
func coeff(rng *rand.Rand, r difficulty.Ranges) int64 {
	if r.ExcludeZero {
		return random.NonZeroBetween(rng, r.CoeffMin, r.CoeffMax)
	}
	return random.Between(rng, r.CoeffMin, r.CoeffMax)
}

// params extracts named parameters from a spec.
func params(spec ProblemSpec, names ...string) ([]int64, error) {
	out := make([]int64, len(names))
	for i, n := range names {
		v, ok := spec.Params[n]
		if !ok {
			return nil, fmt.Errorf("%s: missing parameter %q", spec.Family, n)
		}
		out[i] = v
	}
	return out, nil
}

func num(n int64) symbolic.Expr { return symbolic.Int(n) }

// monomial returns c·v^k without simplification.
func monomial(c int64, v string, k int64) symbolic.Expr {
	switch k {
	case 0:
		return num(c)
	case 1:
		return symbolic.Product(num(c), symbolic.Symbol(v))
	}
	return symbolic.Product(num(c), symbolic.Power(symbolic.Symbol(v), num(k)))
}

// binomial returns a·v + b in canonical form.
func binomial(a int64, v string, b int64) symbolic.Expr {
	return symbolic.Simplify(symbolic.Sum(monomial(a, v, 1), num(b)))
}

// polyParams samples a polynomial of the given degree with a non-zero
// leading coefficient into c0..c<deg>.
func polyParams(rng *rand.Rand, r difficulty.Ranges, deg int, out map[string]int64) {
	out["deg"] = int64(deg)
	for k := 0; k <= deg; k++ {
		if k == deg {
			out[fmt.Sprintf("c%d", k)] = random.NonZeroBetween(rng, r.CoeffMin, r.CoeffMax)
		} else {
			out[fmt.Sprintf("c%d", k)] = random.Between(rng, r.CoeffMin, r.CoeffMax)
		}
	}
}

// polyFromParams rebuilds the polynomial stored by polyParams.
func polyFromParams(spec ProblemSpec) (symbolic.Expr, error) {
	deg, err := params(spec, "deg")
	if err != nil {
		return nil, err
	}
	coeffs := make([]int64, deg[0]+1)
	for k := int64(0); k <= deg[0]; k++ {
		c, err := params(spec, fmt.Sprintf("c%d", k))
		if err != nil {
			return nil, err
		}
		coeffs[deg[0]-k] = c[0]
	}
	return symbolic.Polynomial(varX, coeffs...), nil
}

func stepEq(desc string, lhs, rhs symbolic.Expr) Step {
	return Step{Description: desc, Expr: lhs, Equals: rhs}
}
