package symbolic

import (
	"errors"
	"math"
	"sort"
)

// EqualityMode selects how Equal compares expressions.
type EqualityMode int

const (
	// StructuralAfterSimplify compares the Simplify forms node by node.
	StructuralAfterSimplify EqualityMode = iota

	// Algebraic compares the Expand forms node by node.
	Algebraic

	// NumericWithinTolerance compares values at sample points within DefaultTolerance.
	NumericWithinTolerance
)

// Tolerance bounds numeric comparison. Two values match when their
// difference is within Abs or within Rel times the larger magnitude.
type Tolerance struct {
	Rel float64
	Abs float64
}

// DefaultTolerance is the tolerance used by NumericWithinTolerance equality.
var DefaultTolerance = Tolerance{Rel: 1e-9, Abs: 1e-12}

// Sample values assigned to free symbols. Chosen to avoid small integers
// where removable singularities in generated problems tend to sit.
var sampleValues = []float64{
	0.5377, 1.8339, -2.2588, 0.8622, 0.3188,
	-1.3077, -0.4336, 2.7694, 1.4897, -0.6072,
}

const numSamples = 6

// Equal reports whether a and b are equal under mode.
func Equal(a, b Expr, mode EqualityMode) bool {
	switch mode {
	case StructuralAfterSimplify:
		return Identical(Simplify(a), Simplify(b))
	case Algebraic:
		return Identical(Expand(a), Expand(b))
	case NumericWithinTolerance:
		return EqualWithin(a, b, DefaultTolerance)
	}
	return false
}

// EqualWithin reports whether a and b agree numerically within tol at
// every sample point where both are defined. At least one point must be
// defined for a match.
func EqualWithin(a, b Expr, tol Tolerance) bool {
	syms := unionSymbols(FreeSymbols(a), FreeSymbols(b))
	if len(syms) == 0 {
		va, ea := evalFloat(a, nil)
		vb, eb := evalFloat(b, nil)
		if ea != nil || eb != nil {
			return false
		}
		return Close(va, vb, tol)
	}

	valid := 0
	for k := 0; k < numSamples; k++ {
		env := make(map[string]float64, len(syms))
		for i, s := range syms {
			env[s] = sampleValues[(k+3*i)%len(sampleValues)]
		}
		va, ea := evalFloat(a, env)
		vb, eb := evalFloat(b, env)
		if ea != nil || eb != nil {
			var de *DomainError
			if errors.As(ea, &de) || errors.As(eb, &de) {
				continue
			}
			return false
		}
		if !Close(va, vb, tol) {
			return false
		}
		valid++
	}
	return valid > 0
}

// Close reports whether two floats match within tol.
func Close(a, b float64, tol Tolerance) bool {
	d := math.Abs(a - b)
	if d <= tol.Abs {
		return true
	}
	return d <= tol.Rel*math.Max(math.Abs(a), math.Abs(b))
}

func unionSymbols(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, list := range [][]string{a, b} {
		for _, s := range list {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	sort.Strings(out)
	return out
}
