package symbolic

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimplify_CanonicalForms(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"x + 3 + 1", "x + 4"},
		{"x - 3", "x - 3"},
		{"x^2 - 5x + 6", "x^2 - 5x + 6"},
		{"6 - 5x + x^2", "x^2 - 5x + 6"},
		{"x*2", "2x"},
		{"2*(x+2)", "2(x + 2)"},
		{"x^1", "x"},
		{"x^0 + 1", "2"},
		{"2^3", "8"},
		{"sqrt(4)", "2"},
		{"sqrt(8)", "sqrt(8)"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Simplify(MustParse(tt.in))
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestSimplify_DoesNotCollectOrDistribute(t *testing.T) {
	unsimplified := MustParse("3x - x + 4")
	canonical := Reduce(MustParse("2x + 4"))

	assert.False(t, Identical(Simplify(unsimplified), canonical))
	assert.True(t, Identical(Reduce(unsimplified), canonical))

	factored := MustParse("2*(x+2)")
	assert.False(t, Equal(factored, canonical, StructuralAfterSimplify))
	assert.True(t, Equal(factored, canonical, Algebraic))
	assert.True(t, Equal(factored, canonical, NumericWithinTolerance))
}

func TestSimplify_Idempotent(t *testing.T) {
	for _, in := range []string{
		"x^2 - 5x + 6",
		"2*w^3/(3*x^4)",
		"(x+1)*(x-2) + 3",
		"sin(x)^2 + cos(x)^2",
		"-(x + 1)",
		"3*sqrt(5)/2 - 1/2",
	} {
		once := Simplify(MustParse(in))
		twice := Simplify(once)
		assert.True(t, Identical(once, twice), "Simplify(%q) not idempotent: %s vs %s", in, once, twice)
	}
}

func TestReduce(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"x*x*x", "x^3"},
		{"3x - x + 4", "2x + 4"},
		{"x - x", "0"},
		{"12*w^5*x^3/(18*w^2*x^7)", "2w^3/(3*x^4)"},
		{"(x^2)^3", "x^6"},
		{"sqrt(8)", "2*sqrt(2)"},
		{"sqrt(2)*sqrt(2)", "2"},
		{"x^2*x^-2", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Reduce(MustParse(tt.in)).String())
		})
	}
}

func TestExpand(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"(x+1)^2", "x^2 + 2x + 1"},
		{"2*(x+2)", "2x + 4"},
		{"(x-1)*(x-2)", "x^2 - 3x + 2"},
		{"(x+1)*(x-1) - x^2", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Expand(MustParse(tt.in)).String())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{"", "banana", "2+", "(x", "x = 2", "3 $ 4", "x)"} {
		_, err := Parse(in)
		require.Error(t, err, "input %q", in)
		var pe *ParseError
		assert.True(t, errors.As(err, &pe), "input %q: want *ParseError, got %T", in, err)
	}
}

func TestParse_ImplicitMultiplicationAndPrecedence(t *testing.T) {
	tests := []struct {
		in   string
		x    float64
		want float64
	}{
		{"2x^2", 3, 18},
		{"-x^2", 3, -9},
		{"3(x+1)", 2, 9},
		{"2^3^2", 0, 512},
		{"x sin(0)", 5, 0},
		{"6/2x", 1, 3},
		{"2 × x", 4, 8},
		{"x**2", 4, 16},
		{"√x", 9, 3},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			e, err := Parse(tt.in)
			require.NoError(t, err)
			got, err := EvaluateNumeric(e, map[string]float64{"x": tt.x}, 0)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	for _, in := range []string{
		"x^2 - 5x + 6",
		"2w^3/(3*x^4)",
		"3*sqrt(5)/2 - 1/2",
		"-(x + 1)",
		"x*y + 2pi",
		"sin(x)^2",
		"1/(x + 1)",
		"x^(1/3)",
	} {
		e := Simplify(MustParse(in))
		back, err := Parse(e.String())
		require.NoError(t, err, "reparse %q", e.String())
		assert.True(t, Identical(e, Simplify(back)), "round trip %q: %s vs %s", in, e, Simplify(back))
	}
}

func TestEvaluateNumeric_DomainErrors(t *testing.T) {
	tests := []struct {
		in string
		x  float64
	}{
		{"1/x", 0},
		{"ln(x)", -1},
		{"sqrt(x)", -4},
		{"y + 1", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := EvaluateNumeric(MustParse(tt.in), map[string]float64{"x": tt.x}, 0)
			var de *DomainError
			require.True(t, errors.As(err, &de), "want DomainError, got %v", err)
		})
	}
}

func TestEvaluateNumeric_OddRootOfNegative(t *testing.T) {
	v, err := EvaluateNumeric(Power(Int(-8), Rat(1, 3)), nil, 0)
	require.NoError(t, err)
	assert.InDelta(t, -2.0, v, 1e-12)
}

func TestEvaluateNumeric_Precision(t *testing.T) {
	v, err := EvaluateNumeric(MustParse("pi"), nil, 3)
	require.NoError(t, err)
	assert.Equal(t, 3.14, v)
}

func TestEqualWithin_Tolerance(t *testing.T) {
	two := Int(2)
	assert.True(t, Equal(MustParse("2.0000000001"), two, NumericWithinTolerance))
	assert.False(t, Equal(MustParse("2.01"), two, NumericWithinTolerance))
	assert.True(t, EqualWithin(MustParse("2.01"), two, Tolerance{Rel: 1e-2, Abs: 1e-2}))
	assert.True(t, Equal(MustParse("sin(x)^2 + cos(x)^2"), Int(1), NumericWithinTolerance))
}

func TestDifferentiate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"x^3 + 2x", "3x^2 + 2"},
		{"5", "0"},
		{"(x+1)^2", "2(x + 1)"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Differentiate(MustParse(tt.in), "x").String())
		})
	}

	d := Differentiate(MustParse("sin(x)*x"), "x")
	assert.True(t, Equal(d, MustParse("cos(x)*x + sin(x)"), NumericWithinTolerance))
}

func TestPolynomialHelpers(t *testing.T) {
	coeffs, err := PolyCoeffs(MustParse("(x-1)*(x-2)"), "x")
	require.NoError(t, err)
	assert.Equal(t, 2, Degree(coeffs))
	assert.Equal(t, 0, coeffs[1].Cmp(big.NewRat(-3, 1)))
	assert.Equal(t, 0, coeffs[0].Cmp(big.NewRat(2, 1)))

	_, err = PolyCoeffs(MustParse("sin(x) + 1"), "x")
	assert.ErrorIs(t, err, ErrNotPolynomial)

	assert.Equal(t, "2x^2 - 3x + 1", Polynomial("x", 2, -3, 1).String())

	v, err := DefiniteIntegral(MustParse("3x^2"), "x", Int(0), Int(2))
	require.NoError(t, err)
	assert.Equal(t, "8", v.String())
}

func TestSubstituteAndFreeSymbols(t *testing.T) {
	e := MustParse("x^2 - 4 + y*pi")
	assert.Equal(t, []string{"x", "y"}, FreeSymbols(e))

	got := Reduce(SubstituteAll(e, map[string]Expr{"x": Int(2), "y": Int(0)}))
	assert.Equal(t, "0", got.String())
}

func TestLaTeX(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"x^2/2", `\frac{x^{2}}{2}`},
		{"sqrt(2)", `\sqrt{2}`},
		{"x^2 - 5x + 6", `x^{2} - 5x + 6`},
		{"-3/4", `-\frac{3}{4}`},
		{"2pi", `2\pi`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Simplify(MustParse(tt.in)).LaTeX())
		})
	}
}

func TestNumAccessors(t *testing.T) {
	n := Rat(6, 4)
	assert.False(t, n.IsInt())
	assert.Equal(t, "3/2", n.String())
	_, ok := n.Int64()
	assert.False(t, ok)
	assert.True(t, math.Abs(n.Float64()-1.5) < 1e-15)

	k, ok := Int(-7).Int64()
	assert.True(t, ok)
	assert.Equal(t, int64(-7), k)
}
