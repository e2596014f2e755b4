package problemgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathsheet/internal/difficulty"
	"github.com/abhisek/mathsheet/internal/symbolic"
)

func spec(f Family, params map[string]int64) ProblemSpec {
	return ProblemSpec{Family: f, Tier: difficulty.Easy, Params: params, Version: Version}
}

func TestLinear_Build(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]int64
		want   string
	}{
		{"a x + b = c", map[string]int64{"form": 1, "a": 3, "b": 2, "root": 4}, "4"},
		{"both sides", map[string]int64{"form": 2, "a": 5, "b": 1, "c": 2, "root": -3}, "-3"},
		{"brackets", map[string]int64{"form": 3, "a": 2, "b": 1, "c": 4, "d": 3}, "-1/2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := linearEquation{}.Build(spec(FamilyLinearEquation, tt.params))
			require.NoError(t, err)
			require.Len(t, p.Solutions, 1)
			assert.Equal(t, tt.want, p.Solutions[0].String())
			assert.True(t, p.IsEquation())
			assert.Nil(t, (&SolutionCheckValidator{}).Validate(p, difficulty.Ranges{}))
		})
	}
}

func TestLinear_CancellingXIsDegenerate(t *testing.T) {
	_, err := linearEquation{}.Build(spec(FamilyLinearEquation, map[string]int64{"form": 3, "a": 2, "b": 1, "c": 2, "d": 3}))
	var dg *DegenerateError
	assert.ErrorAs(t, err, &dg)
}

func TestQuadratic_Build(t *testing.T) {
	p, err := quadraticEquation{}.Build(spec(FamilyQuadraticEquation, map[string]int64{"a": 1, "b": -5, "c": 6}))
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3"}, exprStrings(p.Solutions))
	assert.Equal(t, "x^2 - 5x + 6", p.Prompt[0].String())
}

func TestQuadratic_NegativeLeadingCoefficientSortsRoots(t *testing.T) {
	// -x^2 + x + 6 = 0 has roots -2 and 3.
	p, err := quadraticEquation{}.Build(spec(FamilyQuadraticEquation, map[string]int64{"a": -1, "b": 1, "c": 6}))
	require.NoError(t, err)
	assert.Equal(t, []string{"-2", "3"}, exprStrings(p.Solutions))
}

func TestQuadratic_IrrationalRoots(t *testing.T) {
	p, err := quadraticEquation{}.Build(spec(FamilyQuadraticEquation, map[string]int64{"a": 1, "b": -2, "c": -1}))
	require.NoError(t, err)
	require.Len(t, p.Solutions, 2)
	assert.True(t, symbolic.Equal(p.Solutions[0], symbolic.MustParse("1 - sqrt(2)"), symbolic.NumericWithinTolerance))
	assert.True(t, symbolic.Equal(p.Solutions[1], symbolic.MustParse("1 + sqrt(2)"), symbolic.NumericWithinTolerance))
	assert.Nil(t, (&SolutionCheckValidator{}).Validate(p, difficulty.Ranges{}))
}

func TestQuadratic_Errors(t *testing.T) {
	_, err := quadraticEquation{}.Build(spec(FamilyQuadraticEquation, map[string]int64{"a": 0, "b": 1, "c": 1}))
	var dg *DegenerateError
	assert.ErrorAs(t, err, &dg)

	_, err = quadraticEquation{}.Build(spec(FamilyQuadraticEquation, map[string]int64{"a": 1, "b": 0, "c": 1}))
	var de *symbolic.DomainError
	assert.ErrorAs(t, err, &de)
}

func TestQuadratic_RepeatedRoot(t *testing.T) {
	p, err := quadraticEquation{}.Build(spec(FamilyQuadraticEquation, map[string]int64{"a": 1, "b": -4, "c": 4}))
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, exprStrings(p.Solutions))

	verr := (&DistinctSolutionsValidator{}).Validate(p, difficulty.Ranges{DistinctRoots: true, Degree: 2})
	require.NotNil(t, verr)
	assert.True(t, verr.Retryable)
}

func TestPolynomial_Build(t *testing.T) {
	p, err := polynomialSimplification{}.Build(spec(FamilyPolynomialSimplification,
		map[string]int64{"deg": 1, "k1": 2, "m1": 3, "k2": 3, "m2": -1}))
	require.NoError(t, err)
	assert.Equal(t, AnswerExactForm, p.AnswerMode)
	assert.Equal(t, "5x + 3", p.Solutions[0].String())
	assert.False(t, symbolic.Identical(p.Prompt[0], p.Solutions[0]))
}

func TestPolynomial_DegreeDropIsDegenerate(t *testing.T) {
	_, err := polynomialSimplification{}.Build(spec(FamilyPolynomialSimplification,
		map[string]int64{"deg": 1, "k1": 2, "m1": 3, "k2": -2, "m2": 1}))
	var dg *DegenerateError
	assert.ErrorAs(t, err, &dg)
}

func TestDerivative_Build(t *testing.T) {
	// f(x) = x^2 + 3x - 1, f'(2) = 7
	p, err := derivativeEvaluation{}.Build(spec(FamilyDerivativeEvaluation,
		map[string]int64{"form": 1, "deg": 2, "c2": 1, "c1": 3, "c0": -1, "x0": 2}))
	require.NoError(t, err)
	assert.Equal(t, "7", p.Solutions[0].String())
	assert.Contains(t, p.Statement, "f'(2)")

	// f(x) = (2x + 1)^3, f'(x) = 6(2x + 1)^2, f'(1) = 54
	p, err = derivativeEvaluation{}.Build(spec(FamilyDerivativeEvaluation,
		map[string]int64{"form": 2, "a": 2, "b": 1, "n": 3, "x0": 1}))
	require.NoError(t, err)
	assert.Equal(t, "54", p.Solutions[0].String())
	assert.Nil(t, (&SolutionCheckValidator{}).Validate(p, difficulty.Ranges{}))
}

func TestIntegral_Build(t *testing.T) {
	// integral of 3x^2 + 2 over [0, 2] = 8 + 4
	p, err := definiteIntegral{}.Build(spec(FamilyDefiniteIntegral,
		map[string]int64{"deg": 2, "c2": 3, "c1": 0, "c0": 2, "lo": 0, "hi": 2}))
	require.NoError(t, err)
	assert.Equal(t, "12", p.Solutions[0].String())
	assert.Nil(t, (&SolutionCheckValidator{}).Validate(p, difficulty.Ranges{}))
}

func TestIntegral_BoundsOutOfOrder(t *testing.T) {
	_, err := definiteIntegral{}.Build(spec(FamilyDefiniteIntegral,
		map[string]int64{"deg": 1, "c1": 1, "c0": 0, "lo": 3, "hi": 1}))
	var dg *DegenerateError
	assert.ErrorAs(t, err, &dg)
}

func TestWordProblem_Build(t *testing.T) {
	p, err := wordProblem{}.Build(spec(FamilyWordProblem,
		map[string]int64{"template": 0, "name": 0, "a": 4, "b": 5}))
	require.NoError(t, err)
	assert.Equal(t, "Mari has 4 marbles and wins 5 more. How many marbles does Mari have now?", p.Statement)
	assert.Equal(t, "9", p.Solutions[0].String())
	assert.Empty(t, p.Prompt)
	assert.Nil(t, (&StructuralValidator{}).Validate(p, difficulty.Ranges{}))
}

func TestWordProblem_TemplatesMatchSteps(t *testing.T) {
	for i, tmpl := range wordTemplates {
		params := map[string]int64{"template": int64(i), "name": 1}
		for _, v := range tmpl.vars {
			params[v] = 3
		}
		p, err := wordProblem{}.Build(spec(FamilyWordProblem, params))
		require.NoError(t, err, "template %d", i)
		assert.Len(t, p.Steps, tmpl.steps, "template %d", i)
		assert.NotContains(t, p.Statement, "{", "template %d", i)
	}
}

func TestExponentReduction_Build(t *testing.T) {
	p, err := exponentReduction{}.Build(spec(FamilyExponentReduction,
		map[string]int64{"vars": 2, "c1": 12, "c2": 18, "n0": 5, "d0": 2, "n1": 3, "d1": 7}))
	require.NoError(t, err)
	assert.Equal(t, "12w^5*x^3/(18w^2*x^7)", p.Prompt[0].String())
	assert.Equal(t, "2w^3/(3*x^4)", p.Solutions[0].String())
	assert.Nil(t, (&SolutionCheckValidator{}).Validate(p, difficulty.Ranges{}))
}

func TestExponentReduction_AllCancelIsDegenerate(t *testing.T) {
	_, err := exponentReduction{}.Build(spec(FamilyExponentReduction,
		map[string]int64{"vars": 2, "c1": 4, "c2": 2, "n0": 3, "d0": 3, "n1": 2, "d1": 2}))
	var dg *DegenerateError
	assert.ErrorAs(t, err, &dg)
}
