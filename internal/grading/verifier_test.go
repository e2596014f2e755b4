package grading

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathsheet/internal/difficulty"
	"github.com/abhisek/mathsheet/internal/problemgen"
	"github.com/abhisek/mathsheet/internal/symbolic"
)

func quadraticRoots() *problemgen.Problem {
	// x^2 + x - 6 = 0
	return &problemgen.Problem{
		Spec:       problemgen.ProblemSpec{Family: problemgen.FamilyQuadraticEquation},
		Variable:   "x",
		Prompt:     []symbolic.Expr{symbolic.MustParse("x^2 + x - 6"), symbolic.Int(0)},
		Statement:  "Solve for x.",
		Solutions:  []symbolic.Expr{symbolic.Int(-3), symbolic.Int(2)},
		AnswerMode: problemgen.AnswerNumeric,
	}
}

func expandProblem() *problemgen.Problem {
	return &problemgen.Problem{
		Spec:       problemgen.ProblemSpec{Family: problemgen.FamilyPolynomialSimplification},
		Variable:   "x",
		Prompt:     []symbolic.Expr{symbolic.MustParse("2(x + 2)")},
		Statement:  "Expand and simplify.",
		Solutions:  []symbolic.Expr{symbolic.Expand(symbolic.MustParse("2x + 4"))},
		AnswerMode: problemgen.AnswerExactForm,
	}
}

func TestGrade_EquivalenceClosure(t *testing.T) {
	v := New(DefaultConfig())
	p := quadraticRoots()

	tests := []struct {
		raw     string
		verdict Verdict
		index   int
	}{
		{"-3", Correct, 0},
		{"2", Correct, 1},
		{"2.0000000001", Correct, 1},
		{"x = 2", Correct, 1},
		{"4/2", Correct, 1},
		{"-6/2", Correct, 0},
		{"3", IncorrectValue, -1},
		{"2.01", IncorrectForm, 1},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			r := v.Grade(p, tt.raw)
			assert.Equal(t, tt.verdict, r.Verdict)
			assert.Equal(t, tt.index, r.MatchedIndex)
			if tt.index >= 0 {
				assert.True(t, symbolic.Identical(p.Solutions[tt.index], r.Matched))
			}
		})
	}
}

func TestGrade_FormSensitivity(t *testing.T) {
	v := New(DefaultConfig())
	p := expandProblem()

	tests := []struct {
		raw     string
		verdict Verdict
	}{
		{"2x + 4", Correct},
		{"4 + 2*x", Correct},
		{"2*(x+2)", IncorrectForm},
		{"x + x + 4", IncorrectForm},
		{"x+4", IncorrectValue},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.verdict, v.Grade(p, tt.raw).Verdict)
		})
	}
}

func TestGrade_Unparsable(t *testing.T) {
	v := New(DefaultConfig())
	for _, raw := range []string{"banana", "", "2 +", "x = = 2"} {
		r := v.Grade(quadraticRoots(), raw)
		assert.Equal(t, Unparsable, r.Verdict, raw)
		assert.Equal(t, -1, r.MatchedIndex)
		assert.Nil(t, r.Normalized)
		assert.Error(t, r.ParseErr)
	}
}

func TestGrade_Diagnosis(t *testing.T) {
	v := New(DefaultConfig())

	r := v.Grade(quadraticRoots(), "3")
	assert.Equal(t, CategorySignError, r.Diagnosis)

	p := quadraticRoots()
	p.Solutions = []symbolic.Expr{symbolic.Int(4)}
	r = v.Grade(p, "1/4")
	assert.Equal(t, IncorrectValue, r.Verdict)
	assert.Equal(t, CategoryReciprocal, r.Diagnosis)

	r = v.Grade(p, "17")
	assert.Equal(t, CategoryUnclassified, r.Diagnosis)
}

func TestGrade_FirstCandidateWins(t *testing.T) {
	p := quadraticRoots()
	p.Solutions = []symbolic.Expr{symbolic.Int(2), symbolic.MustParse("4/2")}
	r := New(DefaultConfig()).Grade(p, "2")
	assert.Equal(t, 0, r.MatchedIndex)
}

func TestGrade_CustomTolerance(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tolerance = symbolic.Tolerance{Rel: 1e-3}
	r := New(cfg).Grade(quadraticRoots(), "2.001")
	assert.Equal(t, Correct, r.Verdict)
}

func TestGrade_CanonicalSolutionsRoundTrip(t *testing.T) {
	g := problemgen.New(problemgen.DefaultRegistry(), difficulty.DefaultTable(), problemgen.DefaultConfig(), nil)
	v := New(DefaultConfig())

	for _, fam := range problemgen.DefaultRegistry().Families() {
		for _, tier := range difficulty.AllTiers {
			for seed := int64(1); seed <= 10; seed++ {
				s := seed
				p, err := g.Generate(context.Background(), problemgen.Request{Family: fam, Tier: tier, Seed: &s})
				require.NoError(t, err)
				for i, sol := range p.Solutions {
					r := v.Grade(p, sol.String())
					assert.Equal(t, Correct, r.Verdict, "%s %s seed %d: %q", fam, tier, seed, sol)
					assert.Equal(t, i, r.MatchedIndex, "%s %s seed %d", fam, tier, seed)
				}
			}
		}
	}
}

func TestRunClassifiers_Order(t *testing.T) {
	p := quadraticRoots()
	p.Solutions = []symbolic.Expr{symbolic.Int(-1)}
	// ±1 are excluded from the reciprocal rule.
	cat, conf, name := RunClassifiers(DefaultClassifiers(), &ClassifyInput{
		Problem: p, Parsed: symbolic.Int(1), Tol: symbolic.DefaultTolerance,
	})
	assert.Equal(t, CategorySignError, cat)
	assert.Equal(t, 0.9, conf)
	assert.Equal(t, "sign-error", name)
}
