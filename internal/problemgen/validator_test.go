package problemgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathsheet/internal/difficulty"
	"github.com/abhisek/mathsheet/internal/symbolic"
)

func validEquation() *Problem {
	x := symbolic.Symbol("x")
	return &Problem{
		Spec:      ProblemSpec{Family: FamilyLinearEquation, Tier: difficulty.Easy, Version: Version},
		Variable:  "x",
		Prompt:    []symbolic.Expr{symbolic.MustParse("2x + 3"), symbolic.Int(7)},
		Statement: "Solve for x.",
		Solutions: []symbolic.Expr{symbolic.Int(2)},
		Steps: []Step{
			{Description: "Collect", Expr: symbolic.MustParse("2x"), Equals: symbolic.Int(4)},
			{Description: "Divide", Expr: x, Equals: symbolic.Int(2)},
		},
		AnswerMode: AnswerNumeric,
	}
}

func TestValidationError_Format(t *testing.T) {
	err := &ValidationError{Validator: "structural", Message: "statement is empty"}
	assert.Equal(t, `validator "structural": statement is empty`, err.Error())
}

func TestDefaultConfig_Chain(t *testing.T) {
	cfg := DefaultConfig()
	names := make([]string, len(cfg.Validators))
	for i, v := range cfg.Validators {
		names[i] = v.Name()
	}
	assert.Equal(t, []string{"structural", "integrality", "solution-check", "distinct-solutions"}, names)
	assert.Equal(t, 50, cfg.MaxAttempts)
}

func TestValidators_AcceptValidProblem(t *testing.T) {
	r := difficulty.Ranges{IntegerAnswers: true}
	for _, v := range DefaultConfig().Validators {
		assert.Nil(t, v.Validate(validEquation(), r), v.Name())
	}
}

func TestStructuralValidator(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Problem)
		want   string
	}{
		{"empty statement", func(p *Problem) { p.Statement = "" }, "statement is empty"},
		{"empty prompt", func(p *Problem) { p.Prompt = nil }, "prompt is empty"},
		{"three sides", func(p *Problem) { p.Prompt = append(p.Prompt, symbolic.Int(1)) }, "more than two sides"},
		{"no variable", func(p *Problem) { p.Variable = "" }, "no variable"},
		{"no solutions", func(p *Problem) { p.Solutions = nil }, "no solutions"},
		{"no steps", func(p *Problem) { p.Steps = nil }, "step trace is empty"},
		{"bad mode", func(p *Problem) { p.AnswerMode = "approximate" }, "answer mode"},
		{"nil solution", func(p *Problem) { p.Solutions = []symbolic.Expr{nil} }, "nil solution"},
	}
	v := &StructuralValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validEquation()
			tt.mutate(p)
			err := v.Validate(p, difficulty.Ranges{})
			require.NotNil(t, err)
			assert.Contains(t, err.Message, tt.want)
			assert.False(t, err.Retryable)
		})
	}
}

func TestStructuralValidator_WordProblemWithoutPrompt(t *testing.T) {
	p := validEquation()
	p.Spec.Family = FamilyWordProblem
	p.Prompt = nil
	p.Variable = ""
	assert.Nil(t, (&StructuralValidator{}).Validate(p, difficulty.Ranges{}))
}

func TestIntegralityValidator(t *testing.T) {
	v := &IntegralityValidator{}

	p := validEquation()
	p.Solutions = []symbolic.Expr{symbolic.Rat(7, 2)}
	err := v.Validate(p, difficulty.Ranges{IntegerAnswers: true})
	require.NotNil(t, err)
	assert.True(t, err.Retryable)

	assert.Nil(t, v.Validate(p, difficulty.Ranges{}), "rational answers allowed when not required")

	p.Solutions = []symbolic.Expr{symbolic.MustParse("1 + sqrt(2)")}
	assert.NotNil(t, v.Validate(p, difficulty.Ranges{IntegerAnswers: true}))
}

func TestDistinctSolutionsValidator(t *testing.T) {
	v := &DistinctSolutionsValidator{}
	r := difficulty.Ranges{DistinctRoots: true, Degree: 2}

	p := validEquation()
	p.Solutions = []symbolic.Expr{symbolic.Int(2), symbolic.Int(3)}
	assert.Nil(t, v.Validate(p, r))

	p.Solutions = []symbolic.Expr{symbolic.Int(2), symbolic.MustParse("4/2")}
	err := v.Validate(p, r)
	require.NotNil(t, err)
	assert.True(t, err.Retryable)

	p.Solutions = []symbolic.Expr{symbolic.Int(2)}
	err = v.Validate(p, r)
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "expected 2 distinct roots")
}

func TestSolutionCheckValidator_WrongRoot(t *testing.T) {
	p := validEquation()
	p.Solutions = []symbolic.Expr{symbolic.Int(3)}

	err := (&SolutionCheckValidator{}).Validate(p, difficulty.Ranges{})
	require.NotNil(t, err)
	assert.False(t, err.Retryable)
	assert.Contains(t, err.Message, "residual")
}

func TestSolutionCheckValidator_UndefinedSolutionIsRetryable(t *testing.T) {
	p := validEquation()
	p.Solutions = []symbolic.Expr{symbolic.MustParse("sqrt(-4)")}

	err := (&SolutionCheckValidator{}).Validate(p, difficulty.Ranges{})
	require.NotNil(t, err)
	assert.True(t, err.Retryable)
}

func TestSolutionCheckValidator_SymbolicSolutionIsNotEvaluatedAlone(t *testing.T) {
	p := &Problem{
		Spec:       ProblemSpec{Family: FamilyExponentReduction},
		Variable:   "x",
		Prompt:     []symbolic.Expr{symbolic.MustParse("12*w^5*x^3/(18*w^2*x^7)")},
		Solutions:  []symbolic.Expr{symbolic.MustParse("2w^3/(3*x^4)")},
		AnswerMode: AnswerExactForm,
	}
	v := &SolutionCheckValidator{}
	assert.Nil(t, v.Validate(p, difficulty.Ranges{}))

	p.Solutions = []symbolic.Expr{symbolic.MustParse("2w^3/(3*x^3)")}
	err := v.Validate(p, difficulty.Ranges{})
	require.NotNil(t, err)
	assert.False(t, err.Retryable)
}

func TestSolutionCheckValidator_Derivative(t *testing.T) {
	p := &Problem{
		Spec: ProblemSpec{
			Family: FamilyDerivativeEvaluation,
			Params: map[string]int64{"x0": 2},
		},
		Variable:   "x",
		Prompt:     []symbolic.Expr{symbolic.MustParse("x^3 - 2x")},
		Solutions:  []symbolic.Expr{symbolic.Int(10)},
		AnswerMode: AnswerNumeric,
	}
	v := &SolutionCheckValidator{}
	assert.Nil(t, v.Validate(p, difficulty.Ranges{}))

	p.Solutions = []symbolic.Expr{symbolic.Int(12)}
	assert.NotNil(t, v.Validate(p, difficulty.Ranges{}))
}

func TestSolutionCheckValidator_Integral(t *testing.T) {
	p := &Problem{
		Spec: ProblemSpec{
			Family: FamilyDefiniteIntegral,
			Params: map[string]int64{"lo": 0, "hi": 3},
		},
		Variable:   "x",
		Prompt:     []symbolic.Expr{symbolic.MustParse("x^2")},
		Solutions:  []symbolic.Expr{symbolic.Int(9)},
		AnswerMode: AnswerNumeric,
	}
	v := &SolutionCheckValidator{}
	assert.Nil(t, v.Validate(p, difficulty.Ranges{}))

	p.Solutions = []symbolic.Expr{symbolic.Int(8)}
	assert.NotNil(t, v.Validate(p, difficulty.Ranges{}))
}

func TestSolutionCheckValidator_ExactForm(t *testing.T) {
	p := &Problem{
		Spec:       ProblemSpec{Family: FamilyPolynomialSimplification},
		Variable:   "x",
		Prompt:     []symbolic.Expr{symbolic.MustParse("2(x + 3) + 3(x - 1)")},
		Solutions:  []symbolic.Expr{symbolic.MustParse("5x + 3")},
		AnswerMode: AnswerExactForm,
	}
	v := &SolutionCheckValidator{}
	assert.Nil(t, v.Validate(p, difficulty.Ranges{}))

	p.Solutions = []symbolic.Expr{symbolic.MustParse("5x + 4")}
	assert.NotNil(t, v.Validate(p, difficulty.Ranges{}))
}
