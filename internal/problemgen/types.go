package problemgen

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/mathsheet/internal/difficulty"
	"github.com/abhisek/mathsheet/internal/symbolic"
)

// Family identifies a problem family.
type Family string

const (
	FamilyLinearEquation           Family = difficulty.LinearEquation
	FamilyQuadraticEquation        Family = difficulty.QuadraticEquation
	FamilyPolynomialSimplification Family = difficulty.PolynomialSimplification
	FamilyDerivativeEvaluation     Family = difficulty.DerivativeEvaluation
	FamilyDefiniteIntegral         Family = difficulty.DefiniteIntegral
	FamilyWordProblem              Family = difficulty.WordProblem
	FamilyExponentReduction        Family = difficulty.ExponentReduction
)

// AnswerMode selects how submissions are compared with the canonical
// solutions.
type AnswerMode string

const (
	// AnswerNumeric accepts any expression with the same value.
	AnswerNumeric AnswerMode = "numeric"

	// AnswerExactForm requires the simplified form of the canonical
	// solution.
	AnswerExactForm AnswerMode = "exact-form"
)

// ProblemSpec is everything needed to rebuild a problem. Params holds the
// sampled named constants; their meaning is family specific.
type ProblemSpec struct {
	Family  Family           `json:"family"`
	Tier    difficulty.Tier  `json:"tier"`
	Seed    int64            `json:"seed"`
	Params  map[string]int64 `json:"params"`
	Version string           `json:"version"`
}

// Step is one line of the derivation trace. Equals is optional; when set
// the step reads "Expr = Equals".
type Step struct {
	Description string
	Expr        symbolic.Expr
	Equals      symbolic.Expr
}

// Problem is a generated problem instance with its ground truth.
type Problem struct {
	Spec ProblemSpec

	// Variable is the unknown for equation families, or the free variable
	// of the prompt expression. Empty for word problems.
	Variable string

	// Prompt holds [lhs, rhs] for equations and a single expression for
	// other families. Word problems carry no prompt expression.
	Prompt []symbolic.Expr

	// Statement is the instruction shown above the prompt.
	Statement string

	// Solutions are the canonical answers in generation order.
	Solutions []symbolic.Expr

	Steps      []Step
	AnswerMode AnswerMode
}

// IsEquation reports whether the prompt is an equation to solve.
func (p *Problem) IsEquation() bool { return len(p.Prompt) == 2 }

type stepJSON struct {
	Description string `json:"description"`
	Expr        string `json:"expr,omitempty"`
	Equals      string `json:"equals,omitempty"`
}

type problemJSON struct {
	Spec       ProblemSpec `json:"spec"`
	Variable   string      `json:"variable,omitempty"`
	Prompt     []string    `json:"prompt"`
	Statement  string      `json:"statement"`
	Solutions  []string    `json:"solutions"`
	Steps      []stepJSON  `json:"steps"`
	AnswerMode AnswerMode  `json:"answer_mode"`
}

// MarshalJSON encodes expressions in their canonical print form.
func (p Problem) MarshalJSON() ([]byte, error) {
	out := problemJSON{
		Spec:       p.Spec,
		Variable:   p.Variable,
		Prompt:     exprStrings(p.Prompt),
		Statement:  p.Statement,
		Solutions:  exprStrings(p.Solutions),
		AnswerMode: p.AnswerMode,
	}
	for _, s := range p.Steps {
		sj := stepJSON{Description: s.Description}
		if s.Expr != nil {
			sj.Expr = s.Expr.String()
		}
		if s.Equals != nil {
			sj.Equals = s.Equals.String()
		}
		out.Steps = append(out.Steps, sj)
	}
	return json.Marshal(out)
}

// UnmarshalJSON re-parses the print forms.
func (p *Problem) UnmarshalJSON(data []byte) error {
	var in problemJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	prompt, err := parseAll(in.Prompt)
	if err != nil {
		return fmt.Errorf("prompt: %w", err)
	}
	solutions, err := parseAll(in.Solutions)
	if err != nil {
		return fmt.Errorf("solutions: %w", err)
	}
	steps := make([]Step, 0, len(in.Steps))
	for i, sj := range in.Steps {
		s := Step{Description: sj.Description}
		if sj.Expr != "" {
			if s.Expr, err = symbolic.Parse(sj.Expr); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
		}
		if sj.Equals != "" {
			if s.Equals, err = symbolic.Parse(sj.Equals); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
		}
		steps = append(steps, s)
	}
	*p = Problem{
		Spec:       in.Spec,
		Variable:   in.Variable,
		Prompt:     prompt,
		Statement:  in.Statement,
		Solutions:  solutions,
		Steps:      steps,
		AnswerMode: in.AnswerMode,
	}
	return nil
}

func exprStrings(es []symbolic.Expr) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.String()
	}
	return out
}

func parseAll(ss []string) ([]symbolic.Expr, error) {
	out := make([]symbolic.Expr, len(ss))
	for i, s := range ss {
		e, err := symbolic.Parse(s)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}
