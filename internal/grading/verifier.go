package grading

import (
	"strings"

	"github.com/abhisek/mathsheet/internal/problemgen"
	"github.com/abhisek/mathsheet/internal/symbolic"
)

// Verifier grades learner answers against a problem's canonical solutions.
// It holds no mutable state and is safe for concurrent use.
type Verifier struct {
	config Config
}

// New creates a Verifier. Zero tolerances fall back to DefaultConfig.
func New(cfg Config) *Verifier {
	def := DefaultConfig()
	if cfg.Tolerance == (symbolic.Tolerance{}) {
		cfg.Tolerance = def.Tolerance
	}
	if cfg.LooseTolerance == (symbolic.Tolerance{}) {
		cfg.LooseTolerance = def.LooseTolerance
	}
	return &Verifier{config: cfg}
}

// NewSubmission parses raw for p. A leading "<variable> =" is accepted and
// stripped.
func NewSubmission(p *problemgen.Problem, raw string) Submission {
	s := Submission{Problem: p, Raw: raw}
	expr := raw
	if lhs, rhs, ok := strings.Cut(raw, "="); ok && p.Variable != "" && strings.TrimSpace(lhs) == p.Variable {
		expr = rhs
	}
	s.Parsed, s.ParseErr = symbolic.Parse(expr)
	return s
}

// Grade parses raw and compares it with every candidate in generation
// order. Unparsable input is a verdict, not an error.
func (v *Verifier) Grade(p *problemgen.Problem, raw string) Result {
	return v.GradeSubmission(NewSubmission(p, raw))
}

// GradeSubmission grades an already parsed submission.
func (v *Verifier) GradeSubmission(s Submission) Result {
	if s.ParseErr != nil {
		return Result{Verdict: Unparsable, MatchedIndex: -1, ParseErr: s.ParseErr}
	}
	p := s.Problem
	res := Result{MatchedIndex: -1, Normalized: symbolic.Simplify(s.Parsed)}

	for i, c := range p.Solutions {
		if v.correct(p.AnswerMode, s.Parsed, c) {
			res.Verdict, res.MatchedIndex, res.Matched = Correct, i, c
			return res
		}
	}
	for i, c := range p.Solutions {
		if v.sameIdea(p.AnswerMode, s.Parsed, c) {
			res.Verdict, res.MatchedIndex, res.Matched = IncorrectForm, i, c
			return res
		}
	}

	res.Verdict = IncorrectValue
	res.Diagnosis = CategoryUnclassified
	input := &ClassifyInput{Problem: p, Parsed: s.Parsed, Tol: v.config.Tolerance}
	if cat, _, _ := RunClassifiers(v.config.Classifiers, input); cat != "" {
		res.Diagnosis = cat
	}
	return res
}

func (v *Verifier) correct(mode problemgen.AnswerMode, learner, candidate symbolic.Expr) bool {
	if mode == problemgen.AnswerExactForm {
		return symbolic.Equal(learner, candidate, symbolic.StructuralAfterSimplify)
	}
	return symbolic.EqualWithin(learner, candidate, v.config.Tolerance)
}

// sameIdea reports an answer with the right value in the wrong
// presentation: unsimplified for exact-form problems, imprecise for
// numeric ones.
func (v *Verifier) sameIdea(mode problemgen.AnswerMode, learner, candidate symbolic.Expr) bool {
	if mode == problemgen.AnswerExactForm {
		return symbolic.Equal(learner, candidate, symbolic.Algebraic) ||
			symbolic.EqualWithin(learner, candidate, v.config.Tolerance)
	}
	return symbolic.EqualWithin(learner, candidate, v.config.LooseTolerance)
}
