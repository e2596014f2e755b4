package grading

import (
	"github.com/abhisek/mathsheet/internal/problemgen"
	"github.com/abhisek/mathsheet/internal/symbolic"
)

// Verdict is the outcome of grading one submission.
type Verdict string

const (
	Correct        Verdict = "correct"
	IncorrectValue Verdict = "incorrect-value"
	IncorrectForm  Verdict = "incorrect-form"
	Unparsable     Verdict = "unparsable"
)

// Submission is one grading attempt. It is never mutated; regrading
// creates a new Submission.
type Submission struct {
	Problem  *problemgen.Problem
	Raw      string
	Parsed   symbolic.Expr
	ParseErr error
}

// Result is the verdict for a Submission.
type Result struct {
	Verdict Verdict

	// MatchedIndex is the index of the matched candidate in the problem's
	// solutions, or -1.
	MatchedIndex int
	Matched      symbolic.Expr

	// Normalized is the simplified learner expression. Nil when
	// unparsable.
	Normalized symbolic.Expr

	// Diagnosis names the likely mistake for IncorrectValue results.
	Diagnosis ErrorCategory

	// ParseErr is set for Unparsable results.
	ParseErr error
}
