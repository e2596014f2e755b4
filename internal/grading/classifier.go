package grading

import (
	"github.com/abhisek/mathsheet/internal/problemgen"
	"github.com/abhisek/mathsheet/internal/symbolic"
)

// ErrorCategory classifies a wrong answer.
type ErrorCategory string

const (
	CategorySignError    ErrorCategory = "sign-error"
	CategoryReciprocal   ErrorCategory = "reciprocal"
	CategoryUnclassified ErrorCategory = "unclassified"
)

// ClassifyInput holds the context for classification.
type ClassifyInput struct {
	Problem *problemgen.Problem
	Parsed  symbolic.Expr
	Tol     symbolic.Tolerance
}

// Classifier is a rule-based error classifier.
// Returns a category and confidence (0.0–1.0), or ("", 0) if the rule doesn't apply.
type Classifier interface {
	Name() string
	Classify(input *ClassifyInput) (ErrorCategory, float64)
}

// DefaultClassifiers returns classifiers in priority order.
func DefaultClassifiers() []Classifier {
	return []Classifier{
		&SignErrorClassifier{},
		&ReciprocalClassifier{},
	}
}

// RunClassifiers executes rule-based classifiers in order.
// Returns the first match, or ("", 0, "") if no rules apply.
func RunClassifiers(classifiers []Classifier, input *ClassifyInput) (ErrorCategory, float64, string) {
	for _, c := range classifiers {
		cat, conf := c.Classify(input)
		if cat != "" {
			return cat, conf, c.Name()
		}
	}
	return "", 0, ""
}

// SignErrorClassifier flags answers that are the negation of a non-zero
// solution.
type SignErrorClassifier struct{}

func (c *SignErrorClassifier) Name() string { return "sign-error" }

func (c *SignErrorClassifier) Classify(input *ClassifyInput) (ErrorCategory, float64) {
	for _, s := range input.Problem.Solutions {
		if symbolic.EqualWithin(s, symbolic.Int(0), input.Tol) {
			continue
		}
		if symbolic.EqualWithin(input.Parsed, symbolic.Neg(s), input.Tol) {
			return CategorySignError, 0.9
		}
	}
	return "", 0
}

// ReciprocalClassifier flags answers that are 1/s for a solution s other
// than 0 and ±1.
type ReciprocalClassifier struct{}

func (c *ReciprocalClassifier) Name() string { return "reciprocal" }

func (c *ReciprocalClassifier) Classify(input *ClassifyInput) (ErrorCategory, float64) {
	for _, s := range input.Problem.Solutions {
		v, err := symbolic.EvaluateNumeric(s, nil, 0)
		if err != nil || v == 0 || v == 1 || v == -1 {
			continue
		}
		if symbolic.EqualWithin(input.Parsed, symbolic.Quo(symbolic.Int(1), s), input.Tol) {
			return CategoryReciprocal, 0.7
		}
	}
	return "", 0
}
