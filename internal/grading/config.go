package grading

import "github.com/abhisek/mathsheet/internal/symbolic"

// Config controls answer comparison.
type Config struct {
	// Tolerance decides Correct in numeric mode and value equality in
	// exact-form mode.
	Tolerance symbolic.Tolerance

	// LooseTolerance flags answers that are close but not correct
	// (rounded too early, truncated decimals) as IncorrectForm.
	LooseTolerance symbolic.Tolerance

	// Classifiers run in order on IncorrectValue results.
	Classifiers []Classifier
}

// DefaultConfig returns the standard tolerances and classifier chain.
func DefaultConfig() Config {
	return Config{
		Tolerance:      symbolic.DefaultTolerance,
		LooseTolerance: symbolic.Tolerance{Rel: 1e-2, Abs: 1e-6},
		Classifiers:    DefaultClassifiers(),
	}
}
