package problemgen

// Version is the generator version recorded in every ProblemSpec. Bump the
// major version whenever Build output for an existing spec changes.
const Version = "v1.0.0"

// Config controls the behavior of the Generator.
type Config struct {
	// Validators is the ordered list of validators to run on every
	// built problem. They execute in order; the first failure
	// stops the pipeline.
	Validators []Validator

	// MaxAttempts bounds the sample/build/validate loop.
	MaxAttempts int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&IntegralityValidator{},
			&SolutionCheckValidator{},
			&DistinctSolutionsValidator{},
		},
		MaxAttempts: 50,
	}
}
