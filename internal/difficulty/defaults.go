package difficulty

// Family identifiers known to the default table.
const (
	LinearEquation           = "linear-equation"
	QuadraticEquation        = "quadratic-equation"
	PolynomialSimplification = "polynomial-simplification"
	DerivativeEvaluation     = "derivative-evaluation"
	DefiniteIntegral         = "definite-integral"
	WordProblem              = "word-problem"
	ExponentReduction        = "exponent-reduction"
)

// DefaultTable returns the built-in tuning.
func DefaultTable() *Table {
	return NewTable(map[string]map[Tier]Ranges{
		LinearEquation: {
			// a·x + b = c
			Easy: {CoeffMin: -5, CoeffMax: 5, ExcludeZero: true, RootMin: -10, RootMax: 10, IntegerAnswers: true, Steps: 2},
			// a·x + b = c·x + d
			Medium: {CoeffMin: -10, CoeffMax: 10, ExcludeZero: true, RootMin: -12, RootMax: 12, IntegerAnswers: true, Steps: 3},
			// a(x + b) = c·x + d, rational root
			Hard: {CoeffMin: -20, CoeffMax: 20, ExcludeZero: true, RootMin: -20, RootMax: 20, Steps: 4},
		},
		QuadraticEquation: {
			// a(x - r1)(x - r2)
			Easy: {CoeffMin: -3, CoeffMax: 3, ExcludeZero: true, RootMin: -6, RootMax: 6, IntegerAnswers: true, DistinctRoots: true, Degree: 2},
			// (p·x - q)(r·x - s)
			Medium: {CoeffMin: 1, CoeffMax: 4, ExcludeZero: true, RootMin: -8, RootMax: 8, DistinctRoots: true, Degree: 2},
			// raw a, b, c with positive discriminant
			Hard: {CoeffMin: -20, CoeffMax: 20, ExcludeZero: true, AllowIrrational: true, DistinctRoots: true, Degree: 2},
		},
		PolynomialSimplification: {
			Easy:   {CoeffMin: -5, CoeffMax: 5, ExcludeZero: true, Degree: 1, Terms: 2},
			Medium: {CoeffMin: -6, CoeffMax: 6, ExcludeZero: true, Degree: 2, Terms: 2},
			Hard:   {CoeffMin: -9, CoeffMax: 9, ExcludeZero: true, Degree: 3, Terms: 3},
		},
		DerivativeEvaluation: {
			Easy:   {CoeffMin: -5, CoeffMax: 5, ExcludeZero: true, RootMin: -3, RootMax: 3, IntegerAnswers: true, Degree: 2, Terms: 3},
			Medium: {CoeffMin: -6, CoeffMax: 6, ExcludeZero: true, RootMin: -4, RootMax: 4, IntegerAnswers: true, Degree: 3, Terms: 3},
			// (a·x + b)^n, chain rule
			Hard: {CoeffMin: -4, CoeffMax: 4, ExcludeZero: true, RootMin: -3, RootMax: 3, IntegerAnswers: true, Degree: 3, Steps: 2},
		},
		DefiniteIntegral: {
			Easy:   {CoeffMin: -5, CoeffMax: 5, ExcludeZero: true, RootMin: 0, RootMax: 4, IntegerAnswers: true, Degree: 1},
			Medium: {CoeffMin: -6, CoeffMax: 6, ExcludeZero: true, RootMin: -3, RootMax: 4, Degree: 2},
			Hard:   {CoeffMin: -9, CoeffMax: 9, ExcludeZero: true, RootMin: -4, RootMax: 5, Degree: 3},
		},
		WordProblem: {
			Easy:   {CoeffMin: 2, CoeffMax: 10, IntegerAnswers: true, Steps: 1},
			Medium: {CoeffMin: 3, CoeffMax: 25, IntegerAnswers: true, Steps: 2},
			Hard:   {CoeffMin: 5, CoeffMax: 60, IntegerAnswers: true, Steps: 3},
		},
		ExponentReduction: {
			Easy:   {CoeffMin: 2, CoeffMax: 12, Degree: 5, Terms: 2},
			Medium: {CoeffMin: 10, CoeffMax: 50, Degree: 9, Terms: 2},
			Hard:   {CoeffMin: 10, CoeffMax: 50, Degree: 9, Terms: 3},
		},
	})
}
