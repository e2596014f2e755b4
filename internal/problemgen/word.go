package problemgen

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/abhisek/mathsheet/internal/difficulty"
	"github.com/abhisek/mathsheet/internal/random"
	"github.com/abhisek/mathsheet/internal/symbolic"
)

var wordNames = []string{"Mari", "Karl", "Liis", "Jaan", "Anna", "Tom", "Sofia", "Oliver"}

// wordTemplate is an arithmetic story. Sampled values are stored in the
// spec; derived quantities are recomputed by solve.
type wordTemplate struct {
	steps  int
	text   string
	vars   []string
	derive func(v map[string]int64) map[string]int64
	solve  func(v map[string]int64) (int64, []Step)
}

func wordStep(format string, result int64, args ...any) Step {
	return Step{Description: fmt.Sprintf(format, args...), Expr: num(result)}
}

var wordTemplates = []wordTemplate{
	{
		steps: 1,
		text:  "{name} has {a} marbles and wins {b} more. How many marbles does {name} have now?",
		vars:  []string{"a", "b"},
		solve: func(v map[string]int64) (int64, []Step) {
			n := v["a"] + v["b"]
			return n, []Step{wordStep("Add: %d + %d = %d", n, v["a"], v["b"], n)}
		},
	},
	{
		steps: 1,
		text:  "A box holds {a} pencils. How many pencils are in {b} boxes?",
		vars:  []string{"a", "b"},
		solve: func(v map[string]int64) (int64, []Step) {
			n := v["a"] * v["b"]
			return n, []Step{wordStep("Multiply: %d × %d = %d", n, v["a"], v["b"], n)}
		},
	},
	{
		steps: 1,
		text:  "{name} shares {p} stickers equally among {b} friends. How many stickers does each friend get?",
		vars:  []string{"a", "b"},
		derive: func(v map[string]int64) map[string]int64 {
			return map[string]int64{"p": v["a"] * v["b"]}
		},
		solve: func(v map[string]int64) (int64, []Step) {
			return v["a"], []Step{wordStep("Divide: %d ÷ %d = %d", v["a"], v["p"], v["b"], v["a"])}
		},
	},
	{
		steps: 2,
		text:  "{name} buys {a} notebooks at {b} euros each and pays with {m} euros. How much change does {name} get?",
		vars:  []string{"a", "b", "c"},
		derive: func(v map[string]int64) map[string]int64 {
			return map[string]int64{"m": v["a"]*v["b"] + v["c"]}
		},
		solve: func(v map[string]int64) (int64, []Step) {
			cost := v["a"] * v["b"]
			return v["c"], []Step{
				wordStep("Cost: %d × %d = %d", cost, v["a"], v["b"], cost),
				wordStep("Change: %d - %d = %d", v["c"], v["m"], cost, v["c"]),
			}
		},
	},
	{
		steps: 2,
		text:  "A bus leaves the station with {p} passengers. At the first stop {b} passengers get off and {c} get on. How many passengers are on the bus now?",
		vars:  []string{"a", "b", "c"},
		derive: func(v map[string]int64) map[string]int64 {
			return map[string]int64{"p": v["a"] + v["b"]}
		},
		solve: func(v map[string]int64) (int64, []Step) {
			n := v["a"] + v["c"]
			return n, []Step{
				wordStep("After getting off: %d - %d = %d", v["a"], v["p"], v["b"], v["a"]),
				wordStep("After getting on: %d + %d = %d", n, v["a"], v["c"], n),
			}
		},
	},
	{
		steps: 3,
		text:  "{name} reads {a} pages a day for {b} days, then {c} pages a day for {d} days. The book has {t} pages. How many pages are still unread?",
		vars:  []string{"a", "b", "c", "d", "k"},
		derive: func(v map[string]int64) map[string]int64 {
			return map[string]int64{"t": v["a"]*v["b"] + v["c"]*v["d"] + v["k"]}
		},
		solve: func(v map[string]int64) (int64, []Step) {
			first, second := v["a"]*v["b"], v["c"]*v["d"]
			return v["k"], []Step{
				wordStep("First part: %d × %d = %d", first, v["a"], v["b"], first),
				wordStep("Second part: %d × %d = %d", second, v["c"], v["d"], second),
				wordStep("Unread: %d - %d - %d = %d", v["k"], v["t"], first, second, v["k"]),
			}
		},
	},
	{
		steps: 3,
		text:  "A farmer picks {p} apples, packs them into bags of {b} and sells each bag for {c} euros. Transport costs {d} euros. How much does the farmer earn after transport?",
		vars:  []string{"k", "b", "c", "d"},
		derive: func(v map[string]int64) map[string]int64 {
			return map[string]int64{"p": v["k"] * v["b"]}
		},
		solve: func(v map[string]int64) (int64, []Step) {
			revenue := v["k"] * v["c"]
			profit := revenue - v["d"]
			return profit, []Step{
				wordStep("Bags: %d ÷ %d = %d", v["k"], v["p"], v["b"], v["k"]),
				wordStep("Revenue: %d × %d = %d", revenue, v["k"], v["c"], revenue),
				wordStep("Earnings: %d - %d = %d", profit, revenue, v["d"], profit),
			}
		},
	},
}

// wordProblem renders short arithmetic stories. It has no prompt
// expression; the statement carries the problem.
type wordProblem struct{}

func (wordProblem) Family() Family { return FamilyWordProblem }

func (wordProblem) Sample(rng *rand.Rand, r difficulty.Ranges) (map[string]int64, error) {
	var candidates []int
	for i, t := range wordTemplates {
		if t.steps == r.Steps {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%s: no template with %d steps", FamilyWordProblem, r.Steps)
	}
	idx := candidates[random.Pick(rng, len(candidates))]
	out := map[string]int64{
		"template": int64(idx),
		"name":     int64(random.Pick(rng, len(wordNames))),
	}
	for _, v := range wordTemplates[idx].vars {
		out[v] = random.Between(rng, r.CoeffMin, r.CoeffMax)
	}
	return out, nil
}

func (wordProblem) Build(spec ProblemSpec) (*Problem, error) {
	ix, err := params(spec, "template", "name")
	if err != nil {
		return nil, err
	}
	if ix[0] < 0 || ix[0] >= int64(len(wordTemplates)) || ix[1] < 0 || ix[1] >= int64(len(wordNames)) {
		return nil, fmt.Errorf("%s: template %d or name %d out of range", spec.Family, ix[0], ix[1])
	}
	t := wordTemplates[ix[0]]
	vals, err := params(spec, t.vars...)
	if err != nil {
		return nil, err
	}
	v := make(map[string]int64, len(t.vars)+1)
	for i, n := range t.vars {
		v[n] = vals[i]
	}
	if t.derive != nil {
		for k, d := range t.derive(v) {
			v[k] = d
		}
	}
	answer, steps := t.solve(v)
	if answer <= 0 {
		return nil, degenerate(spec.Family, "non-positive answer %d", answer)
	}

	repl := []string{"{name}", wordNames[ix[1]]}
	for k, n := range v {
		repl = append(repl, "{"+k+"}", fmt.Sprint(n))
	}

	return &Problem{
		Spec:       spec,
		Statement:  strings.NewReplacer(repl...).Replace(t.text),
		Solutions:  []symbolic.Expr{num(answer)},
		Steps:      steps,
		AnswerMode: AnswerNumeric,
	}, nil
}
