package problemgen

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"

	"github.com/abhisek/mathsheet/internal/difficulty"
	"github.com/abhisek/mathsheet/internal/random"
)

// FamilyGenerator is the capability every problem family implements.
type FamilyGenerator interface {
	// Family returns the identifier this generator is registered under.
	Family() Family

	// Sample draws the named parameters for one attempt. It may return a
	// *DegenerateError to request another draw from the same stream.
	Sample(rng *rand.Rand, r difficulty.Ranges) (map[string]int64, error)

	// Build derives the problem and its ground truth. It is a pure
	// function of spec.
	Build(spec ProblemSpec) (*Problem, error)
}

// Registry dispatches by family identifier.
type Registry struct {
	families map[Family]FamilyGenerator
}

// NewRegistry registers gens. A later generator replaces an earlier one
// with the same family.
func NewRegistry(gens ...FamilyGenerator) *Registry {
	r := &Registry{families: make(map[Family]FamilyGenerator, len(gens))}
	for _, g := range gens {
		r.families[g.Family()] = g
	}
	return r
}

// DefaultRegistry returns a registry with every built-in family.
func DefaultRegistry() *Registry {
	return NewRegistry(
		linearEquation{},
		quadraticEquation{},
		polynomialSimplification{},
		derivativeEvaluation{},
		definiteIntegral{},
		wordProblem{},
		exponentReduction{},
	)
}

// Lookup returns the generator for f.
func (r *Registry) Lookup(f Family) (FamilyGenerator, bool) {
	g, ok := r.families[f]
	return g, ok
}

// Families returns the registered families, sorted.
func (r *Registry) Families() []Family {
	out := make([]Family, 0, len(r.families))
	for f := range r.families {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Request asks for one problem. A nil Seed draws a fresh one.
type Request struct {
	Family Family
	Tier   difficulty.Tier
	Seed   *int64
}

// Generator runs the sample/build/validate loop. It holds no mutable state
// and is safe for concurrent use.
type Generator struct {
	registry *Registry
	table    *difficulty.Table
	config   Config
	logger   *slog.Logger
}

// New creates a Generator. A nil logger uses slog.Default().
func New(registry *Registry, table *difficulty.Table, cfg Config, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultConfig().MaxAttempts
	}
	return &Generator{registry: registry, table: table, config: cfg, logger: logger}
}

// Generate produces a validated problem for req. The result is a pure
// function of (family, tier, seed).
func (g *Generator) Generate(ctx context.Context, req Request) (*Problem, error) {
	fam, ok := g.registry.Lookup(req.Family)
	if !ok {
		return nil, &difficulty.UnsupportedDifficultyError{Family: string(req.Family), Tier: req.Tier}
	}
	ranges, err := g.table.Resolve(string(req.Family), req.Tier)
	if err != nil {
		return nil, err
	}

	var seed int64
	if req.Seed != nil {
		seed = *req.Seed
	} else {
		if seed, err = random.NewSeed(); err != nil {
			return nil, err
		}
	}
	rng := random.New(seed)

	var last error
	for attempt := 1; attempt <= g.config.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := g.attempt(fam, req, seed, rng, ranges)
		if err == nil {
			return p, nil
		}
		if !retryable(err) {
			return nil, err
		}
		last = err
		g.logger.Debug("resampling",
			"family", req.Family, "tier", int(req.Tier), "seed", seed,
			"attempt", attempt, "reason", err.Error())
	}
	return nil, &GenerationExhaustedError{
		Family:   req.Family,
		Tier:     req.Tier,
		Attempts: g.config.MaxAttempts,
		Last:     last,
	}
}

func (g *Generator) attempt(fam FamilyGenerator, req Request, seed int64, rng *rand.Rand, ranges difficulty.Ranges) (*Problem, error) {
	params, err := fam.Sample(rng, ranges)
	if err != nil {
		return nil, err
	}
	spec := ProblemSpec{
		Family:  req.Family,
		Tier:    req.Tier,
		Seed:    seed,
		Params:  params,
		Version: Version,
	}
	p, err := fam.Build(spec)
	if err != nil {
		return nil, err
	}
	for _, v := range g.config.Validators {
		if verr := v.Validate(p, ranges); verr != nil {
			return nil, verr
		}
	}
	return p, nil
}

// Rebuild re-derives the problem for a stored spec without sampling.
// Specs from an incompatible generator version are rejected.
func (g *Generator) Rebuild(spec ProblemSpec) (*Problem, error) {
	if err := CheckVersion(spec.Version); err != nil {
		return nil, err
	}
	fam, ok := g.registry.Lookup(spec.Family)
	if !ok {
		return nil, &difficulty.UnsupportedDifficultyError{Family: string(spec.Family), Tier: spec.Tier}
	}
	p, err := fam.Build(spec)
	if err != nil {
		return nil, fmt.Errorf("rebuild %s: %w", spec.Family, err)
	}
	return p, nil
}
