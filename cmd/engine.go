package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathsheet/internal/difficulty"
	"github.com/abhisek/mathsheet/internal/engine"
	"github.com/abhisek/mathsheet/internal/grading"
	"github.com/abhisek/mathsheet/internal/llm"
	"github.com/abhisek/mathsheet/internal/narrate"
	"github.com/abhisek/mathsheet/internal/problemgen"
	"github.com/abhisek/mathsheet/internal/render"
	"github.com/abhisek/mathsheet/internal/store"
)

// engineOptions selects the optional parts of the engine a command needs.
type engineOptions struct {
	Lang     string
	Store    *store.Store
	Narrator bool
}

// buildEngine wires an engine from the loaded configuration.
func buildEngine(cmd *cobra.Command, opts engineOptions) *engine.Service {
	genCfg := problemgen.DefaultConfig()
	genCfg.MaxAttempts = cfg.MaxAttempts

	lang := opts.Lang
	if lang == "" {
		lang = cfg.Lang
	}

	eo := engine.Options{
		Generator: problemgen.New(problemgen.DefaultRegistry(), difficulty.DefaultTable(), genCfg, logger),
		Verifier:  grading.New(grading.DefaultConfig()),
		Renderer:  render.New(lang),
		Compiler:  render.NewPDFLaTeX(cfg.PDFLaTeX, cfg.CompileTimeout, logger),
		Logger:    logger,
	}

	var events store.EventRepo
	if opts.Store != nil {
		events = opts.Store.EventRepo()
		eo.Events = events
		eo.Problems = opts.Store.ProblemRepo()
	}

	if opts.Narrator {
		narrCfg := narrate.DefaultConfig()
		narrCfg.Timeout = cfg.NarrateTimeout
		provider, _, err := llm.NewProviderFromEnv(cmd.Context(), events, logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Explanations will use the step-by-step solution.")
		}
		eo.Narrator = narrate.New(provider, narrCfg, logger)
	}

	return engine.New(eo)
}

// problemFlags reads --family and --tier.
func problemFlags(cmd *cobra.Command) (problemgen.Family, difficulty.Tier, error) {
	family, _ := cmd.Flags().GetString("family")
	if family == "" {
		return "", 0, fmt.Errorf("--family is required (see 'mathsheet families')")
	}
	tierStr, _ := cmd.Flags().GetString("tier")
	tier, err := difficulty.ParseTier(tierStr)
	if err != nil {
		return "", 0, err
	}
	return problemgen.Family(family), tier, nil
}

// seedFlag returns --seed when it was given.
func seedFlag(cmd *cobra.Command) *int64 {
	if !cmd.Flags().Changed("seed") {
		return nil
	}
	seed, _ := cmd.Flags().GetInt64("seed")
	return &seed
}

func addProblemFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("family", "f", "", "Problem family (see 'mathsheet families')")
	cmd.Flags().StringP("tier", "t", "1", "Difficulty tier: 1-3 or easy, medium, hard")
	cmd.Flags().Int64P("seed", "s", 0, "Seed for reproducible generation (random when omitted)")
}
