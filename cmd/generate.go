package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathsheet/internal/narrate"
	"github.com/abhisek/mathsheet/internal/problemgen"
	"github.com/abhisek/mathsheet/internal/store"
	"github.com/abhisek/mathsheet/internal/ui/theme"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one problem",
	Example: "  mathsheet generate --family linear-equation --tier 1 --seed 42\n" +
		"  mathsheet generate -f quadratic-equation -t 2 --json --save",
	RunE: func(cmd *cobra.Command, args []string) error {
		family, tier, err := problemFlags(cmd)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		save, _ := cmd.Flags().GetBool("save")
		hint, _ := cmd.Flags().GetBool("hint")
		explain, _ := cmd.Flags().GetBool("explain")
		showAnswer, _ := cmd.Flags().GetBool("answer")

		var st *store.Store
		if save || hint || explain {
			if st, err = openStore(cmd); err != nil {
				return err
			}
			defer st.Close()
		}

		eng := buildEngine(cmd, engineOptions{Store: st, Narrator: hint || explain})
		ctx := cmd.Context()

		p, err := eng.GenerateProblem(ctx, family, tier, seedFlag(cmd))
		if err != nil {
			return err
		}

		var id string
		if save {
			if id, err = eng.Save(ctx, p); err != nil {
				return fmt.Errorf("save problem: %w", err)
			}
		}

		if asJSON {
			return printProblemJSON(p, id)
		}

		printProblem(p)
		if showAnswer {
			fmt.Println(theme.Dim.Render("Answer: " + narrate.AnswerText(p)))
		}
		if hint || explain {
			n := eng.Elaborate(ctx, p)
			if hint {
				fmt.Println(theme.Hint.Render("Hint: " + n.Hint))
			}
			if explain {
				fmt.Println()
				fmt.Println(n.Text)
			}
		}
		if id != "" {
			fmt.Printf("\nSaved as %s\n", id)
		}
		return nil
	},
}

func printProblem(p *problemgen.Problem) {
	fmt.Println(theme.Body.Render(p.Statement))
	if prompt := narrate.PromptText(p); prompt != "" {
		fmt.Println()
		fmt.Println("  " + theme.Math.Render(prompt))
	}
	fmt.Println()
	fmt.Println(theme.Dim.Render(fmt.Sprintf("%s, tier %d, seed %d", p.Spec.Family, int(p.Spec.Tier), p.Spec.Seed)))
}

func printProblemJSON(p *problemgen.Problem, id string) error {
	out := struct {
		ID      string              `json:"id,omitempty"`
		Problem *problemgen.Problem `json:"problem"`
	}{id, p}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func init() {
	addProblemFlags(generateCmd)
	generateCmd.Flags().Bool("json", false, "Print the problem and its solution as JSON")
	generateCmd.Flags().Bool("save", false, "Archive the problem so it can be graded by id")
	generateCmd.Flags().Bool("hint", false, "Print a hint")
	generateCmd.Flags().Bool("explain", false, "Print a worked explanation")
	generateCmd.Flags().Bool("answer", false, "Print the answer")
}
