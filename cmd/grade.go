package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathsheet/internal/drill"
	"github.com/abhisek/mathsheet/internal/grading"
	"github.com/abhisek/mathsheet/internal/narrate"
	"github.com/abhisek/mathsheet/internal/problemgen"
	"github.com/abhisek/mathsheet/internal/store"
	"github.com/abhisek/mathsheet/internal/ui/theme"
)

var gradeCmd = &cobra.Command{
	Use:   "grade",
	Short: "Grade an answer to a generated or archived problem",
	Example: "  mathsheet grade --family linear-equation --tier 1 --seed 42 --answer 4\n" +
		"  mathsheet grade --problem-id 3f6c... --answer '1/2'",
	RunE: func(cmd *cobra.Command, args []string) error {
		answer, _ := cmd.Flags().GetString("answer")
		if !cmd.Flags().Changed("answer") {
			return errors.New("--answer is required")
		}
		problemID, _ := cmd.Flags().GetString("problem-id")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		eng := buildEngine(cmd, engineOptions{Store: st})
		ctx := cmd.Context()

		var p *problemgen.Problem
		var res grading.Result
		if problemID != "" {
			p, res, err = eng.GradeArchived(ctx, problemID, answer)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("problem %s not found", problemID)
			}
			if err != nil {
				return err
			}
		} else {
			family, tier, err := problemFlags(cmd)
			if err != nil {
				return err
			}
			seed := seedFlag(cmd)
			if seed == nil {
				return errors.New("--seed is required without --problem-id")
			}
			if p, err = eng.GenerateProblem(ctx, family, tier, seed); err != nil {
				return err
			}
			res = eng.GradeSubmission(ctx, p, answer)
			eng.Record(ctx, p, answer, res)
		}

		printProblem(p)
		fmt.Println()
		fmt.Printf("Verdict: %s\n", res.Verdict)
		fmt.Println(drill.Feedback(res))
		if res.Normalized != nil {
			fmt.Println(theme.Dim.Render("Read as: " + res.Normalized.String()))
		}
		if res.ParseErr != nil {
			fmt.Println(theme.Dim.Render(res.ParseErr.Error()))
		}
		if showAnswer, _ := cmd.Flags().GetBool("show-answer"); showAnswer && res.Verdict != grading.Correct {
			fmt.Println(theme.Dim.Render("Answer: " + narrate.AnswerText(p)))
		}
		return nil
	},
}

func init() {
	addProblemFlags(gradeCmd)
	gradeCmd.Flags().StringP("answer", "a", "", "The answer to grade")
	gradeCmd.Flags().String("problem-id", "", "Grade against an archived problem (see generate --save)")
	gradeCmd.Flags().Bool("show-answer", false, "Print the expected answer when the verdict is not correct")
}
