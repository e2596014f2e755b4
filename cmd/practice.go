package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/mathsheet/internal/drill"
	"github.com/abhisek/mathsheet/internal/random"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Start an interactive practice drill",
	RunE: func(cmd *cobra.Command, args []string) error {
		family, tier, err := problemFlags(cmd)
		if err != nil {
			return err
		}
		count, _ := cmd.Flags().GetInt("count")

		seed := seedFlag(cmd)
		if seed == nil {
			s, err := random.NewSeed()
			if err != nil {
				return err
			}
			seed = &s
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		eng := buildEngine(cmd, engineOptions{Store: st, Narrator: true})
		return drill.Run(cmd.Context(), eng, drill.Config{
			Family: family,
			Tier:   tier,
			Count:  count,
			Seed:   *seed,
		})
	},
}

func init() {
	addProblemFlags(practiceCmd)
	practiceCmd.Flags().IntP("count", "n", drill.DefaultCount, "Number of problems")
}
