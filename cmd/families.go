package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/message"

	"github.com/abhisek/mathsheet/internal/difficulty"
	"github.com/abhisek/mathsheet/internal/i18n"
)

var familiesCmd = &cobra.Command{
	Use:   "families",
	Short: "List problem families and their difficulty tiers",
	RunE: func(cmd *cobra.Command, args []string) error {
		lang, _ := cmd.Flags().GetString("lang")
		if lang == "" {
			lang = cfg.Lang
		}
		p := i18n.Printer(lang)
		printFamilies(p, difficulty.DefaultTable())
		return nil
	},
}

func printFamilies(p *message.Printer, table *difficulty.Table) {
	fmt.Printf("%-28s  %-10s  %s\n", "Family", "Tiers", "Heading")
	fmt.Println(strings.Repeat("─", 72))
	for _, f := range table.Families() {
		var tiers []string
		for _, t := range table.Tiers(f) {
			tiers = append(tiers, fmt.Sprint(int(t)))
		}
		fmt.Printf("%-28s  %-10s  %s\n", f, strings.Join(tiers, ","), p.Sprintf(i18n.FamilyKey(f)))
	}
}

func init() {
	familiesCmd.Flags().String("lang", "", "Language for family headings (en, et)")
}
