package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathsheet/internal/engine"
	"github.com/abhisek/mathsheet/internal/random"
	"github.com/abhisek/mathsheet/internal/render"
)

var worksheetCmd = &cobra.Command{
	Use:   "worksheet",
	Short: "Typeset a printable worksheet",
	Long: "Builds one or more versions of a worksheet and typesets them with pdflatex.\n" +
		"Writing to a .tex file skips compilation.",
	Example: "  mathsheet worksheet --spec linear-equation:1:4,quadratic-equation:2:2 --versions 2 --out quiz.pdf\n" +
		"  mathsheet worksheet --spec definite-integral:1:3 --lang et --out tood.tex --answer-key",
	RunE: func(cmd *cobra.Command, args []string) error {
		specStr, _ := cmd.Flags().GetString("spec")
		items, err := engine.ParseItems(specStr)
		if err != nil {
			return err
		}
		versions, _ := cmd.Flags().GetInt("versions")
		title, _ := cmd.Flags().GetString("title")
		out, _ := cmd.Flags().GetString("out")
		lang, _ := cmd.Flags().GetString("lang")
		solutions, _ := cmd.Flags().GetBool("solutions")
		boxes, _ := cmd.Flags().GetBool("boxes")
		answerKey, _ := cmd.Flags().GetBool("answer-key")

		seed := seedFlag(cmd)
		if seed == nil {
			s, err := random.NewSeed()
			if err != nil {
				return err
			}
			seed = &s
		}

		eng := buildEngine(cmd, engineOptions{Lang: lang})
		ctx := cmd.Context()

		sheets, err := eng.BuildWorksheet(ctx, engine.Template{Title: title, Items: items}, versions, *seed)
		if err != nil {
			return err
		}
		for i := range sheets {
			sheets[i].IncludeSolutions = solutions
			sheets[i].AnswerBoxes = boxes
		}

		w := sheetWriter{eng: eng, base: out, texOnly: strings.EqualFold(filepath.Ext(out), ".tex")}
		for _, ws := range sheets {
			name := w.name(fmt.Sprintf("-v%d", ws.Version), len(sheets) > 1)
			if err := w.write(name, w.eng.Renderer().Document(ws), func() ([]byte, error) {
				return w.eng.RenderDocument(ctx, ws)
			}); err != nil {
				return err
			}
		}
		if answerKey {
			name := w.name("-key", true)
			if err := w.write(name, w.eng.Renderer().AnswerKey(title, sheets), func() ([]byte, error) {
				return w.eng.RenderAnswerKey(ctx, title, sheets)
			}); err != nil {
				return err
			}
		}

		fmt.Fprintf(os.Stderr, "Seed: %d\n", *seed)
		return nil
	},
}

// sheetWriter writes either LaTeX source or compiled PDFs next to base.
type sheetWriter struct {
	eng     *engine.Service
	base    string
	texOnly bool
}

// name inserts suffix before the extension of base when needed.
func (w sheetWriter) name(suffix string, needed bool) string {
	if !needed {
		return w.base
	}
	ext := filepath.Ext(w.base)
	return strings.TrimSuffix(w.base, ext) + suffix + ext
}

func (w sheetWriter) write(path, source string, compile func() ([]byte, error)) error {
	data := []byte(source)
	if !w.texOnly {
		var err error
		if data, err = compile(); err != nil {
			var rfe *render.RenderingFailedError
			if errors.As(err, &rfe) && rfe.Output != "" {
				fmt.Fprintln(os.Stderr, rfe.Output)
			}
			return err
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Println(path)
	return nil
}

func init() {
	worksheetCmd.Flags().String("spec", "", "Comma-separated family:tier:count items")
	worksheetCmd.Flags().Int("versions", 1, fmt.Sprintf("Number of versions (1-%d)", engine.MaxVersions))
	worksheetCmd.Flags().Int64P("seed", "s", 0, "Base seed for reproducible worksheets (random when omitted)")
	worksheetCmd.Flags().String("title", "", "Worksheet title")
	worksheetCmd.Flags().StringP("out", "o", "worksheet.pdf", "Output file (.pdf or .tex)")
	worksheetCmd.Flags().String("lang", "", "Label language (en, et)")
	worksheetCmd.Flags().Bool("solutions", false, "Print solutions under each problem")
	worksheetCmd.Flags().Bool("boxes", false, "Draw an answer grid under each problem")
	worksheetCmd.Flags().Bool("answer-key", false, "Also write an answer key for all versions")
	_ = worksheetCmd.MarkFlagRequired("spec")
}
