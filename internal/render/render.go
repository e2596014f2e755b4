// Package render turns problems into LaTeX and compiles LaTeX documents
// with an external toolchain.
package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/message"

	"github.com/abhisek/mathsheet/internal/i18n"
	"github.com/abhisek/mathsheet/internal/problemgen"
	"github.com/abhisek/mathsheet/internal/symbolic"
)

// Renderer produces LaTeX for problems and worksheets. It is safe for
// concurrent use.
type Renderer struct {
	printer *message.Printer
}

// New returns a Renderer whose labels use lang ("en", "et"). Unknown
// languages fall back to English.
func New(lang string) *Renderer {
	return &Renderer{printer: i18n.Printer(lang)}
}

// Render returns the LaTeX fragment for p, followed by its solution when
// includeSolution is set.
func (r *Renderer) Render(p *problemgen.Problem, includeSolution bool) string {
	var b strings.Builder
	b.WriteString(Prompt(p))
	if includeSolution {
		b.WriteString("\n")
		b.WriteString(r.printer.Sprintf(i18n.KeySolution))
		b.WriteString(": ")
		b.WriteString(Solution(p))
	}
	return b.String()
}

// Prompt returns the LaTeX for the problem body.
func Prompt(p *problemgen.Problem) string {
	switch {
	case p.Spec.Family == problemgen.FamilyWordProblem || len(p.Prompt) == 0:
		return EscapeText(p.Statement)
	case p.IsEquation():
		return display(p.Prompt[0].LaTeX() + " = " + p.Prompt[1].LaTeX())
	case p.Spec.Family == problemgen.FamilyDerivativeEvaluation:
		return display(fmt.Sprintf("f(x) = %s \\qquad f'(%d) = \\,?", p.Prompt[0].LaTeX(), p.Spec.Params["x0"]))
	case p.Spec.Family == problemgen.FamilyDefiniteIntegral:
		return display(fmt.Sprintf("\\int_{%d}^{%d} \\left(%s\\right) \\, d%s",
			p.Spec.Params["lo"], p.Spec.Params["hi"], p.Prompt[0].LaTeX(), p.Variable))
	}
	return display(p.Prompt[0].LaTeX())
}

// Solution returns the inline-math LaTeX for the canonical solutions.
func Solution(p *problemgen.Problem) string {
	parts := make([]string, len(p.Solutions))
	for i, s := range p.Solutions {
		parts[i] = solutionTeX(p, s)
	}
	return "$" + strings.Join(parts, ", \\quad ") + "$"
}

func solutionTeX(p *problemgen.Problem, s symbolic.Expr) string {
	if p.IsEquation() {
		return p.Variable + " = " + s.LaTeX()
	}
	return s.LaTeX()
}

func display(math string) string {
	return "\\[ " + math + " \\]"
}

var textEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`#`, `\#`,
	`%`, `\%`,
	`_`, `\_`,
	`^`, `\textasciicircum{}`,
	`~`, `\textasciitilde{}`,
)

// EscapeText escapes LaTeX special characters in plain text.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}
