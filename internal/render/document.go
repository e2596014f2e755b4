package render

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathsheet/internal/difficulty"
	"github.com/abhisek/mathsheet/internal/i18n"
	"github.com/abhisek/mathsheet/internal/problemgen"
)

// Worksheet is one version of a printable problem set.
type Worksheet struct {
	Title    string
	Version  int
	Problems []*problemgen.Problem

	// IncludeSolutions prints each solution under its problem.
	IncludeSolutions bool

	// AnswerBoxes draws a grid below each problem for working.
	AnswerBoxes bool
}

type group struct {
	family   problemgen.Family
	tier     difficulty.Tier
	problems []*problemgen.Problem
}

// groupProblems groups by (family, tier) in order of first appearance.
func groupProblems(ps []*problemgen.Problem) []*group {
	var out []*group
	index := map[string]*group{}
	for _, p := range ps {
		key := fmt.Sprintf("%s/%d", p.Spec.Family, p.Spec.Tier)
		g, ok := index[key]
		if !ok {
			g = &group{family: p.Spec.Family, tier: p.Spec.Tier}
			index[key] = g
			out = append(out, g)
		}
		g.problems = append(g.problems, p)
	}
	return out
}

// itemLabel returns a), b), ..., z), aa), ab), ...
func itemLabel(i int) string {
	s := ""
	for i >= 0 {
		s = string(rune('a'+i%26)) + s
		i = i/26 - 1
	}
	return s + ")"
}

// Document returns a complete LaTeX source for ws.
func (r *Renderer) Document(ws Worksheet) string {
	var b strings.Builder
	r.header(&b, ws.Title, r.printer.Sprintf(i18n.KeyVersion, ws.Version))
	for gi, g := range groupProblems(ws.Problems) {
		fmt.Fprintf(&b, "\\noindent\\textbf{%d) %s}\n\n", gi+1, r.groupHeading(g))
		for pi, p := range g.problems {
			fmt.Fprintf(&b, "\\noindent %s %s\n\n", itemLabel(pi), r.Render(p, ws.IncludeSolutions))
			if ws.AnswerBoxes {
				b.WriteString(answerGrid(15, 7))
			}
		}
	}
	return wrapDocument(b.String())
}

// AnswerKey returns one LaTeX document with the solutions of every
// version.
func (r *Renderer) AnswerKey(title string, versions []Worksheet) string {
	var b strings.Builder
	r.header(&b, title, r.printer.Sprintf(i18n.KeyAnswerKey))
	for _, ws := range versions {
		fmt.Fprintf(&b, "\\subsection*{%s}\n\n", r.printer.Sprintf(i18n.KeyVersion, ws.Version))
		for gi, g := range groupProblems(ws.Problems) {
			fmt.Fprintf(&b, "\\noindent %d) %s\n\n", gi+1, r.groupHeading(g))
			for pi, p := range g.problems {
				fmt.Fprintf(&b, "\\noindent %s %s\n\n", itemLabel(pi), Solution(p))
			}
		}
	}
	return wrapDocument(b.String())
}

func (r *Renderer) header(b *strings.Builder, title, subtitle string) {
	if title == "" {
		title = r.printer.Sprintf(i18n.KeyDefaultTitle)
	}
	b.WriteString("\\begin{center}\n")
	fmt.Fprintf(b, "{\\Large \\textbf{%s}}\\\\\n", EscapeText(title))
	fmt.Fprintf(b, "%s\n", EscapeText(subtitle))
	b.WriteString("\\end{center}\n")
	fmt.Fprintf(b, "\\noindent %s: \\rule{6cm}{0.4pt} \\hfill %s: \\rule{3cm}{0.4pt}\n\n",
		r.printer.Sprintf(i18n.KeyName), r.printer.Sprintf(i18n.KeyDate))
}

func (r *Renderer) groupHeading(g *group) string {
	return r.printer.Sprintf(i18n.FamilyKey(string(g.family))) + ", " + r.printer.Sprintf(i18n.KeyTier, int(g.tier))
}

func answerGrid(cols, rows int) string {
	return fmt.Sprintf(`\begin{center}
\begin{tikzpicture}
\draw[step=5mm, gray!30, very thin] (0,0) grid (%d,%d);
\draw[thick] (0,0) rectangle (%d,%d);
\end{tikzpicture}
\end{center}
`, cols, rows, cols, rows)
}

func wrapDocument(body string) string {
	return `\documentclass[12pt]{article}
\usepackage[utf8]{inputenc}
\usepackage{amsfonts}
\usepackage{amsmath}
\usepackage{geometry}
\usepackage{tikz}
\geometry{left=20mm, right=20mm, top=20mm}
\linespread{1.5}
\begin{document}
` + body + `\end{document}
`
}
