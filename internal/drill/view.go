package drill

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathsheet/internal/grading"
	"github.com/abhisek/mathsheet/internal/narrate"
	"github.com/abhisek/mathsheet/internal/ui/components"
	"github.com/abhisek/mathsheet/internal/ui/layout"
	"github.com/abhisek/mathsheet/internal/ui/theme"
)

func (m *Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}

	correct, answered := m.Score()
	header := layout.RenderHeader(
		fmt.Sprintf("%s, %s", m.cfg.Family, m.cfg.Tier),
		fmt.Sprintf("✓ %d/%d", correct, answered),
		m.width,
	)
	footer := layout.RenderFooter(m.keyHints(), m.width)
	v.SetContent(layout.RenderFrame(header, m.body(), footer, m.width, m.height))
	return v
}

func (m *Model) keyHints() []layout.KeyHint {
	switch m.phase {
	case phaseAnswering:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Tab", Description: "Hint"},
			{Key: "Esc", Description: "Finish"},
		}
	case phaseFeedback:
		return []layout.KeyHint{
			{Key: "E", Description: "Explain"},
			{Key: "any key", Description: "Next"},
		}
	case phaseDone:
		return []layout.KeyHint{{Key: "any key", Description: "Quit"}}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}

func (m *Model) body() string {
	switch m.phase {
	case phaseLoading:
		return theme.Dim.Render("\n  Preparing the next problem...")
	case phaseDone:
		return m.summaryView()
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(components.ProgressBar{Label: "Problem", Done: m.index, Total: m.cfg.Count, Width: min(m.width-4, 60)}.View())
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(m.problem.Statement))
	if prompt := narrate.PromptText(m.problem); prompt != "" {
		b.WriteString("\n\n  ")
		b.WriteString(theme.Math.Render(prompt))
	}
	b.WriteString("\n\n")
	b.WriteString(m.input.View())

	if m.hint != "" {
		b.WriteString("\n\n" + theme.Hint.Render("Hint: "+m.hint))
	}
	if m.phase == phaseFeedback {
		b.WriteString("\n\n" + Feedback(m.result))
		if !isCorrect(m.result) {
			b.WriteString("\n" + theme.Dim.Render("Answer: "+narrate.AnswerText(m.problem)))
		}
	}
	if m.thinking {
		b.WriteString("\n\n" + theme.Dim.Render("Thinking..."))
	}
	if m.narrative != nil {
		b.WriteString("\n\n" + theme.Card.Width(min(m.width-4, 76)).Render(m.narrative.Text))
	}
	return b.String()
}

func isCorrect(r grading.Result) bool { return r.Verdict == grading.Correct }

// Feedback renders a one-line verdict message.
func Feedback(r grading.Result) string {
	switch r.Verdict {
	case grading.Correct:
		return theme.Correct.Render("Correct!")
	case grading.IncorrectForm:
		return theme.NearMiss.Render("Right value, but not in the requested form.")
	case grading.Unparsable:
		return theme.Incorrect.Render("Could not read that expression.")
	}
	msg := "Not quite."
	switch r.Diagnosis {
	case grading.CategorySignError:
		msg += " Check the sign."
	case grading.CategoryReciprocal:
		msg += " You may have inverted the fraction."
	}
	return theme.Incorrect.Render(msg)
}

func (m *Model) summaryView() string {
	if m.err != nil {
		return lipgloss.NewStyle().Foreground(theme.Error).Render("\n  Error: " + m.err.Error())
	}
	correct, answered := m.Score()
	return "\n" + theme.Title.Render("  Drill complete") + "\n\n" +
		theme.Body.Render(fmt.Sprintf("  %d of %d correct", correct, answered))
}
