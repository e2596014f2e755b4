package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathsheet/internal/ui/theme"
)

// AnswerInput wraps bubbles/textinput for typing expressions.
type AnswerInput struct {
	Model     textinput.Model
	submitted bool
	accepted  bool
}

// NewAnswerInput creates a focused input limited to maxWidth runes.
func NewAnswerInput(placeholder string, maxWidth int) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}
	ti.Focus()
	return AnswerInput{Model: ti}
}

func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	if a.submitted {
		return a, nil
	}
	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

func (a AnswerInput) View() string {
	view := a.Model.View()
	if a.submitted {
		if a.accepted {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the typed answer.
func (a AnswerInput) Value() string {
	return a.Model.Value()
}

// Submit freezes the input and marks it with the outcome.
func (a *AnswerInput) Submit(accepted bool) {
	a.submitted = true
	a.accepted = accepted
}

// Reset clears the input for the next problem.
func (a *AnswerInput) Reset() {
	a.Model.Reset()
	a.submitted = false
	a.accepted = false
}
