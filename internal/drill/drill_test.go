package drill

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathsheet/internal/difficulty"
	"github.com/abhisek/mathsheet/internal/grading"
	"github.com/abhisek/mathsheet/internal/narrate"
	"github.com/abhisek/mathsheet/internal/problemgen"
)

// fakeEngine hands out one fixed problem and grades by string match.
type fakeEngine struct {
	problem  *problemgen.Problem
	genErr   error
	seeds    []int64
	recorded []string
}

func (f *fakeEngine) GenerateProblem(_ context.Context, _ problemgen.Family, _ difficulty.Tier, seed *int64) (*problemgen.Problem, error) {
	f.seeds = append(f.seeds, *seed)
	if f.genErr != nil {
		return nil, f.genErr
	}
	return f.problem, nil
}

func (f *fakeEngine) GradeSubmission(_ context.Context, _ *problemgen.Problem, raw string) grading.Result {
	if raw == "4" {
		return grading.Result{Verdict: grading.Correct}
	}
	return grading.Result{Verdict: grading.IncorrectValue, Diagnosis: grading.CategorySignError}
}

func (f *fakeEngine) Elaborate(_ context.Context, p *problemgen.Problem) narrate.Narrative {
	return narrate.Narrative{Text: "Subtract 2, then divide by 3.", Hint: "Undo the addition first.", Source: narrate.SourceTrace}
}

func (f *fakeEngine) Record(_ context.Context, _ *problemgen.Problem, raw string, _ grading.Result) {
	f.recorded = append(f.recorded, raw)
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newTestDrill(count int) (*Model, *fakeEngine) {
	eng := &fakeEngine{problem: &problemgen.Problem{
		Spec:      problemgen.ProblemSpec{Family: problemgen.FamilyLinearEquation, Tier: difficulty.Easy},
		Statement: "Solve for x.",
	}}
	m := New(context.Background(), eng, Config{Family: problemgen.FamilyLinearEquation, Tier: difficulty.Easy, Count: count, Seed: 1})
	return m, eng
}

// run executes cmd and feeds its message back, as the runtime would.
func run(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	m.Update(cmd())
}

func start(t *testing.T, m *Model, eng *fakeEngine) {
	t.Helper()
	m.Update(problemReadyMsg{Problem: eng.problem})
	if m.phase != phaseAnswering {
		t.Fatalf("phase = %v, want answering", m.phase)
	}
}

func typeAnswer(m *Model, s string) {
	for _, r := range s {
		m.Update(keyPress(r))
	}
}

func TestDrill_DefaultCount(t *testing.T) {
	m := New(context.Background(), &fakeEngine{}, Config{})
	if m.cfg.Count != DefaultCount {
		t.Errorf("Count = %d, want %d", m.cfg.Count, DefaultCount)
	}
}

func TestDrill_CorrectAnswerFlow(t *testing.T) {
	m, eng := newTestDrill(2)
	start(t, m, eng)

	typeAnswer(m, "4")
	m.Update(specialKey(tea.KeyEnter))
	if m.phase != phaseFeedback {
		t.Fatalf("phase = %v, want feedback", m.phase)
	}
	if c, a := m.Score(); c != 1 || a != 1 {
		t.Errorf("Score = %d/%d, want 1/1", c, a)
	}
	if len(eng.recorded) != 1 || eng.recorded[0] != "4" {
		t.Errorf("recorded = %v", eng.recorded)
	}

	// Any key advances and fetches the next problem.
	_, cmd := m.Update(keyPress(' '))
	if m.phase != phaseLoading {
		t.Fatalf("phase = %v, want loading", m.phase)
	}
	run(t, m, cmd)
	if m.phase != phaseAnswering {
		t.Fatalf("phase = %v, want answering", m.phase)
	}
	if m.input.Value() != "" {
		t.Errorf("input not reset: %q", m.input.Value())
	}
}

func TestDrill_EmptySubmitIgnored(t *testing.T) {
	m, eng := newTestDrill(1)
	start(t, m, eng)

	m.Update(specialKey(tea.KeyEnter))
	if m.phase != phaseAnswering {
		t.Errorf("phase = %v, want answering", m.phase)
	}
	if len(eng.recorded) != 0 {
		t.Error("empty answer should not be graded")
	}
}

func TestDrill_FinishesAfterCount(t *testing.T) {
	m, eng := newTestDrill(1)
	start(t, m, eng)

	typeAnswer(m, "7")
	m.Update(specialKey(tea.KeyEnter))
	m.Update(keyPress(' '))
	if m.phase != phaseDone {
		t.Fatalf("phase = %v, want done", m.phase)
	}
	if c, a := m.Score(); c != 0 || a != 1 {
		t.Errorf("Score = %d/%d, want 0/1", c, a)
	}

	_, cmd := m.Update(keyPress('q'))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestDrill_HintAndExplain(t *testing.T) {
	m, eng := newTestDrill(3)
	start(t, m, eng)

	_, cmd := m.Update(specialKey(tea.KeyTab))
	if !m.thinking {
		t.Error("expected thinking while the hint loads")
	}
	run(t, m, cmd)
	if m.hint != "Undo the addition first." {
		t.Errorf("hint = %q", m.hint)
	}
	if m.narrative != nil {
		t.Error("hint must not show the full explanation")
	}

	typeAnswer(m, "1")
	m.Update(specialKey(tea.KeyEnter))
	_, cmd = m.Update(keyPress('e'))
	run(t, m, cmd)
	if m.narrative == nil || m.narrative.Text != "Subtract 2, then divide by 3." {
		t.Errorf("narrative = %+v", m.narrative)
	}
	if m.phase != phaseFeedback {
		t.Errorf("explain should stay on feedback, got %v", m.phase)
	}
}

func TestDrill_SeedsDeriveFromBase(t *testing.T) {
	a, engA := newTestDrill(2)
	b, engB := newTestDrill(2)
	run(t, a, a.nextProblem())
	run(t, b, b.nextProblem())
	if engA.seeds[0] != engB.seeds[0] {
		t.Errorf("seeds differ: %d vs %d", engA.seeds[0], engB.seeds[0])
	}
}

func TestDrill_GenerationErrorEnds(t *testing.T) {
	m, eng := newTestDrill(2)
	eng.genErr = errors.New("boom")
	run(t, m, m.nextProblem())
	if m.phase != phaseDone || m.Err() == nil {
		t.Errorf("phase = %v, err = %v", m.phase, m.Err())
	}
}

func TestDrill_EscFinishesEarly(t *testing.T) {
	m, eng := newTestDrill(5)
	start(t, m, eng)
	m.Update(specialKey(tea.KeyEscape))
	if m.phase != phaseDone {
		t.Errorf("phase = %v, want done", m.phase)
	}
}

func TestDrill_View(t *testing.T) {
	m, eng := newTestDrill(2)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	start(t, m, eng)
	typeAnswer(m, "9")
	m.Update(specialKey(tea.KeyEnter))

	v := m.View()
	if !v.AltScreen {
		t.Error("expected alt screen")
	}
}

func TestFeedback(t *testing.T) {
	tests := []struct {
		result grading.Result
		want   string
	}{
		{grading.Result{Verdict: grading.Correct}, "Correct!"},
		{grading.Result{Verdict: grading.IncorrectForm}, "requested form"},
		{grading.Result{Verdict: grading.Unparsable}, "Could not read"},
		{grading.Result{Verdict: grading.IncorrectValue, Diagnosis: grading.CategorySignError}, "sign"},
		{grading.Result{Verdict: grading.IncorrectValue, Diagnosis: grading.CategoryReciprocal}, "inverted"},
	}
	for _, tt := range tests {
		got := Feedback(tt.result)
		if !strings.Contains(got, tt.want) {
			t.Errorf("Feedback(%s) = %q, want it to contain %q", tt.result.Verdict, got, tt.want)
		}
	}
}
