// Package drill is the interactive practice loop: one problem at a time,
// graded on Enter, with hints and worked explanations on request.
package drill

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathsheet/internal/difficulty"
	"github.com/abhisek/mathsheet/internal/grading"
	"github.com/abhisek/mathsheet/internal/narrate"
	"github.com/abhisek/mathsheet/internal/problemgen"
	"github.com/abhisek/mathsheet/internal/random"
	"github.com/abhisek/mathsheet/internal/ui/components"
)

// Engine is the part of the engine the drill needs.
type Engine interface {
	GenerateProblem(ctx context.Context, family problemgen.Family, tier difficulty.Tier, seed *int64) (*problemgen.Problem, error)
	GradeSubmission(ctx context.Context, p *problemgen.Problem, raw string) grading.Result
	Elaborate(ctx context.Context, p *problemgen.Problem) narrate.Narrative
	Record(ctx context.Context, p *problemgen.Problem, raw string, res grading.Result)
}

// DefaultCount is the number of problems in a drill.
const DefaultCount = 10

// Config selects what to practice. Problem i is drawn with
// random.Derive(Seed, i).
type Config struct {
	Family problemgen.Family
	Tier   difficulty.Tier
	Count  int
	Seed   int64
}

type phase int

const (
	phaseLoading phase = iota
	phaseAnswering
	phaseFeedback
	phaseDone
)

// Model implements tea.Model for a drill.
type Model struct {
	ctx    context.Context
	engine Engine
	cfg    Config

	phase     phase
	index     int
	correct   int
	problem   *problemgen.Problem
	result    grading.Result
	input     components.AnswerInput
	narrative *narrate.Narrative
	hint      string
	thinking  bool
	err       error

	width  int
	height int
}

// New creates a drill model.
func New(ctx context.Context, engine Engine, cfg Config) *Model {
	if cfg.Count <= 0 {
		cfg.Count = DefaultCount
	}
	return &Model{
		ctx:    ctx,
		engine: engine,
		cfg:    cfg,
		input:  components.NewAnswerInput("Type your answer...", 60),
	}
}

// problemReadyMsg carries the next generated problem.
type problemReadyMsg struct {
	Problem *problemgen.Problem
	Err     error
}

// narrativeMsg carries a hint or explanation. Hint is set when only the
// hint was asked for.
type narrativeMsg struct {
	Narrative narrate.Narrative
	HintOnly  bool
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.nextProblem(), m.input.Init())
}

func (m *Model) nextProblem() tea.Cmd {
	seed := random.Derive(m.cfg.Seed, m.index)
	return func() tea.Msg {
		p, err := m.engine.GenerateProblem(m.ctx, m.cfg.Family, m.cfg.Tier, &seed)
		return problemReadyMsg{Problem: p, Err: err}
	}
}

func (m *Model) elaborate(hintOnly bool) tea.Cmd {
	p := m.problem
	return func() tea.Msg {
		return narrativeMsg{Narrative: m.engine.Elaborate(m.ctx, p), HintOnly: hintOnly}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case problemReadyMsg:
		if msg.Err != nil {
			m.err = msg.Err
			m.phase = phaseDone
			return m, nil
		}
		m.problem = msg.Problem
		m.narrative = nil
		m.hint = ""
		m.input.Reset()
		m.phase = phaseAnswering
		return m, m.input.Init()

	case narrativeMsg:
		m.thinking = false
		if msg.HintOnly {
			m.hint = msg.Narrative.Hint
		} else {
			m.narrative = &msg.Narrative
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.phase == phaseAnswering {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.phase {
	case phaseAnswering:
		switch key {
		case "esc":
			m.phase = phaseDone
			return m, nil
		case "enter":
			return m.submit()
		case "tab":
			if m.thinking || m.hint != "" {
				return m, nil
			}
			m.thinking = true
			return m, m.elaborate(true)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case phaseFeedback:
		switch key {
		case "e":
			if m.thinking || m.narrative != nil {
				return m, nil
			}
			m.thinking = true
			return m, m.elaborate(false)
		case "esc":
			m.index++
			m.phase = phaseDone
			return m, nil
		}
		m.index++
		if m.index >= m.cfg.Count {
			m.phase = phaseDone
			return m, nil
		}
		m.phase = phaseLoading
		return m, m.nextProblem()

	case phaseDone:
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	raw := m.input.Value()
	if raw == "" {
		return m, nil
	}
	m.result = m.engine.GradeSubmission(m.ctx, m.problem, raw)
	accepted := m.result.Verdict == grading.Correct
	if accepted {
		m.correct++
	}
	m.input.Submit(accepted)
	m.engine.Record(m.ctx, m.problem, raw, m.result)
	m.phase = phaseFeedback
	return m, nil
}

// Score returns the number of correct answers so far and the number of
// answered problems.
func (m *Model) Score() (correct, answered int) {
	answered = m.index
	if m.phase == phaseFeedback {
		answered++
	}
	return m.correct, answered
}

// Err returns the generation error that ended the drill, if any.
func (m *Model) Err() error { return m.err }

// Run starts the drill in the terminal.
func Run(ctx context.Context, engine Engine, cfg Config) error {
	m := New(ctx, engine, cfg)
	if _, err := tea.NewProgram(m, tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run drill: %w", err)
	}
	return m.Err()
}
