// Package narrate turns a problem's step trace into learner-facing prose.
// The symbolic trace is authoritative: model output is shown as-is and is
// never read back for answers.
package narrate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/abhisek/mathsheet/internal/llm"
	"github.com/abhisek/mathsheet/internal/problemgen"
	"github.com/abhisek/mathsheet/internal/symbolic"
)

// Source records where a Narrative came from.
type Source string

const (
	SourceLLM   Source = "llm"
	SourceTrace Source = "trace"
)

// Narrative is an explanation of a problem's solution.
type Narrative struct {
	Text   string
	Hint   string
	Source Source
}

// Narrator elaborates worked solutions through an LLM, falling back to the
// formatted step trace.
type Narrator struct {
	provider llm.Provider
	cfg      Config
	logger   *slog.Logger
}

// New creates a Narrator. A nil provider always yields the trace.
func New(provider llm.Provider, cfg Config, logger *slog.Logger) *Narrator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Narrator{provider: provider, cfg: cfg, logger: logger}
}

type narrationOutput struct {
	Explanation string `json:"explanation"`
	Hint        string `json:"hint"`
}

// Elaborate never fails: any provider problem degrades to the trace.
func (n *Narrator) Elaborate(ctx context.Context, p *problemgen.Problem) Narrative {
	fallback := Narrative{Text: Trace(p), Hint: firstStep(p), Source: SourceTrace}
	if n.provider == nil {
		return fallback
	}

	out, err := n.generate(ctx, p)
	if err != nil {
		n.logger.Warn("narration unavailable, using step trace",
			"family", p.Spec.Family,
			"error", err,
		)
		return fallback
	}
	return Narrative{Text: out.Explanation, Hint: out.Hint, Source: SourceLLM}
}

func (n *Narrator) generate(ctx context.Context, p *problemgen.Problem) (*narrationOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, n.cfg.Timeout)
	defer cancel()

	userMsg, err := buildNarrationMessage(p)
	if err != nil {
		return nil, fmt.Errorf("build narration prompt: %w", err)
	}

	resp, err := n.provider.Generate(ctx, llm.Request{
		System: narrationSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      NarrationSchema,
		MaxTokens:   n.cfg.MaxTokens,
		Temperature: n.cfg.Temperature,
		Purpose:     llm.PurposeNarration,
	})
	if err != nil {
		return nil, err
	}

	var out narrationOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse narration response: %w", err)
	}
	if strings.TrimSpace(out.Explanation) == "" {
		return nil, errors.New("empty explanation")
	}
	return &out, nil
}

// Trace formats the step trace as numbered plain-text lines followed by
// the canonical answer.
func Trace(p *problemgen.Problem) string {
	var b strings.Builder
	for i, s := range p.Steps {
		fmt.Fprintf(&b, "%d. %s", i+1, formatStep(s))
		b.WriteByte('\n')
	}
	b.WriteString("Answer: ")
	b.WriteString(AnswerText(p))
	return b.String()
}

func formatStep(s problemgen.Step) string {
	switch {
	case s.Expr != nil && s.Equals != nil:
		return fmt.Sprintf("%s: %s = %s", s.Description, s.Expr, s.Equals)
	case s.Expr != nil:
		return fmt.Sprintf("%s: %s", s.Description, s.Expr)
	default:
		return s.Description
	}
}

func firstStep(p *problemgen.Problem) string {
	if len(p.Steps) == 0 {
		return ""
	}
	return p.Steps[0].Description + "."
}

// AnswerText lists the canonical answers, as "x = 4" for equations.
func AnswerText(p *problemgen.Problem) string {
	parts := make([]string, len(p.Solutions))
	for i, s := range p.Solutions {
		parts[i] = s.String()
		if p.IsEquation() && p.Variable != "" {
			parts[i] = p.Variable + " = " + parts[i]
		}
	}
	return strings.Join(parts, ", ")
}

// PromptText prints the prompt in plain text.
func PromptText(p *problemgen.Problem) string {
	switch len(p.Prompt) {
	case 0:
		return ""
	case 2:
		return p.Prompt[0].String() + " = " + p.Prompt[1].String()
	default:
		return exprList(p.Prompt)
	}
}

func exprList(es []symbolic.Expr) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

const narrationSystemPrompt = `You explain worked math solutions to secondary school learners.

Rules:
- The steps and the answer you are given are correct. Follow them in order.
- Do NOT change, re-derive or round any number or expression.
- Do NOT introduce a different method.
- Keep the explanation under 120 words.
- The hint must not reveal the answer.`

var narrationUserTemplate = template.Must(template.New("narration").Parse(`Problem: {{.Statement}}
{{if .Prompt}}Expression: {{.Prompt}}
{{end}}Steps:
{{range .Steps}}- {{.}}
{{end}}Answer: {{.Answer}}`))

func buildNarrationMessage(p *problemgen.Problem) (string, error) {
	steps := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		steps[i] = formatStep(s)
	}
	var buf bytes.Buffer
	err := narrationUserTemplate.Execute(&buf, map[string]any{
		"Statement": p.Statement,
		"Prompt":    PromptText(p),
		"Steps":     steps,
		"Answer":    AnswerText(p),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
