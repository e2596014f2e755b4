// Package engine is the facade the CLI and drill talk to. It wires the
// generator, verifier, renderer, compiler and narrator and wraps each
// operation in a trace span.
package engine

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/abhisek/mathsheet/internal/difficulty"
	"github.com/abhisek/mathsheet/internal/grading"
	"github.com/abhisek/mathsheet/internal/narrate"
	"github.com/abhisek/mathsheet/internal/problemgen"
	"github.com/abhisek/mathsheet/internal/render"
	"github.com/abhisek/mathsheet/internal/store"
	"github.com/abhisek/mathsheet/internal/telemetry"
)

// Options configures a Service. Nil fields get defaults; Events and
// Problems stay nil when no database is open.
type Options struct {
	Generator *problemgen.Generator
	Verifier  *grading.Verifier
	Renderer  *render.Renderer
	Compiler  render.Compiler
	Narrator  *narrate.Narrator

	Events   store.EventRepo
	Problems store.ProblemRepo

	Tracer trace.Tracer
	Logger *slog.Logger
}

// Service holds no per-request state. Every call owns the values it
// creates, so concurrent calls need no locking.
type Service struct {
	generator *problemgen.Generator
	verifier  *grading.Verifier
	renderer  *render.Renderer
	compiler  render.Compiler
	narrator  *narrate.Narrator
	events    store.EventRepo
	problems  store.ProblemRepo
	tracer    trace.Tracer
	logger    *slog.Logger
}

// New creates a Service from opts.
func New(opts Options) *Service {
	s := &Service{
		generator: opts.Generator,
		verifier:  opts.Verifier,
		renderer:  opts.Renderer,
		compiler:  opts.Compiler,
		narrator:  opts.Narrator,
		events:    opts.Events,
		problems:  opts.Problems,
		tracer:    opts.Tracer,
		logger:    opts.Logger,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.generator == nil {
		s.generator = problemgen.New(problemgen.DefaultRegistry(), difficulty.DefaultTable(),
			problemgen.DefaultConfig(), s.logger)
	}
	if s.verifier == nil {
		s.verifier = grading.New(grading.DefaultConfig())
	}
	if s.renderer == nil {
		s.renderer = render.New("en")
	}
	if s.compiler == nil {
		s.compiler = render.NewPDFLaTeX("", 0, s.logger)
	}
	if s.narrator == nil {
		s.narrator = narrate.New(nil, narrate.DefaultConfig(), s.logger)
	}
	if s.tracer == nil {
		s.tracer = telemetry.Tracer()
	}
	return s
}

// Renderer returns the renderer used for worksheets.
func (s *Service) Renderer() *render.Renderer { return s.renderer }

// Archiving reports whether problems and grades are persisted.
func (s *Service) Archiving() bool { return s.problems != nil }

func (s *Service) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// GenerateProblem produces one validated problem. A nil seed draws a
// fresh one.
func (s *Service) GenerateProblem(ctx context.Context, family problemgen.Family, tier difficulty.Tier, seed *int64) (*problemgen.Problem, error) {
	ctx, span := s.start(ctx, "engine.generate",
		attribute.String("family", string(family)),
		attribute.Int("tier", int(tier)),
	)
	defer span.End()

	p, err := s.generator.Generate(ctx, problemgen.Request{Family: family, Tier: tier, Seed: seed})
	if err != nil {
		return nil, fail(span, err)
	}
	span.SetAttributes(attribute.Int64("seed", p.Spec.Seed))
	return p, nil
}

// GradeSubmission grades raw against p. Unparsable input is a verdict,
// not an error.
func (s *Service) GradeSubmission(ctx context.Context, p *problemgen.Problem, raw string) grading.Result {
	_, span := s.start(ctx, "engine.grade",
		attribute.String("family", string(p.Spec.Family)),
		attribute.Int("tier", int(p.Spec.Tier)),
	)
	defer span.End()

	res := s.verifier.Grade(p, raw)
	span.SetAttributes(attribute.String("verdict", string(res.Verdict)))
	return res
}

// Rebuild regenerates the problem for a stored spec. Specs from another
// major generator version are rejected.
func (s *Service) Rebuild(spec problemgen.ProblemSpec) (*problemgen.Problem, error) {
	return s.generator.Rebuild(spec)
}

// Elaborate returns a worked explanation of p. It never fails.
func (s *Service) Elaborate(ctx context.Context, p *problemgen.Problem) narrate.Narrative {
	ctx, span := s.start(ctx, "engine.elaborate", attribute.String("family", string(p.Spec.Family)))
	defer span.End()

	n := s.narrator.Elaborate(ctx, p)
	span.SetAttributes(attribute.String("source", string(n.Source)))
	return n
}

// RenderWorksheet compiles a single-version worksheet for problems.
func (s *Service) RenderWorksheet(ctx context.Context, problems []*problemgen.Problem, includeSolutions bool) ([]byte, error) {
	return s.RenderDocument(ctx, render.Worksheet{
		Version:          1,
		Problems:         problems,
		IncludeSolutions: includeSolutions,
	})
}

// RenderDocument compiles ws to PDF.
func (s *Service) RenderDocument(ctx context.Context, ws render.Worksheet) ([]byte, error) {
	return s.compile(ctx, "engine.render", s.renderer.Document(ws),
		attribute.Int("version", ws.Version),
		attribute.Int("problems", len(ws.Problems)),
	)
}

// RenderAnswerKey compiles one answer key covering every version.
func (s *Service) RenderAnswerKey(ctx context.Context, title string, versions []render.Worksheet) ([]byte, error) {
	return s.compile(ctx, "engine.render_answer_key", s.renderer.AnswerKey(title, versions),
		attribute.Int("versions", len(versions)),
	)
}

func (s *Service) compile(ctx context.Context, name, source string, attrs ...attribute.KeyValue) ([]byte, error) {
	ctx, span := s.start(ctx, name, attrs...)
	defer span.End()

	pdf, err := s.compiler.Compile(ctx, source)
	if err != nil {
		return nil, fail(span, err)
	}
	span.SetAttributes(attribute.Int("bytes", len(pdf)))
	return pdf, nil
}
