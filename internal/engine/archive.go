package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/mathsheet/internal/grading"
	"github.com/abhisek/mathsheet/internal/problemgen"
	"github.com/abhisek/mathsheet/internal/store"
)

// ErrNoArchive is returned by archive operations when no database is
// configured.
var ErrNoArchive = errors.New("problem archive is not configured")

// Save archives p and returns its id.
func (s *Service) Save(ctx context.Context, p *problemgen.Problem) (string, error) {
	if s.problems == nil {
		return "", ErrNoArchive
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode problem: %w", err)
	}
	return s.problems.Save(ctx, &store.ArchivedProblem{
		Family:  string(p.Spec.Family),
		Tier:    int(p.Spec.Tier),
		Seed:    p.Spec.Seed,
		Version: p.Spec.Version,
		Data:    data,
	})
}

// Load rebuilds an archived problem from its stored spec, so the ground
// truth always comes from the current generator.
func (s *Service) Load(ctx context.Context, id string) (*problemgen.Problem, error) {
	if s.problems == nil {
		return nil, ErrNoArchive
	}
	ap, err := s.problems.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	var stored problemgen.Problem
	if err := json.Unmarshal(ap.Data, &stored); err != nil {
		return nil, fmt.Errorf("decode problem %s: %w", id, err)
	}
	return s.Rebuild(stored.Spec)
}

// GradeArchived grades raw against an archived problem and records the
// grade event.
func (s *Service) GradeArchived(ctx context.Context, id, raw string) (*problemgen.Problem, grading.Result, error) {
	p, err := s.Load(ctx, id)
	if err != nil {
		return nil, grading.Result{}, err
	}
	res := s.GradeSubmission(ctx, p, raw)
	s.record(ctx, id, p, raw, res)
	return p, res, nil
}

// Record stores a grade event for p when an event log is configured.
func (s *Service) Record(ctx context.Context, p *problemgen.Problem, raw string, res grading.Result) {
	s.record(ctx, "", p, raw, res)
}

func (s *Service) record(ctx context.Context, id string, p *problemgen.Problem, raw string, res grading.Result) {
	if s.events == nil {
		return
	}
	err := s.events.AppendGrade(context.WithoutCancel(ctx), store.GradeEventData{
		ProblemID: id,
		Family:    string(p.Spec.Family),
		Tier:      int(p.Spec.Tier),
		Answer:    raw,
		Verdict:   string(res.Verdict),
		Diagnosis: string(res.Diagnosis),
	})
	if err != nil {
		s.logger.Warn("failed to record grade", "error", err)
	}
}
