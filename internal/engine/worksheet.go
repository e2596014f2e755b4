package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/mathsheet/internal/difficulty"
	"github.com/abhisek/mathsheet/internal/problemgen"
	"github.com/abhisek/mathsheet/internal/random"
	"github.com/abhisek/mathsheet/internal/render"
)

// MaxVersions bounds how many versions one worksheet build produces.
const MaxVersions = 6

// Item asks for Count problems of one family at one tier.
type Item struct {
	Family problemgen.Family
	Tier   difficulty.Tier
	Count  int
}

// Template describes the contents of every version of a worksheet.
type Template struct {
	Title string
	Items []Item
}

// ParseItems reads "family:tier:count" entries separated by commas, e.g.
// "linear-equation:1:3,quadratic-equation:2:2". Count defaults to 1.
func ParseItems(s string) ([]Item, error) {
	var items []Item
	for _, raw := range strings.Split(s, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		parts := strings.Split(raw, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return nil, fmt.Errorf("invalid item %q: want family:tier[:count]", raw)
		}
		tier, err := difficulty.ParseTier(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid item %q: %w", raw, err)
		}
		count := 1
		if len(parts) == 3 {
			if count, err = strconv.Atoi(parts[2]); err != nil || count < 1 {
				return nil, fmt.Errorf("invalid item %q: count must be a positive integer", raw)
			}
		}
		items = append(items, Item{Family: problemgen.Family(parts[0]), Tier: tier, Count: count})
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no worksheet items in %q", s)
	}
	return items, nil
}

// duplicateDraws bounds the extra seeds tried per problem to avoid
// repeating a prompt within one version.
const duplicateDraws = 8

// BuildWorksheet generates versions 1..n of tmpl. Version v draws from
// random.Derive(seed, v) so the same seed rebuilds the same worksheets.
// Versions are generated concurrently.
func (s *Service) BuildWorksheet(ctx context.Context, tmpl Template, versions int, seed int64) ([]render.Worksheet, error) {
	if versions < 1 || versions > MaxVersions {
		return nil, fmt.Errorf("versions must be between 1 and %d, got %d", MaxVersions, versions)
	}
	if len(tmpl.Items) == 0 {
		return nil, fmt.Errorf("worksheet template has no items")
	}

	ctx, span := s.start(ctx, "engine.build_worksheet")
	defer span.End()

	out := make([]render.Worksheet, versions)
	g, gctx := errgroup.WithContext(ctx)
	for v := 1; v <= versions; v++ {
		g.Go(func() error {
			problems, err := s.buildVersion(gctx, tmpl, random.Derive(seed, v))
			if err != nil {
				return fmt.Errorf("version %d: %w", v, err)
			}
			out[v-1] = render.Worksheet{Title: tmpl.Title, Version: v, Problems: problems}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fail(span, err)
	}

	s.logger.Debug("worksheet built", "versions", versions, "seed", seed)
	return out, nil
}

func (s *Service) buildVersion(ctx context.Context, tmpl Template, seed int64) ([]*problemgen.Problem, error) {
	var problems []*problemgen.Problem
	seen := map[string]bool{}
	stream := 0
	for _, item := range tmpl.Items {
		for range item.Count {
			var p *problemgen.Problem
			for draw := 0; draw <= duplicateDraws; draw++ {
				ps := random.Derive(seed, stream)
				stream++
				var err error
				p, err = s.generator.Generate(ctx, problemgen.Request{Family: item.Family, Tier: item.Tier, Seed: &ps})
				if err != nil {
					return nil, err
				}
				key := string(p.Spec.Family) + "|" + render.Prompt(p)
				if !seen[key] {
					seen[key] = true
					break
				}
			}
			problems = append(problems, p)
		}
	}
	return problems, nil
}
