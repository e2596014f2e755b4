// Package difficulty maps a (family, tier) pair to the parameter ranges a
// generator samples from. Pedagogical tuning lives here so generators never
// hard-code magnitudes.
package difficulty

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Tier is a named difficulty bucket.
type Tier int

const (
	Easy   Tier = 1
	Medium Tier = 2
	Hard   Tier = 3
)

// AllTiers lists the tiers in ascending order.
var AllTiers = []Tier{Easy, Medium, Hard}

func (t Tier) String() string {
	switch t {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("tier-%d", int(t))
}

// ParseTier accepts a tier number or name.
func ParseTier(s string) (Tier, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid tier %q", s)
	}
	return Tier(n), nil
}

// Ranges are the sampling bounds for one family at one tier. Fields a
// family does not use are left zero.
type Ranges struct {
	// Coefficient bounds, inclusive.
	CoeffMin, CoeffMax int64
	ExcludeZero        bool

	// Bounds for roots, evaluation points or integration limits, inclusive.
	RootMin, RootMax int64

	IntegerAnswers  bool
	AllowIrrational bool
	DistinctRoots   bool

	Degree int
	Terms  int
	Steps  int
}

// UnsupportedDifficultyError is returned for unknown (family, tier) pairs.
type UnsupportedDifficultyError struct {
	Family string
	Tier   Tier
}

func (e *UnsupportedDifficultyError) Error() string {
	return fmt.Sprintf("unsupported difficulty: family %q tier %d", e.Family, int(e.Tier))
}

// Table is an immutable lookup from (family, tier) to Ranges.
type Table struct {
	entries map[string]map[Tier]Ranges
}

// NewTable returns a table over a copy of entries.
func NewTable(entries map[string]map[Tier]Ranges) *Table {
	cp := make(map[string]map[Tier]Ranges, len(entries))
	for fam, tiers := range entries {
		inner := make(map[Tier]Ranges, len(tiers))
		for t, r := range tiers {
			inner[t] = r
		}
		cp[fam] = inner
	}
	return &Table{entries: cp}
}

// Resolve returns the ranges for family at tier.
func (t *Table) Resolve(family string, tier Tier) (Ranges, error) {
	tiers, ok := t.entries[family]
	if !ok {
		return Ranges{}, &UnsupportedDifficultyError{Family: family, Tier: tier}
	}
	r, ok := tiers[tier]
	if !ok {
		return Ranges{}, &UnsupportedDifficultyError{Family: family, Tier: tier}
	}
	return r, nil
}

// Families returns the configured family identifiers, sorted.
func (t *Table) Families() []string {
	out := make([]string, 0, len(t.entries))
	for f := range t.entries {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Tiers returns the tiers configured for family, ascending.
func (t *Table) Tiers(family string) []Tier {
	out := make([]Tier, 0, len(t.entries[family]))
	for tier := range t.entries[family] {
		out = append(out, tier)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
