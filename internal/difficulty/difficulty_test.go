package difficulty

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_KnownPairs(t *testing.T) {
	table := DefaultTable()
	for _, fam := range table.Families() {
		for _, tier := range AllTiers {
			r, err := table.Resolve(fam, tier)
			require.NoError(t, err, "%s/%s", fam, tier)
			assert.LessOrEqual(t, r.CoeffMin, r.CoeffMax, "%s/%s coefficient bounds", fam, tier)
			assert.LessOrEqual(t, r.RootMin, r.RootMax, "%s/%s root bounds", fam, tier)
		}
	}
}

func TestResolve_LinearEasy(t *testing.T) {
	r, err := DefaultTable().Resolve(LinearEquation, Easy)
	require.NoError(t, err)
	assert.Equal(t, int64(-5), r.CoeffMin)
	assert.Equal(t, int64(5), r.CoeffMax)
	assert.True(t, r.ExcludeZero)
	assert.True(t, r.IntegerAnswers)
}

func TestResolve_Unsupported(t *testing.T) {
	table := DefaultTable()

	_, err := table.Resolve("trigonometry", Easy)
	var ude *UnsupportedDifficultyError
	require.True(t, errors.As(err, &ude))
	assert.Equal(t, "trigonometry", ude.Family)

	_, err = table.Resolve(LinearEquation, Tier(7))
	require.True(t, errors.As(err, &ude))
	assert.Equal(t, Tier(7), ude.Tier)
	assert.Contains(t, err.Error(), "tier 7")
}

func TestNewTable_CopiesEntries(t *testing.T) {
	entries := map[string]map[Tier]Ranges{
		"custom": {Easy: {CoeffMin: 1, CoeffMax: 2}},
	}
	table := NewTable(entries)
	entries["custom"][Easy] = Ranges{CoeffMin: 100, CoeffMax: 200}

	r, err := table.Resolve("custom", Easy)
	require.NoError(t, err)
	assert.Equal(t, int64(1), r.CoeffMin)
	assert.Equal(t, []Tier{Easy}, table.Tiers("custom"))
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		in      string
		want    Tier
		wantErr bool
	}{
		{"1", Easy, false},
		{"2", Medium, false},
		{"3", Hard, false},
		{"easy", Easy, false},
		{" Hard ", Hard, false},
		{"medium", Medium, false},
		{"9", Tier(9), false},
		{"impossible", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTier(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "easy", Easy.String())
	assert.Equal(t, "hard", Hard.String())
	assert.Equal(t, "tier-4", Tier(4).String())
}
