package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terrasim/internal/sims/terrarium"
)

func smallBase() terrarium.Config {
	cfg := terrarium.DefaultConfig()
	cfg.Width, cfg.Height = 32, 32
	return cfg
}

func TestScenariosCoverGridAndSeeds(t *testing.T) {
	g := defaultGrid()
	sets := g.sets()
	assert.Len(t, sets, 3*3*3*2)
	assert.Len(t, scenarios(g, 2), 2*len(sets))
	assert.Len(t, scenarios(g, 0), len(sets), "at least one seed per set")
}

func TestSweepIsDeterministicAcrossWorkerCounts(t *testing.T) {
	jobs := scenarios(grid{
		energyRates:       []float64{1, 3},
		ratios:            []struct{ water, nutrients float64 }{{water: 1, nutrients: 1}},
		evaporations:      []float64{0.0004},
		condensationTimes: []int{600},
	}, 2)

	one, err := sweep(context.Background(), smallBase(), jobs, 40, 1)
	require.NoError(t, err)
	many, err := sweep(context.Background(), smallBase(), jobs, 40, 4)
	require.NoError(t, err)

	require.Len(t, one, len(jobs))
	require.Len(t, many, len(jobs))
	key := func(rs []scenarioResult) map[scenario]scenarioResult {
		out := map[scenario]scenarioResult{}
		for _, r := range rs {
			out[r.scenario] = r
		}
		return out
	}
	assert.Equal(t, key(one), key(many))
}

func TestSweepReportsInvalidScenario(t *testing.T) {
	jobs := []scenario{{params: paramSet{energyRate: 1, waterRatio: 0, nutrientRatio: 1, condensationTime: 10}, seed: 1}}

	_, err := sweep(context.Background(), smallBase(), jobs, 5, 2)

	assert.ErrorIs(t, err, terrarium.ErrInvalidConfig)
}

func TestSweepStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sweep(ctx, smallBase(), scenarios(defaultGrid(), 1), 5, 2)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRankAveragesSeedsAndSortsByScore(t *testing.T) {
	good := paramSet{energyRate: 4}
	bad := paramSet{energyRate: 1}
	results := []scenarioResult{
		{scenario: scenario{params: bad, seed: 1}, deaths: 4},
		{scenario: scenario{params: good, seed: 1}, sprouts: 2, peakPlants: 10},
		{scenario: scenario{params: good, seed: 2}, sprouts: 4, peakPlants: 6},
	}

	ranked := rank(results)

	require.Len(t, ranked, 2)
	assert.Equal(t, good, ranked[0].params)
	assert.Equal(t, 2, ranked[0].runs)
	assert.InDelta(t, 3, ranked[0].sprouts, 1e-9)
	assert.InDelta(t, 8, ranked[0].peakPlants, 1e-9)
	assert.InDelta(t, -4, ranked[1].score(), 1e-9)
}

func TestRunPrintsRanking(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{"-size", "32", "-steps", "5", "-seeds", "1", "-workers", "3", "-top", "2"}, &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Sweeping 54 scenarios")
	assert.Contains(t, out.String(), " 2) score=")
}

func TestRankBreaksTiesByParameters(t *testing.T) {
	a := paramSet{energyRate: 1, waterRatio: 1}
	b := paramSet{energyRate: 2, waterRatio: 1}
	c := paramSet{energyRate: 3, waterRatio: 1}
	forward := []scenarioResult{
		{scenario: scenario{params: c, seed: 1}},
		{scenario: scenario{params: a, seed: 1}},
		{scenario: scenario{params: b, seed: 1}},
	}
	backward := []scenarioResult{forward[2], forward[1], forward[0]}

	got := rank(forward)
	require.Len(t, got, 3)
	assert.Equal(t, []paramSet{a, b, c}, []paramSet{got[0].params, got[1].params, got[2].params})
	assert.Equal(t, got, rank(backward))
}
