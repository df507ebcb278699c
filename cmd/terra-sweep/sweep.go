package main

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"terrasim/internal/sims/terrarium"
)

// paramSet is one point of the sweep grid.
type paramSet struct {
	energyRate       float64
	waterRatio       float64
	nutrientRatio    float64
	evaporation      float64
	condensationTime int
}

func (p paramSet) String() string {
	return fmt.Sprintf("energy=%.2f water/energy=%.2f nutrients/energy=%.2f evap=%.4f condense=%d",
		p.energyRate, p.waterRatio, p.nutrientRatio, p.evaporation, p.condensationTime)
}

func (p paramSet) apply(cfg terrarium.Config) terrarium.Config {
	cfg.Params.EnergyRate = p.energyRate
	cfg.Params.WaterEnergyRatio = p.waterRatio
	cfg.Params.NutrientEnergyRatio = p.nutrientRatio
	cfg.Params.EvaporationChance = p.evaporation
	cfg.Params.CondensationTime = p.condensationTime
	return cfg
}

type grid struct {
	energyRates       []float64
	ratios            []struct{ water, nutrients float64 }
	evaporations      []float64
	condensationTimes []int
}

func defaultGrid() grid {
	return grid{
		energyRates: []float64{1, 2, 4},
		ratios: []struct{ water, nutrients float64 }{
			{water: 1, nutrients: 1},
			{water: 2, nutrients: 1},
			{water: 1, nutrients: 2},
		},
		evaporations:      []float64{0.0002, 0.0004, 0.001},
		condensationTimes: []int{600, 1200},
	}
}

func (g grid) sets() []paramSet {
	var out []paramSet
	for _, rate := range g.energyRates {
		for _, ratio := range g.ratios {
			for _, evap := range g.evaporations {
				for _, ct := range g.condensationTimes {
					out = append(out, paramSet{
						energyRate:       rate,
						waterRatio:       ratio.water,
						nutrientRatio:    ratio.nutrients,
						evaporation:      evap,
						condensationTime: ct,
					})
				}
			}
		}
	}
	return out
}

type scenario struct {
	params paramSet
	seed   int64
}

func scenarios(g grid, seeds int) []scenario {
	var out []scenario
	for _, p := range g.sets() {
		for s := 1; s <= max(seeds, 1); s++ {
			out = append(out, scenario{params: p, seed: int64(s)})
		}
	}
	return out
}

type scenarioResult struct {
	scenario
	germinations uint64
	sprouts      uint64
	deaths       uint64
	peakPlants   int
	barrenTicks  int
	err          error
}

// runScenario simulates one independent world. Worlds never share state so
// scenarios can run on any worker.
func runScenario(base terrarium.Config, sc scenario, steps int) scenarioResult {
	cfg := sc.params.apply(base)
	cfg.Seed = sc.seed
	res := scenarioResult{scenario: sc}
	if err := cfg.Validate(); err != nil {
		res.err = err
		return res
	}
	world := terrarium.NewWithConfig(cfg)
	world.Reset(sc.seed)
	for range steps {
		world.Step()
		census := world.Census()
		plants := census[terrarium.KindRoot] + census[terrarium.KindStem] + census[terrarium.KindShoot]
		res.peakPlants = max(res.peakPlants, plants)
	}
	stats := world.Stats()
	res.germinations = stats.Germinations
	res.sprouts = stats.Sprouts
	res.deaths = stats.PlantDeaths
	res.barrenTicks = world.BarrenTicks()
	return res
}

// sweep fans scenarios out to workers and gathers every result. It stops
// handing out work once ctx is done or a scenario fails.
func sweep(ctx context.Context, base terrarium.Config, scenarios []scenario, steps, workers int) ([]scenarioResult, error) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for range max(workers, 1) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				results <- runScenario(base, sc, steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for _, sc := range scenarios {
			select {
			case jobs <- sc:
			case <-ctx.Done():
				return
			}
		}
	}()

	var all []scenarioResult
	for res := range results {
		if res.err != nil {
			cancel(fmt.Errorf("scenario %s seed %d: %w", res.params, res.seed, res.err))
			continue
		}
		all = append(all, res)
	}
	if ctx.Err() != nil {
		return all, context.Cause(ctx)
	}
	return all, nil
}

// aggregate is the mean outcome of one parameter set over its seeds.
type aggregate struct {
	params       paramSet
	runs         int
	germinations float64
	sprouts      float64
	deaths       float64
	peakPlants   float64
	barren       float64
}

// score favours sets whose seeds sprout and whose plants survive.
func (a aggregate) score() float64 {
	return a.sprouts*2 + a.peakPlants - a.deaths - a.barren/100
}

// rank averages results per parameter set and orders them best first. Equal
// scores fall back to the parameter text so the order never depends on which
// worker finished first.
func rank(results []scenarioResult) []aggregate {
	byParams := map[paramSet]*aggregate{}
	var order []paramSet
	for _, r := range results {
		agg, ok := byParams[r.params]
		if !ok {
			agg = &aggregate{params: r.params}
			byParams[r.params] = agg
			order = append(order, r.params)
		}
		agg.runs++
		agg.germinations += float64(r.germinations)
		agg.sprouts += float64(r.sprouts)
		agg.deaths += float64(r.deaths)
		agg.peakPlants += float64(r.peakPlants)
		agg.barren += float64(r.barrenTicks)
	}
	out := make([]aggregate, 0, len(order))
	for _, p := range order {
		agg := *byParams[p]
		n := float64(agg.runs)
		agg.germinations /= n
		agg.sprouts /= n
		agg.deaths /= n
		agg.peakPlants /= n
		agg.barren /= n
		out = append(out, agg)
	}
	sort.Slice(out, func(i, j int) bool {
		si, sj := out[i].score(), out[j].score()
		if si != sj {
			return si > sj
		}
		return out[i].params.String() < out[j].params.String()
	})
	return out
}
