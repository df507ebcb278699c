package terrarium

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedOnStone places a seed resting on stone with a supported soil block to
// its left, so it can feed but never sprouts.
func seedOnStone(t *testing.T, cfg Config) (*Environment, *Particle) {
	t.Helper()
	e, _ := newTestEnv(t, cfg)
	put(e, KindStone, 3, 4)
	put(e, KindStone, 4, 4)
	put(e, KindStone, 5, 4)
	put(e, KindSoil, 4, 5)
	seed := put(e, KindSeed, 5, 5)
	return e, seed
}

func TestSeedGerminatesOnFirstTickAtActivationLevel(t *testing.T) {
	cfg := quietConfig(12, 12)
	cfg.Params.EnergyRate = 2
	e, seed := seedOnStone(t, cfg)
	require.InDelta(t, defaultActivationLevel, seed.Plant.ActivationLevel, 1e-9)

	for tick := 1; tick <= 10; tick++ {
		e.Step()
		require.Same(t, seed, e.Get(5, 5))
		if tick < 10 {
			require.False(t, seed.Plant.Germinated, "tick %d energy %.1f", tick, seed.Plant.Energy)
		} else {
			require.True(t, seed.Plant.Germinated, "tick %d energy %.1f", tick, seed.Plant.Energy)
		}
	}
	assert.Equal(t, uint64(1), e.Stats().Germinations)
	require.NoError(t, e.Validate())
}

func TestDormantSeedDecaysIntoDeadPlant(t *testing.T) {
	cfg := quietConfig(12, 12)
	cfg.Params.SeedMaxHealth = 3
	e, _ := newTestEnv(t, cfg)
	put(e, KindStone, 5, 4)
	put(e, KindSeed, 5, 5)

	e.Step()
	e.Step()
	assert.Equal(t, KindSeed, e.Get(5, 5).Kind)
	e.Step()
	assert.Equal(t, KindDeadPlant, e.Get(5, 5).Kind)
	assert.Equal(t, uint64(1), e.Stats().PlantDeaths)
}

// germinatedSeed builds a ready seed at (10, 50) resting on soil with air
// above it.
func germinatedSeed(t *testing.T, cfg Config) (*Environment, *Particle) {
	t.Helper()
	e, _ := newTestEnv(t, cfg)
	put(e, KindSoil, 10, 49)
	dna := NewDNA("TEST", map[string]float64{TraitActivationLevel: 10}, nil)
	seed := e.NewSeed(10, 50, dna)
	seed.Plant.Germinated = true
	seed.Plant.Energy = 4
	e.Set(seed)
	return e, seed
}

func TestGrowthSproutsStemAndRoot(t *testing.T) {
	cfg := quietConfig(20, 60)
	cfg.Params.NetZero = true
	cfg.Params.WaterEnergyRatio = 2
	cfg.Params.NutrientEnergyRatio = 1
	e, seed := germinatedSeed(t, cfg)
	require.Equal(t, KindAir, e.Get(10, 51).Kind)
	require.Equal(t, KindAir, e.Get(10, 52).Kind)

	e.growSeed(seed)

	stem := e.Get(10, 50)
	root := e.Get(10, 49)
	require.Equal(t, KindStem, stem.Kind)
	require.Equal(t, KindRoot, root.Kind)
	assert.True(t, seed.Destroyed)

	assert.Equal(t, 1, stem.Plant.AbsorbTier)
	assert.Equal(t, seed.Plant.DNA.Lineage, stem.Plant.DNA.Lineage)
	assert.Equal(t, seed.Plant.DNA.Lineage, root.Plant.DNA.Lineage)
	assert.True(t, root.Plant.IsNode)
	assert.True(t, root.Plant.IsFirst)
	assert.Equal(t, Point{X: 10, Y: 50}, root.Plant.Parent)

	// (activation 10 + energy 4) scaled by each ratio.
	assert.InDelta(t, 28, stem.Water.Level, 1e-9)
	assert.InDelta(t, 14, stem.Nutrients.Level, 1e-9)
	assert.Equal(t, uint64(1), e.Stats().Sprouts)
	require.NoError(t, e.Validate())
}

func TestGrowthWithoutNetZeroStartsEmpty(t *testing.T) {
	cfg := quietConfig(20, 60)
	cfg.Params.NetZero = false
	e, seed := germinatedSeed(t, cfg)

	e.growSeed(seed)

	stem := e.Get(10, 50)
	require.Equal(t, KindStem, stem.Kind)
	assert.Zero(t, stem.Water.Level)
	assert.Zero(t, stem.Nutrients.Level)
}

func TestGrowthRootCrowdingOutranksSprouting(t *testing.T) {
	for _, off := range seedRing {
		if off == (Point{X: 0, Y: 1}) {
			// That probe is the seed's own cell.
			continue
		}
		e, seed := germinatedSeed(t, quietConfig(20, 60))
		put(e, KindRoot, 10+off.X, 49+off.Y)

		e.growSeed(seed)

		assert.Equal(t, KindDeadPlant, e.Get(10, 50).Kind, "root at offset %v", off)
		assert.Equal(t, KindSoil, e.Get(10, 49).Kind, "no root grown for offset %v", off)
	}
}

func TestGrowthBuriedSeedDies(t *testing.T) {
	for _, blocked := range []int{51, 52} {
		e, seed := germinatedSeed(t, quietConfig(20, 60))
		put(e, KindSoil, 10, blocked)

		e.growSeed(seed)

		assert.Equal(t, KindDeadPlant, e.Get(10, 50).Kind, "blocked at y=%d", blocked)
	}
}

func TestGrowthWaitsOnGrassAndStone(t *testing.T) {
	for _, under := range []Kind{KindGrass, KindStone, KindWater} {
		e, seed := germinatedSeed(t, quietConfig(20, 60))
		put(e, under, 10, 49)

		e.growSeed(seed)

		assert.Same(t, seed, e.Get(10, 50), "seed on %s", under)
		assert.False(t, seed.Destroyed)
	}
}

func TestGrowthProbesNearGridEdgeAsBoundary(t *testing.T) {
	e, _ := newTestEnv(t, quietConfig(8, 8))
	put(e, KindSoil, 3, 5)
	seed := e.NewSeed(3, 6, NewDNA("", nil, nil))
	seed.Plant.Germinated = true
	e.Set(seed)

	assert.NotPanics(t, func() { e.growSeed(seed) })
	assert.Equal(t, KindDeadPlant, e.Get(3, 6).Kind, "boundary overhead buries the seed")
}

// sprouted returns a world holding a freshly sprouted plant: stem at
// (10, 50) over its first root at (10, 49), soil further down.
func sprouted(t *testing.T, cfg Config) (*Environment, *Particle, *Particle) {
	t.Helper()
	e, seed := germinatedSeed(t, cfg)
	for y := 40; y < 49; y++ {
		put(e, KindSoil, 10, y)
	}
	put(e, KindStone, 10, 39)
	e.growSeed(seed)
	return e, e.Get(10, 50), e.Get(10, 49)
}

func TestRootGrowsDownIntoSoil(t *testing.T) {
	cfg := quietConfig(20, 60)
	cfg.Params.RootGrowthCost = 5
	e, _, root := sprouted(t, cfg)
	root.Plant.Energy = 50

	e.updateRoot(root)

	tip := e.Get(10, 48)
	require.Equal(t, KindRoot, tip.Kind)
	assert.True(t, sameLineage(root, tip))
	assert.Equal(t, root.Position(), tip.Plant.Parent)
	assert.Equal(t, 1, tip.Plant.Height)
	assert.False(t, tip.Plant.IsFirst)
	assert.Equal(t, uint64(1), e.Stats().RootGrowths)
}

func TestRootStopsAtMaxDepth(t *testing.T) {
	cfg := quietConfig(20, 60)
	e, _, root := sprouted(t, cfg)
	root.Plant.Energy = 50
	root.Plant.Height = 10
	root.Plant.DNA = NewDNA("SHALLOW", map[string]float64{TraitRootMaxDepth: 10}, nil)
	e.Get(10, 50).Plant.DNA = root.Plant.DNA

	e.updateRoot(root)

	assert.Equal(t, KindSoil, e.Get(10, 48).Kind)
}

func TestRootDiesWhenStemIsGone(t *testing.T) {
	e, _, root := sprouted(t, quietConfig(20, 60))
	put(e, KindAir, 10, 50)

	e.updateRoot(root)

	assert.Equal(t, KindDeadPlant, e.Get(10, 49).Kind)
}

func TestStemPullsFromRootAndGrowsUp(t *testing.T) {
	cfg := quietConfig(20, 60)
	cfg.Params.StemGrowthCost = 3
	e, stem, root := sprouted(t, cfg)
	root.Water.Level = 40
	root.Nutrients.Level = 40
	stem.Plant.Energy = 10

	e.updateStem(stem)

	next := e.Get(10, 51)
	require.Equal(t, KindStem, next.Kind)
	assert.True(t, sameLineage(stem, next))
	assert.Equal(t, 1, next.Plant.Height)
	assert.Zero(t, root.Water.Level, "stem drained the root below it")
}

func TestStemAtFullHeightSproutsShoot(t *testing.T) {
	cfg := quietConfig(20, 60)
	cfg.Params.StemMaxHeight = 0
	cfg.Params.ShootGrowthCost = 1
	e, stem, _ := sprouted(t, cfg)
	stem.Plant.Energy = 10

	e.updateStem(stem)

	assert.Equal(t, KindShoot, e.Get(10, 51).Kind)
	assert.Equal(t, uint64(1), e.Stats().ShootGrowths)
}

func TestShootPhotosynthesisesAndDropsSeed(t *testing.T) {
	cfg := quietConfig(20, 60)
	cfg.Params.StemMaxHeight = 0
	cfg.Params.ShootGrowthCost = 0
	cfg.Params.PhotosynthesisRate = 4
	cfg.Params.SeedDropCost = 1
	cfg.Params.SeedDropChance = 0.5
	e, stem, _ := sprouted(t, cfg)
	e.updateStem(stem)
	shoot := e.Get(10, 51)
	require.Equal(t, KindShoot, shoot.Kind)

	e.SetLight(50)
	e.updateShoot(shoot)
	// Two from its reserves plus two from light at half strength.
	assert.InDelta(t, 4, shoot.Plant.Energy, 1e-9, "no drop on a failed roll")

	e.SetRand(&scriptedRand{floats: []float64{0.1}})
	e.updateShoot(shoot)
	dropped := e.Get(9, 51)
	require.Equal(t, KindSeed, dropped.Kind)
	assert.Equal(t, "TEST", dropped.Plant.DNA.Species)
	assert.NotEqual(t, shoot.Plant.DNA.Lineage, dropped.Plant.DNA.Lineage)
	assert.Equal(t, uint64(1), e.Stats().SeedsDropped)
}

func TestDeathCascadesDownTheRoot(t *testing.T) {
	cfg := quietConfig(20, 60)
	cfg.Params.RootGrowthCost = 0
	e, stem, root := sprouted(t, cfg)
	e.updateRoot(root)
	require.Equal(t, KindRoot, e.Get(10, 48).Kind)

	e.killPlant(stem, "test")
	for range 3 {
		e.Step()
	}

	assert.NotEqual(t, KindRoot, e.Get(10, 49).Kind)
	assert.NotEqual(t, KindRoot, e.Get(10, 48).Kind)
	require.NoError(t, e.Validate())
}
