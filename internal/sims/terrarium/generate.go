package terrarium

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Terrain bands are laid out for a 400x400 world and scaled to the grid.
const (
	referenceSize = 400.0

	stoneLine = 25.0
	soilLine  = 85.0
	waterLine = 100.0

	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 3
	noiseScale   = 0.045
)

// generate lays out stone, soil, a lake and open air in sine bands. Perlin
// noise seeds compost pockets inside the soil band and varies soil moisture.
func (e *Environment) generate(seed int64) {
	sx := float64(e.w) / referenceSize
	sy := float64(e.h) / referenceSize

	compost := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed)
	moisture := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed+1)
	pr := e.cfg.Params

	for y := 0; y < e.h; y++ {
		for x := 0; x < e.w; x++ {
			if e.onEdge(x, y) {
				e.Set(e.NewParticle(KindBoundary, x, y))
				continue
			}
			ox := float64(x) / sx
			oy := float64(y) / sy
			switch {
			case oy+math.Floor(10*math.Sin((ox+80)*math.Pi/300)) < stoneLine:
				e.Set(e.NewParticle(KindStone, x, y))
			case oy+math.Floor(50*math.Sin((ox+100)*math.Pi/200)+4*math.Sin((ox+20)/12)) < soilLine:
				nx, ny := float64(x)*noiseScale, float64(y)*noiseScale
				kind := KindSoil
				if unit(compost.Noise2D(nx, ny)) > pr.CompostThreshold {
					kind = KindCompost
				}
				p := e.NewParticle(kind, x, y)
				p.Water.Level = min(p.Water.Capacity, max(0, pr.SoilWater*(0.5+unit(moisture.Noise2D(nx, ny)))))
				e.Set(p)
			case oy < waterLine:
				e.Set(e.NewParticle(KindWater, x, y))
			default:
				e.Set(e.NewParticle(KindAir, x, y))
			}
		}
	}
	e.plantInitialSeeds()
}

// unit maps perlin output from [-1, 1] to [0, 1].
func unit(n float64) float64 {
	return (n + 1) / 2
}

// plantInitialSeeds drops one seed per catalog species, cycling through the
// catalog, onto exposed soil.
func (e *Environment) plantInitialSeeds() {
	lister, ok := e.traits.(interface{ Species() []string })
	if !ok || e.cfg.Params.InitialSeeds <= 0 {
		return
	}
	species := lister.Species()
	if len(species) == 0 {
		return
	}
	for i := 0; i < e.cfg.Params.InitialSeeds; i++ {
		dna, ok := e.traits.Traits(species[i%len(species)])
		if !ok {
			continue
		}
		x := 1 + e.rng.IntN(e.w-2)
		y := e.surface(x)
		if y < 0 || !e.kindAt(x, y-1).IsSoil() {
			continue
		}
		e.Set(e.NewSeed(x, y, dna))
	}
}

// surface returns the lowest air cell of column x that sits on a non-air
// particle, scanning down from the top, or -1.
func (e *Environment) surface(x int) int {
	for y := e.h - 2; y > 1; y-- {
		if e.Get(x, y).Kind == KindAir && e.Get(x, y-1).Kind != KindAir {
			return y
		}
	}
	return -1
}
