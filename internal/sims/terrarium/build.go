package terrarium

import "terrasim/internal/core"

// defaultActivationLevel applies to seeds whose DNA carries no activation
// trait.
const defaultActivationLevel = 20

// NewParticle constructs a particle of kind at (x, y) with the configured
// default reserves. Plant kinds get an anonymous DNA bag.
func (e *Environment) NewParticle(kind Kind, x, y int) *Particle {
	pr := e.cfg.Params
	switch kind {
	case KindSoil, KindGrass:
		p := newParticle(kind, x, y)
		p.Water = Reservoir{Level: pr.SoilWater, Capacity: pr.SoilCapacity}
		p.Nutrients = Reservoir{Level: pr.SoilNutrients, Capacity: pr.SoilCapacity}
		clampReservoir(&p.Water)
		clampReservoir(&p.Nutrients)
		return p
	case KindCompost:
		p := newParticle(kind, x, y)
		p.Water = Reservoir{Level: pr.SoilWater, Capacity: pr.SoilCapacity}
		p.Nutrients = Reservoir{Level: pr.CompostNutrients, Capacity: max(pr.SoilCapacity, pr.CompostNutrients)}
		clampReservoir(&p.Water)
		return p
	case KindWater:
		return e.newWater(x, y, pr.WaterLevel)
	case KindSteam:
		return e.newSteam(x, y, pr.WaterLevel)
	case KindCloud:
		return e.newCloud(x, y, pr.WaterLevel)
	case KindSeed:
		return e.NewSeed(x, y, NewDNA("", nil, nil))
	case KindRoot, KindStem, KindShoot, KindDeadPlant:
		return e.newPlantPart(kind, x, y, NewDNA("", nil, nil))
	default:
		return newParticle(kind, x, y)
	}
}

func clampReservoir(r *Reservoir) {
	r.Level = min(max(r.Level, 0), r.Capacity)
}

func (e *Environment) newWater(x, y int, level float64) *Particle {
	p := newParticle(KindWater, x, y)
	p.Water = Reservoir{Level: level, Capacity: max(level, e.cfg.Params.WaterLevel)}
	p.FlowDirection = core.Sign(e.rng)
	return p
}

// newSteam draws the cloud height once; it never exceeds the highest
// interior row so small worlds still form clouds.
func (e *Environment) newSteam(x, y int, level float64) *Particle {
	pr := e.cfg.Params
	p := newParticle(KindSteam, x, y)
	p.Water = Reservoir{Level: level, Capacity: level}
	p.FlowDirection = core.Sign(e.rng)
	p.Gas = &GasState{
		CondensationTime: pr.CondensationTime,
		CloudHeight:      min(core.IntRange(e.rng, pr.CloudHeightMin, pr.CloudHeightMax), e.h-2),
	}
	return p
}

func (e *Environment) newCloud(x, y int, level float64) *Particle {
	pr := e.cfg.Params
	p := newParticle(KindCloud, x, y)
	p.Water = Reservoir{Level: level, Capacity: level}
	p.FlowDirection = core.Sign(e.rng)
	p.Cloud = &CloudState{RainTimer: core.IntRange(e.rng, pr.RainIntervalMin, pr.RainIntervalMax)}
	return p
}

// newPlantPart builds a plant-family particle carrying dna.
func (e *Environment) newPlantPart(kind Kind, x, y int, dna DNA) *Particle {
	pr := e.cfg.Params
	p := newParticle(kind, x, y)
	p.Water = Reservoir{Capacity: pr.PlantWaterCapacity}
	p.Nutrients = Reservoir{Capacity: pr.PlantNutrientCapacity}
	p.Plant = &PlantState{
		DNA:            dna,
		EnergyCapacity: pr.PlantEnergyCapacity,
		Health:         pr.PlantMaxHealth,
		MaxHealth:      pr.PlantMaxHealth,
	}
	switch kind {
	case KindStem:
		p.baseColor = dna.Text(TraitStemColor, p.baseColor)
	case KindRoot:
		p.baseColor = dna.Text(TraitRootColor, p.baseColor)
	case KindShoot:
		p.baseColor = dna.Text(TraitShootColor, p.baseColor)
	}
	return p
}

// NewSeed constructs a dormant seed. Its energy capacity is raised to the
// activation level so germination is always reachable.
func (e *Environment) NewSeed(x, y int, dna DNA) *Particle {
	p := e.newPlantPart(KindSeed, x, y, dna)
	p.baseColor = dna.Text(TraitSeedColor, p.baseColor)
	ps := p.Plant
	ps.ActivationLevel = dna.Float(TraitActivationLevel, defaultActivationLevel)
	ps.EnergyCapacity = max(ps.EnergyCapacity, ps.ActivationLevel)
	ps.MaxHealth = e.cfg.Params.SeedMaxHealth
	ps.Health = ps.MaxHealth
	return p
}

// replaceKind swaps p for a fresh particle of kind at the same cell, keeping
// reserves (clamped to the new capacities) and this tick's displacement lock.
func (e *Environment) replaceKind(p *Particle, kind Kind) *Particle {
	np := e.NewParticle(kind, p.X, p.Y)
	np.Water.Level = min(p.Water.Level, np.Water.Capacity)
	np.Nutrients.Level = min(p.Nutrients.Level, np.Nutrients.Capacity)
	np.displacedAt = p.displacedAt
	np.Moveable = p.Moveable
	e.Set(np)
	return np
}
