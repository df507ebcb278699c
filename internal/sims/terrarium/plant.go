package terrarium

// seedRing lists the eight offsets probed around the cell under a seed.
var seedRing = [8]Point{
	{X: -1, Y: 0}, {X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: -1, Y: 1},
}

// updateSeed runs the seed life cycle: fall, age, absorb from soil, convert
// reserves to energy, germinate once the activation level is reached and try
// to grow in the same tick.
func (e *Environment) updateSeed(p *Particle) {
	e.seedOrFirstRootCount++
	Gravity(e, p)
	if e.healthUpdate(p) {
		return
	}
	e.absorbFrom(p, fromSoil)
	e.generateEnergy(p)

	ps := p.Plant
	if !ps.Germinated && ps.Energy >= ps.ActivationLevel {
		ps.Germinated = true
		e.stats.Germinations++
		e.log.Debug("seed germinated", "species", ps.DNA.Species, "x", p.X, "y", p.Y, "tick", e.tick)
	}
	if ps.Germinated {
		e.growSeed(p)
	}
}

// growSeed applies the growth rules in priority order. The first rule that
// matches replaces the seed.
func (e *Environment) growSeed(p *Particle) {
	x, y := p.X, p.Y
	for _, off := range seedRing {
		if e.kindAt(x+off.X, y-1+off.Y) == KindRoot {
			e.killPlant(p, "crowded")
			return
		}
	}

	under := e.kindAt(x, y-1)
	if under.IsSoil() && !(e.kindAt(x, y+1) == KindAir && e.kindAt(x, y+2) == KindAir) {
		e.killPlant(p, "buried")
		return
	}
	if !under.IsSoil() || under == KindGrass {
		return
	}

	ps := p.Plant
	pr := e.cfg.Params
	stem := e.newPlantPart(KindStem, x, y, ps.DNA)
	stem.Plant.AbsorbTier = 1
	if pr.NetZero {
		residual := ps.ActivationLevel + ps.Energy
		stem.Nutrients.Add(residual * pr.NutrientEnergyRatio)
		stem.Water.Add(residual * pr.WaterEnergyRatio)
	}
	e.Set(stem)

	root := e.newPlantPart(KindRoot, x, y-1, ps.DNA)
	root.Plant.IsNode = true
	root.Plant.IsFirst = true
	root.Plant.Parent = Point{X: x, Y: y}
	e.Set(root)

	e.stats.Sprouts++
	e.log.Debug("seed sprouted", "species", ps.DNA.Species, "x", x, "y", y, "tick", e.tick)
}

// healthUpdate ages p and reports whether it died. Dormant seeds decay by
// one per tick; other parts heal while they can pay their upkeep.
func (e *Environment) healthUpdate(p *Particle) bool {
	ps := p.Plant
	switch {
	case p.Kind == KindSeed:
		if !ps.Germinated {
			ps.Health--
		}
	case spendEnergy(p, e.cfg.Params.PlantUpkeep):
		ps.Health = min(ps.MaxHealth, ps.Health+1)
	default:
		ps.Health--
	}
	if ps.Health <= 0 {
		e.killPlant(p, "exhausted")
		return true
	}
	return false
}

// killPlant replaces p with dead plant matter carrying its DNA and reserves.
func (e *Environment) killPlant(p *Particle, reason string) {
	dna := DNA{}
	if p.Plant != nil {
		dna = p.Plant.DNA
	}
	dead := e.newPlantPart(KindDeadPlant, p.X, p.Y, dna)
	dead.Water.Level = min(p.Water.Level, dead.Water.Capacity)
	dead.Nutrients.Level = min(p.Nutrients.Level, dead.Nutrients.Capacity)
	dead.displacedAt = p.displacedAt
	e.Set(dead)
	e.stats.PlantDeaths++
	e.log.Debug("plant died", "kind", p.Kind, "species", dna.Species, "reason", reason, "x", p.X, "y", p.Y)
}

// sameLineage reports whether q is a live part of the plant p belongs to.
func sameLineage(p, q *Particle) bool {
	if p.Plant == nil || q.Plant == nil || q.Kind == KindDeadPlant {
		return false
	}
	return p.Plant.DNA.Lineage == q.Plant.DNA.Lineage
}

// lineageAt returns the particle at (x, y) when it is a live part of p's
// plant.
func (e *Environment) lineageAt(p *Particle, x, y int) (*Particle, bool) {
	if !e.InBounds(x, y) {
		return nil, false
	}
	q := e.Get(x, y)
	if !sameLineage(p, q) {
		return nil, false
	}
	return q, true
}

// pull moves both resources from a same-plant neighbour into p.
func (e *Environment) pull(p, from *Particle) {
	e.Transfer(from, p, Water)
	e.Transfer(from, p, Nutrients)
}

func (e *Environment) updateRoot(p *Particle) {
	ps := p.Plant
	if ps.IsFirst {
		e.seedOrFirstRootCount++
	}
	if _, ok := e.lineageAt(p, ps.Parent.X, ps.Parent.Y); !ok {
		e.killPlant(p, "detached")
		return
	}
	if e.healthUpdate(p) {
		return
	}
	child, hasChild := e.lineageAt(p, p.X, p.Y-1)
	if hasChild && child.Kind == KindRoot {
		e.pull(p, child)
	}
	e.absorbFrom(p, fromSoilOrWater)
	e.generateEnergy(p)

	if hasChild {
		return
	}
	maxDepth := int(ps.DNA.Float(TraitRootMaxDepth, float64(e.cfg.Params.RootMaxDepth)))
	if ps.Height >= maxDepth || !e.kindAt(p.X, p.Y-1).IsSoil() {
		return
	}
	if !spendEnergy(p, e.cfg.Params.RootGrowthCost) {
		return
	}
	tip := e.newPlantPart(KindRoot, p.X, p.Y-1, ps.DNA)
	tip.Plant.Parent = p.Position()
	tip.Plant.Height = ps.Height + 1
	tip.Plant.AbsorbTier = ps.AbsorbTier
	e.Set(tip)
	e.stats.RootGrowths++
}

func (e *Environment) updateStem(p *Particle) {
	ps := p.Plant
	support, ok := e.lineageAt(p, p.X, p.Y-1)
	if !ok || (support.Kind != KindRoot && support.Kind != KindStem) {
		e.killPlant(p, "unsupported")
		return
	}
	if e.healthUpdate(p) {
		return
	}
	e.pull(p, support)
	e.generateEnergy(p)

	if e.kindAt(p.X, p.Y+1) != KindAir {
		return
	}
	pr := e.cfg.Params
	maxHeight := int(ps.DNA.Float(TraitStemMaxHeight, float64(pr.StemMaxHeight)))
	if ps.Height < maxHeight {
		if !spendEnergy(p, pr.StemGrowthCost) {
			return
		}
		next := e.newPlantPart(KindStem, p.X, p.Y+1, ps.DNA)
		next.Plant.Parent = p.Position()
		next.Plant.Height = ps.Height + 1
		next.Plant.AbsorbTier = ps.AbsorbTier + 1
		e.Set(next)
		e.stats.StemGrowths++
		return
	}
	if !spendEnergy(p, pr.ShootGrowthCost) {
		return
	}
	shoot := e.newPlantPart(KindShoot, p.X, p.Y+1, ps.DNA)
	shoot.Plant.Parent = p.Position()
	shoot.Plant.Height = ps.Height + 1
	e.Set(shoot)
	e.stats.ShootGrowths++
}

func (e *Environment) updateShoot(p *Particle) {
	ps := p.Plant
	stem, ok := e.lineageAt(p, p.X, p.Y-1)
	if !ok || stem.Kind != KindStem {
		e.killPlant(p, "unsupported")
		return
	}
	if e.healthUpdate(p) {
		return
	}
	e.pull(p, stem)
	e.generateEnergy(p)

	pr := e.cfg.Params
	ps.Energy = min(ps.EnergyCapacity, ps.Energy+pr.PhotosynthesisRate*e.light/100)

	if ps.Energy < pr.SeedDropCost || e.rng.Float64() >= pr.SeedDropChance {
		return
	}
	for _, dx := range [2]int{-1, 1} {
		if e.kindAt(p.X+dx, p.Y) != KindAir {
			continue
		}
		ps.Energy -= pr.SeedDropCost
		e.Set(e.NewSeed(p.X+dx, p.Y, ps.DNA.Offspring()))
		e.stats.SeedsDropped++
		return
	}
}
