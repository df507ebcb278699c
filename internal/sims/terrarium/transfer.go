package terrarium

// neighbours4 are the orthogonal probe offsets used for absorption.
var neighbours4 = [4]Point{{X: 0, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: -1, Y: 0}}

// Transfer moves as much of res from src to dst as dst has room for. Each
// reservoir gives at most once and receives at most once per resource per
// tick. It returns the amount moved; zero means no transfer took place.
func (e *Environment) Transfer(src, dst *Particle, res Resource) float64 {
	if src == dst {
		return 0
	}
	from, to := src.reservoir(res), dst.reservoir(res)
	stamp := e.tick + 1
	if from.givenAt == stamp || to.receivedAt == stamp {
		return 0
	}
	amount := min(from.Level, to.Free())
	if amount <= 0 {
		return 0
	}
	from.Level -= amount
	if from.Level < 0 {
		from.Level = 0
	}
	to.Level += amount
	if to.Level > to.Capacity {
		to.Level = to.Capacity
	}
	from.givenAt = stamp
	to.receivedAt = stamp
	e.stats.Transfers++
	return amount
}

// absorbFrom pulls both resources from every orthogonal neighbour accepted by
// filter.
func (e *Environment) absorbFrom(p *Particle, filter func(*Particle) bool) {
	for _, off := range neighbours4 {
		x, y := p.X+off.X, p.Y+off.Y
		if !e.InBounds(x, y) {
			continue
		}
		n := e.Get(x, y)
		if !filter(n) {
			continue
		}
		e.Transfer(n, p, Water)
		e.Transfer(n, p, Nutrients)
	}
}

func fromSoil(n *Particle) bool { return n.Kind.IsSoil() }

func fromSoilOrWater(n *Particle) bool { return n.Kind.IsSoil() || n.Kind == KindWater }

// generateEnergy converts stored water and nutrients into energy at the
// configured ratios, bounded by the energy rate and the free energy room.
func (e *Environment) generateEnergy(p *Particle) float64 {
	ps := p.Plant
	if ps == nil {
		return 0
	}
	pr := e.cfg.Params
	amount := min(
		p.Water.Level/pr.WaterEnergyRatio,
		p.Nutrients.Level/pr.NutrientEnergyRatio,
		ps.EnergyCapacity-ps.Energy,
		pr.EnergyRate,
	)
	if amount <= 0 {
		return 0
	}
	p.Water.Level = max(0, p.Water.Level-amount*pr.WaterEnergyRatio)
	p.Nutrients.Level = max(0, p.Nutrients.Level-amount*pr.NutrientEnergyRatio)
	ps.Energy = min(ps.EnergyCapacity, ps.Energy+amount)
	return amount
}

// spendEnergy deducts cost when the plant part can afford it.
func spendEnergy(p *Particle, cost float64) bool {
	if p.Plant == nil || p.Plant.Energy < cost {
		return false
	}
	p.Plant.Energy -= cost
	return true
}
