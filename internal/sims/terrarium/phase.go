package terrarium

import "terrasim/internal/core"

// updateWater falls, flows and occasionally evaporates when open to the air.
// Evaporation odds scale with temperature and light.
func (e *Environment) updateWater(p *Particle) {
	if !Gravity(e, p) {
		Flow(e, p)
	}
	if e.kindAt(p.X, p.Y+1) != KindAir {
		return
	}
	chance := e.cfg.Params.EvaporationChance * e.temperature / 100 * e.light / 100
	if chance <= 0 || e.rng.Float64() >= chance {
		return
	}
	steam := e.newSteam(p.X, p.Y, p.Water.Level)
	steam.displacedAt = p.displacedAt
	e.Set(steam)
	e.stats.Evaporations++
}

// updateSteam rises, drifts and counts down. Reaching the cloud height turns
// the steam into a cloud; otherwise an expired timer condenses it back into
// water with the same payload.
func (e *Environment) updateSteam(p *Particle) {
	if !Rise(e, p) {
		Flow(e, p)
	}
	g := p.Gas
	g.CondensationTime--
	switch {
	case p.Y >= g.CloudHeight:
		e.Set(e.newCloud(p.X, p.Y, p.Water.Level))
		e.stats.CloudFormations++
	case g.CondensationTime <= 0:
		water := e.newWater(p.X, p.Y, p.Water.Level)
		water.displacedAt = p.displacedAt
		e.Set(water)
		e.stats.Condensations++
	}
}

// updateCloud drifts and rains one drop whenever its timer fires over open
// air. A cloud that has rained out dissolves.
func (e *Environment) updateCloud(p *Particle) {
	Flow(e, p)
	c := p.Cloud
	c.RainTimer--
	if c.RainTimer > 0 {
		return
	}
	pr := e.cfg.Params
	c.RainTimer = core.IntRange(e.rng, pr.RainIntervalMin, pr.RainIntervalMax)
	if p.Water.Level <= 0 {
		e.Set(e.NewParticle(KindAir, p.X, p.Y))
		return
	}
	if e.kindAt(p.X, p.Y-1) != KindAir {
		return
	}
	drop := min(p.Water.Level, pr.RainDrop)
	p.Water.Level -= drop
	e.Set(e.newWater(p.X, p.Y-1, drop))
	e.stats.RainDrops++
	if p.Water.Level <= 0 {
		e.Set(e.NewParticle(KindAir, p.X, p.Y))
	}
}
