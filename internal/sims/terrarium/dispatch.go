package terrarium

// dispatch runs the behavior of p's kind.
func (e *Environment) dispatch(p *Particle) {
	switch p.Kind {
	case KindSoil, KindGrass, KindCompost:
		e.updateSoil(p)
	case KindWater:
		e.updateWater(p)
	case KindSteam:
		e.updateSteam(p)
	case KindCloud:
		e.updateCloud(p)
	case KindSeed:
		e.updateSeed(p)
	case KindRoot:
		e.updateRoot(p)
	case KindStem:
		e.updateStem(p)
	case KindShoot:
		e.updateShoot(p)
	case KindDeadPlant, KindWorm:
		Gravity(e, p)
	}
	// Air, stone and boundary are inert.
}
