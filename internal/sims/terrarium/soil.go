package terrarium

// updateSoil covers the soil family: fall or erode, soak up water resting on
// top, and switch between bare soil and grass depending on exposure.
func (e *Environment) updateSoil(p *Particle) {
	if !Gravity(e, p) {
		Erosion(e, p)
	}
	e.soak(p)

	exposed := e.kindAt(p.X, p.Y+1) == KindAir
	switch p.Kind {
	case KindSoil:
		if exposed && e.light > 0 && e.rng.Float64() < e.cfg.Params.GrassGrowChance {
			e.replaceKind(p, KindGrass)
		}
	case KindGrass:
		if !exposed {
			e.replaceKind(p, KindSoil)
		}
	}
}

// soak draws water from a water particle directly above. Drained water
// leaves air behind.
func (e *Environment) soak(p *Particle) {
	if !e.InBounds(p.X, p.Y+1) {
		return
	}
	above := e.Get(p.X, p.Y+1)
	if above.Kind != KindWater {
		return
	}
	if e.Transfer(above, p, Water) > 0 && above.Water.Level <= 0 {
		e.Set(e.NewParticle(KindAir, above.X, above.Y))
	}
}
