package terrarium

// weightAt returns the weight at (x, y); cells outside the grid weigh as
// much as the boundary.
func (e *Environment) weightAt(x, y int) int {
	if !e.InBounds(x, y) {
		return KindBoundary.Weight()
	}
	return e.Get(x, y).Weight
}

// yields reports whether the occupant of (x, y) may be displaced by p.
func (e *Environment) yields(p *Particle, x, y int) bool {
	if !e.InBounds(x, y) {
		return false
	}
	q := e.Get(x, y)
	return q.Moveable && q.Weight < p.Weight
}

// Gravity moves p one cell down when the particle below is moveable and
// strictly lighter. Both participants are locked for the rest of the tick.
// A particle already displaced this tick stays locked.
func Gravity(e *Environment, p *Particle) bool {
	if e.displaced(p) {
		p.Moveable = false
		return false
	}
	p.Moveable = true
	if !e.yields(p, p.X, p.Y-1) {
		return false
	}
	below := e.Get(p.X, p.Y-1)
	p.Moveable = false
	below.Moveable = false
	e.Swap(p.X, p.Y, p.X, p.Y-1)
	return true
}

// Erosion flattens single-cell peaks. It triggers when the three cells of
// the row above are all lighter than p; each side qualifies when it yields
// to p and the cell under it is lighter too. The draw always includes
// staying put.
func Erosion(e *Environment, p *Particle) bool {
	if !p.Moveable || e.displaced(p) {
		return false
	}
	x, y := p.X, p.Y
	for dx := -1; dx <= 1; dx++ {
		if e.weightAt(x+dx, y+1) >= p.Weight {
			return false
		}
	}

	options := [3]int{0}
	n := 1
	for _, dx := range [2]int{-1, 1} {
		if e.yields(p, x+dx, y) && e.weightAt(x+dx, y-1) < p.Weight {
			options[n] = dx
			n++
		}
	}
	if n == 1 {
		return false
	}
	dx := options[e.rng.IntN(n)]
	if dx == 0 {
		return false
	}
	side := e.Get(x+dx, y)
	p.Moveable = false
	side.Moveable = false
	e.Swap(x, y, x+dx, y)
	e.stats.Erosions++
	return true
}

// Flow moves p sideways along its flow direction. A blocked front with an
// open back reverses the direction first. Nothing happens unless p itself is
// still moveable.
func Flow(e *Environment, p *Particle) bool {
	if !p.Moveable || e.displaced(p) {
		return false
	}
	if p.FlowDirection == 0 {
		p.FlowDirection = 1
	}
	x, y := p.X, p.Y
	ahead := e.yields(p, x+p.FlowDirection, y)
	if !ahead {
		if !e.yields(p, x-p.FlowDirection, y) {
			return false
		}
		p.FlowDirection = -p.FlowDirection
	}
	other := e.Get(x+p.FlowDirection, y)
	p.Moveable = false
	other.Moveable = false
	e.Swap(x, y, x+p.FlowDirection, y)
	return true
}

// Rise is gravity for gases: p moves one cell up through a moveable,
// strictly lighter occupant.
func Rise(e *Environment, p *Particle) bool {
	if !p.Moveable || e.displaced(p) {
		return false
	}
	if !e.yields(p, p.X, p.Y+1) {
		return false
	}
	above := e.Get(p.X, p.Y+1)
	p.Moveable = false
	above.Moveable = false
	e.Swap(p.X, p.Y, p.X, p.Y+1)
	return true
}
