package terrarium

import (
	"github.com/google/uuid"
)

// injectAttempts bounds the search for a free top-row column.
const injectAttempts = 16

// AddParticle places a particle of an injectable kind at a free cell of the
// top interior row and reports where it went.
func (e *Environment) AddParticle(kind Kind) (int, int, bool) {
	if !kind.Injectable() {
		e.reject("kind not injectable", "kind", kind)
		return 0, 0, false
	}
	x, y, ok := e.freeTopCell()
	if !ok {
		e.reject("no free cell", "kind", kind)
		return 0, 0, false
	}
	e.Set(e.NewParticle(kind, x, y))
	e.stats.Injections++
	return x, y, true
}

// AddParticleAt places a particle of an injectable kind at (x, y). The target
// must be an interior air cell.
func (e *Environment) AddParticleAt(kind Kind, x, y int) bool {
	if !kind.Injectable() {
		e.reject("kind not injectable", "kind", kind)
		return false
	}
	if !e.InBounds(x, y) || e.onEdge(x, y) {
		e.reject("target outside interior", "kind", kind, "x", x, "y", y)
		return false
	}
	if occupant := e.Get(x, y); occupant.Kind != KindAir {
		e.reject("target occupied", "kind", kind, "x", x, "y", y, "occupant", occupant.Kind)
		return false
	}
	e.Set(e.NewParticle(kind, x, y))
	e.stats.Injections++
	return true
}

// AddSeed drops a seed of the named species into the top row.
func (e *Environment) AddSeed(species string) (int, int, bool) {
	dna, ok := e.traits.Traits(species)
	if !ok {
		e.reject(ErrUnknownSpecies.Error(), "species", species)
		return 0, 0, false
	}
	x, y, ok := e.freeTopCell()
	if !ok {
		e.reject("no free cell", "species", species)
		return 0, 0, false
	}
	e.Set(e.NewSeed(x, y, dna))
	e.stats.Injections++
	return x, y, true
}

// SpawnOrganism places a worm at (x, y), clamped into the interior, and
// records it. The target cell must be air.
func (e *Environment) SpawnOrganism(x, y int) (uuid.UUID, bool) {
	x = min(max(x, 1), e.w-2)
	y = min(max(y, 1), e.h-2)
	if occupant := e.Get(x, y); occupant.Kind != KindAir {
		e.reject("target occupied", "kind", KindWorm, "x", x, "y", y, "occupant", occupant.Kind)
		return uuid.Nil, false
	}
	e.Set(e.NewParticle(KindWorm, x, y))
	org := Organism{ID: uuid.New(), Spawn: Point{X: x, Y: y}, Tick: e.tick}
	e.organisms = append(e.organisms, org)
	e.stats.Injections++
	e.log.Debug("organism spawned", "id", org.ID, "x", x, "y", y)
	return org.ID, true
}

// ChangeTime toggles between day and night.
func (e *Environment) ChangeTime() {
	e.day = !e.day
	if e.day {
		e.light = 100
	} else {
		e.light = clampLevel(e.cfg.Params.NightLight)
	}
}

// HandleAction maps front-end action names onto the injection calls.
func (e *Environment) HandleAction(name string) bool {
	switch name {
	case "time":
		e.ChangeTime()
		return true
	case "seed":
		_, _, ok := e.AddSeed(e.pickSpecies())
		return ok
	case "worm":
		x := 1 + e.rng.IntN(e.w-2)
		_, ok := e.SpawnOrganism(x, e.h-2)
		return ok
	}
	kind, ok := ParseKind(name)
	if !ok {
		e.reject("unknown action", "action", name)
		return false
	}
	_, _, ok = e.AddParticle(kind)
	return ok
}

func (e *Environment) pickSpecies() string {
	lister, ok := e.traits.(interface{ Species() []string })
	if !ok {
		return ""
	}
	species := lister.Species()
	if len(species) == 0 {
		return ""
	}
	return species[e.rng.IntN(len(species))]
}

func (e *Environment) freeTopCell() (int, int, bool) {
	y := e.h - 2
	for range injectAttempts {
		x := 1 + e.rng.IntN(e.w-2)
		if e.Get(x, y).Kind == KindAir {
			return x, y, true
		}
	}
	return 0, 0, false
}

func (e *Environment) reject(reason string, attrs ...any) {
	e.stats.Rejections++
	e.log.Debug("injection rejected", append([]any{"reason", reason}, attrs...)...)
}
