package terrarium

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"terrasim/internal/core"
)

// ErrOccupancy reports a grid slot that does not hold exactly one particle
// with matching coordinates.
var ErrOccupancy = errors.New("grid occupancy violated")

// Organism records a creature spawned into the world. Its behavior lives
// outside the kernel; the grid only carries its body particle.
type Organism struct {
	ID    uuid.UUID
	Spawn Point
	Tick  uint64
}

// Environment owns the particle grid and the environment globals. Every
// in-range cell always holds exactly one particle; the outer ring holds
// Boundary particles so neighbour probes from interior cells never leave the
// grid.
type Environment struct {
	cfg Config

	w, h  int
	slots []*Particle

	tick        uint64
	light       float64
	oxygen      float64
	temperature float64
	day         bool

	seedOrFirstRootCount int
	barrenTicks          int
	organisms            []Organism
	stats                Stats

	rng        core.Rand
	pinnedRand bool
	paint      core.Rand
	traits     TraitSource
	display    *core.ByteGrid
	log        *slog.Logger
}

// New returns a terrarium with the provided dimensions using defaults.
func New(w, h int) *Environment {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns an empty terrarium (boundary ring around air)
// configured from cfg. Call Reset to generate terrain.
func NewWithConfig(cfg Config) *Environment {
	if cfg.Width < minDimension {
		cfg.Width = minDimension
	}
	if cfg.Height < minDimension {
		cfg.Height = minDimension
	}
	e := &Environment{
		cfg:     cfg,
		w:       cfg.Width,
		h:       cfg.Height,
		slots:   make([]*Particle, cfg.Width*cfg.Height),
		rng:     core.NewRNG(cfg.Seed),
		paint:   core.NewRNG(cfg.Seed ^ paintSeedMask),
		traits:  DefaultCatalog(),
		display: core.NewByteGrid(cfg.Width, cfg.Height),
		log:     slog.Default(),
	}
	e.resetGlobals()
	e.clear()
	e.Refresh()
	return e
}

const paintSeedMask = 0x5eed

// SetRand pins the random source used by the simulation rules. A pinned
// source survives Reset.
func (e *Environment) SetRand(r core.Rand) {
	if r == nil {
		return
	}
	e.rng = r
	e.pinnedRand = true
}

// SetTraitSource replaces the species catalog used by AddSeed.
func (e *Environment) SetTraitSource(ts TraitSource) {
	if ts != nil {
		e.traits = ts
	}
}

// SetLogger replaces the structured logger.
func (e *Environment) SetLogger(l *slog.Logger) {
	if l != nil {
		e.log = l
	}
}

// Config returns the active configuration.
func (e *Environment) Config() Config { return e.cfg }

// Name returns the simulation identifier.
func (e *Environment) Name() string { return "terrarium" }

// Size reports the grid dimensions.
func (e *Environment) Size() core.Size { return core.Size{W: e.w, H: e.h} }

// Cells exposes the per-cell kind buffer refreshed after each tick.
func (e *Environment) Cells() []uint8 { return e.display.Cells() }

// Reset regenerates the world using deterministic randomness. A zero seed
// falls back to the configured seed.
func (e *Environment) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = e.cfg.Seed
	}
	if !e.pinnedRand {
		e.rng = core.NewRNG(effective)
	}
	e.paint = core.NewRNG(effective ^ paintSeedMask)
	e.tick = 0
	e.stats = Stats{}
	e.organisms = nil
	e.seedOrFirstRootCount = 0
	e.barrenTicks = 0
	e.resetGlobals()
	e.generate(effective)
	e.Refresh()
}

func (e *Environment) resetGlobals() {
	e.light = 100
	e.oxygen = 100
	e.temperature = 25
	e.day = true
}

// clear fills the grid with a boundary ring around air.
func (e *Environment) clear() {
	for y := 0; y < e.h; y++ {
		for x := 0; x < e.w; x++ {
			if e.onEdge(x, y) {
				e.Set(e.NewParticle(KindBoundary, x, y))
			} else {
				e.Set(e.NewParticle(KindAir, x, y))
			}
		}
	}
}

func (e *Environment) onEdge(x, y int) bool {
	return x == 0 || y == 0 || x == e.w-1 || y == e.h-1
}

// InBounds reports whether (x, y) addresses a grid cell.
func (e *Environment) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < e.w && y < e.h
}

// Get returns the particle at (x, y). Out-of-range coordinates are a
// programming error and panic.
func (e *Environment) Get(x, y int) *Particle {
	if !e.InBounds(x, y) {
		panic(fmt.Sprintf("terrarium: get (%d,%d) outside %dx%d grid", x, y, e.w, e.h))
	}
	p := e.slots[y*e.w+x]
	if p == nil {
		panic(fmt.Sprintf("terrarium: empty cell at (%d,%d)", x, y))
	}
	return p
}

// kindAt returns the kind at (x, y), treating out-of-range cells as Boundary.
func (e *Environment) kindAt(x, y int) Kind {
	if !e.InBounds(x, y) {
		return KindBoundary
	}
	return e.Get(x, y).Kind
}

// Set installs p at its own coordinates. The previous occupant is tombstoned
// so a stale reference to it is never updated again.
func (e *Environment) Set(p *Particle) {
	if !e.InBounds(p.X, p.Y) {
		panic(fmt.Sprintf("terrarium: set %s at (%d,%d) outside %dx%d grid", p.Kind, p.X, p.Y, e.w, e.h))
	}
	idx := p.Y*e.w + p.X
	if old := e.slots[idx]; old != nil && old != p {
		old.Destroyed = true
	}
	e.slots[idx] = p
	p.Destroyed = false
	p.Rerender = true
}

// Swap exchanges the occupants of two cells and their coordinates. Both
// particles are marked displaced for the rest of the tick.
func (e *Environment) Swap(x1, y1, x2, y2 int) {
	if x1 == x2 && y1 == y2 {
		return
	}
	p1 := e.Get(x1, y1)
	p2 := e.Get(x2, y2)

	p1.X, p1.Y = x2, y2
	p2.X, p2.Y = x1, y1

	e.slots[y1*e.w+x1] = p2
	e.slots[y2*e.w+x2] = p1

	stamp := e.tick + 1
	p1.displacedAt = stamp
	p2.displacedAt = stamp
	p1.Rerender = true
	p2.Rerender = true
}

// displaced reports whether p already took part in a swap this tick.
func (e *Environment) displaced(p *Particle) bool {
	return p.displacedAt == e.tick+1
}

// Update advances every live particle once. Iteration runs over a snapshot
// in row-major order from the bottom row up; particles created during the
// pass are visible through the grid but are not updated until the next tick.
func (e *Environment) Update() {
	snapshot := slices.Clone(e.slots)
	e.seedOrFirstRootCount = 0
	for _, p := range snapshot {
		if p.Destroyed {
			continue
		}
		e.resetTransient(p)
		e.dispatch(p)
	}
	// Particles the next pass reaches late must not carry this tick's
	// displacement locks into the neighbour probes that run before them.
	for _, p := range e.slots {
		p.Moveable = p.Kind.Moveable()
	}
	e.tick++
	e.stats.Ticks++
	if e.seedOrFirstRootCount == 0 {
		e.barrenTicks++
	} else {
		e.barrenTicks = 0
	}
}

// resetTransient restores the per-tick moveable flag to the kind default
// unless the particle was already displaced this tick. Transfer flags are
// tick-stamped and expire on their own.
func (e *Environment) resetTransient(p *Particle) {
	if e.displaced(p) {
		p.Moveable = false
		return
	}
	p.Moveable = p.Kind.Moveable()
}

// Refresh performs post-tick housekeeping: the display buffer is rebuilt from
// the grid, top row first.
func (e *Environment) Refresh() {
	for y := 0; y < e.h; y++ {
		row := e.h - 1 - y
		for x := 0; x < e.w; x++ {
			e.display.Set(x, row, uint8(e.slots[y*e.w+x].Kind))
		}
	}
}

// Step advances one full tick and refreshes display state.
func (e *Environment) Step() {
	e.Update()
	e.Refresh()
}

// Tick returns the number of completed grid passes.
func (e *Environment) Tick() uint64 { return e.tick }

// Light returns the light level in [0, 100].
func (e *Environment) Light() float64 { return e.light }

// Oxygen returns the oxygen level in [0, 100].
func (e *Environment) Oxygen() float64 { return e.oxygen }

// Temperature returns the temperature level in [0, 100].
func (e *Environment) Temperature() float64 { return e.temperature }

// IsDay reports the day/night phase.
func (e *Environment) IsDay() bool { return e.day }

// SetLight clamps and stores the light level.
func (e *Environment) SetLight(v float64) { e.light = clampLevel(v) }

// SetOxygen clamps and stores the oxygen level.
func (e *Environment) SetOxygen(v float64) { e.oxygen = clampLevel(v) }

// SetTemperature clamps and stores the temperature level.
func (e *Environment) SetTemperature(v float64) { e.temperature = clampLevel(v) }

func clampLevel(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// SeedOrFirstRootCount is the number of seeds and first roots updated during
// the last tick. It drops to zero when no plant is left to grow.
func (e *Environment) SeedOrFirstRootCount() int { return e.seedOrFirstRootCount }

// BarrenTicks counts consecutive ticks in which SeedOrFirstRootCount was zero.
func (e *Environment) BarrenTicks() int { return e.barrenTicks }

// Organisms lists the creatures spawned so far.
func (e *Environment) Organisms() []Organism { return e.organisms }

// Stats returns the cumulative event counters.
func (e *Environment) Stats() Stats { return e.stats }

// Census counts live particles by kind.
func (e *Environment) Census() map[Kind]int {
	out := make(map[Kind]int, kindCount)
	for _, p := range e.slots {
		out[p.Kind]++
	}
	return out
}

// Validate checks the occupancy invariant and every reservoir bound.
func (e *Environment) Validate() error {
	var errs []error
	seen := make(map[*Particle]Point, len(e.slots))
	for i, p := range e.slots {
		x, y := i%e.w, i/e.w
		if p == nil {
			errs = append(errs, fmt.Errorf("%w: empty cell (%d,%d)", ErrOccupancy, x, y))
			continue
		}
		if p.X != x || p.Y != y {
			errs = append(errs, fmt.Errorf("%w: %s in slot (%d,%d) claims (%d,%d)", ErrOccupancy, p.Kind, x, y, p.X, p.Y))
		}
		if p.Destroyed {
			errs = append(errs, fmt.Errorf("%w: tombstoned %s still placed at (%d,%d)", ErrOccupancy, p.Kind, x, y))
		}
		if prev, dup := seen[p]; dup {
			errs = append(errs, fmt.Errorf("%w: %s placed at (%d,%d) and (%d,%d)", ErrOccupancy, p.Kind, prev.X, prev.Y, x, y))
		}
		seen[p] = Point{X: x, Y: y}
		if e.onEdge(x, y) && p.Kind != KindBoundary {
			errs = append(errs, fmt.Errorf("%w: %s on boundary ring at (%d,%d)", ErrOccupancy, p.Kind, x, y))
		}
		if err := p.Check(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func init() {
	core.Register("terrarium", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
