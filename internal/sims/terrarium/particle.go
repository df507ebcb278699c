package terrarium

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// Resource selects one of the two transferable reserves.
type Resource uint8

const (
	Water Resource = iota
	Nutrients
)

func (r Resource) String() string {
	if r == Water {
		return "water"
	}
	return "nutrients"
}

// ErrReservoir reports a level outside [0, capacity].
var ErrReservoir = errors.New("reservoir out of range")

// Reservoir is a capacity-bounded resource store. The given/received stamps
// hold tick+1 of the last transfer in each direction, so a zero value means
// "never" and no per-tick reset is required.
type Reservoir struct {
	Level    float64
	Capacity float64

	givenAt    uint64
	receivedAt uint64
}

// Free returns the room left before the reservoir is full.
func (r *Reservoir) Free() float64 {
	if r.Capacity <= r.Level {
		return 0
	}
	return r.Capacity - r.Level
}

// Add raises the level by amount, clamped to capacity, and returns what fit.
func (r *Reservoir) Add(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	if free := r.Free(); amount > free {
		amount = free
	}
	r.Level += amount
	return amount
}

// Check reports a level or capacity outside the valid range. NaN fails every
// comparison, so the bounds are written to reject it.
func (r *Reservoir) Check() error {
	if !(r.Capacity >= 0 && r.Level >= 0 && r.Level <= r.Capacity) {
		return fmt.Errorf("%w: level %.4f capacity %.4f", ErrReservoir, r.Level, r.Capacity)
	}
	return nil
}

// PlantState is carried by every plant-family particle.
type PlantState struct {
	DNA DNA

	Energy          float64
	EnergyCapacity  float64
	Health          float64
	MaxHealth       float64
	AbsorbTier      int
	ActivationLevel float64
	Germinated      bool

	// IsNode marks the structural root node of a plant and IsFirst the very
	// first root particle; Parent is the coordinate the part grew from.
	IsNode  bool
	IsFirst bool
	Parent  Point
	// Height counts segments from the seed position for stems and roots.
	Height int
}

// GasState is carried by steam.
type GasState struct {
	CondensationTime int
	CloudHeight      int
}

// CloudState is carried by clouds.
type CloudState struct {
	RainTimer int
}

// Particle is one cell occupant. Kind selects the behavior; the pointer
// fields carry kind-specific state and are nil for kinds that do not use it.
type Particle struct {
	X, Y int
	Kind Kind

	// Moveable gates displacement within the current tick; Weight decides who
	// may displace whom.
	Moveable bool
	Weight   int

	// Destroyed is set when the slot was overwritten; the dispatcher skips
	// tombstoned particles for the rest of the tick.
	Destroyed bool
	// Rerender marks the cell for redisplay.
	Rerender bool

	FlowDirection int

	Water     Reservoir
	Nutrients Reservoir

	Plant *PlantState
	Gas   *GasState
	Cloud *CloudState

	// displacedAt holds tick+1 of the last swap this particle took part in.
	displacedAt uint64

	baseColor        string
	colorVariance    float64
	color            colorful.Color
	colored          bool
	BrightnessOffset float64
}

func newParticle(kind Kind, x, y int) *Particle {
	return &Particle{
		X:             x,
		Y:             y,
		Kind:          kind,
		Moveable:      kind.Moveable(),
		Weight:        kind.Weight(),
		baseColor:     kind.BaseColor(),
		colorVariance: kinds[kind].variance,
	}
}

// reservoir returns the store for res.
func (p *Particle) reservoir(res Resource) *Reservoir {
	if res == Water {
		return &p.Water
	}
	return &p.Nutrients
}

// Check validates both reservoirs and plant-state bounds.
func (p *Particle) Check() error {
	var errs []error
	if err := p.Water.Check(); err != nil {
		errs = append(errs, fmt.Errorf("%s at (%d,%d) water: %w", p.Kind, p.X, p.Y, err))
	}
	if err := p.Nutrients.Check(); err != nil {
		errs = append(errs, fmt.Errorf("%s at (%d,%d) nutrients: %w", p.Kind, p.X, p.Y, err))
	}
	if ps := p.Plant; ps != nil && !(ps.Energy >= 0 && ps.Energy <= ps.EnergyCapacity) {
		errs = append(errs, fmt.Errorf("%s at (%d,%d) energy %.4f/%.4f: %w", p.Kind, p.X, p.Y, ps.Energy, ps.EnergyCapacity, ErrReservoir))
	}
	return errors.Join(errs...)
}

// TakeRerender reports whether the cell needs redisplay and clears the flag.
func (p *Particle) TakeRerender() bool {
	r := p.Rerender
	p.Rerender = false
	return r
}

// Position returns the particle's coordinate.
func (p *Particle) Position() Point { return Point{X: p.X, Y: p.Y} }
