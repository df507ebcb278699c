package terrarium

import "strings"

// Kind enumerates the particle variants.
type Kind uint8

const (
	KindAir Kind = iota
	KindBoundary
	KindStone
	KindSoil
	KindGrass
	KindCompost
	KindWater
	KindSteam
	KindCloud
	KindSeed
	KindRoot
	KindStem
	KindShoot
	KindDeadPlant
	KindWorm

	kindCount
)

type kindInfo struct {
	name       string
	weight     int
	moveable   bool
	baseColor  string
	variance   float64
	injectable bool
}

var kinds = [kindCount]kindInfo{
	KindAir:       {name: "air", weight: 0, moveable: true, baseColor: "#87CEEB", variance: 0},
	KindBoundary:  {name: "boundary", weight: 5, baseColor: "#303030", variance: 0},
	KindStone:     {name: "stone", weight: 4, baseColor: "#7A7A7A", variance: 0.1, injectable: true},
	KindSoil:      {name: "soil", weight: 3, moveable: true, baseColor: "#76552B", variance: 0.1, injectable: true},
	KindGrass:     {name: "grass", weight: 3, moveable: true, baseColor: "#4C9A2A", variance: 0.1},
	KindCompost:   {name: "compost", weight: 3, moveable: true, baseColor: "#3B2A1A", variance: 0.1, injectable: true},
	KindWater:     {name: "water", weight: 2, moveable: true, baseColor: "#2E6FD8", variance: 0.05, injectable: true},
	KindSteam:     {name: "steam", weight: 1, moveable: true, baseColor: "#DDDDDD", variance: 0.05, injectable: true},
	KindCloud:     {name: "cloud", weight: 1, moveable: true, baseColor: "#F4F4F4", variance: 0.03, injectable: true},
	KindSeed:      {name: "seed", weight: 2, moveable: true, baseColor: "#FF80FF", variance: 0.05},
	KindRoot:      {name: "root", weight: 4, baseColor: "#C8A878", variance: 0.08},
	KindStem:      {name: "stem", weight: 4, baseColor: "#3F7D20", variance: 0.08},
	KindShoot:     {name: "shoot", weight: 4, baseColor: "#8CD867", variance: 0.1},
	KindDeadPlant: {name: "deadplant", weight: 2, moveable: true, baseColor: "#8D5D4F", variance: 0.05, injectable: true},
	KindWorm:      {name: "worm", weight: 3, moveable: true, baseColor: "#E7A1B0", variance: 0.05},
}

// String returns the lowercase kind name.
func (k Kind) String() string {
	if k >= kindCount {
		return "unknown"
	}
	return kinds[k].name
}

// Weight is the default displacement ordinal of the kind.
func (k Kind) Weight() int { return kinds[k].weight }

// Moveable is the per-tick moveable flag a particle of this kind starts with.
func (k Kind) Moveable() bool { return kinds[k].moveable }

// BaseColor returns the hex color particles of this kind vary around.
func (k Kind) BaseColor() string { return kinds[k].baseColor }

// Injectable reports whether external collaborators may add this kind directly.
func (k Kind) Injectable() bool { return k < kindCount && kinds[k].injectable }

// IsSoil reports membership of the soil family (soil, grass, compost).
func (k Kind) IsSoil() bool {
	return k == KindSoil || k == KindGrass || k == KindCompost
}

// IsPlant reports membership of the plant family.
func (k Kind) IsPlant() bool {
	switch k {
	case KindSeed, KindRoot, KindStem, KindShoot, KindDeadPlant:
		return true
	}
	return false
}

// IsGas reports membership of the gas family.
func (k Kind) IsGas() bool { return k == KindSteam || k == KindCloud }

// ParseKind resolves a kind by name, case-insensitively.
func ParseKind(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k := Kind(0); k < kindCount; k++ {
		if kinds[k].name == name {
			return k, true
		}
	}
	return KindAir, false
}

// Kinds lists every particle kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}
