package terrarium

// Mask names accepted by Mask.
var maskNames = []string{"water", "nutrients", "energy"}

// Masks lists the per-cell fill masks the terrarium can report.
func (e *Environment) Masks() []string { return maskNames }

// Mask returns per-cell fill ratios in [0, 1] for the named reservoir, top
// row first. Unknown names return nil.
func (e *Environment) Mask(name string) []float32 {
	var fill func(p *Particle) float64
	switch name {
	case "water":
		fill = func(p *Particle) float64 { return ratio(p.Water.Level, p.Water.Capacity) }
	case "nutrients":
		fill = func(p *Particle) float64 { return ratio(p.Nutrients.Level, p.Nutrients.Capacity) }
	case "energy":
		fill = func(p *Particle) float64 {
			if p.Plant == nil {
				return 0
			}
			return ratio(p.Plant.Energy, p.Plant.EnergyCapacity)
		}
	default:
		return nil
	}
	out := make([]float32, e.w*e.h)
	for row := 0; row < e.h; row++ {
		y := e.h - 1 - row
		for x := 0; x < e.w; x++ {
			out[row*e.w+x] = float32(fill(e.slots[y*e.w+x]))
		}
	}
	return out
}

func ratio(level, capacity float64) float64 {
	if capacity <= 0 {
		return 0
	}
	return min(max(level/capacity, 0), 1)
}
