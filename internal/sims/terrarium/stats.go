package terrarium

import "fmt"

// Stats holds cumulative event counters since the last Reset.
type Stats struct {
	Ticks     uint64
	Erosions  uint64
	Transfers uint64

	Germinations uint64
	Sprouts      uint64
	RootGrowths  uint64
	StemGrowths  uint64
	ShootGrowths uint64
	SeedsDropped uint64
	PlantDeaths  uint64

	Evaporations    uint64
	Condensations   uint64
	CloudFormations uint64
	RainDrops       uint64

	Injections uint64
	Rejections uint64
}

// Status returns short lines for overlays and terminal views.
func (e *Environment) Status() []string {
	census := e.Census()
	phase := "day"
	if !e.day {
		phase = "night"
	}
	plants := census[KindSeed] + census[KindRoot] + census[KindStem] + census[KindShoot]
	return []string{
		fmt.Sprintf("tick %d  %s  light %.0f  temp %.0f", e.tick, phase, e.light, e.temperature),
		fmt.Sprintf("water %d  steam %d  cloud %d", census[KindWater], census[KindSteam], census[KindCloud]),
		fmt.Sprintf("plants %d  seeds %d  dead %d", plants, census[KindSeed], census[KindDeadPlant]),
		fmt.Sprintf("sprouts %d  deaths %d  rain %d", e.stats.Sprouts, e.stats.PlantDeaths, e.stats.RainDrops),
	}
}

// Events returns the counters keyed by event name.
func (s Stats) Events() map[string]uint64 {
	return map[string]uint64{
		"erosion":         s.Erosions,
		"transfer":        s.Transfers,
		"germination":     s.Germinations,
		"sprout":          s.Sprouts,
		"root_growth":     s.RootGrowths,
		"stem_growth":     s.StemGrowths,
		"shoot_growth":    s.ShootGrowths,
		"seed_drop":       s.SeedsDropped,
		"plant_death":     s.PlantDeaths,
		"evaporation":     s.Evaporations,
		"condensation":    s.Condensations,
		"cloud_formation": s.CloudFormations,
		"rain_drop":       s.RainDrops,
		"injection":       s.Injections,
		"rejection":       s.Rejections,
	}
}
