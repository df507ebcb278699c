package terrarium

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Params holds the tunable rates, capacities and thresholds of the kernel.
type Params struct {
	// Plant energy accounting.
	NetZero             bool    `yaml:"net_zero"`
	WaterEnergyRatio    float64 `yaml:"water_energy_ratio"`
	NutrientEnergyRatio float64 `yaml:"nutrient_energy_ratio"`
	EnergyRate          float64 `yaml:"energy_rate"`
	PlantUpkeep         float64 `yaml:"plant_upkeep"`

	PlantWaterCapacity    float64 `yaml:"plant_water_capacity"`
	PlantNutrientCapacity float64 `yaml:"plant_nutrient_capacity"`
	PlantEnergyCapacity   float64 `yaml:"plant_energy_capacity"`
	PlantMaxHealth        float64 `yaml:"plant_max_health"`
	SeedMaxHealth         float64 `yaml:"seed_max_health"`

	RootGrowthCost     float64 `yaml:"root_growth_cost"`
	StemGrowthCost     float64 `yaml:"stem_growth_cost"`
	ShootGrowthCost    float64 `yaml:"shoot_growth_cost"`
	PhotosynthesisRate float64 `yaml:"photosynthesis_rate"`
	SeedDropCost       float64 `yaml:"seed_drop_cost"`
	SeedDropChance     float64 `yaml:"seed_drop_chance"`
	RootMaxDepth       int     `yaml:"root_max_depth"`
	StemMaxHeight      int     `yaml:"stem_max_height"`

	// Soil.
	SoilWater        float64 `yaml:"soil_water"`
	SoilNutrients    float64 `yaml:"soil_nutrients"`
	SoilCapacity     float64 `yaml:"soil_capacity"`
	CompostNutrients float64 `yaml:"compost_nutrients"`
	CompostThreshold float64 `yaml:"compost_threshold"`
	GrassGrowChance  float64 `yaml:"grass_grow_chance"`

	// Weather.
	WaterLevel        float64 `yaml:"water_level"`
	EvaporationChance float64 `yaml:"evaporation_chance"`
	CondensationTime  int     `yaml:"condensation_time"`
	CloudHeightMin    int     `yaml:"cloud_height_min"`
	CloudHeightMax    int     `yaml:"cloud_height_max"`
	RainIntervalMin   int     `yaml:"rain_interval_min"`
	RainIntervalMax   int     `yaml:"rain_interval_max"`
	RainDrop          float64 `yaml:"rain_drop"`

	// Environment.
	InitialSeeds  int     `yaml:"initial_seeds"`
	NightLight    float64 `yaml:"night_light"`
	ColorVariance float64 `yaml:"color_variance"`
}

// Config controls the terrarium dimensions and tunables.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	Seed int64 `yaml:"seed"`

	Params Params `yaml:"params"`
}

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid terrarium config")

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  400,
		Height: 400,
		Seed:   1337,
		Params: Params{
			NetZero:             true,
			WaterEnergyRatio:    1,
			NutrientEnergyRatio: 1,
			EnergyRate:          2,
			PlantUpkeep:         0.05,

			PlantWaterCapacity:    100,
			PlantNutrientCapacity: 100,
			PlantEnergyCapacity:   100,
			PlantMaxHealth:        600,
			SeedMaxHealth:         60 * 60,

			RootGrowthCost:     6,
			StemGrowthCost:     8,
			ShootGrowthCost:    12,
			PhotosynthesisRate: 0.5,
			SeedDropCost:       40,
			SeedDropChance:     0.002,
			RootMaxDepth:       10,
			StemMaxHeight:      10,

			SoilWater:        30,
			SoilNutrients:    30,
			SoilCapacity:     100,
			CompostNutrients: 100,
			CompostThreshold: 0.68,
			GrassGrowChance:  0.001,

			WaterLevel:        100,
			EvaporationChance: 0.0004,
			CondensationTime:  1200,
			CloudHeightMin:    280,
			CloudHeightMax:    310,
			RainIntervalMin:   90,
			RainIntervalMax:   240,
			RainDrop:          100,

			InitialSeeds:  3,
			NightLight:    10,
			ColorVariance: 0.05,
		},
	}
}

// Validate checks the configuration for values the kernel cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Width < minDimension || c.Height < minDimension {
		errs = append(errs, fmt.Errorf("%w: grid %dx%d smaller than %dx%d", ErrInvalidConfig, c.Width, c.Height, minDimension, minDimension))
	}
	p := c.Params
	for key, v := range p.floatFields() {
		if math.IsNaN(*v) || math.IsInf(*v, 0) {
			errs = append(errs, fmt.Errorf("%w: %s is not finite", ErrInvalidConfig, key))
		}
	}
	if !(p.WaterEnergyRatio > 0 && p.NutrientEnergyRatio > 0) {
		errs = append(errs, fmt.Errorf("%w: energy ratios must be positive", ErrInvalidConfig))
	}
	if p.CloudHeightMax < p.CloudHeightMin {
		errs = append(errs, fmt.Errorf("%w: cloud_height_max %d < cloud_height_min %d", ErrInvalidConfig, p.CloudHeightMax, p.CloudHeightMin))
	}
	if p.RainIntervalMax < p.RainIntervalMin {
		errs = append(errs, fmt.Errorf("%w: rain_interval_max %d < rain_interval_min %d", ErrInvalidConfig, p.RainIntervalMax, p.RainIntervalMin))
	}
	if p.CondensationTime <= 0 {
		errs = append(errs, fmt.Errorf("%w: condensation_time must be positive", ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

// minDimension leaves room for the boundary ring plus a 2-cell interior that
// seed growth probes.
const minDimension = 6

// LoadConfig reads a YAML file over the defaults. Keys missing from the file
// keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read terrarium config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse terrarium config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["config"]; ok && v != "" {
		loaded, err := LoadConfig(v)
		if err != nil {
			slog.Default().Warn("terrarium config ignored, using defaults", "path", v, "err", err)
		} else {
			c = loaded
		}
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= minDimension {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= minDimension {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["net_zero"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Params.NetZero = parsed
		}
	}
	for key, target := range c.Params.floatFields() {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && acceptable(key, parsed) {
				*target = parsed
			}
		}
	}
	for key, target := range c.Params.intFields() {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && acceptable(key, float64(parsed)) {
				*target = parsed
			}
		}
	}
	if c.Params.CloudHeightMax < c.Params.CloudHeightMin {
		c.Params.CloudHeightMax = c.Params.CloudHeightMin
	}
	if c.Params.RainIntervalMax < c.Params.RainIntervalMin {
		c.Params.RainIntervalMax = c.Params.RainIntervalMin
	}
	return c
}

// positiveKeys must stay above zero: the energy ratios divide reserves and
// the condensation timer must be able to run out.
var positiveKeys = map[string]bool{
	"water_energy_ratio":    true,
	"nutrient_energy_ratio": true,
	"condensation_time":     true,
}

// acceptable reports whether v may override the tunable named key.
func acceptable(key string, v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return false
	}
	return v > 0 || !positiveKeys[key]
}

func (p *Params) floatFields() map[string]*float64 {
	return map[string]*float64{
		"water_energy_ratio":      &p.WaterEnergyRatio,
		"nutrient_energy_ratio":   &p.NutrientEnergyRatio,
		"energy_rate":             &p.EnergyRate,
		"plant_upkeep":            &p.PlantUpkeep,
		"plant_water_capacity":    &p.PlantWaterCapacity,
		"plant_nutrient_capacity": &p.PlantNutrientCapacity,
		"plant_energy_capacity":   &p.PlantEnergyCapacity,
		"plant_max_health":        &p.PlantMaxHealth,
		"seed_max_health":         &p.SeedMaxHealth,
		"root_growth_cost":        &p.RootGrowthCost,
		"stem_growth_cost":        &p.StemGrowthCost,
		"shoot_growth_cost":       &p.ShootGrowthCost,
		"photosynthesis_rate":     &p.PhotosynthesisRate,
		"seed_drop_cost":          &p.SeedDropCost,
		"seed_drop_chance":        &p.SeedDropChance,
		"soil_water":              &p.SoilWater,
		"soil_nutrients":          &p.SoilNutrients,
		"soil_capacity":           &p.SoilCapacity,
		"compost_nutrients":       &p.CompostNutrients,
		"compost_threshold":       &p.CompostThreshold,
		"grass_grow_chance":       &p.GrassGrowChance,
		"water_level":             &p.WaterLevel,
		"evaporation_chance":      &p.EvaporationChance,
		"rain_drop":               &p.RainDrop,
		"night_light":             &p.NightLight,
		"color_variance":          &p.ColorVariance,
	}
}

func (p *Params) intFields() map[string]*int {
	return map[string]*int{
		"root_max_depth":    &p.RootMaxDepth,
		"stem_max_height":   &p.StemMaxHeight,
		"condensation_time": &p.CondensationTime,
		"cloud_height_min":  &p.CloudHeightMin,
		"cloud_height_max":  &p.CloudHeightMax,
		"rain_interval_min": &p.RainIntervalMin,
		"rain_interval_max": &p.RainIntervalMax,
		"initial_seeds":     &p.InitialSeeds,
	}
}
