package terrarium

import (
	"strconv"

	"terrasim/internal/core"
)

// Parameters exposes the live tunables grouped for the HUD.
func (e *Environment) Parameters() core.ParameterSnapshot {
	params := e.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", e.cfg.Width),
				intParam("h", "Height", e.cfg.Height),
				int64Param("seed", "Seed", e.cfg.Seed),
				boolParam("net_zero", "Net-zero energy", params.NetZero),
			},
		},
		{
			Name: "Environment",
			Params: []core.Parameter{
				floatParam("light", "Light", e.light),
				floatParam("temperature", "Temperature", e.temperature),
				floatParam("oxygen", "Oxygen", e.oxygen),
				floatParam("night_light", "Night light", params.NightLight),
			},
		},
		{
			Name: "Energy",
			Params: []core.Parameter{
				floatParam("water_energy_ratio", "Water per energy", params.WaterEnergyRatio),
				floatParam("nutrient_energy_ratio", "Nutrients per energy", params.NutrientEnergyRatio),
				floatParam("energy_rate", "Energy rate", params.EnergyRate),
				floatParam("plant_upkeep", "Plant upkeep", params.PlantUpkeep),
				floatParam("photosynthesis_rate", "Photosynthesis rate", params.PhotosynthesisRate),
			},
		},
		{
			Name: "Growth",
			Params: []core.Parameter{
				floatParam("root_growth_cost", "Root growth cost", params.RootGrowthCost),
				floatParam("stem_growth_cost", "Stem growth cost", params.StemGrowthCost),
				floatParam("shoot_growth_cost", "Shoot growth cost", params.ShootGrowthCost),
				intParam("root_max_depth", "Root max depth", params.RootMaxDepth),
				intParam("stem_max_height", "Stem max height", params.StemMaxHeight),
				floatParam("seed_drop_chance", "Seed drop chance", params.SeedDropChance),
			},
		},
		{
			Name: "Soil",
			Params: []core.Parameter{
				floatParam("soil_water", "Soil water", params.SoilWater),
				floatParam("soil_nutrients", "Soil nutrients", params.SoilNutrients),
				floatParam("compost_nutrients", "Compost nutrients", params.CompostNutrients),
				floatParam("grass_grow_chance", "Grass grow chance", params.GrassGrowChance),
			},
		},
		{
			Name: "Weather",
			Params: []core.Parameter{
				floatParam("evaporation_chance", "Evaporation chance", params.EvaporationChance),
				intParam("condensation_time", "Condensation time", params.CondensationTime),
				intParam("cloud_height_min", "Cloud height min", params.CloudHeightMin),
				intParam("cloud_height_max", "Cloud height max", params.CloudHeightMax),
				intParam("rain_interval_min", "Rain interval min", params.RainIntervalMin),
				intParam("rain_interval_max", "Rain interval max", params.RainIntervalMax),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the values the HUD may adjust at runtime.
func (e *Environment) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		floatControl("light", "Light", 5, 0, 100),
		floatControl("temperature", "Temperature", 5, 0, 100),
		floatControl("oxygen", "Oxygen", 5, 0, 100),
		floatControl("evaporation_chance", "Evaporation %", 0.01, 0, 100),
		floatControl("grass_grow_chance", "Grass grow %", 0.05, 0, 100),
		floatControl("seed_drop_chance", "Seed drop %", 0.05, 0, 100),
		floatControl("energy_rate", "Energy rate", 0.5, 0, 50),
		intControl("condensation_time", "Condensation time", 50, 1, 10000),
		intControl("stem_max_height", "Stem max height", 1, 1, 200),
		intControl("root_max_depth", "Root max depth", 1, 1, 200),
	}
}

// percentKeys are chances presented to the HUD in percent.
var percentKeys = map[string]bool{
	"evaporation_chance": true,
	"grass_grow_chance":  true,
	"seed_drop_chance":   true,
}

// SetFloatParameter updates a float tunable. Chances are given in percent and
// every value is clamped to the control bounds.
func (e *Environment) SetFloatParameter(key string, value float64) bool {
	var ctrl core.ParameterControl
	found := false
	for _, c := range e.ParameterControls() {
		if c.Key == key && c.Type == core.ParamTypeFloat {
			ctrl, found = c, true
			break
		}
	}
	if !found {
		return false
	}
	value = clampControl(ctrl, value)
	if percentKeys[key] {
		value /= 100
	}
	switch key {
	case "light":
		e.SetLight(value)
	case "temperature":
		e.SetTemperature(value)
	case "oxygen":
		e.SetOxygen(value)
	case "evaporation_chance":
		e.cfg.Params.EvaporationChance = value
	case "grass_grow_chance":
		e.cfg.Params.GrassGrowChance = value
	case "seed_drop_chance":
		e.cfg.Params.SeedDropChance = value
	case "energy_rate":
		e.cfg.Params.EnergyRate = value
	default:
		return false
	}
	return true
}

// SetIntParameter updates an integer tunable, clamped to its control bounds.
func (e *Environment) SetIntParameter(key string, value int) bool {
	for _, c := range e.ParameterControls() {
		if c.Key != key || c.Type != core.ParamTypeInt {
			continue
		}
		v := int(clampControl(c, float64(value)))
		switch key {
		case "condensation_time":
			e.cfg.Params.CondensationTime = v
		case "stem_max_height":
			e.cfg.Params.StemMaxHeight = v
		case "root_max_depth":
			e.cfg.Params.RootMaxDepth = v
		default:
			return false
		}
		return true
	}
	return false
}

func clampControl(c core.ParameterControl, v float64) float64 {
	if c.HasMin && v < c.Min {
		v = c.Min
	}
	if c.HasMax && v > c.Max {
		v = c.Max
	}
	return v
}

func floatControl(key, label string, step, lo, hi float64) core.ParameterControl {
	return core.ParameterControl{
		Key: key, Label: label, Type: core.ParamTypeFloat,
		Step: step, Min: lo, Max: hi, HasMin: true, HasMax: true,
	}
}

func intControl(key, label string, step, lo, hi float64) core.ParameterControl {
	return core.ParameterControl{
		Key: key, Label: label, Type: core.ParamTypeInt,
		Step: step, Min: lo, Max: hi, HasMin: true, HasMax: true,
	}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}
