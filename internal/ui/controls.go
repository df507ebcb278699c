package ui

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"terrasim/internal/core"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

// controlState tracks one adjustable parameter between frames.
type controlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool
}

// controlSet binds a sim's adjustable parameters to its setters.
type controlSet struct {
	sim         core.Sim
	states      []controlState
	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter
}

func newControlSet(sim core.Sim) *controlSet {
	cs := &controlSet{sim: sim}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for _, ctrl := range provider.ParameterControls() {
			cs.states = append(cs.states, controlState{control: ctrl, value: "--"})
		}
	}
	cs.intSetter, _ = sim.(core.IntParameterSetter)
	cs.floatSetter, _ = sim.(core.FloatParameterSetter)
	return cs
}

// refresh reloads every control value from the sim's parameter snapshot.
func (cs *controlSet) refresh() {
	provider, ok := cs.sim.(parameterProvider)
	if !ok {
		return
	}
	snapshot := provider.Parameters()
	for i := range cs.states {
		state := &cs.states[i]
		state.hasValue = false
		state.value = "--"
		param, ok := snapshot.Lookup(state.control.Key)
		if !ok {
			continue
		}
		switch state.control.Type {
		case core.ParamTypeInt:
			if parsed, err := strconv.Atoi(param.Value); err == nil {
				state.intValue = parsed
				state.floatValue = float64(parsed)
				state.value = strconv.Itoa(parsed)
				state.hasValue = true
			}
		case core.ParamTypeFloat:
			if parsed, err := strconv.ParseFloat(param.Value, 64); err == nil {
				state.floatValue = parsed
				state.value = formatFloat(state.control, parsed)
				state.hasValue = true
			}
		}
	}
}

// target returns the value one step in direction, and whether that step
// stays inside the control bounds and has a setter to receive it.
func (cs *controlSet) target(state *controlState, direction int) (float64, bool) {
	if !state.hasValue || direction == 0 {
		return 0, false
	}
	ctrl := state.control
	var next float64
	switch ctrl.Type {
	case core.ParamTypeInt:
		if cs.intSetter == nil {
			return 0, false
		}
		step := max(int(math.Round(ctrl.Step)), 1)
		next = float64(state.intValue + direction*step)
	case core.ParamTypeFloat:
		if cs.floatSetter == nil {
			return 0, false
		}
		step := ctrl.Step
		if step <= 0 {
			step = 0.05
		}
		next = state.floatValue + float64(direction)*step
	default:
		return 0, false
	}
	if ctrl.HasMin && direction < 0 && next < ctrl.Min {
		if state.floatValue <= ctrl.Min {
			return 0, false
		}
		next = ctrl.Min
	}
	if ctrl.HasMax && direction > 0 && next > ctrl.Max {
		if state.floatValue >= ctrl.Max {
			return 0, false
		}
		next = ctrl.Max
	}
	return next, true
}

// adjust steps control i in direction and pushes the result to the sim.
func (cs *controlSet) adjust(i, direction int) bool {
	if i < 0 || i >= len(cs.states) {
		return false
	}
	state := &cs.states[i]
	next, ok := cs.target(state, direction)
	if !ok {
		return false
	}
	switch state.control.Type {
	case core.ParamTypeInt:
		v := int(math.Round(next))
		if !cs.intSetter.SetIntParameter(state.control.Key, v) {
			return false
		}
		state.intValue = v
		state.floatValue = float64(v)
		state.value = strconv.Itoa(v)
	case core.ParamTypeFloat:
		if !cs.floatSetter.SetFloatParameter(state.control.Key, next) {
			return false
		}
		state.floatValue = next
		state.value = formatFloat(state.control, next)
	}
	return true
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func buildTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Controls"
	}
	name := []rune(sim.Name())
	name[0] = unicode.ToUpper(name[0])
	return strings.TrimSpace(string(name)) + " Controls"
}
