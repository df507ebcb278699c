package terrarium

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terrasim/internal/core"
)

func TestParametersGroups(t *testing.T) {
	e, _ := newTestEnv(t, quietConfig(16, 12))
	snap := e.Parameters()

	names := make([]string, 0, len(snap.Groups))
	values := map[string]string{}
	for _, g := range snap.Groups {
		names = append(names, g.Name)
		for _, p := range g.Params {
			values[p.Key] = p.Value
		}
	}
	assert.Equal(t, []string{"World", "Environment", "Energy", "Growth", "Soil", "Weather"}, names)
	assert.Equal(t, "16", values["w"])
	assert.Equal(t, "12", values["h"])
	assert.Equal(t, "100", values["light"])
	assert.Equal(t, "true", values["net_zero"])
}

func TestSetFloatParameterPercentAndClamp(t *testing.T) {
	e, _ := newTestEnv(t, quietConfig(8, 8))

	require.True(t, e.SetFloatParameter("seed_drop_chance", 5))
	assert.InDelta(t, 0.05, e.Config().Params.SeedDropChance, 1e-12)

	require.True(t, e.SetFloatParameter("light", 250))
	assert.InDelta(t, 100, e.Light(), 1e-9)

	require.True(t, e.SetFloatParameter("temperature", -3))
	assert.Zero(t, e.Temperature())

	assert.False(t, e.SetFloatParameter("condensation_time", 3), "int control")
	assert.False(t, e.SetFloatParameter("nope", 1))
}

func TestSetIntParameterClamps(t *testing.T) {
	e, _ := newTestEnv(t, quietConfig(8, 8))

	require.True(t, e.SetIntParameter("condensation_time", 0))
	assert.Equal(t, 1, e.Config().Params.CondensationTime)

	require.True(t, e.SetIntParameter("stem_max_height", 12))
	assert.Equal(t, 12, e.Config().Params.StemMaxHeight)

	assert.False(t, e.SetIntParameter("light", 4), "float control")
}

func TestParameterControlsAreBounded(t *testing.T) {
	e, _ := newTestEnv(t, quietConfig(8, 8))
	var _ core.ParameterControlsProvider = e
	for _, c := range e.ParameterControls() {
		assert.True(t, c.HasMin && c.HasMax, c.Key)
		assert.Less(t, c.Min, c.Max, c.Key)
	}
}
