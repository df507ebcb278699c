package terrarium

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskReportsFillTopRowFirst(t *testing.T) {
	e, _ := newTestEnv(t, quietConfig(6, 6))
	soil := put(e, KindSoil, 2, 4)
	soil.Water.Level = 25
	soil.Water.Capacity = 100
	seed := put(e, KindSeed, 3, 1)
	seed.Plant.Energy = seed.Plant.EnergyCapacity

	water := e.Mask("water")
	require.Len(t, water, 36)
	assert.InDelta(t, 0.25, water[1*6+2], 1e-6)
	assert.Zero(t, water[4*6+2])

	energy := e.Mask("energy")
	assert.InDelta(t, 1, energy[4*6+3], 1e-6)
	assert.Zero(t, energy[1*6+2])

	assert.Nil(t, e.Mask("lava"))
	assert.Equal(t, []string{"water", "nutrients", "energy"}, e.Masks())
}
