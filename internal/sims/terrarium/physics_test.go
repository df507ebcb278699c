package terrarium

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGravityFallScenario(t *testing.T) {
	e, _ := newTestEnv(t, quietConfig(12, 16))
	a := put(e, KindSoil, 5, 10)
	b := e.Get(5, 9)
	require.Equal(t, 3, a.Weight)
	require.Equal(t, 0, b.Weight)
	require.True(t, b.Moveable)

	assert.True(t, Gravity(e, a))

	assert.Same(t, a, e.Get(5, 9))
	assert.Same(t, b, e.Get(5, 10))
	assert.False(t, a.Moveable)
	assert.False(t, b.Moveable)
	require.NoError(t, e.Validate())
}

func TestGravityWeightOrdering(t *testing.T) {
	cases := []struct {
		name  string
		upper Kind
		lower Kind
		falls bool
	}{
		{"soil over air", KindSoil, KindAir, true},
		{"soil over water", KindSoil, KindWater, true},
		{"water over air", KindWater, KindAir, true},
		{"soil over soil", KindSoil, KindSoil, false},
		{"water over water", KindWater, KindWater, false},
		{"seed over water", KindSeed, KindWater, false},
		{"water over soil", KindWater, KindSoil, false},
		{"soil over stone", KindSoil, KindStone, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, _ := newTestEnv(t, quietConfig(8, 8))
			put(e, tc.lower, 3, 3)
			p := put(e, tc.upper, 3, 4)

			assert.Equal(t, tc.falls, Gravity(e, p))
			if tc.falls {
				assert.Equal(t, 3, p.Y)
			} else {
				assert.Equal(t, 4, p.Y)
			}
		})
	}
}

func TestGravityIgnoresLockedParticleBelow(t *testing.T) {
	e, _ := newTestEnv(t, quietConfig(8, 8))
	e.Get(3, 3).Moveable = false
	p := put(e, KindSoil, 3, 4)

	assert.False(t, Gravity(e, p))
	assert.Equal(t, 4, p.Y)
}

func TestGravityDisplacedParticleStaysLocked(t *testing.T) {
	e, _ := newTestEnv(t, quietConfig(8, 8))
	p := put(e, KindSoil, 3, 5)

	require.True(t, Gravity(e, p))
	assert.False(t, Gravity(e, p))
	assert.Equal(t, 4, p.Y)
	assert.False(t, p.Moveable)
}

func TestErosionNoOpWhenCovered(t *testing.T) {
	e, r := newTestEnv(t, quietConfig(12, 12))
	p := put(e, KindSoil, 5, 5)
	for dx := -1; dx <= 1; dx++ {
		put(e, KindSoil, 5+dx, 6)
	}
	r.ints = []int{1, 1, 1}

	assert.False(t, Erosion(e, p))
	assert.Equal(t, Point{X: 5, Y: 5}, p.Position())
}

func TestErosionNoOpWithoutFreeSide(t *testing.T) {
	e, _ := newTestEnv(t, quietConfig(12, 12))
	p := put(e, KindSoil, 5, 5)
	put(e, KindStone, 4, 5)
	put(e, KindSoil, 6, 5)

	assert.False(t, Erosion(e, p))
	assert.Equal(t, Point{X: 5, Y: 5}, p.Position())
}

func TestErosionSkipsOverhangs(t *testing.T) {
	e, _ := newTestEnv(t, quietConfig(12, 12))
	p := put(e, KindSoil, 5, 5)
	put(e, KindStone, 5, 4)
	// Left is open but the cell under it is solid; right is blocked.
	put(e, KindStone, 4, 4)
	put(e, KindStone, 6, 5)

	assert.False(t, Erosion(e, p))
}

func TestErosionPicksAmongStayAndFreeSides(t *testing.T) {
	setup := func(t *testing.T, draw int) (*Environment, *Particle) {
		e, r := newTestEnv(t, quietConfig(12, 12))
		p := put(e, KindSoil, 5, 5)
		put(e, KindStone, 5, 4)
		put(e, KindStone, 6, 5)
		r.ints = []int{draw}
		return e, p
	}

	t.Run("stay", func(t *testing.T) {
		e, p := setup(t, 0)
		assert.False(t, Erosion(e, p))
		assert.Equal(t, 5, p.X)
	})
	t.Run("left", func(t *testing.T) {
		e, p := setup(t, 1)
		side := e.Get(4, 5)
		assert.True(t, Erosion(e, p))
		assert.Equal(t, Point{X: 4, Y: 5}, p.Position())
		assert.Same(t, side, e.Get(5, 5))
		assert.False(t, p.Moveable)
		assert.False(t, side.Moveable)
		assert.Equal(t, uint64(1), e.Stats().Erosions)
	})
}

func TestFlowMovesForward(t *testing.T) {
	e, _ := newTestEnv(t, quietConfig(8, 8))
	p := put(e, KindWater, 3, 1)
	p.FlowDirection = 1

	assert.True(t, Flow(e, p))
	assert.Equal(t, 4, p.X)
	assert.Equal(t, 1, p.FlowDirection)
	assert.False(t, p.Moveable)
}

func TestFlowReversesWhenBlocked(t *testing.T) {
	e, _ := newTestEnv(t, quietConfig(8, 8))
	p := put(e, KindWater, 3, 1)
	p.FlowDirection = 1
	put(e, KindStone, 4, 1)

	assert.True(t, Flow(e, p))
	assert.Equal(t, 2, p.X)
	assert.Equal(t, -1, p.FlowDirection)
}

func TestFlowBlockedOnBothSides(t *testing.T) {
	e, _ := newTestEnv(t, quietConfig(8, 8))
	p := put(e, KindWater, 3, 1)
	p.FlowDirection = -1
	put(e, KindStone, 2, 1)
	put(e, KindWater, 4, 1)

	assert.False(t, Flow(e, p))
	assert.Equal(t, 3, p.X)
	assert.Equal(t, -1, p.FlowDirection)
}

func TestFlowRequiresMoveableInvoker(t *testing.T) {
	e, _ := newTestEnv(t, quietConfig(8, 8))
	p := put(e, KindWater, 3, 1)
	p.FlowDirection = 1
	p.Moveable = false
	put(e, KindStone, 4, 1)

	assert.False(t, Flow(e, p))
	assert.Equal(t, 1, p.FlowDirection)
}

func TestRiseThroughLighterCells(t *testing.T) {
	e, _ := newTestEnv(t, quietConfig(8, 8))
	steam := put(e, KindSteam, 3, 2)

	assert.True(t, Rise(e, steam))
	assert.Equal(t, 3, steam.Y)

	ceiling := put(e, KindCloud, 4, 3)
	other := put(e, KindSteam, 4, 2)
	assert.False(t, Rise(e, other))
	assert.Equal(t, 3, ceiling.Y)
}
