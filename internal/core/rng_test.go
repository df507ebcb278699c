package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 32; i++ {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}

func TestIntRangeInclusive(t *testing.T) {
	r := NewRNG(7)
	seenLo, seenHi := false, false
	for i := 0; i < 2000; i++ {
		v := IntRange(r, 3, 5)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 5)
		seenLo = seenLo || v == 3
		seenHi = seenHi || v == 5
	}
	assert.True(t, seenLo && seenHi, "both bounds should be drawn")
	assert.Equal(t, 9, IntRange(r, 9, 9))
	assert.Equal(t, 0, r.IntN(0))
}

func TestSign(t *testing.T) {
	r := NewRNG(1)
	for i := 0; i < 100; i++ {
		s := Sign(r)
		assert.True(t, s == 1 || s == -1)
	}
}

func TestByteGridBounds(t *testing.T) {
	g := NewByteGrid(4, 3)
	g.Set(3, 2, 9)
	g.Set(4, 2, 1)
	assert.Equal(t, uint8(9), g.At(3, 2))
	assert.Equal(t, uint8(0), g.At(-1, 0))
	assert.Equal(t, 11, g.Index(3, 2))
	g.Clear()
	assert.Equal(t, uint8(0), g.At(3, 2))
}

func TestParameterSnapshotLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "A", Params: []Parameter{{Key: "w", Value: "10"}}},
		{Name: "B", Params: []Parameter{{Key: "seed", Value: "3"}}},
	}}
	p, ok := snap.Lookup("seed")
	assert.True(t, ok)
	assert.Equal(t, "3", p.Value)
	_, ok = snap.Lookup("missing")
	assert.False(t, ok)
}
