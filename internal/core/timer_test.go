package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type manualClock struct{ t time.Time }

func (c *manualClock) now() time.Time { return c.t }

func (c *manualClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func steppedWith(tps int) (*FixedStep, *manualClock) {
	clock := &manualClock{t: time.Unix(1000, 0)}
	f := NewFixedStep(tps)
	f.now = clock.now
	return f, clock
}

func TestFixedStepInterval(t *testing.T) {
	assert.Equal(t, time.Second/30, NewFixedStep(30).Interval())
	assert.Equal(t, time.Second/60, NewFixedStep(0).Interval(), "non-positive rate falls back to 60")

	f := NewFixedStep(30)
	f.SetTPS(-1)
	assert.Equal(t, time.Second/60, f.Interval())
}

func TestFixedStepPacesTicks(t *testing.T) {
	f, clock := steppedWith(10)

	assert.True(t, f.ShouldStep(), "a fresh stepper owes one tick")
	assert.False(t, f.ShouldStep())

	clock.advance(50 * time.Millisecond)
	assert.False(t, f.ShouldStep())
	clock.advance(50 * time.Millisecond)
	assert.True(t, f.ShouldStep())
	assert.False(t, f.ShouldStep())
}

func TestFixedStepBoundsCatchUp(t *testing.T) {
	f, clock := steppedWith(10)
	f.ShouldStep()

	clock.advance(10 * time.Second)
	due := 0
	for f.ShouldStep() {
		due++
	}

	assert.Equal(t, maxCatchUp, due)
}

func TestFixedStepResetWaitsFullInterval(t *testing.T) {
	f, clock := steppedWith(10)
	f.Reset()
	assert.False(t, f.ShouldStep())

	clock.advance(100 * time.Millisecond)
	assert.True(t, f.ShouldStep())
}
