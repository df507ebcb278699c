package core

import "time"

// FixedStep paces simulation ticks against wall time, independently of how
// often the front-end polls it.
type FixedStep struct {
	step    time.Duration
	owed    time.Duration
	last    time.Time
	maxOwed time.Duration
	now     func() time.Time
}

// maxCatchUp bounds how many ticks a stalled front-end may owe.
const maxCatchUp = 4

// NewFixedStep constructs a FixedStep targeting tps ticks per second. A
// fresh stepper owes one tick.
func NewFixedStep(tps int) *FixedStep {
	f := &FixedStep{now: time.Now}
	f.SetTPS(tps)
	f.owed = f.step
	return f
}

// SetTPS changes the tick rate. Non-positive rates fall back to 60.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
	f.maxOwed = f.step * maxCatchUp
	f.owed = min(f.owed, f.maxOwed)
}

// Interval returns the duration of one tick.
func (f *FixedStep) Interval() time.Duration { return f.step }

// Reset drops any owed time so the next tick waits a full interval.
func (f *FixedStep) Reset() {
	f.owed = 0
	f.last = time.Time{}
}

// ShouldStep reports whether one tick is due and consumes it.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.owed = min(f.owed+now.Sub(f.last), f.maxOwed)
	f.last = now
	if f.owed < f.step {
		return false
	}
	f.owed -= f.step
	return true
}
