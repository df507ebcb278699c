package terrarium

import (
	"io"
	"log/slog"
	"testing"
)

// scriptedRand replays fixed draws; once exhausted IntN returns 0 and
// Float64 returns a value no chance roll passes.
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (s *scriptedRand) IntN(n int) int {
	if n <= 0 || len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scriptedRand) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.999999
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func quietConfig(w, h int) Config {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Params.GrassGrowChance = 0
	cfg.Params.EvaporationChance = 0
	cfg.Params.SeedDropChance = 0
	return cfg
}

// newTestEnv returns an empty world (boundary ring around air) with a
// scripted random source and a discarding logger.
func newTestEnv(t *testing.T, cfg Config) (*Environment, *scriptedRand) {
	t.Helper()
	e := NewWithConfig(cfg)
	e.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := &scriptedRand{}
	e.SetRand(r)
	return e, r
}

func put(e *Environment, kind Kind, x, y int) *Particle {
	p := e.NewParticle(kind, x, y)
	e.Set(p)
	return p
}
