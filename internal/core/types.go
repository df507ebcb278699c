package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a cellular automaton must implement.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// Painter is implemented by sims that compute their own per-cell colors.
// Pixels writes RGBA bytes into buf with the top row of the world first.
// When full is false only cells flagged for redisplay are rewritten, so buf
// must be reused across calls.
type Painter interface {
	Pixels(buf []byte, full bool)
}

// ActionHandler accepts named user actions (e.g. "water", "seed") coming from
// an input front-end. It reports whether the action changed the world.
type ActionHandler interface {
	HandleAction(name string) bool
}

// StatusProvider exposes short human-readable status lines for overlays.
type StatusProvider interface {
	Status() []string
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}
