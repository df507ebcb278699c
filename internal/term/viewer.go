// Package term renders a simulation in a terminal with tcell.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"terrasim/internal/app"
	"terrasim/internal/core"
	"terrasim/internal/render"
)

// statusRows are reserved at the bottom of the screen for status text.
const statusRows = 5

// Viewer draws a sim with upper-half blocks, two world rows per terminal
// row, downsampling when the world is larger than the screen.
type Viewer struct {
	screen tcell.Screen
	sim    core.Sim
	buf    []byte
	full   bool
	paused bool
	seed   int64
}

// NewViewer binds an initialised screen to sim.
func NewViewer(screen tcell.Screen, sim core.Sim, seed int64) *Viewer {
	size := sim.Size()
	return &Viewer{
		screen: screen,
		sim:    sim,
		buf:    make([]byte, size.W*size.H*4),
		full:   true,
		seed:   seed,
	}
}

// Paused reports whether ticking is suspended.
func (v *Viewer) Paused() bool { return v.paused }

// Draw renders the current frame and the status lines.
func (v *Viewer) Draw() {
	render.Frame(v.buf, v.sim, v.full)
	v.full = false

	v.screen.Clear()
	sw, sh := v.screen.Size()
	size := v.sim.Size()
	rows := max(sh-statusRows, 1)
	// Cells per terminal column and per half-row.
	stride := max(ceilDiv(size.W, max(sw, 1)), ceilDiv(size.H, 2*rows), 1)

	for ty := 0; ty < rows; ty++ {
		top := 2 * ty * stride
		if top >= size.H {
			break
		}
		bottom := top + stride
		for tx := 0; tx < sw; tx++ {
			x := tx * stride
			if x >= size.W {
				break
			}
			style := tcell.StyleDefault.Foreground(v.color(x, top))
			if bottom < size.H {
				style = style.Background(v.color(x, bottom))
			}
			v.screen.SetContent(tx, ty, '▀', nil, style)
		}
	}
	v.drawStatus(rows, sw)
	v.screen.Show()
}

func (v *Viewer) color(x, row int) tcell.Color {
	base := (row*v.sim.Size().W + x) * 4
	return tcell.NewRGBColor(int32(v.buf[base]), int32(v.buf[base+1]), int32(v.buf[base+2]))
}

func (v *Viewer) drawStatus(top, width int) {
	lines := []string{}
	if provider, ok := v.sim.(core.StatusProvider); ok {
		lines = append(lines, provider.Status()...)
	}
	state := "running"
	if v.paused {
		state = "paused"
	}
	lines = append(lines, fmt.Sprintf("[%s] space pause  n step  r reset  q quit  %s", state, bindingHelp()))
	style := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	for i, line := range lines {
		if i >= statusRows {
			break
		}
		col := 0
		for _, r := range line {
			if col >= width {
				break
			}
			v.screen.SetContent(col, top+i, r, nil, style)
			col++
		}
	}
}

func bindingHelp() string {
	out := ""
	for _, b := range app.Bindings {
		out += fmt.Sprintf(" %c %s", b.Key, b.Label)
	}
	return out
}

// HandleEvent applies one terminal event. It returns false when the viewer
// should exit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			return v.handleRune(ev.Rune())
		}
	case *tcell.EventResize:
		v.screen.Sync()
		v.full = true
	}
	return true
}

func (v *Viewer) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case ' ':
		v.paused = !v.paused
	case 'n':
		v.sim.Step()
	case 'r':
		v.sim.Reset(v.seed)
		v.full = true
	default:
		if handler, ok := v.sim.(core.ActionHandler); ok {
			if action, ok := app.ActionFor(r); ok {
				handler.HandleAction(action)
			}
		}
	}
	return true
}

// Run ticks the sim every interval and redraws until ctx is done or the user
// quits. Events are read on a separate goroutine.
func (v *Viewer) Run(ctx context.Context, interval time.Duration, onTick func()) error {
	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go v.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !v.HandleEvent(ev) {
				return nil
			}
			v.Draw()
		case <-ticker.C:
			if !v.paused {
				v.sim.Step()
				if onTick != nil {
					onTick()
				}
			}
			v.Draw()
		}
	}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
