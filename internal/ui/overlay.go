//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"terrasim/internal/core"
)

type maskProvider interface {
	Masks() []string
	Mask(name string) []float32
}

var maskKeys = []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4}

var maskTints = []color.RGBA{
	{R: 64, G: 164, B: 223},
	{R: 214, G: 160, B: 60},
	{R: 120, G: 230, B: 90},
	{R: 230, G: 90, B: 160},
}

// Overlay draws resource masks and status text on top of the world. Digit
// keys toggle masks in the order the sim lists them; H toggles the status.
type Overlay struct {
	sim        core.Sim
	scale      int
	active     int
	showStatus bool

	maskImg *ebiten.Image
	maskBuf []byte
}

// NewOverlay constructs an overlay for sim drawn at scale.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	return &Overlay{sim: sim, scale: scale, active: -1, showStatus: true}
}

// Update handles the overlay hotkeys.
func (o *Overlay) Update() {
	for i, key := range maskKeys {
		if inpututil.IsKeyJustPressed(key) {
			if o.active == i {
				o.active = -1
			} else {
				o.active = i
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.showStatus = !o.showStatus
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if provider, ok := o.sim.(maskProvider); ok && o.active >= 0 {
		names := provider.Masks()
		if o.active < len(names) {
			o.drawMask(screen, provider.Mask(names[o.active]), maskTints[o.active%len(maskTints)])
		}
	}
	if provider, ok := o.sim.(core.StatusProvider); ok && o.showStatus {
		face := basicfont.Face7x13
		for i, line := range provider.Status() {
			y := 16 + i*15
			text.Draw(screen, line, face, 9, y+1, color.RGBA{A: 200})
			text.Draw(screen, line, face, 8, y, color.RGBA{R: 235, G: 235, B: 240, A: 255})
		}
	}
}

func (o *Overlay) drawMask(screen *ebiten.Image, mask []float32, tint color.RGBA) {
	size := o.sim.Size()
	total := size.W * size.H
	if total == 0 || len(mask) != total {
		return
	}
	if o.maskImg == nil || o.maskImg.Bounds().Dx() != size.W || o.maskImg.Bounds().Dy() != size.H {
		o.maskImg = ebiten.NewImage(size.W, size.H)
		o.maskBuf = make([]byte, 4*total)
	}
	const (
		maxAlpha      = 170.0
		glowBase      = 0.35
		glowRange     = 0.65
		intensityBias = 0.75
	)

	for i, v := range mask {
		base := i * 4
		intensity := clamp01(float64(v))
		if intensity == 0 {
			clear(o.maskBuf[base : base+4])
			continue
		}
		glow := glowBase + glowRange*math.Sqrt(intensity)
		o.maskBuf[base+0] = scaleColorComponent(tint.R, glow)
		o.maskBuf[base+1] = scaleColorComponent(tint.G, glow)
		o.maskBuf[base+2] = scaleColorComponent(tint.B, glow)
		o.maskBuf[base+3] = uint8(math.Round(maxAlpha * math.Pow(intensity, intensityBias)))
	}
	o.maskImg.WritePixels(o.maskBuf)
	op := &ebiten.DrawImageOptions{}
	scale := max(o.scale, 1)
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.maskImg, op)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func scaleColorComponent(value uint8, factor float64) uint8 {
	scaled := math.Round(float64(value) * factor)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}
