package terrarium

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"terrasim/internal/core"
)

var terrariumPalette = buildPalette()

// Palette maps the kind bytes returned by Cells to the base kind colors.
func (e *Environment) Palette() []color.RGBA {
	return terrariumPalette
}

func buildPalette() []color.RGBA {
	palette := make([]color.RGBA, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		palette[k] = toRGBA(parseHex(k.BaseColor()))
	}
	return palette
}

func parseHex(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Color returns the particle's display color. It is drawn once per particle:
// saturation and value are scaled by independent factors from
// [1-variance, 1+variance] around the base color.
func (e *Environment) Color(p *Particle) colorful.Color {
	if p.colored {
		return p.color
	}
	h, s, v := parseHex(p.baseColor).Hsv()
	variance := p.colorVariance * (1 + e.cfg.Params.ColorVariance)
	lo, hi := 1-variance, 1+variance
	s *= core.FloatRange(e.paint, lo, hi)
	p.BrightnessOffset = core.FloatRange(e.paint, lo, hi)
	v *= p.BrightnessOffset
	p.color = colorful.Hsv(h, clamp01(s), clamp01(v))
	p.colored = true
	return p.color
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

// Pixels writes RGBA bytes into buf with the top row of the world first. With
// full unset only cells whose rerender flag is raised are rewritten.
func (e *Environment) Pixels(buf []byte, full bool) {
	if len(buf) < e.w*e.h*4 {
		return
	}
	for row := 0; row < e.h; row++ {
		y := e.h - 1 - row
		for x := 0; x < e.w; x++ {
			p := e.slots[y*e.w+x]
			if !p.TakeRerender() && !full {
				continue
			}
			r, g, b := e.Color(p).Clamped().RGB255()
			base := (row*e.w + x) * 4
			buf[base+0] = r
			buf[base+1] = g
			buf[base+2] = b
			buf[base+3] = 255
		}
	}
}
