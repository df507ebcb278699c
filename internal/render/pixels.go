package render

import (
	"image/color"

	"terrasim/internal/core"
)

type paletteProvider interface {
	Palette() []color.RGBA
}

// Frame fills buf with the RGBA pixels of sim, top row first. Sims that paint
// themselves are asked to; otherwise cell values go through the sim palette,
// or are drawn as on/off when it has none. With full unset a self-painting sim
// only rewrites changed cells, so buf must be reused across calls.
func Frame(buf []byte, sim core.Sim, full bool) {
	size := sim.Size()
	if len(buf) < size.W*size.H*4 {
		return
	}
	if painter, ok := sim.(core.Painter); ok {
		painter.Pixels(buf, full)
		return
	}
	if provider, ok := sim.(paletteProvider); ok {
		fillPaletteRGBA(buf, sim.Cells(), provider.Palette())
		return
	}
	fillBinaryRGBA(buf, sim.Cells(), color.White, color.Black)
}

// fillBinaryRGBA converts binary cell data (0/1) into RGBA pixels in buf.
func fillBinaryRGBA(buf []byte, cells []uint8, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	for i, c := range cells {
		base := i * 4
		if c != 0 {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black. Values past
// the end of the palette use its last entry.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:len(cells)*4])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		col := palette[min(int(c), last)]
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
