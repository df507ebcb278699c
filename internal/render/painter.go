//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"terrasim/internal/core"
)

// GridPainter uploads simulation frames to an ebiten image and blits them
// scaled onto the screen.
type GridPainter struct {
	img  *ebiten.Image
	buf  []byte
	full bool
}

// NewGridPainter allocates a painter for a w x h grid.
func NewGridPainter(w, h int) *GridPainter {
	return &GridPainter{
		img:  ebiten.NewImage(w, h),
		buf:  make([]byte, w*h*4),
		full: true,
	}
}

// Invalidate forces the next Blit to repaint every cell.
func (p *GridPainter) Invalidate() { p.full = true }

// Blit draws the current frame of sim at the given integer scale.
func (p *GridPainter) Blit(screen *ebiten.Image, sim core.Sim, scale int) {
	Frame(p.buf, sim, p.full)
	p.full = false
	p.img.WritePixels(p.buf)

	if scale <= 0 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(p.img, op)
}
