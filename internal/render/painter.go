//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"automata/internal/core"
)

// GridPainter uploads a ByteGrid into an ebiten image and draws it scaled.
type GridPainter struct {
	img *ebiten.Image
	buf []byte
	w   int
	h   int
}

// NewGridPainter allocates a painter for a w x h viewport.
func NewGridPainter(w, h int) *GridPainter {
	return &GridPainter{img: ebiten.NewImage(w, h), buf: make([]byte, w*h*4), w: w, h: h}
}

// Blit paints cells onto screen with the given palette and pixel scale.
func (p *GridPainter) Blit(screen *ebiten.Image, cells *core.ByteGrid, palette []color.RGBA, scale int) {
	if cells.W != p.w || cells.H != p.h {
		*p = *NewGridPainter(cells.W, cells.H)
	}
	FillRGBA(p.buf, cells.Cells(), palette)
	p.img.WritePixels(p.buf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(p.img, op)
}
