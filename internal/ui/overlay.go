//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"automata/internal/core"
)

// Overlay draws optional guides on top of the board: the bounding box of
// the live cells and cell grid lines.
type Overlay struct {
	sim      core.Sim
	scale    int
	showBox  bool
	showGrid bool
	pixel    *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the guides.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		o.showBox = !o.showBox
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.showGrid = !o.showGrid
	}
}

// Draw renders the enabled guides.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	s := float64(o.scale)
	w, h := float64(size.W)*s, float64(size.H)*s
	if o.showGrid && o.scale >= 4 {
		grid := color.RGBA{R: 60, G: 60, B: 70, A: 120}
		for x := 0; x <= size.W; x++ {
			o.drawLine(screen, float64(x)*s, 0, float64(x)*s, h, 1, grid)
		}
		for y := 0; y <= size.H; y++ {
			o.drawLine(screen, 0, float64(y)*s, w, float64(y)*s, 1, grid)
		}
	}
	if o.showBox {
		box := o.sim.BoundingBox()
		if box.Empty() {
			return
		}
		x1, y1 := float64(box.ColMin)*s, float64(box.RowMin)*s
		x2, y2 := float64(box.ColMax+1)*s, float64(box.RowMax+1)*s
		col := color.RGBA{R: 240, G: 80, B: 80, A: 220}
		o.drawLine(screen, x1, y1, x2, y1, 1, col)
		o.drawLine(screen, x2, y1, x2, y2, 1, col)
		o.drawLine(screen, x2, y2, x1, y2, 1, col)
		o.drawLine(screen, x1, y2, x1, y1, 1, col)
	}
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}
