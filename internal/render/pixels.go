package render

import (
	"image/color"

	"automata/internal/core"
)

// FillRGBA converts cell indices into RGBA pixels using a palette. Indices
// past the end of the palette use its last colour. When the palette is
// empty the buffer is cleared to transparent black.
func FillRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// Raster copies the viewport of sim into dst, which is resized when the
// viewport changed.
func Raster(sim core.Sim, dst *core.ByteGrid) *core.ByteGrid {
	size := sim.Size()
	if dst == nil || dst.W != size.W || dst.H != size.H {
		dst = core.NewByteGrid(size.W, size.H)
	}
	sim.Raster(dst, 0, 0)
	return dst
}
