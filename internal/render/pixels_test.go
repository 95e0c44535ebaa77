package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"automata/internal/core"
	"automata/internal/sims/rain"
	"automata/internal/sims/wator"
)

func TestFillRGBAUsesPalette(t *testing.T) {
	palette := []color.RGBA{{R: 1, G: 2, B: 3, A: 4}, {R: 9, G: 8, B: 7, A: 6}}
	buf := make([]byte, 12)
	FillRGBA(buf, []uint8{1, 0, 5}, palette)
	assert.Equal(t, []byte{9, 8, 7, 6, 1, 2, 3, 4, 9, 8, 7, 6}, buf)

	FillRGBA(buf, []uint8{1, 0, 5}, nil)
	assert.Equal(t, make([]byte, 12), buf)
}

func TestPaletteCoversEveryState(t *testing.T) {
	states := core.NewStateSet(
		core.NewState("ACTIVE", 'o'),
		core.NewState("SPARK", 's'),
		core.NewState("EMBER", 'm'),
		core.NewState("EMPTY", 'b'),
	)
	p := Palette(states)
	require.Len(t, p, 4)
	assert.Equal(t, foreground, p[0])
	assert.Equal(t, background, p[3])
	assert.NotEqual(t, p[1], p[2])
	for _, c := range p {
		assert.Equal(t, uint8(255), c.A)
	}
}

func TestNamedStatesGetTheirColours(t *testing.T) {
	r := rain.New(rain.DefaultConfig())
	p := Palette(r.States())
	assert.Equal(t, named["WATER"], p[rain.Water])
	assert.Equal(t, named["SAND"], p[rain.Sand])

	w, err := wator.New(wator.DefaultConfig())
	require.NoError(t, err)
	fish, ok := w.States().Lookup("fish")
	require.True(t, ok)
	assert.Equal(t, named["FISH"], Palette(w.States())[fish])
}

func TestRasterResizes(t *testing.T) {
	r := rain.New(rain.DefaultConfig())
	g := Raster(r, core.NewByteGrid(2, 2))
	assert.Equal(t, r.Size().W, g.W)
	assert.Equal(t, r.Size().H, g.H)
	assert.Same(t, g, Raster(r, g))
}
