// Package render turns automaton boards into pixels.
package render

import (
	"image/color"
	"math"
	"strings"

	"automata/internal/core"
)

var (
	background = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	foreground = color.RGBA{R: 235, G: 235, B: 240, A: 255}
)

// named colours for states whose names say what they are
var named = map[string]color.RGBA{
	"WALL":       {R: 120, G: 120, B: 128, A: 255},
	"ROCK":       {R: 90, G: 78, B: 70, A: 255},
	"SAND":       {R: 214, G: 190, B: 120, A: 255},
	"WATER":      {R: 50, G: 110, B: 220, A: 255},
	"ICE":        {R: 190, G: 230, B: 250, A: 255},
	"VAPOR":      {R: 150, G: 160, B: 180, A: 255},
	"CONDUCTOR":  {R: 220, G: 160, B: 40, A: 255},
	"ELECTRON":   {R: 60, G: 140, B: 255, A: 255},
	"TAIL":       {R: 230, G: 60, B: 40, A: 255},
	"FIRING":     {R: 235, G: 235, B: 240, A: 255},
	"REFRACTORY": {R: 60, G: 110, B: 230, A: 255},
	"FISH":       {R: 60, G: 200, B: 90, A: 255},
	"SHARK":      {R: 170, G: 180, B: 200, A: 255},
	"SHRIMP":     {R: 240, G: 140, B: 150, A: 255},
	"■":          {R: 16, G: 16, B: 20, A: 255},
	"□":          {R: 235, G: 235, B: 240, A: 255},
}

// Palette assigns a colour to every cell of states. The default cell is
// light and the empty cell dark unless their names pick a colour; other
// states are spread around the hue circle.
func Palette(states *core.StateSet) []color.RGBA {
	n := states.Len()
	out := make([]color.RGBA, n)
	for i := 0; i < n; i++ {
		c := core.Cell(i)
		if col, ok := named[strings.ToUpper(states.Name(c))]; ok {
			out[i] = col
			continue
		}
		switch {
		case c == states.Empty():
			out[i] = background
		case c == states.Default():
			out[i] = foreground
		default:
			out[i] = hue(float64(i) / float64(n))
		}
	}
	return out
}

// hue converts h in [0,1) to a saturated colour.
func hue(h float64) color.RGBA {
	h = h - math.Floor(h)
	r := channel(h + 1.0/3)
	g := channel(h)
	b := channel(h - 1.0/3)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func channel(t float64) uint8 {
	t = t - math.Floor(t)
	v := math.Abs(t*6-3) - 1
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(40 + v*200)
}
