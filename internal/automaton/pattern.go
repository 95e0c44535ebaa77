package automaton

import (
	"strings"

	"github.com/sirupsen/logrus"

	"automata/internal/core"
	"automata/internal/rle"
)

// RLE exports the board. Wall boards export the whole viewport; other
// boards export the bounding box of the live cells, with trailing empty runs
// trimmed on Infinite boards.
func (a *Automaton) RLE() string {
	box := a.current.BoundingBox()
	if a.opts.Boundary == Wall {
		box = a.bounds()
	}
	token := func(x, y int) rune {
		return a.states.CanonicalToken(a.Get(x, y))
	}
	return rle.Encode(box, token, a.opts.Boundary == Infinite)
}

// Origin returns the top-left corner of the region RLE exports, so that
// PlaceRLE(RLE(), Origin()) reproduces the board.
func (a *Automaton) Origin() core.Point {
	box := a.current.BoundingBox()
	if a.opts.Boundary == Wall {
		box = a.bounds()
	}
	if box.Empty() {
		return core.Point{}
	}
	return core.Point{X: box.ColMin, Y: box.RowMin}
}

// LoadRLE clears the grid and places the pattern centred in the viewport.
// Wall boards keep the pattern at the top; row-as-time boards place it on
// the current generation's row.
func (a *Automaton) LoadRLE(text string) {
	a.ClearGrid()
	if strings.TrimSpace(text) == "" {
		return
	}
	p := rle.Decode(text)
	dx := floorDiv(a.opts.Width-p.Width, 2)
	dy := 0
	switch {
	case a.opts.Iteration == Rows:
		dy = a.step
	case a.opts.Boundary != Wall:
		dy = floorDiv(a.opts.Height-p.Height, 2)
	}
	a.place(p, dx, dy)
	logrus.Debugf("%s: loaded %dx%d pattern at (%d,%d)", a.name, p.Width, p.Height, dx, dy)
}

// PlaceRLE stamps the pattern with its top-left corner at (dx, dy) without
// clearing the board.
func (a *Automaton) PlaceRLE(text string, dx, dy int) {
	a.place(rle.Decode(text), dx, dy)
}

func (a *Automaton) place(p rle.Pattern, dx, dy int) {
	for j, row := range p.Rows {
		for i, t := range row {
			a.Set(i+dx, j+dy, a.states.FromToken(t))
		}
	}
}
