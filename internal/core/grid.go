package core

import (
	"math"
	"sort"
)

// Box is an axis-aligned rectangle in cell coordinates. All bounds are
// inclusive.
type Box struct {
	RowMin int
	ColMax int
	RowMax int
	ColMin int
}

// EmptyBox is the sentinel returned for grids without entries.
var EmptyBox = Box{RowMin: math.MaxInt, ColMax: math.MinInt, RowMax: math.MinInt, ColMin: math.MaxInt}

// Empty reports whether the box encloses nothing.
func (b Box) Empty() bool { return b.RowMin > b.RowMax || b.ColMin > b.ColMax }

// Width returns the number of columns in the box.
func (b Box) Width() int {
	if b.Empty() {
		return 0
	}
	return b.ColMax - b.ColMin + 1
}

// Height returns the number of rows in the box.
func (b Box) Height() int {
	if b.Empty() {
		return 0
	}
	return b.RowMax - b.RowMin + 1
}

// Contains reports whether (x, y) lies inside the box.
func (b Box) Contains(x, y int) bool {
	return x >= b.ColMin && x <= b.ColMax && y >= b.RowMin && y <= b.RowMax
}

// Point is a grid coordinate.
type Point struct{ X, Y int }

// Grid is a sparse 2D map keyed by row, then column. When a background value
// is configured, a coordinate is present only while its value differs from
// the background: writing the background deletes the entry.
type Grid[V comparable] struct {
	rows          map[int]map[int]V
	background    V
	hasBackground bool
}

// NewGrid returns a grid that never stores the background value.
func NewGrid[V comparable](background V) *Grid[V] {
	return &Grid[V]{rows: make(map[int]map[int]V), background: background, hasBackground: true}
}

// NewDeltaGrid returns a grid that stores every written value, including the
// zero value. Automata use it to record deaths as well as births.
func NewDeltaGrid[V comparable]() *Grid[V] {
	return &Grid[V]{rows: make(map[int]map[int]V)}
}

// Background returns the configured background and whether one is set.
func (g *Grid[V]) Background() (V, bool) { return g.background, g.hasBackground }

// Get returns the value at (x, y) and whether it is present.
func (g *Grid[V]) Get(x, y int) (V, bool) {
	row, ok := g.rows[y]
	if !ok {
		var zero V
		return zero, false
	}
	v, ok := row[x]
	return v, ok
}

// GetOr returns the value at (x, y) or fallback when absent.
func (g *Grid[V]) GetOr(x, y int, fallback V) V {
	if v, ok := g.Get(x, y); ok {
		return v
	}
	return fallback
}

// Has reports whether (x, y) is present.
func (g *Grid[V]) Has(x, y int) bool {
	_, ok := g.Get(x, y)
	return ok
}

// Set stores v at (x, y). Storing the background removes the entry.
func (g *Grid[V]) Set(x, y int, v V) {
	if g.hasBackground && v == g.background {
		g.Remove(x, y)
		return
	}
	row, ok := g.rows[y]
	if !ok {
		row = make(map[int]V)
		g.rows[y] = row
	}
	row[x] = v
}

// Remove deletes (x, y) and drops the row once it is empty.
func (g *Grid[V]) Remove(x, y int) {
	row, ok := g.rows[y]
	if !ok {
		return
	}
	delete(row, x)
	if len(row) == 0 {
		delete(g.rows, y)
	}
}

// Clear removes every entry.
func (g *Grid[V]) Clear() {
	g.rows = make(map[int]map[int]V)
}

// Len returns the number of present entries.
func (g *Grid[V]) Len() int {
	n := 0
	for _, row := range g.rows {
		n += len(row)
	}
	return n
}

// ForEach visits every present entry in unspecified order. fn must not add
// entries to g; removing the visited entry is allowed.
func (g *Grid[V]) ForEach(fn func(v V, x, y int)) {
	for y, row := range g.rows {
		for x, v := range row {
			fn(v, x, y)
		}
	}
}

// Row visits the present entries of row y in unspecified order.
func (g *Grid[V]) Row(y int, fn func(v V, x int)) {
	for x, v := range g.rows[y] {
		fn(v, x)
	}
}

// Points returns the present coordinates sorted row-major.
func (g *Grid[V]) Points() []Point {
	pts := make([]Point, 0, g.Len())
	for y, row := range g.rows {
		for x := range row {
			pts = append(pts, Point{X: x, Y: y})
		}
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].Y != pts[j].Y {
			return pts[i].Y < pts[j].Y
		}
		return pts[i].X < pts[j].X
	})
	return pts
}

// Map returns a new grid, with the same background, holding fn applied to
// every entry.
func (g *Grid[V]) Map(fn func(v V, x, y int) V) *Grid[V] {
	out := g.emptyCopy()
	g.ForEach(func(v V, x, y int) { out.Set(x, y, fn(v, x, y)) })
	return out
}

// Filter returns a new grid holding the entries for which keep is true.
func (g *Grid[V]) Filter(keep func(v V, x, y int) bool) *Grid[V] {
	out := g.emptyCopy()
	g.ForEach(func(v V, x, y int) {
		if keep(v, x, y) {
			out.Set(x, y, v)
		}
	})
	return out
}

// Assign writes every entry of other on top of g. Entries of other that equal
// g's background delete the corresponding coordinate.
func (g *Grid[V]) Assign(other *Grid[V]) {
	other.ForEach(func(v V, x, y int) { g.Set(x, y, v) })
}

// BoundingBox scans the present entries. It returns EmptyBox when there are
// none.
func (g *Grid[V]) BoundingBox() Box {
	b := EmptyBox
	for y, row := range g.rows {
		if len(row) == 0 {
			continue
		}
		if y < b.RowMin {
			b.RowMin = y
		}
		if y > b.RowMax {
			b.RowMax = y
		}
		for x := range row {
			if x < b.ColMin {
				b.ColMin = x
			}
			if x > b.ColMax {
				b.ColMax = x
			}
		}
	}
	return b
}

func (g *Grid[V]) emptyCopy() *Grid[V] {
	return &Grid[V]{rows: make(map[int]map[int]V), background: g.background, hasBackground: g.hasBackground}
}

// Reduce folds fn over every present entry of g.
func Reduce[V comparable, A any](g *Grid[V], acc A, fn func(acc A, v V, x, y int) A) A {
	g.ForEach(func(v V, x, y int) { acc = fn(acc, v, x, y) })
	return acc
}
