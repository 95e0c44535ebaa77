package automaton

import "automata/internal/core"

func (a *Automaton) resolvePosition() func(x, y int) (int, int) {
	w, h := a.opts.Width, a.opts.Height
	switch a.opts.Boundary {
	case Torus:
		return func(x, y int) (int, int) {
			return mod(x, w), mod(y, h)
		}
	case Wall:
		return func(x, y int) (int, int) {
			return clamp(x, 0, w-1), clamp(y, 0, h-1)
		}
	default:
		return func(x, y int) (int, int) {
			return clamp(x, -MaxSize, MaxSize), clamp(y, -MaxSize, MaxSize)
		}
	}
}

func (a *Automaton) resolveBounds() func() core.Box {
	switch a.opts.Boundary {
	case Wall, Torus:
		box := core.Box{RowMin: 0, ColMax: a.opts.Width - 1, RowMax: a.opts.Height - 1, ColMin: 0}
		return func() core.Box { return box }
	default:
		return func() core.Box { return a.current.BoundingBox() }
	}
}

func mod(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
