package automaton

import "automata/internal/core"

func (a *Automaton) resolveStepper() func() {
	switch a.opts.Iteration {
	case Active:
		return a.stepActive
	case BoundingBox:
		return a.stepBoundingBox
	case Rows:
		return a.stepRows
	default:
		return a.stepLastChanged
	}
}

// stepLastChanged revisits the cells written during the previous generation.
func (a *Automaton) stepLastChanged() {
	last := a.changed
	a.changed = core.NewDeltaGrid[core.Cell]()
	r := a.opts.Range
	last.ForEach(func(c core.Cell, x, y int) {
		a.visit(c, x, y, r)
	})
	a.commit()
}

// stepActive revisits every present cell in row-major order.
func (a *Automaton) stepActive() {
	a.changed.Clear()
	r := a.opts.Range
	for _, p := range a.current.Points() {
		c, ok := a.current.Get(p.X, p.Y)
		if !ok {
			continue
		}
		a.visit(c, p.X, p.Y, r)
	}
	a.commit()
}

// stepBoundingBox revisits every cell of the bounding box, empty or not.
func (a *Automaton) stepBoundingBox() {
	a.changed.Clear()
	box := a.bounds()
	r := a.opts.Range
	if !box.Empty() {
		for y := box.RowMin; y <= box.RowMax; y++ {
			for x := box.ColMin; x <= box.ColMax; x++ {
				a.visit(a.at(x, y), x, y, r)
			}
		}
	}
	a.commit()
}

// stepRows evaluates row Generation()+1 from the cells written in row
// Generation(). Earlier rows are history and never change again.
func (a *Automaton) stepRows() {
	r := a.opts.Range
	next := a.step + 1
	updates := core.NewDeltaGrid[core.Cell]()
	a.changed.Row(a.step, func(_ core.Cell, x int) {
		for p := -r; p <= r; p++ {
			xx, yy := a.position(x+p, next)
			if updates.Has(xx, yy) {
				continue
			}
			c := a.at(xx, yy)
			updates.Set(xx, yy, a.evaluate(c, xx, yy))
		}
	})
	a.changed.Clear()
	updates.ForEach(func(c core.Cell, x, y int) {
		a.setMapped(x, y, c)
	})
	a.step++
}

// stepNeighborhood is the visit used by plain StateRules: every unvisited
// cell within range r is re-evaluated against the current board.
func (a *Automaton) stepNeighborhood(_ core.Cell, x, y, r int) {
	for q := -r; q <= r; q++ {
		for p := -r; p <= r; p++ {
			xx, yy := a.position(x+p, y+q)
			if a.changed.Has(xx, yy) {
				continue
			}
			a.setNextMapped(xx, yy, a.stateRule.NextState(a.at(xx, yy), xx, yy))
		}
	}
}

func (a *Automaton) evaluate(c core.Cell, x, y int) core.Cell {
	if a.stateRule == nil {
		return c
	}
	return a.stateRule.NextState(c, x, y)
}

func (a *Automaton) commit() {
	a.current.Assign(a.changed)
	a.step++
}
