// Package automaton implements the sparse cellular-automaton engine shared by
// every rule in internal/sims.
//
// An Automaton is composed of a boundary topology, an iteration strategy and
// a rule. The rule supplies per-cell behaviour through StateRule or StepRule;
// topology and strategy are resolved once at construction. Automata are not
// safe for concurrent use and Step is not re-entrant.
package automaton

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"automata/internal/core"
)

// StateRule computes the next state of a single cell from the current board.
// Returning c means "no change".
type StateRule interface {
	NextState(c core.Cell, x, y int) core.Cell
}

// StepRule evaluates one cell visit and may write several cells through
// SetNext or Set. r is the configured neighborhood range.
type StepRule interface {
	StepCell(c core.Cell, x, y, r int)
}

// StatsRule fills the display statistics. Implementations that want the
// generic counters call BaseStats themselves.
type StatsRule interface {
	FillStats(s core.Stats)
}

// ClearHook is notified whenever the grid is wiped.
type ClearHook interface {
	OnClear()
}

// ParamsRule exposes rule-specific options for HUDs and CLIs.
type ParamsRule interface {
	RuleParameters() core.ParameterGroup
}

// Automaton owns the authoritative grid, the delta of the last generation and
// the generation counter.
type Automaton struct {
	name   string
	states *core.StateSet
	empty  core.Cell
	opts   Options
	rng    *core.RNG

	current *core.Grid[core.Cell]
	changed *core.Grid[core.Cell]
	step    int
	stats   core.Stats

	position func(x, y int) (int, int)
	bounds   func() core.Box
	stepper  func()
	visit    func(c core.Cell, x, y, r int)

	stateRule  StateRule
	statsRule  StatsRule
	clearHook  ClearHook
	paramsRule ParamsRule
}

// New wires a rule to the engine. rule must implement StateRule or StepRule;
// the optional StatsRule, ClearHook and ParamsRule are picked up when
// present. The board starts empty at generation 0; call Reset to place the
// starting pattern.
func New(name string, states *core.StateSet, opts Options, rule any) *Automaton {
	if opts.Width <= 0 {
		opts.Width = 1
	}
	if opts.Height <= 0 {
		opts.Height = 1
	}
	if opts.Range < 0 {
		opts.Range = 0
	}
	if opts.Boundary == "" {
		opts.Boundary = Infinite
	}
	if opts.Iteration == "" {
		opts.Iteration = LastChanged
	}

	a := &Automaton{
		name:   name,
		states: states,
		empty:  states.Empty(),
		opts:   opts,
		rng:    core.NewRNG(opts.Seed),
		stats:  core.Stats{},
	}
	a.current = core.NewGrid(a.empty)
	a.changed = core.NewDeltaGrid[core.Cell]()

	sr, hasState := rule.(StateRule)
	pr, hasStep := rule.(StepRule)
	switch {
	case hasStep:
		a.visit = pr.StepCell
	case hasState:
		a.visit = a.stepNeighborhood
	default:
		panic(fmt.Sprintf("automaton %s: rule %T implements neither StateRule nor StepRule", name, rule))
	}
	a.stateRule = sr
	a.statsRule, _ = rule.(StatsRule)
	a.clearHook, _ = rule.(ClearHook)
	a.paramsRule, _ = rule.(ParamsRule)

	a.position = a.resolvePosition()
	a.bounds = a.resolveBounds()
	a.stepper = a.resolveStepper()
	return a
}

// Name returns the simulation identifier.
func (a *Automaton) Name() string { return a.name }

// Size returns the viewport dimensions.
func (a *Automaton) Size() core.Size { return core.Size{W: a.opts.Width, H: a.opts.Height} }

// Options returns the engine options.
func (a *Automaton) Options() Options { return a.opts }

// States returns the interned state set.
func (a *Automaton) States() *core.StateSet { return a.states }

// EmptyCell returns the background cell.
func (a *Automaton) EmptyCell() core.Cell { return a.empty }

// DefaultCell returns the default cell.
func (a *Automaton) DefaultCell() core.Cell { return a.states.Default() }

// RNG returns the automaton's seeded random source.
func (a *Automaton) RNG() *core.RNG { return a.rng }

// Generation returns the number of completed steps.
func (a *Automaton) Generation() int { return a.step }

// SetGeneration overrides the generation counter, e.g. when restoring a
// snapshot.
func (a *Automaton) SetGeneration(n int) {
	if n < 0 {
		n = 0
	}
	a.step = n
}

// Reset clears the board, rewinds to generation 0, reseeds the random source
// and places the starting pattern.
func (a *Automaton) Reset() {
	a.ClearGrid()
	a.step = 0
	a.rng.Reseed(a.opts.Seed)
	a.stats = core.Stats{}
	if a.opts.StartingPattern != "" {
		a.LoadRLE(a.opts.StartingPattern)
	}
	logrus.Debugf("%s: reset (seed %d)", a.name, a.opts.Seed)
}

// ClearGrid wipes both grids without touching the generation counter.
func (a *Automaton) ClearGrid() {
	a.current = core.NewGrid(a.empty)
	a.changed = core.NewDeltaGrid[core.Cell]()
	if a.clearHook != nil {
		a.clearHook.OnClear()
	}
}

// Get returns the cell at (x, y) after boundary mapping.
func (a *Automaton) Get(x, y int) core.Cell {
	x, y = a.position(x, y)
	return a.at(x, y)
}

// Set writes c at (x, y) immediately and records the change in the delta.
func (a *Automaton) Set(x, y int, c core.Cell) {
	x, y = a.position(x, y)
	a.setMapped(x, y, c)
}

// SetNext proposes c as the next value of (x, y). The current board is left
// untouched until the generation is committed. Proposals equal to the
// current value are dropped.
func (a *Automaton) SetNext(x, y int, c core.Cell) {
	x, y = a.position(x, y)
	a.setNextMapped(x, y, c)
}

// Visited reports whether (x, y) has already been written this generation.
func (a *Automaton) Visited(x, y int) bool {
	x, y = a.position(x, y)
	return a.changed.Has(x, y)
}

// Position maps (x, y) through the boundary topology.
func (a *Automaton) Position(x, y int) (int, int) { return a.position(x, y) }

// Fill clears the board and, unless c is the empty cell, fills the viewport
// with c.
func (a *Automaton) Fill(c core.Cell) {
	if c == a.empty {
		a.ClearGrid()
		return
	}
	a.FillWith(func(int, int) core.Cell { return c })
}

// FillWith clears the board and seeds every viewport cell with fn(x, y).
func (a *Automaton) FillWith(fn func(x, y int) core.Cell) {
	a.ClearGrid()
	for y := 0; y < a.opts.Height; y++ {
		for x := 0; x < a.opts.Width; x++ {
			a.Set(x, y, fn(x, y))
		}
	}
}

// Step advances one generation using the configured iteration strategy.
func (a *Automaton) Step() { a.stepper() }

// BoundingBox returns the bounding box of the board: the live cells on
// Infinite boards, the whole viewport otherwise.
func (a *Automaton) BoundingBox() core.Box { return a.bounds() }

// CountState returns the number of cells holding c. Counting the empty cell
// always returns 0.
func (a *Automaton) CountState(c core.Cell) int {
	return a.CountWhere(func(v core.Cell) bool { return v == c })
}

// CountWhere counts the non-empty cells matching keep.
func (a *Automaton) CountWhere(keep func(c core.Cell) bool) int {
	return core.Reduce(a.current, 0, func(n int, v core.Cell, _, _ int) int {
		if keep(v) {
			n++
		}
		return n
	})
}

// Population returns the number of non-empty cells.
func (a *Automaton) Population() int { return a.current.Len() }

// ForEachCell visits every non-empty cell in unspecified order.
func (a *Automaton) ForEachCell(fn func(c core.Cell, x, y int)) { a.current.ForEach(fn) }

// ForEachInRow visits the non-empty cells of row y.
func (a *Automaton) ForEachInRow(y int, fn func(c core.Cell, x int)) { a.current.Row(y, fn) }

// Changed returns the number of cells written during the last generation.
func (a *Automaton) Changed() int { return a.changed.Len() }

// Raster copies the window starting at (x0, y0) into dst as cell indices.
func (a *Automaton) Raster(dst *core.ByteGrid, x0, y0 int) {
	for y := 0; y < dst.H; y++ {
		for x := 0; x < dst.W; x++ {
			dst.Put(x, y, uint8(a.Get(x0+x, y0+y)))
		}
	}
}

// Parameters describes the board and rule options.
func (a *Automaton) Parameters() core.ParameterSnapshot {
	groups := []core.ParameterGroup{a.opts.Parameters()}
	if a.paramsRule != nil {
		groups = append(groups, a.paramsRule.RuleParameters())
	}
	return core.ParameterSnapshot{Groups: groups}
}

func (a *Automaton) at(x, y int) core.Cell {
	return a.current.GetOr(x, y, a.empty)
}

func (a *Automaton) setMapped(x, y int, c core.Cell) {
	if a.at(x, y) == c {
		return
	}
	a.changed.Set(x, y, c)
	a.current.Set(x, y, c)
}

func (a *Automaton) setNextMapped(x, y int, c core.Cell) {
	if a.at(x, y) == c {
		return
	}
	a.changed.Set(x, y, c)
}
