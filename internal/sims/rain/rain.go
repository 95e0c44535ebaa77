// Package rain implements a falling-sand style automaton with a water
// cycle: vapor rises and condenses, water flows, freezes and evaporates,
// and ice melts, with temperature rising towards the bottom of the board.
package rain

import (
	"automata/internal/automaton"
	"automata/internal/core"
)

// Config holds parameters for the rain automaton.
type Config struct {
	automaton.Options
}

// DefaultConfig returns a 60x60 walled board stepping every present cell.
func DefaultConfig() Config {
	o := automaton.DefaultOptions()
	o.Width, o.Height = 60, 60
	o.Boundary = automaton.Wall
	o.Iteration = automaton.Active
	o.Range = 0
	return Config{Options: o}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	o, err := automaton.OptionsFromMap(cfg, c.Options)
	if err != nil {
		return c, err
	}
	c.Options = o
	return c, nil
}

var (
	states = core.NewStateSet(
		core.NewState("wall", 'W'),
		core.NewState("rock", 'R'),
		core.NewState("sand", 'S'),
		core.NewState("water", 'A'),
		core.NewState("ice", 'I'),
		core.NewState("vapor", 'V'),
		core.NewState("empty", 'b'),
	).WithPallet(
		[]string{"rock", "sand"},
		[]string{"ice", "water", "vapor"},
		[]string{"wall", "empty"},
	)
	wall  = states.MustLookup("wall")
	rock  = states.MustLookup("rock")
	sand  = states.MustLookup("sand")
	water = states.MustLookup("water")
	ice   = states.MustLookup("ice")
	vapor = states.MustLookup("vapor")
	empty = states.Empty()

	// density orders what sinks through what.
	density = map[core.Cell]int{empty: 0, vapor: 1, ice: 2, water: 3, sand: 4, rock: 5, wall: 6}
)

// Material states, exported for seeding boards.
var (
	Wall  = wall
	Rock  = rock
	Sand  = sand
	Water = water
	Ice   = ice
	Vapor = vapor
)

// Rain is the water-cycle automaton.
type Rain struct {
	*automaton.Automaton
	w, h int
}

// New creates a rain automaton.
func New(cfg Config) *Rain {
	r := &Rain{w: cfg.Width, h: cfg.Height}
	r.Automaton = automaton.New("rain", states, cfg.Options, r)
	r.Reset()
	return r
}

// StepCell applies the first sub-rule of the material that succeeds.
// Cells already written this generation are skipped.
func (r *Rain) StepCell(c core.Cell, x, y, _ int) {
	if r.Visited(x, y) {
		return
	}
	switch c {
	case vapor:
		if r.rises(c, x, y) || r.condenses(x, y) {
			return
		}
		r.sloshes(c, x, y)
	case empty, wall:
	case water:
		if r.falls(c, x, y) || r.flows(c, x, y) || r.evaporates(x, y) || r.freezes(x, y) {
			return
		}
		r.sloshes(c, x, y)
	case sand:
		if !r.falls(c, x, y) {
			r.flows(c, x, y)
		}
	case ice:
		if !r.melts(x, y) {
			r.falls(c, x, y)
		}
	default:
		r.falls(c, x, y)
	}
}

func (r *Rain) swap(c core.Cell, x, y int, other core.Cell, xx, yy int) {
	r.SetNext(xx, yy, c)
	r.SetNext(x, y, other)
}

func (r *Rain) rises(c core.Cell, x, y int) bool {
	if y <= 0 {
		return false
	}
	up := r.Get(x, y-1)
	if up == wall || r.Visited(x, y-1) {
		return false
	}
	r.swap(c, x, y, up, x, y-1)
	return true
}

func (r *Rain) condenses(x, y int) bool {
	t := float64(y)
	switch {
	case t < float64(r.h)/6:
		if r.RNG().Chance(0.1) {
			r.SetNext(x, y, ice)
			return true
		}
	case t < float64(r.h)/3:
		if r.RNG().Chance(0.1) {
			r.SetNext(x, y, water)
			return true
		}
	}
	return false
}

func (r *Rain) falls(c core.Cell, x, y int) bool {
	if y >= r.h-1 || r.Visited(x, y+1) {
		return false
	}
	down := r.Get(x, y+1)
	if density[c] > density[down] {
		r.swap(c, x, y, down, x, y+1)
		return true
	}
	return false
}

// side picks the horizontal neighbor in a checkerboard that flips every
// generation.
func (r *Rain) side(x, y int) int {
	if (r.Generation()+x+y)%2 == 0 {
		return x - 1
	}
	return x + 1
}

func (r *Rain) flows(c core.Cell, x, y int) bool {
	if y >= r.h-1 {
		return false
	}
	xx, yy := r.side(x, y), y+1
	if xx < 0 || xx >= r.w {
		return false
	}
	down := r.Get(xx, yy)
	if density[down] < density[c] && !r.Visited(xx, yy) {
		r.swap(c, x, y, down, xx, yy)
		return true
	}
	return false
}

func (r *Rain) sloshes(c core.Cell, x, y int) bool {
	xx := r.side(x, y)
	if xx < 0 || xx >= r.w {
		return false
	}
	beside := r.Get(xx, y)
	if density[beside] < density[c] && !r.Visited(xx, y) {
		r.swap(c, x, y, beside, xx, y)
		return true
	}
	return false
}

func (r *Rain) melts(x, y int) bool {
	if r.RNG().Chance(0.2 * float64(y) / float64(r.h)) {
		r.SetNext(x, y, water)
		return true
	}
	return false
}

func (r *Rain) evaporates(x, y int) bool {
	if r.Get(x, y-1) != empty {
		return false
	}
	if r.RNG().Chance(0.15 * float64(y) / float64(r.h)) {
		r.SetNext(x, y, vapor)
		return true
	}
	return false
}

func (r *Rain) freezes(x, y int) bool {
	if float64(y) < float64(r.h)/3 && r.RNG().Chance(0.1) {
		r.SetNext(x, y, ice)
		return true
	}
	return false
}

// H2O counts water in all three phases.
func (r *Rain) H2O() int {
	return r.CountWhere(func(c core.Cell) bool { return c == water || c == ice || c == vapor })
}

// FillStats reports the amount of water in any phase.
func (r *Rain) FillStats(s core.Stats) {
	s["H2O"] = r.H2O()
}

func init() {
	core.Register("rain", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		return New(c), nil
	})
}
