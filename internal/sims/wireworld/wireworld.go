// Package wireworld implements Brian Silverman's WireWorld, a four-state
// automaton in which electrons travel along conductors.
package wireworld

import (
	"automata/internal/automaton"
	"automata/internal/core"
)

// Diodes is the bundled pair of diodes fed by a clock loop.
const Diodes = "11b2o$10b2ob3o$9bob2o$9bo$bo■e2o3bo$o5bo2bo$o5b3o$o5bo2bo$b5o3bo$9bo$9bob2o$10bob4o$11b2o"

// Config holds parameters for WireWorld.
type Config struct {
	automaton.Options
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	o := automaton.DefaultOptions()
	o.Width = 30
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
		core.NewState("conductor", 'o'),
		core.NewState("electron", 'e').WithDisplay("⚡︎"),
		core.NewState("tail", '■'),
		core.NewState("empty", 'b'),
	).WithPallet(
		[]string{"conductor", "empty"},
		[]string{"electron", "tail"},
	)
	conductor = states.Default()
	head      = states.MustLookup("electron")
	tail      = states.MustLookup("tail")
)

// WireWorld is the sparse-engine WireWorld.
type WireWorld struct {
	*automaton.Automaton
}

// New creates a WireWorld automaton.
func New(cfg Config) *WireWorld {
	w := &WireWorld{}
	w.Automaton = automaton.New("wireworld", states, cfg.Options, w)
	w.Reset()
	return w
}

// NextState: head becomes tail, tail becomes conductor, and a conductor
// becomes a head when one or two neighbors are heads.
func (w *WireWorld) NextState(c core.Cell, x, y int) core.Cell {
	switch c {
	case head:
		return tail
	case tail:
		return conductor
	case conductor:
		if n := w.CountMoore(x, y, head); n == 1 || n == 2 {
			return head
		}
	}
	return c
}

// FillStats reports the electron count.
func (w *WireWorld) FillStats(s core.Stats) {
	s["Electrons"] = w.CountState(head)
}

func init() {
	core.Register("wireworld", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		return New(c), nil
	})
}
