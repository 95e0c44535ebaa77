// Package dendrite implements naive diffusion with dendrite accretion: every
// cell copies a randomly chosen Moore neighbor.
package dendrite

import (
	"automata/internal/automaton"
	"automata/internal/core"
)

// Config holds parameters for the dendrite automaton.
type Config struct {
	automaton.Options
}

// DefaultConfig returns a 64x64 walled board stepped over its bounding box.
func DefaultConfig() Config {
	o := automaton.DefaultOptions()
	o.Width, o.Height = 64, 64
	o.Boundary = automaton.Wall
	o.Iteration = automaton.BoundingBox
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

var states = core.NewStateSet(
	core.NewState("ACTIVE", 'o'),
	core.NewState("EMPTY", 'b'),
)

// Dendrite is the diffusion automaton.
type Dendrite struct {
	*automaton.Automaton
}

// New creates a dendrite automaton.
func New(cfg Config) *Dendrite {
	d := &Dendrite{}
	d.Automaton = automaton.New("dendrite", states, cfg.Options, d)
	d.Reset()
	return d
}

// NextState picks one of the eight neighbors with the seeded RNG.
func (d *Dendrite) NextState(_ core.Cell, x, y int) core.Cell {
	n := d.Moore(x, y)
	return n[d.RNG().IntN(len(n))]
}

func init() {
	core.Register("dendrite", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		return New(c), nil
	})
}
