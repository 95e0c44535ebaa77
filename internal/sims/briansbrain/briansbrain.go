// Package briansbrain implements Brian's Brain, discovered by Brian
// Silverman: neurons that are insensitive to stimuli for one tick after
// they fire.
package briansbrain

import (
	"strconv"

	"automata/internal/automaton"
	"automata/internal/core"
)

// Oscillator is the bundled period-3 pattern.
const Oscillator = "br$b2or$r2ob$2brb"

// Config holds parameters for Brian's Brain.
type Config struct {
	automaton.Options
	// Density, when positive, makes Reset seed the viewport with firing
	// cells at this probability instead of placing the starting pattern.
	Density float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	o := automaton.DefaultOptions()
	o.Width = 64
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
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	return c, nil
}

var (
	states = core.NewStateSet(
		core.NewState("firing", 'o'),
		core.NewState("refractory", 'r'),
		core.NewState("ready", 'b'),
	)
	firing     = states.Default()
	refractory = states.MustLookup("refractory")
	ready      = states.Empty()
)

// Brain implements Brian's Brain cellular automaton.
type Brain struct {
	*automaton.Automaton
	density float64
}

// New creates a Brain simulation.
func New(cfg Config) *Brain {
	b := &Brain{density: cfg.Density}
	b.Automaton = automaton.New("briansbrain", states, cfg.Options, b)
	b.Reset()
	return b
}

// Reset restores the starting pattern, or randomizes the viewport when a
// density is configured.
func (b *Brain) Reset() {
	b.Automaton.Reset()
	if b.density <= 0 {
		return
	}
	rng := b.RNG()
	b.FillWith(func(int, int) core.Cell {
		if rng.Chance(b.density) {
			return firing
		}
		return ready
	})
}

// NextState advances firing to refractory to ready; ready cells fire on
// exactly two firing neighbors.
func (b *Brain) NextState(c core.Cell, x, y int) core.Cell {
	switch c {
	case refractory:
		return ready
	case firing:
		return refractory
	case ready:
		if b.CountMoore(x, y, firing) == 2 {
			return firing
		}
		return ready
	}
	return c
}

// FillStats reports firing and refractory populations.
func (b *Brain) FillStats(s core.Stats) {
	s["Generation"] = b.Generation()
	s["Firing"] = b.CountState(firing)
	s["Refractory"] = b.CountState(refractory)
	if b.Options().Boundary == automaton.Infinite {
		s["Size"] = b.SizeLabel()
	}
}

// RuleParameters exposes the seeding density.
func (b *Brain) RuleParameters() core.ParameterGroup {
	return core.ParameterGroup{
		Name:   "Brain",
		Params: []core.Parameter{core.FloatParam("density", "Random density", b.density)},
	}
}

func init() {
	core.Register("briansbrain", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		return New(c), nil
	})
}
