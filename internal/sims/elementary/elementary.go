// Package elementary implements Wolfram's elementary cellular automata. The
// vertical axis is time: row n holds generation n.
package elementary

import (
	"math/big"
	"strconv"

	"automata/internal/automaton"
	"automata/internal/core"
)

// Config holds parameters for the elementary cellular automaton.
type Config struct {
	automaton.Options
	Rule uint8
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	o := automaton.DefaultOptions()
	o.Width, o.Height = 43, 43
	o.Iteration = automaton.Rows
	o.StartingPattern = "o"
	return Config{Options: o, Rule: 30}
}

// FromMap populates a Config from a string map. Rule numbers outside
// 0-255 keep the default.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	o, err := automaton.OptionsFromMap(cfg, c.Options)
	if err != nil {
		return c, err
	}
	c.Options = o
	if v, ok := cfg["rule"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= 255 {
			c.Rule = uint8(parsed)
		}
	}
	return c, nil
}

var (
	states = core.NewStateSet(
		core.NewState("ACTIVE", 'o'),
		core.NewState("EMPTY", 'b'),
	)
	active = states.Default()
	empty  = states.Empty()
)

// Elementary implements a one-dimensional Wolfram code projected vertically.
type Elementary struct {
	*automaton.Automaton
	rule uint8
}

// New creates an automaton with the given rule.
func New(cfg Config) *Elementary {
	e := &Elementary{rule: cfg.Rule}
	e.Automaton = automaton.New("elementary", states, cfg.Options, e)
	e.Reset()
	return e
}

// Rule returns the Wolfram code.
func (e *Elementary) Rule() uint8 { return e.rule }

// NextState looks up the three cells above in the rule bits.
func (e *Elementary) NextState(_ core.Cell, x, y int) core.Cell {
	var idx uint8
	if e.Get(x-1, y-1) == active {
		idx |= 4
	}
	if e.Get(x, y-1) == active {
		idx |= 2
	}
	if e.Get(x+1, y-1) == active {
		idx |= 1
	}
	if (e.rule>>idx)&1 == 1 {
		return active
	}
	return empty
}

// Value reads row y as a binary number of 2y+1 digits centred on the
// starting column.
func (e *Elementary) Value(y int) *big.Int {
	mid := e.Options().Width / 2
	length := 2*y + 1
	v := new(big.Int)
	e.ForEachInRow(y, func(c core.Cell, x int) {
		i := x - mid + y
		if c != active || i < 0 || i >= length {
			return
		}
		v.SetBit(v, length-1-i, 1)
	})
	return v
}

// FillStats reports the generation, the live cells of the newest row and
// the row's value.
func (e *Elementary) FillStats(s core.Stats) {
	n := e.Generation()
	s["Generation"] = n
	alive := 0
	e.ForEachInRow(n, func(c core.Cell, _ int) {
		if c != empty {
			alive++
		}
	})
	s["Alive"] = alive
	s["a(n)"] = e.Value(n).String()
}

// RuleParameters exposes the rule number.
func (e *Elementary) RuleParameters() core.ParameterGroup {
	return core.ParameterGroup{
		Name:   "Wolfram",
		Params: []core.Parameter{core.IntParam("rule", "Rule", int(e.rule))},
	}
}

func init() {
	core.Register("elementary", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		return New(c), nil
	})
}
