// Package vote implements the nine-cell majority family: a cell becomes
// active when the number of non-empty cells in its 3x3 block is one of the
// rule's counts.
package vote

import (
	"fmt"
	"strings"

	"automata/internal/automaton"
	"automata/internal/core"
)

// Oscillator is the bundled period-2 pattern.
const Oscillator = "6b2ob$5b4o$5b4o$b2o3b2ob$7o$4o$b2o2b3ob$5b4o$5b4o$6b2ob"

// Named rules.
const (
	Majority = "56789"
	Anneal   = "46789"
	Fredkin  = "13579"
)

// Config holds parameters for a vote automaton.
type Config struct {
	automaton.Options
	Rule string
}

// DefaultConfig returns the majority rule on a 64x64 board.
func DefaultConfig() Config {
	o := automaton.DefaultOptions()
	o.Width, o.Height = 64, 64
	return Config{Options: o, Rule: Majority}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	o, err := automaton.OptionsFromMap(cfg, c.Options)
	if err != nil {
		return c, err
	}
	c.Options = o
	if v, ok := cfg["rule"]; ok && strings.TrimSpace(v) != "" {
		c.Rule = v
	}
	return c, nil
}

// ParseRule reads the digits 0-9 of a vote rule.
func ParseRule(s string) ([10]bool, error) {
	var set [10]bool
	s = strings.TrimSpace(s)
	if s == "" {
		return set, fmt.Errorf("vote rule is empty: %w", automaton.ErrInvalidRule)
	}
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return set, fmt.Errorf("vote rule %q: %w", s, automaton.ErrInvalidRule)
		}
		set[ch-'0'] = true
	}
	return set, nil
}

var (
	states = core.NewStateSet(
		core.NewState("ACTIVE", 'o'),
		core.NewState("EMPTY", 'b'),
	)
	active = states.Default()
	empty  = states.Empty()
)

// Vote is the sparse-engine vote automaton.
type Vote struct {
	*automaton.Automaton
	rule  string
	votes [10]bool
}

// New creates a vote automaton.
func New(cfg Config) (*Vote, error) {
	votes, err := ParseRule(cfg.Rule)
	if err != nil {
		return nil, err
	}
	v := &Vote{rule: strings.TrimSpace(cfg.Rule), votes: votes}
	v.Automaton = automaton.New("vote", states, cfg.Options, v)
	v.Reset()
	return v, nil
}

// NextState ignores the cell itself: only the nine-cell sum matters.
func (v *Vote) NextState(_ core.Cell, x, y int) core.Cell {
	if v.votes[v.NonEmptyMooreInclusive(x, y)] {
		return active
	}
	return empty
}

// RuleParameters exposes the rule digits.
func (v *Vote) RuleParameters() core.ParameterGroup {
	return core.ParameterGroup{
		Name:   "Vote",
		Params: []core.Parameter{core.StringParam("rule", "Rule", v.rule)},
	}
}

func init() {
	core.Register("vote", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		v, err := New(c)
		if err != nil {
			return nil, err
		}
		return v, nil
	})
}
