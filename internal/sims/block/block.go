// Package block implements Margolus block cellular automata: the board is
// partitioned into 2x2 blocks whose alignment alternates every generation,
// and each block is replaced through a 16-entry lookup table.
package block

import (
	"fmt"
	"strconv"
	"strings"

	"automata/internal/automaton"
	"automata/internal/core"
)

// Named rules.
const (
	Tron       = "MS,D15;1;2;3;4;5;6;7;8;9;10;11;12;13;14;0"
	Billiard   = "MS,D0;8;4;3;2;5;9;7;1;6;10;11;12;13;14;15"
	BounceGas  = "MS,D0;8;4;3;2;5;9;14;1;6;10;13;12;11;7;15"
	HPPGas     = "MS,D0;8;4;12;2;10;9;14;1;6;5;13;3;11;7;15"
	Critters   = "MS,D15;14;13;3;11;5;6;1;7;9;10;2;12;4;8;0"
	Sand       = "MS,D0;4;8;12;4;12;12;13;8;12;12;14;12;13;14;15"
	Rotations  = "MS,D0;2;8;12;1;10;9;11;4;6;5;14;3;7;13;15"
	ruleHeader = "MS,D"
)

// Config holds parameters for a block automaton.
type Config struct {
	automaton.Options
	Rule string
}

// DefaultConfig returns Tron on a 40x40 torus.
func DefaultConfig() Config {
	o := automaton.DefaultOptions()
	o.Boundary = automaton.Torus
	o.Iteration = automaton.BoundingBox
	o.Range = 0
	return Config{Options: o, Rule: Tron}
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

// ParseRule reads "MS,D" followed by 16 semicolon-separated block values.
// Spaces are ignored.
func ParseRule(s string) ([16]int, error) {
	var table [16]int
	body := strings.ReplaceAll(s, " ", "")
	body = strings.TrimPrefix(strings.ToUpper(body), ruleHeader)
	parts := strings.Split(body, ";")
	if len(parts) != len(table) {
		return table, fmt.Errorf("block rule %q: want %d entries, got %d: %w", s, len(table), len(parts), automaton.ErrInvalidRule)
	}
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return table, fmt.Errorf("block rule %q: entry %d: %w", s, i, automaton.ErrInvalidRule)
		}
		table[i] = v
	}
	return table, nil
}

var (
	states = core.NewStateSet(
		core.NewState("ACTIVE", 'o'),
		core.NewState("EMPTY", 'b'),
	)
	active = states.Default()
	empty  = states.Empty()
)

// Block is a Margolus block automaton.
type Block struct {
	*automaton.Automaton
	rule  string
	table [16]int
}

// New creates a block automaton.
func New(cfg Config) (*Block, error) {
	table, err := ParseRule(cfg.Rule)
	if err != nil {
		return nil, err
	}
	b := &Block{rule: cfg.Rule, table: table}
	b.Automaton = automaton.New("block", states, cfg.Options, b)
	b.Reset()
	return b, nil
}

// StepCell rewrites the block anchored at (x, y). Only cells aligned with
// the current partition are anchors.
func (b *Block) StepCell(_ core.Cell, x, y, _ int) {
	d := b.Generation() % 2
	if mod2(x-d) != 0 || mod2(y-d) != 0 {
		return
	}
	cells := [4][2]int{{x, y}, {x + 1, y}, {x, y + 1}, {x + 1, y + 1}}
	sum := 0
	for i, p := range cells {
		if b.Get(p[0], p[1]) == active {
			sum |= 1 << i
		}
	}
	next := b.table[sum]
	if next < 0 || next > 15 {
		return
	}
	for i, p := range cells {
		c := empty
		if next&(1<<i) != 0 {
			c = active
		}
		b.SetNext(p[0], p[1], c)
	}
}

func mod2(v int) int {
	v %= 2
	if v < 0 {
		v += 2
	}
	return v
}

// FillStats reports the generation and the live cell count.
func (b *Block) FillStats(s core.Stats) {
	s["Generation"] = b.Generation()
	s["Alive"] = b.CountState(active)
}

// RuleParameters exposes the block table.
func (b *Block) RuleParameters() core.ParameterGroup {
	return core.ParameterGroup{
		Name:   "Block",
		Params: []core.Parameter{core.StringParam("rule", "Rule", b.rule)},
	}
}

func init() {
	core.Register("block", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		b, err := New(c)
		if err != nil {
			return nil, err
		}
		return b, nil
	})
}
