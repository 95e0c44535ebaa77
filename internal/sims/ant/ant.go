// Package ant implements Langton's Ant, a two-dimensional Turing machine
// whose single head turns on the color of the square it stands on.
package ant

import (
	"fmt"
	"strings"

	"automata/internal/automaton"
	"automata/internal/core"
)

const (
	black = '■'
	white = '□'
)

type heading int

const (
	up heading = iota
	right
	down
	left
	none heading = -1
)

var glyphs = [4]rune{'▲', '►', '▼', '◄'}

// Config holds parameters for the ant.
type Config struct {
	automaton.Options
	// Rule holds the turn taken on black then on white squares.
	Rule string
}

// DefaultConfig returns a single ant on an unbounded 64x64 board.
func DefaultConfig() Config {
	o := automaton.DefaultOptions()
	o.Width, o.Height = 64, 64
	o.Range = 0
	o.StartingPattern = "▲"
	return Config{Options: o, Rule: "RL"}
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

func parseRule(s string) ([2]byte, error) {
	var r [2]byte
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 2 {
		return r, fmt.Errorf("ant rule %q: want two turns: %w", s, automaton.ErrInvalidRule)
	}
	for i := 0; i < 2; i++ {
		if s[i] != 'L' && s[i] != 'R' {
			return r, fmt.Errorf("ant rule %q: %w", s, automaton.ErrInvalidRule)
		}
		r[i] = s[i]
	}
	return r, nil
}

// cell metadata indexed by core.Cell
type traits struct {
	black bool
	dir   heading
}

var (
	states  *core.StateSet
	table   []traits
	antCell [4][2]core.Cell // [heading][black]
)

func init() {
	antState := func(c rune, d heading) core.State {
		return core.NewState(string(c)+string(glyphs[d]), glyphs[d]).WithDisplay("◄")
	}
	list := []core.State{
		core.NewState(string(black), black),
		antState(white, up), antState(white, down), antState(white, left), antState(white, right),
		antState(black, up), antState(black, down), antState(black, left), antState(black, right),
		core.NewState(string(white), white),
	}
	states = core.NewStateSet(list...).WithPallet(
		[]string{"□▲", "□►", "□▼", "□◄"},
		[]string{"■▲", "■►", "■▼", "■◄"},
		[]string{string(black), string(white)},
	)
	table = make([]traits, states.Len())
	for i, s := range list {
		name := []rune(s.Name)
		t := traits{black: name[0] == black, dir: none}
		if len(name) == 2 {
			for d, g := range glyphs {
				if g == name[1] {
					t.dir = heading(d)
					antCell[d][boolIndex(t.black)] = core.Cell(i)
				}
			}
		}
		table[i] = t
	}
}

func boolIndex(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Ant is the sparse-engine Langton's Ant.
type Ant struct {
	*automaton.Automaton
	rule [2]byte
}

// New creates an ant automaton.
func New(cfg Config) (*Ant, error) {
	rule, err := parseRule(cfg.Rule)
	if err != nil {
		return nil, err
	}
	a := &Ant{rule: rule}
	a.Automaton = automaton.New("ant", states, cfg.Options, a)
	a.Reset()
	return a, nil
}

// IsAnt reports whether c carries an ant.
func IsAnt(c core.Cell) bool { return table[c].dir != none }

// StepCell flips the square under an ant, turns it and moves it forward,
// keeping the color of the square it lands on.
func (a *Ant) StepCell(c core.Cell, x, y, _ int) {
	t := table[c]
	if t.dir == none {
		return
	}
	x, y = a.Position(x, y)

	flipped := a.DefaultCell()
	if t.black {
		flipped = a.EmptyCell()
	}
	a.SetNext(x, y, flipped)

	// rule[0] applies on black, rule[1] on white
	turnTo := a.rule[1]
	if t.black {
		turnTo = a.rule[0]
	}
	d := turn(t.dir, turnTo)
	xx, yy := forward(d, x, y)
	xx, yy = a.Position(xx, yy)
	dest := table[a.Get(xx, yy)]
	a.SetNext(xx, yy, antCell[d][boolIndex(dest.black)])
}

func turn(d heading, to byte) heading {
	if to == 'L' {
		return (d + 3) % 4
	}
	return (d + 1) % 4
}

func forward(d heading, x, y int) (int, int) {
	switch d {
	case up:
		return x, y - 1
	case right:
		return x + 1, y
	case down:
		return x, y + 1
	default:
		return x - 1, y
	}
}

// FillStats reports the generation and the number of ants.
func (a *Ant) FillStats(s core.Stats) {
	s["Generation"] = a.Generation()
	s["Ants"] = a.CountWhere(IsAnt)
}

// Blacks counts black squares, ants standing on black included.
func (a *Ant) Blacks() int {
	return a.CountWhere(func(c core.Cell) bool { return table[c].black })
}

// RuleParameters exposes the turn rule.
func (a *Ant) RuleParameters() core.ParameterGroup {
	return core.ParameterGroup{
		Name:   "Ant",
		Params: []core.Parameter{core.StringParam("rule", "Rule", string(a.rule[:]))},
	}
}

func init() {
	core.Register("ant", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		a, err := New(c)
		if err != nil {
			return nil, err
		}
		return a, nil
	})
}
