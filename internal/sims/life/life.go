// Package life implements outer-totalistic Life-like rules such as Conway's
// Game of Life (S23/B3), HighLife (S23/B36) and Day & Night.
package life

import (
	"fmt"
	"strings"

	"automata/internal/automaton"
	"automata/internal/core"
)

// Bundled patterns.
const (
	Glider          = "bo$2bo$3o!"
	GosperGliderGun = "24bo$22bobo$12b2o6b2o12b2o$11bo3bo4b2o12b2o$2o8bo5bo3b2o$2o8bo3bob2o4bobo$10bo5bo7bo$11bo3bo$12b2o!"
	DieHard         = "2o4bob$bo3b3o"
)

// Config holds parameters for a Life-like automaton.
type Config struct {
	automaton.Options
	Rule string
}

// DefaultConfig returns Conway's rules on a 64x64 unbounded board.
func DefaultConfig() Config {
	o := automaton.DefaultOptions()
	o.Width, o.Height = 64, 64
	return Config{Options: o, Rule: "S23/B3"}
}

// FromMap populates a Config from a string map. The rule string is kept
// verbatim; it is validated by New.
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

// Rule is a parsed birth/survival rule.
type Rule struct {
	Birth    [9]bool
	Survival [9]bool
}

// ParseRule accepts "S23/B3", "B3/S23" or the digit-only "23/3" form
// (survival first). Parsing is case-insensitive.
func ParseRule(s string) (Rule, error) {
	var r Rule
	parts := strings.Split(strings.ToUpper(strings.TrimSpace(s)), "/")
	if len(parts) != 2 {
		return r, fmt.Errorf("life rule %q: %w", s, automaton.ErrInvalidRule)
	}
	survival, birth := parts[0], parts[1]
	switch {
	case strings.HasPrefix(parts[0], "B") && strings.HasPrefix(parts[1], "S"):
		birth, survival = parts[0][1:], parts[1][1:]
	case strings.HasPrefix(parts[0], "S") && strings.HasPrefix(parts[1], "B"):
		survival, birth = parts[0][1:], parts[1][1:]
	case strings.ContainsAny(s, "bsBS"):
		return r, fmt.Errorf("life rule %q: %w", s, automaton.ErrInvalidRule)
	}
	if err := digits(survival, &r.Survival); err != nil {
		return r, fmt.Errorf("life rule %q: %w", s, err)
	}
	if err := digits(birth, &r.Birth); err != nil {
		return r, fmt.Errorf("life rule %q: %w", s, err)
	}
	return r, nil
}

func digits(s string, into *[9]bool) error {
	for _, ch := range s {
		if ch < '0' || ch > '8' {
			return fmt.Errorf("neighbor count %q: %w", ch, automaton.ErrInvalidRule)
		}
		into[ch-'0'] = true
	}
	return nil
}

// String formats the rule in S/B notation.
func (r Rule) String() string {
	var sb strings.Builder
	sb.WriteByte('S')
	for i, ok := range r.Survival {
		if ok {
			sb.WriteByte(byte('0' + i))
		}
	}
	sb.WriteString("/B")
	for i, ok := range r.Birth {
		if ok {
			sb.WriteByte(byte('0' + i))
		}
	}
	return sb.String()
}

var (
	states = core.NewStateSet(
		core.NewState("ACTIVE", 'o'),
		core.NewState("EMPTY", 'b'),
	)
	active = states.Default()
	empty  = states.Empty()
)

// Life is a Life-like automaton on the sparse engine.
type Life struct {
	*automaton.Automaton
	rule Rule
}

// New creates a Life automaton. Malformed rule strings are reported as
// errors wrapping automaton.ErrInvalidRule.
func New(cfg Config) (*Life, error) {
	rule, err := ParseRule(cfg.Rule)
	if err != nil {
		return nil, err
	}
	l := &Life{rule: rule}
	l.Automaton = automaton.New("life", states, cfg.Options, l)
	l.Reset()
	return l, nil
}

// Rule returns the parsed rule.
func (l *Life) Rule() Rule { return l.rule }

// NextState applies birth and survival counts.
func (l *Life) NextState(c core.Cell, x, y int) core.Cell {
	n := l.CountMoore(x, y, active)
	switch c {
	case empty:
		if l.rule.Birth[n] {
			return active
		}
		return empty
	case active:
		if l.rule.Survival[n] {
			return active
		}
		return empty
	}
	return c
}

// RuleParameters exposes the rule string.
func (l *Life) RuleParameters() core.ParameterGroup {
	return core.ParameterGroup{
		Name:   "Life",
		Params: []core.Parameter{core.StringParam("rule", "Rule", l.rule.String())},
	}
}

func init() {
	core.Register("life", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		l, err := New(c)
		if err != nil {
			return nil, err
		}
		return l, nil
	})
}
