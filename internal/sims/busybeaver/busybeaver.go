// Package busybeaver runs busy-beaver Turing machines as a one-dimensional
// automaton: every row is the tape at one point in time and the head is
// encoded in the cell it reads.
package busybeaver

import (
	"fmt"
	"sort"
	"strings"

	"automata/internal/automaton"
	"automata/internal/core"
)

// Tables maps preset names to transition tables. Keys are the head state
// followed by the symbol read; values are the symbol written, the move
// (L or R) and the next state. H halts.
var Tables = map[string]map[string]string{
	"bb2": {"A0": "1RB", "A1": "1LB", "B0": "1LA", "B1": "1RH"},
	"bb3": {"A0": "1RB", "A1": "1RH", "B0": "0RC", "B1": "1RB", "C0": "1LC", "C1": "1LA"},
	"bb4": {
		"A0": "1RB", "A1": "1LB", "B0": "1LA", "B1": "0LC",
		"C0": "1RH", "C1": "1LD", "D0": "1RD", "D1": "0RA",
	},
	"bb5": {
		"A0": "1RB", "A1": "1LC", "B0": "1RC", "B1": "1RB", "C0": "1RD",
		"C1": "0LE", "D0": "1LA", "D1": "1LD", "E0": "1RH", "E1": "0LA",
	},
}

// Halt is the halting state.
const Halt = "H"

// Config holds parameters for a busy beaver.
type Config struct {
	automaton.Options
	// Table names one of Tables. Ignored when Rules is set.
	Table string
	// Rules is an inline table such as "A0=1RB,A1=1LB,B0=1LA,B1=1RH".
	Rules string
}

// DefaultConfig returns the 2-state busy beaver.
func DefaultConfig() Config {
	o := automaton.DefaultOptions()
	o.Width, o.Height = 29, 29
	o.Iteration = automaton.Rows
	o.StartingPattern = "A"
	return Config{Options: o, Table: "bb2"}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	o, err := automaton.OptionsFromMap(cfg, c.Options)
	if err != nil {
		return c, err
	}
	c.Options = o
	if v, ok := cfg["table"]; ok && v != "" {
		c.Table = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := cfg["rules"]; ok {
		c.Rules = v
	}
	return c, nil
}

// ParseRules reads an inline transition table. Entries are separated by
// commas, semicolons or spaces; values may be written "1RB" or "1,R,B".
func ParseRules(s string) (map[string]string, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n'
	})
	out := map[string]string{}
	key := ""
	for _, f := range fields {
		if k, v, ok := strings.Cut(f, "="); ok {
			key = strings.ToUpper(strings.TrimSpace(k))
			out[key] = strings.TrimSpace(v)
			continue
		}
		if key == "" {
			return nil, fmt.Errorf("busy beaver rules %q: value before key: %w", s, automaton.ErrInvalidRule)
		}
		out[key] += f
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("busy beaver rules are empty: %w", automaton.ErrInvalidRule)
	}
	return out, nil
}

type move struct {
	write core.Cell
	dir   byte
	next  string
}

type traits struct {
	head bool
	// tape is the symbol under the cell, tapeCell the plain tape state for it.
	tape     string
	tapeCell core.Cell
}

// BusyBeaver is the Turing machine automaton.
type BusyBeaver struct {
	*automaton.Automaton
	table  map[string]string
	rules  map[core.Cell]move
	traits []traits

	scanRow int
	sigma   int
	halted  bool
}

// New builds the machine. Malformed tables are reported as errors wrapping
// automaton.ErrInvalidRule.
func New(cfg Config) (*BusyBeaver, error) {
	table, err := resolveTable(cfg)
	if err != nil {
		return nil, err
	}
	states, heads, err := buildStates(table)
	if err != nil {
		return nil, err
	}

	b := &BusyBeaver{table: table, traits: make([]traits, states.Len())}
	for i, s := range states.States() {
		t := traits{head: len(s.Name) > 1}
		t.tape = s.Name[len(s.Name)-1:]
		t.tapeCell = states.MustLookup(t.tape)
		b.traits[i] = t
	}

	b.rules = make(map[core.Cell]move, len(table))
	for key, val := range table {
		write, ok := states.Lookup(val[:1])
		if !ok {
			return nil, fmt.Errorf("busy beaver %s=%s: unknown symbol %q: %w", key, val, val[:1], automaton.ErrInvalidRule)
		}
		if !contains(heads, val[2:]) {
			return nil, fmt.Errorf("busy beaver %s=%s: unknown state %q: %w", key, val, val[2:], automaton.ErrInvalidRule)
		}
		b.rules[states.MustLookup(key)] = move{write: write, dir: val[1], next: val[2:]}
	}

	b.Automaton = automaton.New("busybeaver", states, cfg.Options, b)
	b.Reset()
	return b, nil
}

func resolveTable(cfg Config) (map[string]string, error) {
	var table map[string]string
	if strings.TrimSpace(cfg.Rules) != "" {
		parsed, err := ParseRules(cfg.Rules)
		if err != nil {
			return nil, err
		}
		table = parsed
	} else {
		preset, ok := Tables[cfg.Table]
		if !ok {
			return nil, fmt.Errorf("busy beaver table %q: %w", cfg.Table, automaton.ErrInvalidRule)
		}
		table = preset
	}
	for k, v := range table {
		if len(k) != 2 || k[0] < 'A' || k[0] > 'Z' || k[0] == 'H' {
			return nil, fmt.Errorf("busy beaver key %q: %w", k, automaton.ErrInvalidRule)
		}
		if len(v) != 3 || (v[1] != 'L' && v[1] != 'R') {
			return nil, fmt.Errorf("busy beaver %s=%q: want <write><L|R><state>: %w", k, v, automaton.ErrInvalidRule)
		}
	}
	return table, nil
}

// buildStates orders the states as: tape symbols but the first (reversed),
// then every head-on-symbol combination, then the first tape symbol as the
// empty cell.
func buildStates(table map[string]string) (*core.StateSet, []string, error) {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var heads, tapes []string
	for _, k := range keys {
		if h := k[:1]; !contains(heads, h) {
			heads = append(heads, h)
		}
		if t := k[1:]; !contains(tapes, t) {
			tapes = append(tapes, t)
		}
	}
	if len(tapes) < 2 {
		return nil, nil, fmt.Errorf("busy beaver needs two tape symbols, got %v: %w", tapes, automaton.ErrInvalidRule)
	}
	heads = append(heads, Halt)

	var tapeStates, headStates []core.State
	for j, t := range tapes {
		tapeStates = append([]core.State{core.NewState(t, rune('0'+j)).WithDisplay(" ")}, tapeStates...)
		for i, h := range heads {
			token := rune('A' + i + j*len(heads))
			headStates = append(headStates, core.NewState(h+t, token).WithDisplay(h))
		}
	}
	all := append([]core.State{}, tapeStates[:len(tapeStates)-1]...)
	all = append(all, headStates...)
	all = append(all, tapeStates[len(tapeStates)-1])

	tapeNames := make([]string, len(tapeStates))
	for i, s := range tapeStates {
		tapeNames[i] = s.Name
	}
	states := core.NewStateSet(all...).WithPallet(tapeNames, []string{headStates[0].Name})
	return states, heads, nil
}

// NextState writes the symbol under a head, moves heads left or right onto
// the symbol below and otherwise copies the tape down. A halted head is not
// propagated: only its symbol is copied.
func (b *BusyBeaver) NextState(_ core.Cell, x, y int) core.Cell {
	up := b.Get(x, y-1)
	if b.traits[up].head {
		if m, ok := b.rules[up]; ok {
			return m.write
		}
		return b.traits[up].tapeCell
	}
	if ur := b.Get(x+1, y-1); b.traits[ur].head {
		if m, ok := b.rules[ur]; ok && m.dir == 'L' {
			return b.headOn(m.next, up)
		}
		return up
	}
	if ul := b.Get(x-1, y-1); b.traits[ul].head {
		if m, ok := b.rules[ul]; ok && m.dir == 'R' {
			return b.headOn(m.next, up)
		}
		return up
	}
	return up
}

func (b *BusyBeaver) headOn(state string, under core.Cell) core.Cell {
	if c, ok := b.States().Lookup(state + b.traits[under].tape); ok {
		return c
	}
	return under
}

// OnClear restarts the row scan.
func (b *BusyBeaver) OnClear() {
	b.scanRow, b.sigma, b.halted = 0, 0, false
}

// scan walks the rows not yet counted, stopping at the row where the
// machine halted.
func (b *BusyBeaver) scan() {
	if b.halted {
		return
	}
	for y := b.scanRow; y <= b.Generation(); y++ {
		sigma, halt := 0, false
		b.ForEachInRow(y, func(c core.Cell, _ int) {
			name := b.States().Name(c)
			if strings.HasSuffix(name, "1") {
				sigma++
			}
			if strings.HasPrefix(name, Halt) {
				halt = true
			}
		})
		b.scanRow, b.sigma = y, sigma
		if halt {
			b.halted = true
			return
		}
	}
}

// Halted reports whether the machine has reached H.
func (b *BusyBeaver) Halted() bool {
	b.scan()
	return b.halted
}

// Steps returns the number of steps taken before halting, or so far.
func (b *BusyBeaver) Steps() int {
	b.scan()
	return b.scanRow
}

// Ones returns the number of ones on the tape in the last scanned row.
func (b *BusyBeaver) Ones() int {
	b.scan()
	return b.sigma
}

// FillStats reports S (steps) and Σ (ones written).
func (b *BusyBeaver) FillStats(s core.Stats) {
	b.scan()
	s["S"] = b.scanRow
	s["Σ"] = b.sigma
}

// RuleParameters exposes the transition table.
func (b *BusyBeaver) RuleParameters() core.ParameterGroup {
	keys := make([]string, 0, len(b.table))
	for k := range b.table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	entries := make([]string, len(keys))
	for i, k := range keys {
		entries[i] = k + "=" + b.table[k]
	}
	return core.ParameterGroup{
		Name:   "Busy Beaver",
		Params: []core.Parameter{core.StringParam("rules", "Transition table", strings.Join(entries, ","))},
	}
}

func contains(xs []string, v string) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func init() {
	core.Register("busybeaver", func(cfg map[string]string) (core.Sim, error) {
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
