package core

import "fmt"

// Cell identifies a state within a StateSet. Cells are small interned ids so
// equality checks in the stepping loops are plain integer comparisons.
type Cell uint16

// State describes one automaton state.
type State struct {
	Name    string // unique within a StateSet
	Token   rune   // single-character serialization symbol
	Display string // optional UI glyph
}

// NewState builds a State whose display glyph defaults to the token.
func NewState(name string, token rune) State {
	return State{Name: name, Token: token, Display: string(token)}
}

// WithDisplay returns a copy of s using the given display glyph.
func (s State) WithDisplay(display string) State {
	s.Display = display
	return s
}

// StateSet is the ordered list of states an automaton understands. The first
// state is the default cell, the last one is the empty background cell.
type StateSet struct {
	states  []State
	byName  map[string]Cell
	byToken map[rune]Cell
	pallet  [][]Cell
}

// NewStateSet interns the provided states. It panics when fewer than two
// states are given or names repeat, since both are programming errors in a
// rule definition.
func NewStateSet(states ...State) *StateSet {
	if len(states) < 2 {
		panic(fmt.Sprintf("core: a state set needs at least 2 states, got %d", len(states)))
	}
	ss := &StateSet{
		states:  append([]State(nil), states...),
		byName:  make(map[string]Cell, len(states)),
		byToken: make(map[rune]Cell, len(states)),
	}
	for i, s := range ss.states {
		if _, dup := ss.byName[s.Name]; dup {
			panic(fmt.Sprintf("core: duplicate state %q", s.Name))
		}
		ss.byName[s.Name] = Cell(i)
		// First state wins on shared tokens.
		if _, ok := ss.byToken[s.Token]; !ok {
			ss.byToken[s.Token] = Cell(i)
		}
	}
	return ss
}

// WithPallet groups states into UI rows by name. Unknown names are skipped.
func (ss *StateSet) WithPallet(rows ...[]string) *StateSet {
	ss.pallet = ss.pallet[:0]
	for _, row := range rows {
		cells := make([]Cell, 0, len(row))
		for _, name := range row {
			if c, ok := ss.byName[name]; ok {
				cells = append(cells, c)
			}
		}
		ss.pallet = append(ss.pallet, cells)
	}
	return ss
}

// Len returns the number of states.
func (ss *StateSet) Len() int { return len(ss.states) }

// Default returns the default (commonly "alive") cell.
func (ss *StateSet) Default() Cell { return 0 }

// Empty returns the background cell.
func (ss *StateSet) Empty() Cell { return Cell(len(ss.states) - 1) }

// State returns the descriptor for c. Out-of-range cells map to the empty
// state.
func (ss *StateSet) State(c Cell) State {
	if int(c) >= len(ss.states) {
		return ss.states[len(ss.states)-1]
	}
	return ss.states[c]
}

// Name is shorthand for State(c).Name.
func (ss *StateSet) Name(c Cell) string { return ss.State(c).Name }

// Token is shorthand for State(c).Token.
func (ss *StateSet) Token(c Cell) rune { return ss.State(c).Token }

// Lookup finds a cell by state name.
func (ss *StateSet) Lookup(name string) (Cell, bool) {
	c, ok := ss.byName[name]
	return c, ok
}

// MustLookup finds a cell by name and panics when it is missing.
func (ss *StateSet) MustLookup(name string) Cell {
	c, ok := ss.byName[name]
	if !ok {
		panic(fmt.Sprintf("core: unknown state %q", name))
	}
	return c
}

// FromToken resolves a serialization token. The reserved tokens 'b' and 'o'
// always mean empty and default; unknown tokens resolve to empty.
func (ss *StateSet) FromToken(t rune) Cell {
	switch t {
	case 'b':
		return ss.Empty()
	case 'o':
		return ss.Default()
	}
	if c, ok := ss.byToken[t]; ok {
		return c
	}
	return ss.Empty()
}

// CanonicalToken returns the token used when serializing c: 'b' for the
// empty cell, 'o' for the default cell, the state's own token otherwise.
func (ss *StateSet) CanonicalToken(c Cell) rune {
	switch c {
	case ss.Empty():
		return 'b'
	case ss.Default():
		return 'o'
	}
	return ss.Token(c)
}

// States returns a copy of the ordered state descriptors.
func (ss *StateSet) States() []State { return append([]State(nil), ss.states...) }

// Pallet returns the UI rows of cells.
func (ss *StateSet) Pallet() [][]Cell {
	out := make([][]Cell, len(ss.pallet))
	for i, row := range ss.pallet {
		out[i] = append([]Cell(nil), row...)
	}
	return out
}
