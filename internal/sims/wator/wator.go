// Package wator implements A. K. Dewdney's Wa-Tor predator-prey ecosystem
// on a toroidal ocean. Every species breeds after a number of chronons;
// predators lose energy while swimming and regain it by eating their prey.
package wator

import (
	"fmt"
	"strconv"
	"strings"

	"automata/internal/automaton"
	"automata/internal/core"
)

// Species describes one kind of creature.
type Species struct {
	Name      string
	Fertility int
	Energy    int
	// Unbounded species never starve.
	Unbounded bool
	Prey      string
}

// Named species lists.
const (
	SharksAndFish       = "fish:4:inf,shark:12:3:fish"
	ShrimpFishAndSharks = "shrimp:4:inf,fish:12:3:shrimp,shark:15:12:fish"
)

// ParseSpecies reads a comma separated list of name:fertility:energy[:prey]
// entries. Energy "inf" makes a species immune to starvation.
func ParseSpecies(s string) ([]Species, error) {
	var out []Species
	seen := map[string]bool{}
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		f := strings.Split(entry, ":")
		if len(f) < 3 || len(f) > 4 || f[0] == "" {
			return nil, fmt.Errorf("species %q: want name:fertility:energy[:prey]: %w", entry, automaton.ErrInvalidRule)
		}
		sp := Species{Name: f[0]}
		fert, err := strconv.Atoi(f[1])
		if err != nil || fert < 0 {
			return nil, fmt.Errorf("species %q: fertility: %w", entry, automaton.ErrInvalidRule)
		}
		sp.Fertility = fert
		if strings.EqualFold(f[2], "inf") {
			sp.Unbounded = true
		} else {
			energy, err := strconv.Atoi(f[2])
			if err != nil {
				return nil, fmt.Errorf("species %q: energy: %w", entry, automaton.ErrInvalidRule)
			}
			sp.Energy = energy
		}
		if len(f) == 4 {
			sp.Prey = f[3]
		}
		if seen[sp.Name] {
			return nil, fmt.Errorf("species %q listed twice: %w", sp.Name, automaton.ErrInvalidRule)
		}
		seen[sp.Name] = true
		out = append(out, sp)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no species: %w", automaton.ErrInvalidRule)
	}
	for _, sp := range out {
		if sp.Prey != "" && !seen[sp.Prey] {
			return nil, fmt.Errorf("species %q preys on unknown %q: %w", sp.Name, sp.Prey, automaton.ErrInvalidRule)
		}
	}
	return out, nil
}

// Config holds parameters for Wa-Tor.
type Config struct {
	automaton.Options
	Species string
}

// DefaultConfig returns sharks and fish on a 40x40 torus.
func DefaultConfig() Config {
	o := automaton.DefaultOptions()
	o.Boundary = automaton.Torus
	o.Iteration = automaton.Active
	o.Range = 0
	return Config{Options: o, Species: SharksAndFish}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	o, err := automaton.OptionsFromMap(cfg, c.Options)
	if err != nil {
		return c, err
	}
	c.Options = o
	if v, ok := cfg["species"]; ok && strings.TrimSpace(v) != "" {
		c.Species = v
	}
	return c, nil
}

// agent is the per-creature state kept beside the grid.
type agent struct {
	cell      core.Cell
	fertility int
	energy    int
}

// WaTor is the ecosystem automaton.
type WaTor struct {
	*automaton.Automaton
	species map[core.Cell]Species
	prey    map[core.Cell]core.Cell
	order   []core.Cell
	agents  *core.Grid[agent]
}

// New creates a Wa-Tor ocean. Malformed species lists are reported as
// errors wrapping automaton.ErrInvalidRule.
func New(cfg Config) (*WaTor, error) {
	species, err := ParseSpecies(cfg.Species)
	if err != nil {
		return nil, err
	}

	// the last listed species is the default cell
	list := make([]core.State, 0, len(species)+1)
	used := map[rune]bool{'b': true, 'o': true}
	for i := len(species) - 1; i >= 0; i-- {
		name := species[i].Name
		list = append(list, core.NewState(name, token(name, used)))
	}
	list = append(list, core.NewState("empty", 'b'))
	names := make([]string, len(species))
	for i, sp := range species {
		names[i] = sp.Name
	}
	states := core.NewStateSet(list...).WithPallet(names, []string{"empty"})

	w := &WaTor{
		species: map[core.Cell]Species{},
		prey:    map[core.Cell]core.Cell{},
		agents:  core.NewDeltaGrid[agent](),
	}
	for _, sp := range species {
		c := states.MustLookup(sp.Name)
		w.species[c] = sp
		w.order = append(w.order, c)
	}
	for c, sp := range w.species {
		if sp.Prey != "" {
			w.prey[c] = states.MustLookup(sp.Prey)
		}
	}

	w.Automaton = automaton.New("wator", states, cfg.Options, w)
	w.Reset()
	return w, nil
}

// token picks the first unused upper-case letter of name, falling back to
// the alphabet.
func token(name string, used map[rune]bool) rune {
	for _, r := range strings.ToUpper(name) + "ABCDEFGHIJKLMNOPQRSTUVWXYZ" {
		if r >= 'A' && r <= 'Z' && !used[r] {
			used[r] = true
			return r
		}
	}
	return '?'
}

// Species returns the configured species in listing order.
func (w *WaTor) Species() []Species {
	out := make([]Species, len(w.order))
	for i, c := range w.order {
		out[i] = w.species[c]
	}
	return out
}

// OnClear drops the creature records along with the grid.
func (w *WaTor) OnClear() {
	w.agents = core.NewDeltaGrid[agent]()
}

func (w *WaTor) newborn(c core.Cell) agent {
	sp := w.species[c]
	return agent{cell: c, fertility: sp.Fertility, energy: sp.Energy}
}

// agentAt returns the record for the creature at mapped (x, y). Creatures
// placed through Set or a pattern get a fresh record on first use.
func (w *WaTor) agentAt(c core.Cell, x, y int) agent {
	if a, ok := w.agents.Get(x, y); ok && a.cell == c {
		return a
	}
	return w.newborn(c)
}

func (w *WaTor) place(x, y int, a agent) {
	w.Set(x, y, a.cell)
	if a.cell == w.EmptyCell() {
		w.agents.Remove(x, y)
		return
	}
	w.agents.Set(x, y, a)
}

// StepCell runs one chronon for the creature at (x, y): starving, hunting,
// swimming or, when boxed in, aging in place. Moves are written
// immediately so that later creatures see them.
func (w *WaTor) StepCell(c core.Cell, x, y, _ int) {
	if w.Visited(x, y) || c == w.EmptyCell() {
		return
	}
	a := w.agentAt(c, x, y)
	sp := w.species[c]

	if !sp.Unbounded && a.energy <= 0 {
		w.place(x, y, agent{cell: w.EmptyCell()})
		return
	}

	neighbors := w.VonNeumann(x, y)
	if prey, ok := w.prey[c]; ok {
		if dx, dy, ok := w.randomMove(neighbors, prey); ok {
			w.move(a, x, y, dx, dy)
			return
		}
	}
	if dx, dy, ok := w.randomMove(neighbors, w.EmptyCell()); ok {
		w.move(a, x, y, dx, dy)
		return
	}

	a.fertility--
	if !sp.Unbounded {
		a.energy--
	}
	w.agents.Set(x, y, a)
}

var moves = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

func (w *WaTor) randomMove(neighbors [4]core.Cell, target core.Cell) (int, int, bool) {
	var idx [4]int
	n := 0
	for i, c := range neighbors {
		if c == target {
			idx[n] = i
			n++
		}
	}
	if n == 0 {
		return 0, 0, false
	}
	m := moves[idx[w.RNG().IntN(n)]]
	return m[0], m[1], true
}

func (w *WaTor) move(a agent, x, y, dx, dy int) {
	sp := w.species[a.cell]
	xx, yy := w.Position(x+dx, y+dy)

	if !sp.Unbounded {
		if w.Get(xx, yy) != w.EmptyCell() {
			a.energy += 2
		} else {
			a.energy--
		}
	}

	offspring := agent{cell: w.EmptyCell()}
	if a.fertility <= 0 {
		offspring = w.newborn(a.cell)
		a.fertility = sp.Fertility
	} else {
		a.fertility--
	}

	w.place(xx, yy, a)
	w.place(x, y, offspring)
}

// Count returns the population of the named species.
func (w *WaTor) Count(name string) int {
	c, ok := w.States().Lookup(name)
	if !ok || c == w.EmptyCell() {
		return 0
	}
	return w.CountState(c)
}

// FillStats reports the chronon and every species' population.
func (w *WaTor) FillStats(s core.Stats) {
	s["Chronon"] = w.Generation()
	for _, c := range w.order {
		s[w.species[c].Name] = w.CountState(c)
	}
}

// RuleParameters exposes the species list.
func (w *WaTor) RuleParameters() core.ParameterGroup {
	entries := make([]string, 0, len(w.order))
	for _, c := range w.order {
		sp := w.species[c]
		energy := strconv.Itoa(sp.Energy)
		if sp.Unbounded {
			energy = "inf"
		}
		e := sp.Name + ":" + strconv.Itoa(sp.Fertility) + ":" + energy
		if sp.Prey != "" {
			e += ":" + sp.Prey
		}
		entries = append(entries, e)
	}
	return core.ParameterGroup{
		Name:   "Wa-Tor",
		Params: []core.Parameter{core.StringParam("species", "Species", strings.Join(entries, ","))},
	}
}

func init() {
	core.Register("wator", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		w, err := New(c)
		if err != nil {
			return nil, err
		}
		return w, nil
	})
}
