package automaton

import (
	"fmt"

	"automata/internal/core"
)

// RefreshStats rebuilds the statistics from the current board. Calling it
// twice without stepping yields the same values.
func (a *Automaton) RefreshStats() {
	s := core.Stats{}
	if a.statsRule != nil {
		a.statsRule.FillStats(s)
	} else {
		a.BaseStats(s)
	}
	a.stats = s
}

// Stats returns a copy of the statistics computed by the last RefreshStats.
func (a *Automaton) Stats() core.Stats {
	out := make(core.Stats, len(a.stats))
	for k, v := range a.stats {
		out[k] = v
	}
	return out
}

// BaseStats writes the generic counters into s.
func (a *Automaton) BaseStats(s core.Stats) {
	s["Generation"] = a.step
	s["Alive"] = a.CountState(a.states.Default())
	if a.opts.Boundary == Infinite {
		s["Size"] = a.SizeLabel()
	}
	births, deaths := a.Turnover()
	s["Births"] = births
	s["Deaths"] = deaths
}

// SizeLabel formats the live bounding box as "WxH".
func (a *Automaton) SizeLabel() string {
	box := a.current.BoundingBox()
	return fmt.Sprintf("%dx%d", box.Width(), box.Height())
}

// Turnover counts the non-empty and empty writes of the last generation.
func (a *Automaton) Turnover() (births, deaths int) {
	a.changed.ForEach(func(c core.Cell, _, _ int) {
		if c == a.empty {
			deaths++
		} else {
			births++
		}
	})
	return births, deaths
}
