package automaton

import "automata/internal/core"

var (
	mooreOffsets = [8][2]int{
		{-1, -1}, {0, -1}, {1, -1},
		{-1, 0}, {1, 0},
		{-1, 1}, {0, 1}, {1, 1},
	}
	// up, right, down, left
	vonNeumannOffsets = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
)

// CountMoore counts the 8 neighbors of (x, y) holding c.
func (a *Automaton) CountMoore(x, y int, c core.Cell) int {
	n := 0
	for _, d := range mooreOffsets {
		if a.Get(x+d[0], y+d[1]) == c {
			n++
		}
	}
	return n
}

// CountMooreInclusive counts the 3x3 block centred on (x, y) holding c.
func (a *Automaton) CountMooreInclusive(x, y int, c core.Cell) int {
	n := a.CountMoore(x, y, c)
	if a.Get(x, y) == c {
		n++
	}
	return n
}

// NonEmptyMoore counts the non-empty neighbors of (x, y).
func (a *Automaton) NonEmptyMoore(x, y int) int {
	n := 0
	for _, d := range mooreOffsets {
		if a.Get(x+d[0], y+d[1]) != a.empty {
			n++
		}
	}
	return n
}

// NonEmptyMooreInclusive counts the non-empty cells of the 3x3 block
// centred on (x, y).
func (a *Automaton) NonEmptyMooreInclusive(x, y int) int {
	n := a.NonEmptyMoore(x, y)
	if a.Get(x, y) != a.empty {
		n++
	}
	return n
}

// Moore returns the 8 neighbors row by row, skipping the centre.
func (a *Automaton) Moore(x, y int) [8]core.Cell {
	var out [8]core.Cell
	for i, d := range mooreOffsets {
		out[i] = a.Get(x+d[0], y+d[1])
	}
	return out
}

// VonNeumann returns the neighbors up, right, down and left of (x, y).
func (a *Automaton) VonNeumann(x, y int) [4]core.Cell {
	var out [4]core.Cell
	for i, d := range vonNeumannOffsets {
		out[i] = a.Get(x+d[0], y+d[1])
	}
	return out
}

// RegionCount counts the cells holding c within Manhattan distance r of
// (x, y), the centre included.
func (a *Automaton) RegionCount(x, y, r int, c core.Cell) int {
	n := 0
	for q := -r; q <= r; q++ {
		span := r - abs(q)
		for p := -span; p <= span; p++ {
			if a.Get(x+p, y+q) == c {
				n++
			}
		}
	}
	return n
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
