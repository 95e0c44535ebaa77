package ant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"automata/internal/automaton"
	"automata/internal/core"
)

func newAnt(t *testing.T) *Ant {
	t.Helper()
	a, err := New(DefaultConfig())
	require.NoError(t, err)
	return a
}

func antPosition(a *Ant) (int, int, bool) {
	var px, py int
	found := false
	a.ForEachCell(func(c core.Cell, x, y int) {
		if IsAnt(c) {
			px, py, found = x, y, true
		}
	})
	return px, py, found
}

func TestStartingPattern(t *testing.T) {
	a := newAnt(t)
	x, y, ok := antPosition(a)
	require.True(t, ok)
	assert.Equal(t, [2]int{31, 31}, [2]int{x, y})
	assert.Equal(t, antCell[up][0], a.Get(x, y))
}

func TestFirstMoves(t *testing.T) {
	a := newAnt(t)
	x, y, _ := antPosition(a)

	// on white: turn left, leave a black square behind.
	a.Step()
	assert.Equal(t, a.DefaultCell(), a.Get(x, y))
	assert.Equal(t, antCell[left][0], a.Get(x-1, y))

	a.Step()
	assert.Equal(t, antCell[down][0], a.Get(x-1, y+1))

	a.RefreshStats()
	assert.Equal(t, 2, a.Stats()["Generation"])
	assert.Equal(t, 1, a.Stats()["Ants"])
	assert.Equal(t, 2, a.Blacks())
}

func TestAntReturnsToBlackSquare(t *testing.T) {
	a := newAnt(t)
	x, y, _ := antPosition(a)
	for i := 0; i < 4; i++ {
		a.Step()
	}
	// four left turns bring the ant back onto its first, now black, square.
	assert.Equal(t, antCell[up][1], a.Get(x, y))
	assert.Equal(t, 4, a.Blacks())
}

func TestHighwaySignature(t *testing.T) {
	if testing.Short() {
		t.Skip("long run")
	}
	a := newAnt(t)
	for i := 0; i < 11000; i++ {
		a.Step()
	}
	x0, y0, ok := antPosition(a)
	require.True(t, ok)
	b0 := a.Blacks()

	for i := 0; i < 104; i++ {
		a.Step()
	}
	x1, y1, _ := antPosition(a)
	assert.Equal(t, 12, a.Blacks()-b0)
	assert.Equal(t, 2, abs(x1-x0))
	assert.Equal(t, 2, abs(y1-y0))
}

func TestTorusKeepsAntOnBoard(t *testing.T) {
	sim, err := core.New("ant", map[string]string{"boundary": "torus", "w": "39", "h": "39"})
	require.NoError(t, err)
	for i := 0; i < 2000; i++ {
		sim.Step()
	}
	box := sim.BoundingBox()
	assert.Equal(t, core.Box{RowMin: 0, ColMax: 38, RowMax: 38, ColMin: 0}, box)
	sim.RefreshStats()
	assert.Equal(t, 1, sim.Stats()["Ants"])
}

func TestRuleValidation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rule = "RX"
	_, err := New(cfg)
	assert.ErrorIs(t, err, automaton.ErrInvalidRule)

	cfg.Rule = "LR"
	_, err = New(cfg)
	assert.NoError(t, err)
}

func TestRLEUsesGlyphs(t *testing.T) {
	a := newAnt(t)
	assert.Equal(t, "▲", a.RLE())
	a.Step()
	assert.Equal(t, "◄o", a.RLE())
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
