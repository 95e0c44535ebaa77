package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"automata/internal/core"
)

// conway is a minimal S23/B3 rule for exercising the engine.
type conway struct{ *Automaton }

func (c *conway) NextState(cell core.Cell, x, y int) core.Cell {
	n := c.CountMoore(x, y, c.DefaultCell())
	alive := cell == c.DefaultCell()
	if n == 3 || (alive && n == 2) {
		return c.DefaultCell()
	}
	return c.EmptyCell()
}

// walker moves every token one cell to the right per generation, writing two
// cells per visit.
type walker struct{ *Automaton }

func (w *walker) StepCell(c core.Cell, x, y, _ int) {
	if c != w.DefaultCell() || w.Visited(x, y) {
		return
	}
	w.SetNext(x, y, w.EmptyCell())
	w.SetNext(x+1, y, w.DefaultCell())
}

func binaryStates() *core.StateSet {
	return core.NewStateSet(core.NewState("ALIVE", 'o'), core.NewState("DEAD", 'b'))
}

func newConway(t *testing.T, opts Options) *conway {
	t.Helper()
	c := &conway{}
	c.Automaton = New("conway", binaryStates(), opts, c)
	c.Reset()
	return c
}

func live(a *Automaton) map[core.Point]bool {
	out := map[core.Point]bool{}
	a.ForEachCell(func(c core.Cell, x, y int) {
		if c == a.DefaultCell() {
			out[core.Point{X: x, Y: y}] = true
		}
	})
	return out
}

func TestBlinkerOscillatesUnderEveryStrategy(t *testing.T) {
	for _, it := range []Iteration{LastChanged, Active, BoundingBox} {
		t.Run(string(it), func(t *testing.T) {
			opts := DefaultOptions()
			opts.Width, opts.Height = 5, 5
			opts.Boundary = Torus
			opts.Iteration = it
			c := newConway(t, opts)
			c.Set(2, 1, c.DefaultCell())
			c.Set(2, 2, c.DefaultCell())
			c.Set(2, 3, c.DefaultCell())

			c.Step()
			assert.Equal(t, map[core.Point]bool{{X: 1, Y: 2}: true, {X: 2, Y: 2}: true, {X: 3, Y: 2}: true}, live(c.Automaton))
			assert.Equal(t, 1, c.Generation())

			c.Step()
			assert.Equal(t, map[core.Point]bool{{X: 2, Y: 1}: true, {X: 2, Y: 2}: true, {X: 2, Y: 3}: true}, live(c.Automaton))
			assert.Equal(t, 2, c.Generation())
		})
	}
}

func TestGliderTranslatesOnInfiniteBoard(t *testing.T) {
	c := newConway(t, DefaultOptions())
	c.LoadRLE("bob$2bo$3o!")
	before := c.RLE()
	origin := c.Origin()

	for i := 0; i < 4; i++ {
		c.Step()
	}

	assert.Equal(t, before, c.RLE())
	assert.Equal(t, core.Point{X: origin.X + 1, Y: origin.Y + 1}, c.Origin())
	assert.Equal(t, 5, c.Population())
}

func TestTopologyMapping(t *testing.T) {
	tests := []struct {
		boundary Boundary
		in       [2]int
		want     [2]int
	}{
		{Torus, [2]int{-1, -1}, [2]int{9, 4}},
		{Torus, [2]int{10, 5}, [2]int{0, 0}},
		{Torus, [2]int{-21, 12}, [2]int{9, 2}},
		{Wall, [2]int{-3, 7}, [2]int{0, 4}},
		{Wall, [2]int{12, -1}, [2]int{9, 0}},
		{Infinite, [2]int{-3, 7}, [2]int{-3, 7}},
		{Infinite, [2]int{MaxSize + 5, -MaxSize - 5}, [2]int{MaxSize, -MaxSize}},
	}
	for _, tt := range tests {
		opts := DefaultOptions()
		opts.Width, opts.Height = 10, 5
		opts.Boundary = tt.boundary
		c := newConway(t, opts)
		x, y := c.Position(tt.in[0], tt.in[1])
		assert.Equal(t, tt.want, [2]int{x, y}, "%s %v", tt.boundary, tt.in)
	}
}

func TestTorusWritesWrap(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 10, 10
	opts.Boundary = Torus
	c := newConway(t, opts)

	c.Set(-1, -1, c.DefaultCell())
	assert.Equal(t, c.DefaultCell(), c.Get(9, 9))
	assert.Equal(t, c.DefaultCell(), c.Get(19, -11))
}

func TestSetNextDoesNotTouchCurrent(t *testing.T) {
	c := newConway(t, DefaultOptions())
	c.SetNext(0, 0, c.DefaultCell())
	assert.Equal(t, c.EmptyCell(), c.Get(0, 0))
	assert.True(t, c.Visited(0, 0))

	// Proposals equal to the current value are dropped.
	c.SetNext(1, 1, c.EmptyCell())
	assert.False(t, c.Visited(1, 1))
}

func TestStepRuleWritesSeveralCells(t *testing.T) {
	w := &walker{}
	opts := DefaultOptions()
	opts.Range = 0
	w.Automaton = New("walker", binaryStates(), opts, w)
	w.Set(0, 0, w.DefaultCell())

	for i := 0; i < 3; i++ {
		w.Step()
	}
	assert.Equal(t, w.DefaultCell(), w.Get(3, 0))
	assert.Equal(t, 1, w.Population())
}

func TestFillAndClear(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 4, 3
	opts.Boundary = Wall
	c := newConway(t, opts)

	c.Fill(c.DefaultCell())
	assert.Equal(t, 12, c.Population())

	c.Fill(c.EmptyCell())
	assert.Equal(t, 0, c.Population())

	c.FillWith(func(x, y int) core.Cell {
		if (x+y)%2 == 0 {
			return c.DefaultCell()
		}
		return c.EmptyCell()
	})
	assert.Equal(t, 6, c.Population())
}

func TestClearGridKeepsGeneration(t *testing.T) {
	c := newConway(t, DefaultOptions())
	c.LoadRLE("3o!")
	c.Step()
	c.ClearGrid()
	assert.Equal(t, 1, c.Generation())
	assert.Equal(t, 0, c.Population())

	c.Reset()
	assert.Equal(t, 0, c.Generation())
}

func TestLoadRLEPlacement(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 10, 10

	t.Run("centred", func(t *testing.T) {
		c := newConway(t, opts)
		c.LoadRLE("3o$3o!")
		assert.Equal(t, core.Box{RowMin: 4, ColMax: 5, RowMax: 5, ColMin: 3}, c.BoundingBox())
	})

	t.Run("wall keeps top row", func(t *testing.T) {
		o := opts
		o.Boundary = Wall
		c := newConway(t, o)
		c.LoadRLE("3o!")
		assert.Equal(t, c.DefaultCell(), c.Get(3, 0))
		assert.Equal(t, c.DefaultCell(), c.Get(5, 0))
	})

	t.Run("empty text clears", func(t *testing.T) {
		c := newConway(t, opts)
		c.Set(1, 1, c.DefaultCell())
		c.LoadRLE("  ")
		assert.Equal(t, 0, c.Population())
	})
}

func TestRLERoundTrip(t *testing.T) {
	c := newConway(t, DefaultOptions())
	c.LoadRLE("#N glider\nx = 3, y = 3, rule = B3/S23\nbo$2bo$3o!")
	out := c.RLE()
	assert.Equal(t, "bo$2bo$3o", out)

	d := newConway(t, DefaultOptions())
	d.LoadRLE(out)
	assert.Equal(t, out, d.RLE())
	assert.Equal(t, live(c.Automaton), live(d.Automaton))
}

func TestWallExportCoversViewport(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 3, 2
	opts.Boundary = Wall
	c := newConway(t, opts)
	c.Set(1, 0, c.DefaultCell())
	assert.Equal(t, "bob$3b$", c.RLE())
}

func TestPlaceRLEAtOrigin(t *testing.T) {
	c := newConway(t, DefaultOptions())
	c.LoadRLE("2o$obo!")
	text, origin := c.RLE(), c.Origin()

	d := newConway(t, DefaultOptions())
	d.PlaceRLE(text, origin.X, origin.Y)
	assert.Equal(t, live(c.Automaton), live(d.Automaton))
}

func TestStatsAreIdempotent(t *testing.T) {
	c := newConway(t, DefaultOptions())
	c.LoadRLE("3o!")
	c.Step()
	c.RefreshStats()
	first := c.Stats()
	c.RefreshStats()
	require.Equal(t, first, c.Stats())

	assert.Equal(t, 1, first["Generation"])
	assert.Equal(t, 3, first["Alive"])
	assert.Equal(t, "1x3", first["Size"])
	assert.Equal(t, 2, first["Births"])
	assert.Equal(t, 2, first["Deaths"])
}

func TestStatsOmitSizeOnFiniteBoards(t *testing.T) {
	opts := DefaultOptions()
	opts.Boundary = Torus
	c := newConway(t, opts)
	c.RefreshStats()
	_, ok := c.Stats()["Size"]
	assert.False(t, ok)
}

func TestNeighborPrimitives(t *testing.T) {
	c := newConway(t, DefaultOptions())
	alive := c.DefaultCell()
	c.Set(0, -1, alive)
	c.Set(1, 0, alive)
	c.Set(1, 1, alive)
	c.Set(0, 0, alive)
	c.Set(0, 2, alive)

	assert.Equal(t, 3, c.CountMoore(0, 0, alive))
	assert.Equal(t, 4, c.CountMooreInclusive(0, 0, alive))
	assert.Equal(t, 3, c.NonEmptyMoore(0, 0))
	assert.Equal(t, 4, c.NonEmptyMooreInclusive(0, 0))
	assert.Equal(t, [4]core.Cell{alive, alive, c.EmptyCell(), c.EmptyCell()}, c.VonNeumann(0, 0))
	assert.Equal(t, 5, c.RegionCount(0, 0, 2, alive))
	assert.Equal(t, 3, c.RegionCount(0, 0, 1, alive))
}

func TestRowsStrategyWritesOneRowPerStep(t *testing.T) {
	// next row cell is alive when exactly one of the three cells above is.
	r := &rowRule{}
	opts := DefaultOptions()
	opts.Iteration = Rows
	r.Automaton = New("rows", binaryStates(), opts, r)
	r.Set(0, 0, r.DefaultCell())

	r.Step()
	assert.Equal(t, 1, r.Generation())
	for x := -1; x <= 1; x++ {
		assert.Equal(t, r.DefaultCell(), r.Get(x, 1), "x=%d", x)
	}
	r.Step()
	assert.Equal(t, r.DefaultCell(), r.Get(-2, 2))
	assert.Equal(t, r.EmptyCell(), r.Get(0, 2))
	assert.Equal(t, r.DefaultCell(), r.Get(2, 2))
	// history is untouched
	assert.Equal(t, r.DefaultCell(), r.Get(0, 0))
}

type rowRule struct{ *Automaton }

func (r *rowRule) NextState(_ core.Cell, x, y int) core.Cell {
	n := 0
	for p := -1; p <= 1; p++ {
		if r.Get(x+p, y-1) == r.DefaultCell() {
			n++
		}
	}
	if n == 1 {
		return r.DefaultCell()
	}
	return r.EmptyCell()
}

func TestParametersIncludeBoard(t *testing.T) {
	c := newConway(t, DefaultOptions())
	values := c.Parameters().Values()
	assert.Equal(t, "40", values["w"])
	assert.Equal(t, "infinite", values["boundary"])
}

func TestRasterCopiesViewport(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 3, 3
	c := newConway(t, opts)
	c.Set(1, 1, c.DefaultCell())
	dst := core.NewByteGrid(3, 3)
	c.Raster(dst, 0, 0)
	assert.Equal(t, uint8(c.DefaultCell()), dst.At(1, 1))
	assert.Equal(t, uint8(c.EmptyCell()), dst.At(0, 0))
}
