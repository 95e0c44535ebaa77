package briansbrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"automata/internal/automaton"
	"automata/internal/core"
)

func TestCellCycle(t *testing.T) {
	b := New(DefaultConfig())
	b.Set(0, 0, firing)

	b.Step()
	assert.Equal(t, refractory, b.Get(0, 0))
	b.Step()
	assert.Equal(t, ready, b.Get(0, 0))
	assert.Equal(t, 0, b.Population())
}

func TestReadyCellFiresOnTwoNeighbors(t *testing.T) {
	b := New(DefaultConfig())
	b.Set(0, 0, firing)
	b.Set(2, 0, firing)
	b.Step()
	assert.Equal(t, firing, b.Get(1, 1))
	assert.Equal(t, firing, b.Get(1, -1))
	assert.Equal(t, firing, b.Get(1, 0))
	assert.Equal(t, ready, b.Get(3, 0))
	assert.Equal(t, refractory, b.Get(0, 0))
}

func TestOscillatorPeriod(t *testing.T) {
	b := New(DefaultConfig())
	b.LoadRLE(Oscillator)
	start := b.RLE()
	for i := 0; i < 3; i++ {
		b.Step()
	}
	assert.Equal(t, start, b.RLE())

	b.RefreshStats()
	s := b.Stats()
	assert.Equal(t, 3, s["Generation"])
	assert.Equal(t, 4, s["Firing"])
	assert.Equal(t, 4, s["Refractory"])
	assert.Equal(t, "4x4", s["Size"])
}

func TestDensityResetIsSeeded(t *testing.T) {
	sim, err := core.New("briansbrain", map[string]string{
		"density": "0.25", "seed": "7", "w": "16", "h": "16", "boundary": "torus",
	})
	require.NoError(t, err)
	first := sim.RLE()
	assert.NotEmpty(t, first)

	sim.Step()
	sim.Reset()
	assert.Equal(t, first, sim.RLE())
}

func TestFromMapRejectsBadBoundary(t *testing.T) {
	_, err := FromMap(map[string]string{"boundary": "moebius"})
	assert.ErrorIs(t, err, automaton.ErrInvalidOption)
}
