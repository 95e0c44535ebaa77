package wireworld

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElectronTravelsAlongWire(t *testing.T) {
	w := New(DefaultConfig())
	w.LoadRLE("■e4o!")
	box := w.BoundingBox()
	x0, y := box.ColMin, box.RowMin

	w.Step()
	assert.Equal(t, conductor, w.Get(x0, y))
	assert.Equal(t, tail, w.Get(x0+1, y))
	assert.Equal(t, head, w.Get(x0+2, y))

	w.Step()
	assert.Equal(t, head, w.Get(x0+3, y))
	assert.Equal(t, tail, w.Get(x0+2, y))
	assert.Equal(t, conductor, w.Get(x0+1, y))

	w.RefreshStats()
	assert.Equal(t, 1, w.Stats()["Electrons"])
}

func TestThreeHeadsBlockConductor(t *testing.T) {
	w := New(DefaultConfig())
	w.Set(0, 0, head)
	w.Set(1, 0, head)
	w.Set(2, 0, head)
	w.Set(1, 1, conductor)
	w.Step()
	assert.Equal(t, conductor, w.Get(1, 1))
}

func TestEmptyNeverChanges(t *testing.T) {
	w := New(DefaultConfig())
	w.Set(0, 0, head)
	w.Step()
	assert.Equal(t, w.EmptyCell(), w.Get(1, 0))
	assert.Equal(t, 1, w.Population())
}

func TestDiodesRoundTrip(t *testing.T) {
	w := New(DefaultConfig())
	w.LoadRLE(Diodes)
	w.RefreshStats()
	assert.Equal(t, 1, w.Stats()["Electrons"])
	assert.Contains(t, w.RLE(), "■e")

	states := w.States()
	assert.Equal(t, "⚡︎", states.State(head).Display)
	assert.Len(t, states.Pallet(), 2)
}
