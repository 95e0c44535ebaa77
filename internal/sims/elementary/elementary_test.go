package elementary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"automata/internal/core"
)

func TestRule30Values(t *testing.T) {
	e := New(DefaultConfig())
	want := []struct {
		value string
		alive int
	}{
		{"7", 3}, {"25", 3}, {"111", 6}, {"401", 4}, {"1783", 9}, {"6409", 5}, {"28479", 12},
	}
	for n, w := range want {
		e.Step()
		e.RefreshStats()
		s := e.Stats()
		assert.Equal(t, n+1, s["Generation"])
		assert.Equal(t, w.value, s["a(n)"], "n=%d", n+1)
		assert.Equal(t, w.alive, s["Alive"], "n=%d", n+1)
	}
}

func TestHistoryIsKept(t *testing.T) {
	e := New(DefaultConfig())
	e.Step()
	e.Step()
	assert.Equal(t, active, e.Get(21, 0))
	assert.Equal(t, active, e.Get(20, 1))
	assert.Equal(t, active, e.Get(22, 1))
	assert.Equal(t, "2bo$b3o$2o2bo", e.RLE())
}

func TestRule90IsSierpinski(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rule = 90
	e := New(cfg)
	for i := 0; i < 4; i++ {
		e.Step()
	}
	e.RefreshStats()
	// row 4 of Pascal's triangle mod 2: only the two ends survive.
	assert.Equal(t, 2, e.Stats()["Alive"])
}

func TestValueUsesArbitraryPrecision(t *testing.T) {
	e := New(DefaultConfig())
	for i := 0; i < 40; i++ {
		e.Step()
	}
	v := e.Value(40)
	assert.Greater(t, v.BitLen(), 64)
}

func TestFromMap(t *testing.T) {
	sim, err := core.New("elementary", map[string]string{"rule": "110"})
	require.NoError(t, err)
	assert.Equal(t, "110", sim.Parameters().Values()["rule"])

	c, err := FromMap(map[string]string{"rule": "300"})
	require.NoError(t, err)
	assert.Equal(t, uint8(30), c.Rule)
}
