package wator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"automata/internal/automaton"
	"automata/internal/core"
)

func newOcean(t *testing.T, species string) *WaTor {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 10, 10
	cfg.Species = species
	w, err := New(cfg)
	require.NoError(t, err)
	return w
}

func cell(t *testing.T, w *WaTor, name string) core.Cell {
	t.Helper()
	c, ok := w.States().Lookup(name)
	require.True(t, ok, name)
	return c
}

func TestFishBreedEveryFifthChronon(t *testing.T) {
	w := newOcean(t, SharksAndFish)
	w.Set(5, 5, cell(t, w, "fish"))

	counts := map[int]int{}
	for i := 1; i <= 10; i++ {
		w.Step()
		counts[i] = w.Count("fish")
	}
	assert.Equal(t, 1, counts[4])
	assert.Equal(t, 2, counts[5])
	assert.Equal(t, 2, counts[9])
	assert.Equal(t, 4, counts[10])
}

func TestLoneSharkStarves(t *testing.T) {
	w := newOcean(t, SharksAndFish)
	w.Set(5, 5, cell(t, w, "shark"))
	for i := 0; i < 3; i++ {
		w.Step()
		assert.Equal(t, 1, w.Count("shark"), "chronon %d", i+1)
	}
	w.Step()
	assert.Equal(t, 0, w.Count("shark"))
	assert.Equal(t, 0, w.Population())
}

func TestSharkPrefersPrey(t *testing.T) {
	w := newOcean(t, SharksAndFish)
	shark, fish := cell(t, w, "shark"), cell(t, w, "fish")
	w.Set(5, 5, shark)
	w.Set(6, 5, fish)
	w.Step()
	assert.Equal(t, shark, w.Get(6, 5))
	assert.Equal(t, 0, w.Count("fish"))

	a, ok := w.agents.Get(6, 5)
	require.True(t, ok)
	assert.Equal(t, 5, a.energy)
}

func TestBoxedCreatureAgesInPlace(t *testing.T) {
	w := newOcean(t, SharksAndFish)
	fish := cell(t, w, "fish")
	w.FillWith(func(int, int) core.Cell { return fish })
	w.Step()
	assert.Equal(t, 100, w.Count("fish"))
	a, ok := w.agents.Get(0, 0)
	require.True(t, ok)
	assert.Equal(t, 3, a.fertility)
}

func TestStatsListEverySpecies(t *testing.T) {
	w := newOcean(t, ShrimpFishAndSharks)
	w.Set(1, 1, cell(t, w, "shrimp"))
	w.Set(3, 3, cell(t, w, "shark"))
	w.RefreshStats()
	s := w.Stats()
	assert.Equal(t, 0, s["Chronon"])
	assert.Equal(t, 1, s["shrimp"])
	assert.Equal(t, 0, s["fish"])
	assert.Equal(t, 1, s["shark"])
}

func TestTokensAreUnique(t *testing.T) {
	w := newOcean(t, ShrimpFishAndSharks)
	seen := map[rune]string{}
	for _, st := range w.States().States() {
		prev, dup := seen[st.Token]
		assert.False(t, dup, "%s shares %q with %s", st.Name, st.Token, prev)
		seen[st.Token] = st.Name
	}
	assert.Equal(t, "shark", w.States().Name(w.DefaultCell()))
}

func TestSeededOceanIsReproducible(t *testing.T) {
	run := func() string {
		sim, err := core.New("wator", map[string]string{"w": "20", "h": "20", "seed": "11"})
		require.NoError(t, err)
		states := sim.States()
		fish, _ := states.Lookup("fish")
		shark, _ := states.Lookup("shark")
		sim.FillWith(func(x, y int) core.Cell {
			switch (x*31 + y*17) % 13 {
			case 0:
				return shark
			case 1, 2, 3:
				return fish
			}
			return states.Empty()
		})
		for i := 0; i < 30; i++ {
			sim.Step()
		}
		return sim.RLE()
	}
	assert.Equal(t, run(), run())
}

func TestParseSpecies(t *testing.T) {
	sp, err := ParseSpecies(ShrimpFishAndSharks)
	require.NoError(t, err)
	require.Len(t, sp, 3)
	assert.True(t, sp[0].Unbounded)
	assert.Equal(t, Species{Name: "shark", Fertility: 15, Energy: 12, Prey: "fish"}, sp[2])

	for _, bad := range []string{"", "fish", "fish:x:3", "fish:4:inf,fish:4:inf", "shark:12:3:tuna"} {
		_, err := ParseSpecies(bad)
		assert.ErrorIs(t, err, automaton.ErrInvalidRule, bad)
	}
}

func TestClearDropsRecords(t *testing.T) {
	w := newOcean(t, SharksAndFish)
	w.Set(2, 2, cell(t, w, "fish"))
	w.Step()
	w.ClearGrid()
	assert.Equal(t, 0, w.agents.Len())
}
