package snapshot_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"automata/internal/core"
	_ "automata/internal/sims/all"
	"automata/internal/sims/life"
	"automata/internal/sims/wireworld"
	"automata/internal/snapshot"
)

func roundTrip(t *testing.T, sim core.Sim) core.Sim {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, snapshot.Encode(&buf, snapshot.Capture(sim)))
	snap, err := snapshot.Decode(&buf)
	require.NoError(t, err)
	restored, err := snapshot.Restore(snap)
	require.NoError(t, err)
	return restored
}

func requireSameBoard(t *testing.T, want, got core.Sim) {
	t.Helper()
	require.Equal(t, want.Generation(), got.Generation())
	require.Equal(t, want.RLE(), got.RLE())
	require.Equal(t, want.BoundingBox(), got.BoundingBox())
}

func TestRoundTripKeepsGliderRunning(t *testing.T) {
	sim, err := core.New("life", map[string]string{"start": life.Glider})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		sim.Step()
	}

	restored := roundTrip(t, sim)
	requireSameBoard(t, sim, restored)

	for i := 0; i < 8; i++ {
		sim.Step()
		restored.Step()
	}
	requireSameBoard(t, sim, restored)
}

func TestRoundTripOnTorus(t *testing.T) {
	sim, err := core.New("life", map[string]string{
		"w": "8", "h": "8", "boundary": "torus", "rule": "B3/S23", "start": life.Glider,
	})
	require.NoError(t, err)
	for i := 0; i < 14; i++ {
		sim.Step()
	}

	restored := roundTrip(t, sim)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			require.Equalf(t, sim.Get(x, y), restored.Get(x, y), "(%d,%d)", x, y)
		}
	}
	assert.Equal(t, "S23/B3", restored.Parameters().Values()["rule"])
	assert.Equal(t, "torus", restored.Parameters().Values()["boundary"])
}

func TestRoundTripWireWorld(t *testing.T) {
	sim, err := core.New("wireworld", map[string]string{"start": wireworld.Diodes})
	require.NoError(t, err)
	for i := 0; i < 7; i++ {
		sim.Step()
	}

	restored := roundTrip(t, sim)
	for i := 0; i < 12; i++ {
		sim.Step()
		restored.Step()
	}
	requireSameBoard(t, sim, restored)
}

func TestFileRoundTrip(t *testing.T) {
	sim, err := core.New("life", map[string]string{"start": life.DieHard})
	require.NoError(t, err)
	sim.Step()

	path := filepath.Join(t.TempDir(), "nested", "diehard.snap")
	require.NoError(t, snapshot.WriteFile(path, snapshot.Capture(sim)))

	snap, err := snapshot.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "life", snap.Sim)
	assert.Equal(t, 1, snap.Generation)
	assert.Equal(t, sim.RLE(), snap.RLE)

	_, err = snapshot.ReadFile(filepath.Join(t.TempDir(), "missing.snap"))
	assert.Error(t, err)
}

func TestRejectsUnknownVersion(t *testing.T) {
	snap := snapshot.Snapshot{Version: 7, Sim: "life"}
	_, err := snapshot.Restore(snap)
	assert.ErrorIs(t, err, snapshot.ErrVersion)

	var buf bytes.Buffer
	require.NoError(t, snapshot.Encode(&buf, snap))
	_, err = snapshot.Decode(&buf)
	assert.ErrorIs(t, err, snapshot.ErrVersion)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := snapshot.Decode(bytes.NewReader([]byte("not a snapshot")))
	assert.Error(t, err)
}

func TestRestoreUnknownSim(t *testing.T) {
	_, err := snapshot.Restore(snapshot.Snapshot{Version: snapshot.Version, Sim: "city"})
	assert.Error(t, err)
}
