package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"automata/internal/sims/life"
)

func TestStatusLines(t *testing.T) {
	cfg := life.DefaultConfig()
	cfg.StartingPattern = "3o"
	l, err := life.New(cfg)
	require.NoError(t, err)
	l.Step()

	lines := StatusLines(l, true, 12)
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "life", lines[0])
	assert.Equal(t, "paused @ 12/s", lines[1])
	assert.Contains(t, lines, "Alive      3")
	assert.Contains(t, lines, "Generation 1")
	assert.Contains(t, lines, "Size       1x3")
	assert.Contains(t, lines, "Board")
	assert.Contains(t, lines, "  rule       S23/B3")

	assert.Equal(t, "running @ 5/s", StatusLines(l, false, 5)[1])
}
