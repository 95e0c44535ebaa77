package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, DefaultConfig(), Config{PanelWidth: 220}.Normalize())

	c := Config{Scale: 3, TPS: 60, PanelWidth: -4, Paused: true}.Normalize()
	assert.Equal(t, Config{Scale: 3, TPS: 60, PanelWidth: 0, Paused: true}, c)
}
