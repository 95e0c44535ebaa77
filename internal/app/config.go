// Package app runs an automaton in an ebiten window.
package app

// Config holds the viewer settings.
type Config struct {
	Scale      int
	TPS        int
	PanelWidth int
	Paused     bool
}

// DefaultConfig returns an 8x zoom at 10 steps per second with a side panel.
func DefaultConfig() Config {
	return Config{Scale: 8, TPS: 10, PanelWidth: 220}
}

// Normalize replaces non-positive values with defaults.
func (c Config) Normalize() Config {
	def := DefaultConfig()
	if c.Scale <= 0 {
		c.Scale = def.Scale
	}
	if c.TPS <= 0 {
		c.TPS = def.TPS
	}
	if c.PanelWidth < 0 {
		c.PanelWidth = 0
	}
	return c
}
