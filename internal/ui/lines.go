// Package ui draws the side panel and overlays of the interactive viewer.
package ui

import (
	"fmt"

	"automata/internal/core"
)

// Keys lists the viewer key bindings shown in the panel.
var Keys = []string{
	"space  pause/play",
	"N      single step",
	"R      reset",
	"C      clear",
	"B      bounding box",
	"G      grid lines",
	"+/-    speed",
	"Q      quit",
}

// StatusLines formats the panel text: playback state, statistics in key
// order, then the parameter groups.
func StatusLines(sim core.Sim, paused bool, tps int) []string {
	state := "running"
	if paused {
		state = "paused"
	}
	lines := []string{
		sim.Name(),
		fmt.Sprintf("%s @ %d/s", state, tps),
		"",
	}
	sim.RefreshStats()
	stats := sim.Stats()
	for _, k := range stats.Keys() {
		lines = append(lines, fmt.Sprintf("%-10s %v", k, stats[k]))
	}
	for _, g := range sim.Parameters().Groups {
		lines = append(lines, "", g.Name)
		for _, p := range g.Params {
			lines = append(lines, fmt.Sprintf("  %-10s %s", p.Key, p.Value))
		}
	}
	return lines
}
