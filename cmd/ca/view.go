//go:build ebiten

package main

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"automata/internal/app"
)

var viewCfg = app.DefaultConfig()

// viewCmd opens the interactive viewer
var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the automaton in a window",
	RunE: func(cmd *cobra.Command, args []string) error {
		sim, err := buildSim()
		if err != nil {
			return err
		}
		cfg := viewCfg.Normalize()
		game := app.New(sim, cfg)
		size := sim.Size()

		ebiten.SetWindowTitle("automata · " + sim.Name())
		ebiten.SetWindowSize(size.W*cfg.Scale+cfg.PanelWidth, size.H*cfg.Scale)

		if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
			return err
		}
		return nil
	},
}

func init() {
	viewCmd.Flags().IntVar(&viewCfg.Scale, "scale", viewCfg.Scale, "Pixels per cell")
	viewCmd.Flags().IntVar(&viewCfg.TPS, "tps", viewCfg.TPS, "Steps per second")
	viewCmd.Flags().IntVar(&viewCfg.PanelWidth, "panel", viewCfg.PanelWidth, "Side panel width (0 hides it)")
	viewCmd.Flags().BoolVar(&viewCfg.Paused, "paused", false, "Start paused")

	rootCmd.AddCommand(viewCmd)
}
