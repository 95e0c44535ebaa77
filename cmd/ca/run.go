package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"automata/internal/core"
	"automata/internal/snapshot"
)

var (
	steps    int    // Generations to run
	every    int    // Print stats every N generations
	savePath string // Snapshot written after the run
	loadPath string // Snapshot restored before the run
	printRLE bool   // Print the final board
)

// runCmd steps an automaton headlessly
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an automaton headlessly and print its statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			sim core.Sim
			err error
		)
		if loadPath != "" {
			snap, err := snapshot.ReadFile(loadPath)
			if err != nil {
				return fmt.Errorf("load %s: %w", loadPath, err)
			}
			if sim, err = snapshot.Restore(snap); err != nil {
				return err
			}
			logrus.Infof("restored %s at generation %d", snap.Sim, snap.Generation)
		} else if sim, err = buildSim(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for i := 0; i < steps; i++ {
			sim.Step()
			if every > 0 && sim.Generation()%every == 0 {
				sim.RefreshStats()
				fmt.Fprintln(out, formatStats(sim.Stats()))
			}
		}
		sim.RefreshStats()
		fmt.Fprintln(out, formatStats(sim.Stats()))
		if printRLE {
			fmt.Fprintln(out, sim.RLE())
		}

		if savePath != "" {
			if err := snapshot.WriteFile(savePath, snapshot.Capture(sim)); err != nil {
				return fmt.Errorf("save %s: %w", savePath, err)
			}
			logrus.Infof("saved generation %d to %s", sim.Generation(), savePath)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().IntVar(&steps, "steps", 100, "Generations to run")
	runCmd.Flags().IntVar(&every, "every", 0, "Print statistics every N generations (0 prints only the final line)")
	runCmd.Flags().StringVar(&savePath, "save", "", "Write a snapshot after the run")
	runCmd.Flags().StringVar(&loadPath, "load", "", "Restore a snapshot instead of building from --sim")
	runCmd.Flags().BoolVar(&printRLE, "rle", false, "Print the final board as RLE")

	rootCmd.AddCommand(runCmd)
}
