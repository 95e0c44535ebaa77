//go:build !ebiten

package main

import (
	"errors"

	"github.com/spf13/cobra"
)

// viewCmd explains how to get the GUI build
var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the automaton in a window (requires the ebiten build tag)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return errors.New("the viewer requires the ebiten build tag; re-run with `go run -tags ebiten ./cmd/ca view`")
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
