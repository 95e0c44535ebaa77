package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"automata/internal/presets"
)

var dumpYAML bool // Print the merged catalogue as YAML

// presetsCmd lists the catalogue
var presetsCmd = &cobra.Command{
	Use:   "presets [entry]",
	Short: "List bundled presets and patterns",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalogue()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			e, err := c.Entry(args[0])
			if err != nil {
				return err
			}
			c = &presets.Catalogue{Automata: []presets.Entry{e}}
		}
		out := cmd.OutOrStdout()
		if dumpYAML {
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(c)
		}
		for _, e := range c.Automata {
			fmt.Fprintf(out, "%s (%s)\n", e.Title, e.Sim)
			for _, p := range e.Presets {
				opts := make([]string, 0, len(p.Options))
				for _, k := range sortedKeys(p.Options) {
					opts = append(opts, k+"="+p.Options[k])
				}
				fmt.Fprintf(out, "  %-38s %s\n", p.Title, strings.Join(opts, " "))
			}
			for _, p := range e.Patterns {
				fmt.Fprintf(out, "  pattern: %s\n", p.Name)
			}
		}
		return nil
	},
}

func init() {
	presetsCmd.Flags().BoolVar(&dumpYAML, "yaml", false, "Print the catalogue as YAML")
	rootCmd.AddCommand(presetsCmd)
}
